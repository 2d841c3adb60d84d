package app

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/barakadvert/storefront/internal/adapters/httpserver"
	"github.com/barakadvert/storefront/internal/adapters/mail/export"
	"github.com/barakadvert/storefront/internal/adapters/mail/function"
	"github.com/barakadvert/storefront/internal/adapters/mail/resend"
	"github.com/barakadvert/storefront/internal/adapters/mail/smtp"
	"github.com/barakadvert/storefront/internal/adapters/preview"
	"github.com/barakadvert/storefront/internal/adapters/repo/memory"
	"github.com/barakadvert/storefront/internal/adapters/repo/postgres"
	"github.com/barakadvert/storefront/internal/adapters/sheet"
	"github.com/barakadvert/storefront/internal/adapters/storage/localfs"
	"github.com/barakadvert/storefront/internal/cart"
	"github.com/barakadvert/storefront/internal/config"
	"github.com/barakadvert/storefront/internal/configurator"
	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/email"
	"github.com/barakadvert/storefront/internal/metrics"
	"github.com/barakadvert/storefront/internal/notify"
	"github.com/barakadvert/storefront/internal/pricing"
	"github.com/barakadvert/storefront/internal/session"
	"github.com/barakadvert/storefront/internal/usecase"
	"github.com/barakadvert/storefront/internal/views"
	"github.com/barakadvert/storefront/internal/wizard"
)

type App struct {
	Config    *config.Config
	DB        *gorm.DB
	Tmpl      *template.Template
	ProductUC *usecase.ProductUC
	Sessions  *session.Store
	Transport domain.Transport
	Notify    *notify.Service
	Storage   domain.FileStorage
	Registry  *prometheus.Registry

	products *postgres.ProductRepo
	rates    pricing.Rates
	business email.Business
}

// NewApp wires the service. db may be nil, in which case the catalogue is
// held in memory.
func NewApp(cfg *config.Config, db *gorm.DB) (*App, error) {
	a := &App{
		Config: cfg,
		DB:     db,
		rates: pricing.Rates{
			TaxRate:          cfg.TaxRate,
			ShippingFee:      cfg.ShippingFee,
			FreeShippingOver: cfg.FreeShippingOver,
		},
		business: email.DefaultBusiness(),
	}
	a.business.Email = cfg.BusinessEmail

	if db != nil {
		a.products = postgres.NewProductRepo(db)
		a.ProductUC = &usecase.ProductUC{Products: a.products}
	} else {
		a.ProductUC = &usecase.ProductUC{Products: memory.NewProductRepo(usecase.ShopProducts())}
	}

	storage, err := localfs.New(cfg.ExportDir)
	if err != nil {
		return nil, err
	}
	a.Storage = storage

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(a.Registry)

	a.Notify = notify.NewService(a.mailer(), a.business, cfg.BusinessEmail)
	transport, err := a.transport()
	if err != nil {
		return nil, err
	}
	a.Transport = m.Instrument(transport)

	estimator := a.estimator()
	formatter := email.NewFormatter()
	sheets := sheet.NewBuilder()
	renderer := preview.NewRenderer()
	a.Sessions = session.NewStore(cfg.SessionTTL, func(string) *session.Session {
		return &session.Session{
			Quote: wizard.NewQuote(estimator, a.Transport, formatter),
			Cart: cart.New(a.Transport, cart.Options{
				Recipient: cfg.OrdersEmail,
				Formatter: formatter,
				Sheets:    sheets,
			}),
			Design: configurator.New(a.Transport, configurator.Options{
				Recipient: cfg.DesignsEmail,
				TextLimit: cfg.DesignTextLimit,
				Formatter: formatter,
				Renderer:  renderer,
			}),
		}
	})

	tmpl, err := views.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	a.Tmpl = tmpl

	log.Info().
		Str("transport", cfg.EmailTransport).
		Str("estimate", cfg.EstimateMode).
		Bool("database", db != nil).
		Msg("app wired")
	return a, nil
}

// mailer picks the delivery used for rendered notification mail. The export
// and function transports write rendered mail to the export directory.
func (a *App) mailer() notify.Mailer {
	cfg := a.Config
	switch cfg.EmailTransport {
	case config.TransportResend:
		return resend.NewMailer(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.MailFrom)
	case config.TransportSMTP:
		return smtp.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	default:
		return export.NewMailer(a.Storage)
	}
}

func (a *App) transport() (domain.Transport, error) {
	cfg := a.Config
	switch cfg.EmailTransport {
	case config.TransportExport:
		return export.New(a.Storage), nil
	case config.TransportResend, config.TransportSMTP:
		return a.Notify, nil
	case config.TransportFunction:
		return function.NewClient(cfg.QuoteFunctionURL, export.New(a.Storage)), nil
	}
	return nil, fmt.Errorf("unknown transport %q", cfg.EmailTransport)
}

func (a *App) estimator() domain.Estimator {
	if a.Config.EstimateMode == "catalog" {
		return pricing.CatalogEstimator{Services: pricing.DefaultServices(), UrgentPct: 0.20}
	}
	return pricing.NewKeywordEstimator(a.Config.EstimateBase, a.Config.UrgentFee)
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Options{
		Templates:     a.Tmpl,
		Products:      a.ProductUC,
		Sessions:      a.Sessions,
		Cookies:       session.NewCookies(a.Config.SessionKey, !a.Config.IsDevelopment(), a.Config.SessionTTL),
		Transport:     a.Transport,
		Quotes:        a.Notify,
		Rates:         a.rates,
		Business:      a.business,
		ContactInbox:  a.Config.BusinessEmail,
		SlideInterval: a.Config.SlideInterval,
		ServiceName:   a.Config.OTelServiceName,
		Metrics:       promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}),
	})
}

// MigrateAndSeed prepares the catalogue table. It is a no-op for the
// in-memory catalogue.
func (a *App) MigrateAndSeed(ctx context.Context) error {
	if a.products == nil {
		return nil
	}
	if err := a.products.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate products: %w", err)
	}
	if err := a.products.Seed(ctx, usecase.ShopProducts()); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}
