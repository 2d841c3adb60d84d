package httpserver

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/email"
	"github.com/barakadvert/storefront/internal/pricing"
	"github.com/barakadvert/storefront/internal/session"
	"github.com/barakadvert/storefront/internal/usecase"
)

// QuoteSender delivers the quote notification and confirmation for the
// send-quote-email function.
type QuoteSender interface {
	SendQuote(ctx context.Context, q domain.QuoteRequest, key string) (domain.Outcome, error)
}

type Options struct {
	Templates *template.Template
	Products  *usecase.ProductUC
	Sessions  *session.Store
	Cookies   *session.Cookies
	// Transport carries contact form messages.
	Transport     domain.Transport
	Formatter     *email.Formatter
	Quotes        QuoteSender
	Rates         pricing.Rates
	Business      email.Business
	ContactInbox  string
	SlideInterval time.Duration
	ServiceName   string
	Metrics       http.Handler
}

type Server struct {
	tmpl      *template.Template
	products  *usecase.ProductUC
	sessions  *session.Store
	cookies   *session.Cookies
	transport domain.Transport
	formatter *email.Formatter
	quotes    QuoteSender
	rates     pricing.Rates
	business  email.Business
	inbox     string
	slides    time.Duration
	service   string
	validate  *validator.Validate
}

func New(o Options) http.Handler {
	s := &Server{
		tmpl:      o.Templates,
		products:  o.Products,
		sessions:  o.Sessions,
		cookies:   o.Cookies,
		transport: o.Transport,
		formatter: o.Formatter,
		quotes:    o.Quotes,
		rates:     o.Rates,
		business:  o.Business,
		inbox:     o.ContactInbox,
		slides:    o.SlideInterval,
		service:   o.ServiceName,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
	s.validate.RegisterTagNameFunc(jsonName)
	if s.formatter == nil {
		s.formatter = email.NewFormatter()
	}
	if s.inbox == "" {
		s.inbox = s.business.Email
	}
	if s.slides <= 0 {
		s.slides = 5 * time.Second
	}
	metrics := o.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r := chi.NewRouter()
	r.Use(middleware()...)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Get("/", s.handleHome)
	r.Get("/shop", s.handleShop)
	r.Get("/checkout", s.handleCheckoutPage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.apiProducts)
		r.Get("/products/categories", s.apiCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.apiCart)
			r.Post("/items", s.apiCartAdd)
			r.Put("/items/{id}", s.apiCartSetQuantity)
			r.Delete("/items/{id}", s.apiCartRemove)
			r.Post("/order", s.apiCartOrder)
		})

		r.Route("/quote", func(r chi.Router) {
			r.Get("/", s.apiQuote)
			r.Patch("/", s.apiQuoteUpdate)
			r.Post("/next", s.apiQuoteNext)
			r.Post("/back", s.apiQuoteBack)
			r.Post("/submit", s.apiQuoteSubmit)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/start", s.apiCheckoutStart)
			r.Get("/", s.apiCheckout)
			r.Patch("/", s.apiCheckoutUpdate)
			r.Post("/next", s.apiCheckoutNext)
			r.Post("/back", s.apiCheckoutBack)
			r.Post("/place", s.apiCheckoutPlace)
		})

		r.Route("/design", func(r chi.Router) {
			r.Get("/", s.apiDesign)
			r.Patch("/", s.apiDesignUpdate)
			r.Post("/submit", s.apiDesignSubmit)
			r.Get("/preview.png", s.apiDesignPreview)
		})

		r.Post("/contact", s.apiContact)
	})

	r.Post("/functions/send-quote-email", s.handleSendQuoteEmail)

	return r
}

// middleware is the chain wrapped around every route, outermost first.
// Recovery sits inside the request id, tracing and logging layers so a panic
// is logged with its request and marked on the span.
func middleware() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RequestIDMiddleware,
		TracingMiddleware,
		LoggingMiddleware,
		RecoveryMiddleware,
		CORSMiddleware,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"service":  s.service,
		"sessions": s.sessions.Len(),
	})
}

// session returns the visitor session, creating it and setting the cookie
// when the request carries none or an expired one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	if id, ok := s.cookies.Read(r); ok {
		if sess, ok := s.sessions.Get(id); ok {
			return sess
		}
	}
	sess := s.sessions.Create()
	s.cookies.Write(w, sess.ID)
	return sess
}
