// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TransportExport   = "export"
	TransportResend   = "resend"
	TransportSMTP     = "smtp"
	TransportFunction = "function"
)

type Config struct {
	Port        string
	Environment string

	DatabaseDSN string

	SessionKey string
	SessionTTL time.Duration

	EmailTransport   string
	ExportDir        string
	ResendAPIKey     string
	ResendBaseURL    string
	MailFrom         string
	BusinessEmail    string
	OrdersEmail      string
	DesignsEmail     string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPass         string
	QuoteFunctionURL string

	TaxRate          float64
	ShippingFee      float64
	FreeShippingOver float64
	UrgentFee        float64
	EstimateBase     float64
	// EstimateMode selects the keyword estimator or the per-service catalog.
	EstimateMode    string
	DesignTextLimit int
	SlideInterval   time.Duration

	OTelServiceName string
	OTelEndpoint    string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("APP_ENV", "development"),
		DatabaseDSN:      getEnv("DB_DSN", buildDSN()),
		SessionKey:       getEnv("SESSION_KEY", ""),
		EmailTransport:   strings.ToLower(getEnv("EMAIL_TRANSPORT", TransportExport)),
		ExportDir:        getEnv("EXPORT_DIR", "exports"),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		ResendBaseURL:    getEnv("RESEND_BASE_URL", "https://api.resend.com"),
		MailFrom:         getEnv("MAIL_FROM", "Barak Advert <onboarding@resend.dev>"),
		BusinessEmail:    getEnv("BUSINESS_EMAIL", "info@barakadvert.com"),
		OrdersEmail:      getEnv("ORDERS_EMAIL", "orders@barakadvert.com"),
		DesignsEmail:     getEnv("DESIGNS_EMAIL", "designs@barakadvert.com"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPUser:         getEnv("SMTP_USER", ""),
		SMTPPass:         getEnv("SMTP_PASS", ""),
		QuoteFunctionURL: getEnv("QUOTE_FUNCTION_URL", ""),
		EstimateMode:     strings.ToLower(getEnv("ESTIMATE_MODE", "keyword")),
		OTelServiceName:  getEnv("OTEL_SERVICE_NAME", "barakadvert-storefront"),
		OTelEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", "2h"); err != nil {
		return nil, err
	}
	if cfg.SlideInterval, err = getDuration("SLIDE_INTERVAL", "5s"); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.DesignTextLimit, err = getInt("DESIGN_TEXT_LIMIT", 20); err != nil {
		return nil, err
	}
	floats := []struct {
		key string
		def float64
		dst *float64
	}{
		{"TAX_RATE", 0.10, &cfg.TaxRate},
		{"SHIPPING_FEE", 10, &cfg.ShippingFee},
		{"FREE_SHIPPING_OVER", 50, &cfg.FreeShippingOver},
		{"URGENT_FEE", 50, &cfg.UrgentFee},
		{"ESTIMATE_BASE", 100, &cfg.EstimateBase},
	}
	for _, f := range floats {
		if *f.dst, err = getFloat(f.key, f.def); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionKey == "" && !c.IsDevelopment() {
		return fmt.Errorf("SESSION_KEY is required outside development")
	}
	switch c.EmailTransport {
	case TransportExport:
		if c.ExportDir == "" {
			return fmt.Errorf("EXPORT_DIR is required for the export transport")
		}
	case TransportResend:
		if c.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required for the resend transport")
		}
	case TransportSMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required for the smtp transport")
		}
	case TransportFunction:
		if c.QuoteFunctionURL == "" {
			return fmt.Errorf("QUOTE_FUNCTION_URL is required for the function transport")
		}
	default:
		return fmt.Errorf("unknown EMAIL_TRANSPORT %q", c.EmailTransport)
	}
	if c.EstimateMode != "keyword" && c.EstimateMode != "catalog" {
		return fmt.Errorf("unknown ESTIMATE_MODE %q", c.EstimateMode)
	}
	if c.TaxRate < 0 || c.ShippingFee < 0 || c.FreeShippingOver < 0 {
		return fmt.Errorf("pricing rates must not be negative")
	}
	if c.DesignTextLimit <= 0 {
		return fmt.Errorf("DESIGN_TEXT_LIMIT must be positive")
	}
	if c.SlideInterval <= 0 {
		return fmt.Errorf("SLIDE_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// buildDSN assembles a postgres DSN from DB_* variables; empty when DB_HOST is unset.
func buildDSN() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host,
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "storefront"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
