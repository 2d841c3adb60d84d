// Package configurator holds the product design state of a visitor.
package configurator

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/email"
)

const (
	DefaultTextLimit = 20
	pngContentType   = "image/png"

	designSentMsg = "Design submitted! We'll get back to you soon."
	designFailMsg = "Failed to submit design. Please try again."
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Renderer draws a preview of a design.
type Renderer interface {
	Render(ctx context.Context, cfg domain.ProductDesignConfig) ([]byte, error)
}

type Options struct {
	Recipient string
	TextLimit int
	Formatter *email.Formatter
	Renderer  Renderer
}

func Defaults() domain.ProductDesignConfig {
	return domain.ProductDesignConfig{
		ProductType: domain.ProductTShirt,
		Color:       "#FFFFFF",
		Text:        "Your Brand",
		DesignStyle: domain.DesignLogo,
	}
}

type Configurator struct {
	mu         sync.Mutex
	cfg        domain.ProductDesignConfig
	submitting bool
	// pending is the last failed submission, resent unchanged until the design changes.
	pending *domain.EmailPayload

	transport domain.Transport
	opts      Options
	now       func() time.Time
}

type DesignReceipt struct {
	Config  domain.ProductDesignConfig `json:"config"`
	Message string                     `json:"message"`
}

func New(t domain.Transport, opts Options) *Configurator {
	if opts.Formatter == nil {
		opts.Formatter = email.NewFormatter()
	}
	if opts.TextLimit <= 0 {
		opts.TextLimit = DefaultTextLimit
	}
	if opts.Recipient == "" {
		opts.Recipient = "designs@barakadvert.com"
	}
	now := opts.Formatter.Now
	if now == nil {
		now = time.Now
	}
	return &Configurator{cfg: Defaults(), transport: t, opts: opts, now: now}
}

func (c *Configurator) Config() domain.ProductDesignConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// UpdateConfig merges p into the current design. Text longer than the limit is
// truncated; enum members and the colour are checked before anything changes.
func (c *Configurator) UpdateConfig(p domain.DesignPatch) (domain.ProductDesignConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return c.cfg, domain.ErrSubmitInFlight
	}
	var bad []string
	if p.ProductType != nil && !p.ProductType.Valid() {
		bad = append(bad, "type")
	}
	if p.DesignStyle != nil && !p.DesignStyle.Valid() {
		bad = append(bad, "design")
	}
	if p.Color != nil && !hexColor.MatchString(*p.Color) {
		bad = append(bad, "color")
	}
	if len(bad) > 0 {
		return c.cfg, &domain.ValidationError{Fields: bad, Message: "Invalid design options"}
	}
	next := c.cfg
	if p.ProductType != nil {
		next.ProductType = *p.ProductType
	}
	if p.DesignStyle != nil {
		next.DesignStyle = *p.DesignStyle
	}
	if p.Color != nil {
		next.Color = *p.Color
	}
	if p.Text != nil {
		next.Text = truncate(*p.Text, c.opts.TextLimit)
	}
	c.cfg = next
	c.pending = nil
	return c.cfg, nil
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func subject(t domain.ProductType) string {
	return fmt.Sprintf("New %s Design Submission", t.Label())
}

func previewName(t domain.ProductType, at time.Time) string {
	return fmt.Sprintf("design-%s-%d.png", t, at.UnixMilli())
}

// ExportPreview renders the current design for download.
func (c *Configurator) ExportPreview(ctx context.Context) (domain.Artifact, error) {
	cfg := c.Config()
	if c.opts.Renderer == nil {
		return domain.Artifact{}, fmt.Errorf("export preview: no renderer configured")
	}
	data, err := c.opts.Renderer.Render(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("type", string(cfg.ProductType)).Msg("design preview render failed")
		return domain.Artifact{}, fmt.Errorf("export preview: %w", err)
	}
	return domain.Artifact{
		Name:        previewName(cfg.ProductType, c.now()),
		ContentType: pngContentType,
		Data:        data,
	}, nil
}

// SubmitDesign sends the design to the designs mailbox. The preview is
// attached when it renders; a render failure does not block the submission.
// A retry of an unchanged design resends the failed submission as it was.
func (c *Configurator) SubmitDesign(ctx context.Context) (DesignReceipt, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return DesignReceipt{}, domain.ErrSubmitInFlight
	}
	cfg := c.cfg
	payload := c.pending
	c.submitting = true
	c.mu.Unlock()

	if payload == nil {
		p, err := c.build(ctx, cfg)
		if err != nil {
			c.mu.Lock()
			c.submitting = false
			c.mu.Unlock()
			return DesignReceipt{}, err
		}
		payload = &p
	}

	out, err := c.transport.Send(ctx, *payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.pending = payload
		return DesignReceipt{}, &domain.TransportError{Category: domain.CategoryProductDesign, Message: designFailMsg, Err: err}
	}
	if !out.Success {
		c.pending = payload
		msg := out.Message
		if msg == "" {
			msg = designFailMsg
		}
		return DesignReceipt{}, &domain.TransportError{Category: domain.CategoryProductDesign, Message: msg}
	}
	c.pending = nil
	return DesignReceipt{Config: cfg, Message: designSentMsg}, nil
}

func (c *Configurator) build(ctx context.Context, cfg domain.ProductDesignConfig) (domain.EmailPayload, error) {
	var att *domain.Attachment
	if c.opts.Renderer != nil {
		data, err := c.opts.Renderer.Render(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Msg("design preview not attached")
		} else {
			att = &domain.Attachment{Name: previewName(cfg.ProductType, c.now()), ContentType: pngContentType, Data: data}
		}
	}
	image := ""
	if att != nil {
		image = att.Name
	}
	body, err := c.opts.Formatter.ProductDesign(cfg, image)
	if err != nil {
		return domain.EmailPayload{}, err
	}
	payload := c.opts.Formatter.NewPayload(c.opts.Recipient, subject(cfg.ProductType), domain.CategoryProductDesign, body)
	payload.IdempotencyKey = uuid.NewString()
	if att != nil {
		payload.Attachments = []domain.Attachment{*att}
	}
	return payload, nil
}
