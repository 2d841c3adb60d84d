// Package metrics exposes Prometheus collectors for submissions.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/barakadvert/storefront/internal/domain"
)

var tracer = otel.Tracer("storefront/transport")

type Metrics struct {
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "submissions_total",
			Help:      "Payloads handed to the transport, by category and outcome.",
		}, []string{"category", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "transport_duration_seconds",
			Help:      "Time spent in the transport per payload.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"category"}),
	}
	reg.MustRegister(m.submissions, m.duration)
	return m
}

// Instrument wraps t with metrics and a span per send.
func (m *Metrics) Instrument(t domain.Transport) domain.Transport {
	return &instrumented{next: t, m: m}
}

type instrumented struct {
	next domain.Transport
	m    *Metrics
}

func (i *instrumented) Send(ctx context.Context, p domain.EmailPayload) (domain.Outcome, error) {
	ctx, span := tracer.Start(ctx, "transport.send", trace.WithAttributes(
		attribute.String("email.category", string(p.Category)),
		attribute.Int("email.attachments", len(p.Attachments)),
	))
	defer span.End()

	start := time.Now()
	out, err := i.next.Send(ctx, p)
	i.m.duration.WithLabelValues(string(p.Category)).Observe(time.Since(start).Seconds())

	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
	case !out.Success:
		outcome = "rejected"
		span.SetStatus(codes.Error, out.Message)
	}
	i.m.submissions.WithLabelValues(string(p.Category), outcome).Inc()
	return out, err
}
