package transport

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/iudanet/crmsync/internal/transport"

// Metrics - счетчики транспорта. Без установленного MeterProvider это no-op.
type Metrics struct {
	accepted metric.Int64Counter
	rejected metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics регистрирует инструменты в provider (nil - глобальный provider)
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)

	var (
		m   Metrics
		err error
	)

	m.accepted, err = meter.Int64Counter("crmsync.transport.connections.accepted",
		metric.WithDescription("Inbound connections that passed admission control"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}

	m.rejected, err = meter.Int64Counter("crmsync.transport.connections.rejected",
		metric.WithDescription("Inbound connections closed before a response"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}

	m.duration, err = meter.Float64Histogram("crmsync.transport.sync.duration",
		metric.WithDescription("Sync exchange duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Metrics) connectionAccepted(ctx context.Context) {
	m.accepted.Add(ctx, 1)
}

func (m *Metrics) connectionRejected(ctx context.Context, reason string) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *Metrics) syncFinished(ctx context.Context, direction string, started time.Time, err error) {
	m.duration.Record(ctx, time.Since(started).Seconds(), metric.WithAttributes(
		attribute.String("direction", direction),
		attribute.Bool("success", err == nil),
	))
}
