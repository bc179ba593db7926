package notification

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/bouzuya/pushrelay/internal/notification"

// Metrics holds the OpenTelemetry instruments for push deliveries.
type Metrics struct {
	sendDuration metric.Float64Histogram
	sendTotal    metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with initialized instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	sendDuration, err := meter.Float64Histogram(
		"push.send.duration",
		metric.WithDescription("Duration of push gateway send calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	sendTotal, err := meter.Int64Counter(
		"push.send.total",
		metric.WithDescription("Total number of push gateway send calls"),
		metric.WithUnit("{send}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		sendDuration: sendDuration,
		sendTotal:    sendTotal,
	}, nil
}

// RecordSend records one push gateway send call.
func (m *Metrics) RecordSend(duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("gateway", "fcm"),
	}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	// Background context so delivery metrics survive caller cancellation.
	ctx := context.Background()
	m.sendDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.sendTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
