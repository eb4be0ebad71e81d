package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records catalog operation metrics.
type BusinessMetrics interface {
	// RecordOperation counts an operation, e.g. ("catalog", "product_create", "success").
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records an operation duration in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordSKUScan records how many stored SKUs one uniqueness check or SKU
	// filter had to decrypt. It grows linearly with the catalog size.
	RecordSKUScan(ctx context.Context, operation string, rows int)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	skuScanHisto     metric.Int64Histogram
}

// NewBusinessMetrics creates the OpenTelemetry instruments under namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	skuScanHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_sku_scan_rows", namespace),
		metric.WithDescription("Number of encrypted SKUs decrypted by one scan"),
		metric.WithUnit("{row}"),
		metric.WithExplicitBucketBoundaries(10, 100, 1000, 10000, 100000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sku scan histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		skuScanHisto:     skuScanHisto,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordSKUScan(ctx context.Context, operation string, rows int) {
	b.skuScanHisto.Record(ctx, int64(rows),
		metric.WithAttributes(attribute.String("operation", operation)),
	)
}

// NoOpBusinessMetrics discards everything. Used when METRICS_ENABLED=false and in tests.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a BusinessMetrics that records nothing.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordSKUScan(ctx context.Context, operation string, rows int) {}
