package usecase

import (
	"context"
	"time"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	"github.com/allisson/catalog/internal/metrics"
)

const metricsDomain = "catalog"

// productUseCaseWithMetrics decorates ProductUseCase with metrics instrumentation.
type productUseCaseWithMetrics struct {
	next    ProductUseCase
	metrics metrics.BusinessMetrics
}

// NewProductUseCaseWithMetrics wraps a ProductUseCase with metrics recording.
func NewProductUseCaseWithMetrics(useCase ProductUseCase, m metrics.BusinessMetrics) ProductUseCase {
	return &productUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *productUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	p.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Create records metrics for product creation.
func (p *productUseCaseWithMetrics) Create(
	ctx context.Context,
	input *catalogDomain.CreateProductInput,
) (*catalogDomain.Product, error) {
	start := time.Now()
	product, err := p.next.Create(ctx, input)
	p.record(ctx, "product_create", start, err)
	return product, err
}

// Get records metrics for product retrieval.
func (p *productUseCaseWithMetrics) Get(ctx context.Context, productID int64) (*catalogDomain.Product, error) {
	start := time.Now()
	product, err := p.next.Get(ctx, productID)
	p.record(ctx, "product_get", start, err)
	return product, err
}

// List records metrics for product listing.
func (p *productUseCaseWithMetrics) List(
	ctx context.Context,
	filter catalogDomain.ProductFilter,
	page, limit int,
) (*catalogDomain.ProductPage, error) {
	start := time.Now()
	result, err := p.next.List(ctx, filter, page, limit)
	p.record(ctx, "product_list", start, err)
	return result, err
}

// Update records metrics for product updates.
func (p *productUseCaseWithMetrics) Update(
	ctx context.Context,
	productID int64,
	input *catalogDomain.UpdateProductInput,
) (*catalogDomain.Product, error) {
	start := time.Now()
	product, err := p.next.Update(ctx, productID, input)
	p.record(ctx, "product_update", start, err)
	return product, err
}

// Delete records metrics for product deletion.
func (p *productUseCaseWithMetrics) Delete(ctx context.Context, productID int64) error {
	start := time.Now()
	err := p.next.Delete(ctx, productID)
	p.record(ctx, "product_delete", start, err)
	return err
}

// Statistics records metrics for statistics computation.
func (p *productUseCaseWithMetrics) Statistics(ctx context.Context) (*catalogDomain.Statistics, error) {
	start := time.Now()
	stats, err := p.next.Statistics(ctx)
	p.record(ctx, "product_statistics", start, err)
	return stats, err
}
