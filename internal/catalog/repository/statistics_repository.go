package repository

import (
	"context"
	"database/sql"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	"github.com/allisson/catalog/internal/database"
	apperrors "github.com/allisson/catalog/internal/errors"
)

// The statistics queries take no parameters and use only portable SQL, so one
// implementation serves both PostgreSQL and MySQL.

const categoryHighestPricesQuery = `SELECT c.id, c.name, MAX(p.price)
	FROM categories c
	JOIN products p ON p.category_id = c.id
	GROUP BY c.id, c.name
	ORDER BY c.id`

const priceRangeCountsQuery = `SELECT
	SUM(CASE WHEN price <= 500 THEN 1 ELSE 0 END),
	SUM(CASE WHEN price > 500 AND price <= 1000 THEN 1 ELSE 0 END),
	SUM(CASE WHEN price > 1000 THEN 1 ELSE 0 END)
	FROM products`

const productsWithoutMediaQuery = `SELECT p.id, p.sku, p.name
	FROM products p
	WHERE NOT EXISTS (SELECT 1 FROM product_media m WHERE m.product_id = p.id)
	ORDER BY p.id`

// StatisticsRepository computes catalog aggregates.
type StatisticsRepository struct {
	db *sql.DB
}

// CategoryHighestPrices returns the highest product price of every category that has products.
func (s *StatisticsRepository) CategoryHighestPrices(ctx context.Context) ([]catalogDomain.CategoryPrice, error) {
	querier := database.GetTx(ctx, s.db)

	rows, err := querier.QueryContext(ctx, categoryHighestPricesQuery)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query category prices")
	}

	prices := make([]catalogDomain.CategoryPrice, 0)
	for rows.Next() {
		var price catalogDomain.CategoryPrice
		if err := rows.Scan(&price.CategoryID, &price.CategoryName, &price.HighestPrice); err != nil {
			_ = rows.Close()
			return nil, apperrors.Wrap(err, "failed to scan category price")
		}
		prices = append(prices, price)
	}
	if err := closeRows(rows); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate category prices")
	}
	return prices, nil
}

// PriceRangeCounts returns the three price buckets in ascending order, including empty ones.
func (s *StatisticsRepository) PriceRangeCounts(ctx context.Context) ([]catalogDomain.PriceRangeCount, error) {
	querier := database.GetTx(ctx, s.db)

	var low, medium, high sql.NullInt64
	if err := querier.QueryRowContext(ctx, priceRangeCountsQuery).Scan(&low, &medium, &high); err != nil {
		return nil, apperrors.Wrap(err, "failed to query price ranges")
	}

	return []catalogDomain.PriceRangeCount{
		{Range: catalogDomain.PriceRangeLow, Count: int(low.Int64)},
		{Range: catalogDomain.PriceRangeMedium, Count: int(medium.Int64)},
		{Range: catalogDomain.PriceRangeHigh, Count: int(high.Int64)},
	}, nil
}

// ProductsWithoutMedia returns products that have no media, with their SKU still encrypted.
func (s *StatisticsRepository) ProductsWithoutMedia(ctx context.Context) ([]catalogDomain.ProductSummary, error) {
	querier := database.GetTx(ctx, s.db)

	rows, err := querier.QueryContext(ctx, productsWithoutMediaQuery)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query products without media")
	}

	summaries := make([]catalogDomain.ProductSummary, 0)
	for rows.Next() {
		var summary catalogDomain.ProductSummary
		if err := rows.Scan(&summary.ID, &summary.EncryptedSKU, &summary.Name); err != nil {
			_ = rows.Close()
			return nil, apperrors.Wrap(err, "failed to scan product summary")
		}
		summaries = append(summaries, summary)
	}
	if err := closeRows(rows); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate products without media")
	}
	return summaries, nil
}

// NewStatisticsRepository creates a new StatisticsRepository for either dialect.
func NewStatisticsRepository(db *sql.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}
