package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	"github.com/allisson/catalog/internal/database"
	apperrors "github.com/allisson/catalog/internal/errors"
)

// PostgreSQLProductRepository implements Product persistence for PostgreSQL databases.
type PostgreSQLProductRepository struct {
	db *sql.DB
}

// Create inserts a product row and sets its generated id and timestamps.
func (p *PostgreSQLProductRepository) Create(ctx context.Context, product *catalogDomain.Product) error {
	querier := database.GetTx(ctx, p.db)

	now := time.Now().UTC()
	query := `INSERT INTO products (sku, name, category_id, price, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		product.EncryptedSKU,
		product.Name,
		product.CategoryID,
		product.Price,
		string(product.Status),
		now,
		now,
	).Scan(&product.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create product")
	}

	product.CreatedAt = now
	product.UpdatedAt = now
	return nil
}

// Update writes the mutable product columns.
func (p *PostgreSQLProductRepository) Update(ctx context.Context, product *catalogDomain.Product) error {
	querier := database.GetTx(ctx, p.db)

	now := time.Now().UTC()
	query := `UPDATE products
			  SET sku = $1, name = $2, category_id = $3, price = $4, status = $5, updated_at = $6
			  WHERE id = $7`

	result, err := querier.ExecContext(
		ctx,
		query,
		product.EncryptedSKU,
		product.Name,
		product.CategoryID,
		product.Price,
		string(product.Status),
		now,
		product.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update product")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return catalogDomain.ErrProductNotFound
	}

	product.UpdatedAt = now
	return nil
}

// Delete removes a product. Materials and media rows cascade.
func (p *PostgreSQLProductRepository) Delete(ctx context.Context, productID int64) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete product")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return catalogDomain.ErrProductNotFound
	}
	return nil
}

// Get retrieves a product with its category name, materials and media.
func (p *PostgreSQLProductRepository) Get(ctx context.Context, productID int64) (*catalogDomain.Product, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + productColumns + ` ` + productFrom + ` WHERE p.id = $1`

	product, err := scanProduct(querier.QueryRowContext(ctx, query, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogDomain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get product")
	}

	if err := loadRelations(ctx, querier, true, []*catalogDomain.Product{product}); err != nil {
		return nil, err
	}
	return product, nil
}

// List retrieves one page of products ordered by id descending.
func (p *PostgreSQLProductRepository) List(
	ctx context.Context,
	filter catalogDomain.ProductFilter,
	offset, limit int,
) ([]*catalogDomain.Product, error) {
	querier := database.GetTx(ctx, p.db)

	b := &queryBuilder{postgres: true}
	query := `SELECT ` + productColumns + ` ` + productFrom + b.where(filter) +
		` ORDER BY p.id DESC LIMIT ` + b.arg(limit) + ` OFFSET ` + b.arg(offset)

	rows, err := querier.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list products")
	}

	products := make([]*catalogDomain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			_ = rows.Close()
			return nil, apperrors.Wrap(err, "failed to scan product")
		}
		products = append(products, product)
	}
	if err := closeRows(rows); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate products")
	}

	if err := loadRelations(ctx, querier, true, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the number of products matching filter.
func (p *PostgreSQLProductRepository) Count(ctx context.Context, filter catalogDomain.ProductFilter) (int, error) {
	querier := database.GetTx(ctx, p.db)

	b := &queryBuilder{postgres: true}
	query := `SELECT COUNT(*) FROM products p` + b.where(filter)

	var count int
	if err := querier.QueryRowContext(ctx, query, b.args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count products")
	}
	return count, nil
}

// ListSKUs returns every stored SKU envelope ordered by product id.
func (p *PostgreSQLProductRepository) ListSKUs(ctx context.Context) ([]catalogDomain.SKURecord, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, sku FROM products ORDER BY id`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list product skus")
	}

	records := make([]catalogDomain.SKURecord, 0)
	for rows.Next() {
		var record catalogDomain.SKURecord
		if err := rows.Scan(&record.ProductID, &record.EncryptedSKU); err != nil {
			_ = rows.Close()
			return nil, apperrors.Wrap(err, "failed to scan product sku")
		}
		records = append(records, record)
	}
	if err := closeRows(rows); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate product skus")
	}
	return records, nil
}

// ReplaceMaterials deletes the product's material links and inserts materialIDs.
func (p *PostgreSQLProductRepository) ReplaceMaterials(
	ctx context.Context,
	productID int64,
	materialIDs []int64,
) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM product_materials WHERE product_id = $1`, productID); err != nil {
		return apperrors.Wrap(err, "failed to delete product materials")
	}

	for _, materialID := range materialIDs {
		_, err := querier.ExecContext(
			ctx,
			`INSERT INTO product_materials (product_id, material_id) VALUES ($1, $2)`,
			productID,
			materialID,
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to insert product material")
		}
	}
	return nil
}

// ReplaceMedia deletes the product's media and inserts one row per URL.
func (p *PostgreSQLProductRepository) ReplaceMedia(ctx context.Context, productID int64, urls []string) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM product_media WHERE product_id = $1`, productID); err != nil {
		return apperrors.Wrap(err, "failed to delete product media")
	}

	now := time.Now().UTC()
	for _, url := range urls {
		_, err := querier.ExecContext(
			ctx,
			`INSERT INTO product_media (product_id, url, created_at) VALUES ($1, $2, $3)`,
			productID,
			url,
			now,
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to insert product media")
		}
	}
	return nil
}

// NewPostgreSQLProductRepository creates a new PostgreSQL Product repository instance.
func NewPostgreSQLProductRepository(db *sql.DB) *PostgreSQLProductRepository {
	return &PostgreSQLProductRepository{db: db}
}
