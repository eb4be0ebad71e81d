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

// MySQLProductRepository implements Product persistence for MySQL databases.
type MySQLProductRepository struct {
	db *sql.DB
}

// Create inserts a product row and sets its generated id and timestamps.
func (m *MySQLProductRepository) Create(ctx context.Context, product *catalogDomain.Product) error {
	querier := database.GetTx(ctx, m.db)

	now := time.Now().UTC()
	query := `INSERT INTO products (sku, name, category_id, price, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		product.EncryptedSKU,
		product.Name,
		product.CategoryID,
		product.Price,
		string(product.Status),
		now,
		now,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create product")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get product id")
	}

	product.ID = id
	product.CreatedAt = now
	product.UpdatedAt = now
	return nil
}

// Update writes the mutable product columns. MySQL reports changed rows rather
// than matched rows, so a missing product is detected by the caller's Get.
func (m *MySQLProductRepository) Update(ctx context.Context, product *catalogDomain.Product) error {
	querier := database.GetTx(ctx, m.db)

	now := time.Now().UTC()
	query := `UPDATE products
			  SET sku = ?, name = ?, category_id = ?, price = ?, status = ?, updated_at = ?
			  WHERE id = ?`

	_, err := querier.ExecContext(
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

	product.UpdatedAt = now
	return nil
}

// Delete removes a product. Materials and media rows cascade.
func (m *MySQLProductRepository) Delete(ctx context.Context, productID int64) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
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
func (m *MySQLProductRepository) Get(ctx context.Context, productID int64) (*catalogDomain.Product, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + productColumns + ` ` + productFrom + ` WHERE p.id = ?`

	product, err := scanProduct(querier.QueryRowContext(ctx, query, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogDomain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get product")
	}

	if err := loadRelations(ctx, querier, false, []*catalogDomain.Product{product}); err != nil {
		return nil, err
	}
	return product, nil
}

// List retrieves one page of products ordered by id descending.
func (m *MySQLProductRepository) List(
	ctx context.Context,
	filter catalogDomain.ProductFilter,
	offset, limit int,
) ([]*catalogDomain.Product, error) {
	querier := database.GetTx(ctx, m.db)

	b := &queryBuilder{}
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

	if err := loadRelations(ctx, querier, false, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the number of products matching filter.
func (m *MySQLProductRepository) Count(ctx context.Context, filter catalogDomain.ProductFilter) (int, error) {
	querier := database.GetTx(ctx, m.db)

	b := &queryBuilder{}
	query := `SELECT COUNT(*) FROM products p` + b.where(filter)

	var count int
	if err := querier.QueryRowContext(ctx, query, b.args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count products")
	}
	return count, nil
}

// ListSKUs returns every stored SKU envelope ordered by product id.
func (m *MySQLProductRepository) ListSKUs(ctx context.Context) ([]catalogDomain.SKURecord, error) {
	querier := database.GetTx(ctx, m.db)

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
func (m *MySQLProductRepository) ReplaceMaterials(ctx context.Context, productID int64, materialIDs []int64) error {
	querier := database.GetTx(ctx, m.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM product_materials WHERE product_id = ?`, productID); err != nil {
		return apperrors.Wrap(err, "failed to delete product materials")
	}

	for _, materialID := range materialIDs {
		_, err := querier.ExecContext(
			ctx,
			`INSERT INTO product_materials (product_id, material_id) VALUES (?, ?)`,
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
func (m *MySQLProductRepository) ReplaceMedia(ctx context.Context, productID int64, urls []string) error {
	querier := database.GetTx(ctx, m.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM product_media WHERE product_id = ?`, productID); err != nil {
		return apperrors.Wrap(err, "failed to delete product media")
	}

	now := time.Now().UTC()
	for _, url := range urls {
		_, err := querier.ExecContext(
			ctx,
			`INSERT INTO product_media (product_id, url, created_at) VALUES (?, ?, ?)`,
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

// NewMySQLProductRepository creates a new MySQL Product repository instance.
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}
