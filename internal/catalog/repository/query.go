// Package repository implements catalog persistence for PostgreSQL and MySQL.
// Products store only the encrypted SKU envelope; SKU lookups never reach SQL.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	"github.com/allisson/catalog/internal/database"
	apperrors "github.com/allisson/catalog/internal/errors"
)

const productColumns = `p.id, p.sku, p.name, p.category_id, c.name, p.price, p.status, p.created_at, p.updated_at`

const productFrom = `FROM products p JOIN categories c ON c.id = p.category_id`

// queryBuilder accumulates positional arguments for one statement.
type queryBuilder struct {
	postgres bool
	args     []any
}

// arg appends v and returns its placeholder.
func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	if b.postgres {
		return fmt.Sprintf("$%d", len(b.args))
	}
	return "?"
}

// in renders "column IN (...)" for ids. ids must not be empty.
func (b *queryBuilder) in(column string, ids []int64) string {
	if b.postgres {
		return fmt.Sprintf("%s = ANY(%s)", column, b.arg(pq.Array(ids)))
	}
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		placeholders[i] = b.arg(id)
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", "))
}

// where renders the WHERE clause for filter, or "" when nothing restricts the listing.
func (b *queryBuilder) where(filter catalogDomain.ProductFilter) string {
	var conditions []string

	if filter.ProductIDs != nil {
		if len(filter.ProductIDs) == 0 {
			conditions = append(conditions, "1 = 0")
		} else {
			conditions = append(conditions, b.in("p.id", filter.ProductIDs))
		}
	}
	if filter.Name != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Name)) + "%"
		conditions = append(conditions, "LOWER(p.name) LIKE "+b.arg(pattern))
	}
	if filter.CategoryID != 0 {
		conditions = append(conditions, "p.category_id = "+b.arg(filter.CategoryID))
	}
	if filter.MaterialID != 0 {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM product_materials pm WHERE pm.product_id = p.id AND pm.material_id = "+
				b.arg(filter.MaterialID)+")")
	}
	if filter.Status != "" {
		conditions = append(conditions, "p.status = "+b.arg(string(filter.Status)))
	}

	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*catalogDomain.Product, error) {
	var product catalogDomain.Product
	var status string
	err := row.Scan(
		&product.ID,
		&product.EncryptedSKU,
		&product.Name,
		&product.CategoryID,
		&product.CategoryName,
		&product.Price,
		&status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.Status = catalogDomain.ProductStatus(status)
	product.CreatedAt = product.CreatedAt.UTC()
	product.UpdatedAt = product.UpdatedAt.UTC()
	product.MaterialIDs = []int64{}
	product.Media = []catalogDomain.Media{}
	return &product, nil
}

// loadRelations fills material ids and media for products with one query each.
func loadRelations(
	ctx context.Context,
	querier database.Querier,
	postgres bool,
	products []*catalogDomain.Product,
) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[int64]*catalogDomain.Product, len(products))
	ids := make([]int64, 0, len(products))
	for _, product := range products {
		byID[product.ID] = product
		ids = append(ids, product.ID)
	}

	materials := &queryBuilder{postgres: postgres}
	query := `SELECT product_id, material_id FROM product_materials WHERE ` +
		materials.in("product_id", ids) + ` ORDER BY product_id, material_id`
	rows, err := querier.QueryContext(ctx, query, materials.args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to load product materials")
	}
	for rows.Next() {
		var productID, materialID int64
		if err := rows.Scan(&productID, &materialID); err != nil {
			_ = rows.Close()
			return apperrors.Wrap(err, "failed to scan product material")
		}
		byID[productID].MaterialIDs = append(byID[productID].MaterialIDs, materialID)
	}
	if err := closeRows(rows); err != nil {
		return apperrors.Wrap(err, "failed to iterate product materials")
	}

	media := &queryBuilder{postgres: postgres}
	query = `SELECT id, product_id, url, created_at FROM product_media WHERE ` +
		media.in("product_id", ids) + ` ORDER BY id`
	rows, err = querier.QueryContext(ctx, query, media.args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to load product media")
	}
	for rows.Next() {
		var m catalogDomain.Media
		if err := rows.Scan(&m.ID, &m.ProductID, &m.URL, &m.CreatedAt); err != nil {
			_ = rows.Close()
			return apperrors.Wrap(err, "failed to scan product media")
		}
		m.CreatedAt = m.CreatedAt.UTC()
		product := byID[m.ProductID]
		product.Media = append(product.Media, m)
		product.MediaCount = len(product.Media)
	}
	if err := closeRows(rows); err != nil {
		return apperrors.Wrap(err, "failed to iterate product media")
	}

	return nil
}

type iterRows interface {
	Err() error
	Close() error
}

func closeRows(rows iterRows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}
