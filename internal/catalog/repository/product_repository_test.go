package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

var productRowColumns = []string{
	"id", "sku", "name", "category_id", "category_name", "price", "status", "created_at", "updated_at",
}

func expectRelations(mock sqlmock.Sqlmock, materials *sqlmock.Rows, media *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT product_id, material_id FROM product_materials`)).
		WillReturnRows(materials)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, product_id, url, created_at FROM product_media`)).
		WillReturnRows(media)
}

func TestPostgreSQLProductRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgreSQLProductRepository(db)

	product := &catalogDomain.Product{
		EncryptedSKU: "v1:aes-gcm:AAAA",
		Name:         "Boot",
		CategoryID:   1,
		Price:        decimal.RequireFromString("10.50"),
		Status:       catalogDomain.StatusActive,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO products`)).
		WithArgs("v1:aes-gcm:AAAA", "Boot", int64(1), sqlmock.AnyArg(), "active", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, repo.Create(context.Background(), product))
	assert.Equal(t, int64(42), product.ID)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLProductRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLProductRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT p.id, p.sku`)).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow(int64(5), "v1:aes-gcm:AAAA", "Boot", int64(1), "Shoes", "10.50", "active", now, now))
		expectRelations(mock,
			sqlmock.NewRows([]string{"product_id", "material_id"}).AddRow(int64(5), int64(1)).AddRow(int64(5), int64(3)),
			sqlmock.NewRows([]string{"id", "product_id", "url", "created_at"}).
				AddRow(int64(9), int64(5), "https://cdn.example.com/a.png", now),
		)

		product, err := repo.Get(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "v1:aes-gcm:AAAA", product.EncryptedSKU)
		assert.Empty(t, product.SKU)
		assert.Equal(t, "Shoes", product.CategoryName)
		assert.True(t, decimal.RequireFromString("10.5").Equal(product.Price))
		assert.Equal(t, []int64{1, 3}, product.MaterialIDs)
		require.Len(t, product.Media, 1)
		assert.Equal(t, "https://cdn.example.com/a.png", product.Media[0].URL)
		assert.Equal(t, 1, product.MediaCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLProductRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT p.id, p.sku`)).
			WithArgs(int64(5)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, 5)
		assert.ErrorIs(t, err, catalogDomain.ErrProductNotFound)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLProductRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT p.id, p.sku`)).WillReturnError(errors.New("connection reset"))

		_, err := repo.Get(ctx, 5)
		require.Error(t, err)
		assert.NotErrorIs(t, err, catalogDomain.ErrProductNotFound)
		assert.Contains(t, err.Error(), "failed to get product")
	})
}

func TestPostgreSQLProductRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgreSQLProductRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = ANY($1) AND p.status = $2 ORDER BY p.id DESC LIMIT $3 OFFSET $4`)).
		WithArgs(sqlmock.AnyArg(), "active", 10, 20).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(int64(8), "v1:a", "B", int64(1), "Shoes", "1.00", "active", now, now).
			AddRow(int64(7), "v1:b", "A", int64(2), "Bags", "2.00", "active", now, now))
	expectRelations(mock,
		sqlmock.NewRows([]string{"product_id", "material_id"}).AddRow(int64(7), int64(2)),
		sqlmock.NewRows([]string{"id", "product_id", "url", "created_at"}),
	)

	products, err := repo.List(context.Background(), catalogDomain.ProductFilter{
		ProductIDs: []int64{7, 8},
		Status:     catalogDomain.StatusActive,
	}, 20, 10)
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, int64(8), products[0].ID)
	assert.Equal(t, []int64{}, products[0].MaterialIDs)
	assert.Equal(t, []int64{2}, products[1].MaterialIDs)
	assert.Equal(t, 0, products[1].MediaCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLProductRepository_Count(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgreSQLProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products p WHERE LOWER(p.name) LIKE $1`)).
		WithArgs("%boot%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), catalogDomain.ProductFilter{Name: "Boot"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLProductRepository_Update(t *testing.T) {
	ctx := context.Background()
	product := &catalogDomain.Product{ID: 3, EncryptedSKU: "v1:x", Name: "n", CategoryID: 1, Status: "active"}

	t.Run("Success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLProductRepository(db)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE products`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(ctx, product))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLProductRepository(db)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE products`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, product), catalogDomain.ErrProductNotFound)
	})
}

func TestPostgreSQLProductRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLProductRepository(db)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLProductRepository(db)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 3), catalogDomain.ErrProductNotFound)
	})
}

func TestPostgreSQLProductRepository_ListSKUs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgreSQLProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, sku FROM products ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sku"}).AddRow(int64(1), "v1:a").AddRow(int64(2), "v1:b"))

	records, err := repo.ListSKUs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []catalogDomain.SKURecord{
		{ProductID: 1, EncryptedSKU: "v1:a"},
		{ProductID: 2, EncryptedSKU: "v1:b"},
	}, records)
}

func TestPostgreSQLProductRepository_ReplaceRelations(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := NewPostgreSQLProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM product_materials WHERE product_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product_materials`)).
		WithArgs(int64(4), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product_materials`)).
		WithArgs(int64(4), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.ReplaceMaterials(ctx, 4, []int64{1, 2}))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM product_media WHERE product_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product_media`)).
		WithArgs(int64(4), "https://cdn.example.com/a.png", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	err := repo.ReplaceMedia(ctx, 4, []string{"https://cdn.example.com/a.png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert product media")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLProductRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products`)).
		WithArgs("v1:x", "Boot", int64(1), sqlmock.AnyArg(), "inactive", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(17, 1))

	product := &catalogDomain.Product{
		EncryptedSKU: "v1:x",
		Name:         "Boot",
		CategoryID:   1,
		Status:       catalogDomain.StatusInactive,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	assert.Equal(t, int64(17), product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLProductRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLProductRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE p.id IN (?, ?) AND p.category_id = ? ORDER BY p.id DESC LIMIT ? OFFSET ?`,
	)).
		WithArgs(int64(1), int64(2), int64(3), 10, 0).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(int64(2), "v1:a", "B", int64(3), "Shoes", "1.00", "active", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM product_materials WHERE product_id IN (?)`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "material_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM product_media WHERE product_id IN (?)`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "url", "created_at"}).
			AddRow(int64(1), int64(2), "https://x/a.png", now).
			AddRow(int64(2), int64(2), "https://x/b.png", now))

	products, err := repo.List(context.Background(), catalogDomain.ProductFilter{
		ProductIDs: []int64{1, 2},
		CategoryID: 3,
	}, 0, 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].MediaCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLProductRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = ?`)).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 9), catalogDomain.ErrProductNotFound)
}

func TestMySQLProductRepository_Get_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = ?`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	_, err := repo.Get(context.Background(), 9)
	assert.ErrorIs(t, err, catalogDomain.ErrProductNotFound)
}
