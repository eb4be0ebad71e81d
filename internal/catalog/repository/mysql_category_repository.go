package repository

import (
	"context"
	"database/sql"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	"github.com/allisson/catalog/internal/database"
	apperrors "github.com/allisson/catalog/internal/errors"
)

// MySQLCategoryRepository implements Category persistence for MySQL databases.
type MySQLCategoryRepository struct {
	db *sql.DB
}

// Create inserts a category and sets its generated id.
func (m *MySQLCategoryRepository) Create(ctx context.Context, category *catalogDomain.Category) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, category.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create category")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get category id")
	}
	category.ID = id
	return nil
}

// List retrieves every category ordered by name.
func (m *MySQLCategoryRepository) List(ctx context.Context) ([]*catalogDomain.Category, error) {
	return listCategories(ctx, database.GetTx(ctx, m.db))
}

// Exists reports whether the category exists.
func (m *MySQLCategoryRepository) Exists(ctx context.Context, categoryID int64) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = ?)`, categoryID).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check category")
	}
	return exists, nil
}

// NewMySQLCategoryRepository creates a new MySQL Category repository instance.
func NewMySQLCategoryRepository(db *sql.DB) *MySQLCategoryRepository {
	return &MySQLCategoryRepository{db: db}
}

// MySQLMaterialRepository implements Material persistence for MySQL databases.
type MySQLMaterialRepository struct {
	db *sql.DB
}

// Create inserts a material and sets its generated id.
func (m *MySQLMaterialRepository) Create(ctx context.Context, material *catalogDomain.Material) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `INSERT INTO materials (name) VALUES (?)`, material.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to create material")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get material id")
	}
	material.ID = id
	return nil
}

// List retrieves every material ordered by name.
func (m *MySQLMaterialRepository) List(ctx context.Context) ([]*catalogDomain.Material, error) {
	return listMaterials(ctx, database.GetTx(ctx, m.db))
}

// CountExisting returns how many of materialIDs exist.
func (m *MySQLMaterialRepository) CountExisting(ctx context.Context, materialIDs []int64) (int, error) {
	if len(materialIDs) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, m.db)

	b := &queryBuilder{}
	query := `SELECT COUNT(*) FROM materials WHERE ` + b.in("id", materialIDs)

	var count int
	if err := querier.QueryRowContext(ctx, query, b.args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count materials")
	}
	return count, nil
}

// NewMySQLMaterialRepository creates a new MySQL Material repository instance.
func NewMySQLMaterialRepository(db *sql.DB) *MySQLMaterialRepository {
	return &MySQLMaterialRepository{db: db}
}
