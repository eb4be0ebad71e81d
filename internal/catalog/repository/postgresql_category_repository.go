package repository

import (
	"context"
	"database/sql"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	"github.com/allisson/catalog/internal/database"
	apperrors "github.com/allisson/catalog/internal/errors"
)

// PostgreSQLCategoryRepository implements Category persistence for PostgreSQL databases.
type PostgreSQLCategoryRepository struct {
	db *sql.DB
}

// Create inserts a category and sets its generated id.
func (p *PostgreSQLCategoryRepository) Create(ctx context.Context, category *catalogDomain.Category) error {
	querier := database.GetTx(ctx, p.db)

	err := querier.QueryRowContext(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`, category.Name).
		Scan(&category.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create category")
	}
	return nil
}

// List retrieves every category ordered by name.
func (p *PostgreSQLCategoryRepository) List(ctx context.Context) ([]*catalogDomain.Category, error) {
	querier := database.GetTx(ctx, p.db)
	return listCategories(ctx, querier)
}

// Exists reports whether the category exists.
func (p *PostgreSQLCategoryRepository) Exists(ctx context.Context, categoryID int64) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, categoryID).
		Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check category")
	}
	return exists, nil
}

// NewPostgreSQLCategoryRepository creates a new PostgreSQL Category repository instance.
func NewPostgreSQLCategoryRepository(db *sql.DB) *PostgreSQLCategoryRepository {
	return &PostgreSQLCategoryRepository{db: db}
}

// PostgreSQLMaterialRepository implements Material persistence for PostgreSQL databases.
type PostgreSQLMaterialRepository struct {
	db *sql.DB
}

// Create inserts a material and sets its generated id.
func (p *PostgreSQLMaterialRepository) Create(ctx context.Context, material *catalogDomain.Material) error {
	querier := database.GetTx(ctx, p.db)

	err := querier.QueryRowContext(ctx, `INSERT INTO materials (name) VALUES ($1) RETURNING id`, material.Name).
		Scan(&material.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create material")
	}
	return nil
}

// List retrieves every material ordered by name.
func (p *PostgreSQLMaterialRepository) List(ctx context.Context) ([]*catalogDomain.Material, error) {
	querier := database.GetTx(ctx, p.db)
	return listMaterials(ctx, querier)
}

// CountExisting returns how many of materialIDs exist.
func (p *PostgreSQLMaterialRepository) CountExisting(ctx context.Context, materialIDs []int64) (int, error) {
	if len(materialIDs) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, p.db)

	b := &queryBuilder{postgres: true}
	query := `SELECT COUNT(*) FROM materials WHERE ` + b.in("id", materialIDs)

	var count int
	if err := querier.QueryRowContext(ctx, query, b.args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count materials")
	}
	return count, nil
}

// NewPostgreSQLMaterialRepository creates a new PostgreSQL Material repository instance.
func NewPostgreSQLMaterialRepository(db *sql.DB) *PostgreSQLMaterialRepository {
	return &PostgreSQLMaterialRepository{db: db}
}

func listCategories(ctx context.Context, querier database.Querier) ([]*catalogDomain.Category, error) {
	rows, err := querier.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list categories")
	}

	categories := make([]*catalogDomain.Category, 0)
	for rows.Next() {
		var category catalogDomain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			_ = rows.Close()
			return nil, apperrors.Wrap(err, "failed to scan category")
		}
		categories = append(categories, &category)
	}
	if err := closeRows(rows); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate categories")
	}
	return categories, nil
}

func listMaterials(ctx context.Context, querier database.Querier) ([]*catalogDomain.Material, error) {
	rows, err := querier.QueryContext(ctx, `SELECT id, name FROM materials ORDER BY name, id`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list materials")
	}

	materials := make([]*catalogDomain.Material, 0)
	for rows.Next() {
		var material catalogDomain.Material
		if err := rows.Scan(&material.ID, &material.Name); err != nil {
			_ = rows.Close()
			return nil, apperrors.Wrap(err, "failed to scan material")
		}
		materials = append(materials, &material)
	}
	if err := closeRows(rows); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate materials")
	}
	return materials, nil
}
