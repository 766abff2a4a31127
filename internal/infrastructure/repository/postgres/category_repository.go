package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fmma-backend/internal/domain/category"
	qb "github.com/riskibarqy/fmma-backend/internal/platform/querybuilder"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	query, args, err := qb.Select("*").From("categories").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select categories query: %w", err)
	}

	var rows []categoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}

	out := make([]category.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, category.Category{ID: row.PublicID, Name: row.Name})
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID string) (category.Category, bool, error) {
	query, args, err := qb.Select("*").From("categories").
		Where(
			qb.Eq("public_id", categoryID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return category.Category{}, false, fmt.Errorf("build get category by id query: %w", err)
	}

	var row categoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return category.Category{}, false, nil
		}
		return category.Category{}, false, fmt.Errorf("get category by id: %w", err)
	}
	return category.Category{ID: row.PublicID, Name: row.Name}, true, nil
}

func (r *CategoryRepository) Create(ctx context.Context, item category.Category) error {
	query, args, err := qb.InsertModel("categories", categoryInsertModel{
		PublicID: item.ID,
		Name:     item.Name,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert category query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, item category.Category) (bool, error) {
	query, args, err := qb.Update("categories").
		Set("name", item.Name).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update category query: %w", err)
	}

	updated, err := execAffected(ctx, r.db, query, args)
	if err != nil {
		return false, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID string) (bool, error) {
	deleted, err := softDelete(ctx, r.db, "categories", categoryID)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return deleted, nil
}
