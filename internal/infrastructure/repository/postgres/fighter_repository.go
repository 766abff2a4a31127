package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fmma-backend/internal/domain/fighter"
	qb "github.com/riskibarqy/fmma-backend/internal/platform/querybuilder"
)

type FighterRepository struct {
	db *sqlx.DB
}

func NewFighterRepository(db *sqlx.DB) *FighterRepository {
	return &FighterRepository{db: db}
}

func (r *FighterRepository) List(ctx context.Context) ([]fighter.Fighter, error) {
	query, args, err := qb.Select("*").From("fighters").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fighters query: %w", err)
	}

	var rows []fighterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fighters: %w", err)
	}

	out := make([]fighter.Fighter, 0, len(rows))
	for _, row := range rows {
		out = append(out, fighterFromRow(row))
	}
	return out, nil
}

func (r *FighterRepository) GetByID(ctx context.Context, fighterID string) (fighter.Fighter, bool, error) {
	return r.getOne(ctx, "get fighter by id", qb.Eq("public_id", fighterID))
}

func (r *FighterRepository) GetByName(ctx context.Context, name string) (fighter.Fighter, bool, error) {
	return r.getOne(ctx, "get fighter by name", qb.Eq("name", name))
}

func (r *FighterRepository) getOne(ctx context.Context, op string, cond qb.Condition) (fighter.Fighter, bool, error) {
	query, args, err := qb.Select("*").From("fighters").
		Where(cond, qb.IsNull("deleted_at")).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return fighter.Fighter{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row fighterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fighter.Fighter{}, false, nil
		}
		return fighter.Fighter{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return fighterFromRow(row), true, nil
}

func (r *FighterRepository) Create(ctx context.Context, item fighter.Fighter) error {
	query, args, err := qb.InsertModel("fighters", fighterInsertModel{
		PublicID:    item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		ImageURL:    nullString(item.ImageURL),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert fighter query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fighter: %w", err)
	}
	return nil
}

func (r *FighterRepository) Update(ctx context.Context, item fighter.Fighter) (bool, error) {
	query, args, err := qb.Update("fighters").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("category", item.Category).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update fighter query: %w", err)
	}

	updated, err := execAffected(ctx, r.db, query, args)
	if err != nil {
		return false, fmt.Errorf("update fighter: %w", err)
	}
	return updated, nil
}

func (r *FighterRepository) Delete(ctx context.Context, fighterID string) (bool, error) {
	deleted, err := softDelete(ctx, r.db, "fighters", fighterID)
	if err != nil {
		return false, fmt.Errorf("delete fighter: %w", err)
	}
	return deleted, nil
}

func fighterFromRow(row fighterTableModel) fighter.Fighter {
	return fighter.Fighter{
		ID:          row.PublicID,
		ImageURL:    row.ImageURL.String,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
	}
}
