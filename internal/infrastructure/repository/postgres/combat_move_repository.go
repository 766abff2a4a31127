package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fmma-backend/internal/domain/combatmove"
	qb "github.com/riskibarqy/fmma-backend/internal/platform/querybuilder"
)

type CombatMoveRepository struct {
	db *sqlx.DB
}

func NewCombatMoveRepository(db *sqlx.DB) *CombatMoveRepository {
	return &CombatMoveRepository{db: db}
}

func (r *CombatMoveRepository) List(ctx context.Context) ([]combatmove.CombatMove, error) {
	query, args, err := qb.Select("*").From("combat_moves").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select combat moves query: %w", err)
	}

	var rows []combatMoveTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select combat moves: %w", err)
	}

	out := make([]combatmove.CombatMove, 0, len(rows))
	for _, row := range rows {
		out = append(out, combatMoveFromRow(row))
	}
	return out, nil
}

func (r *CombatMoveRepository) GetByID(ctx context.Context, moveID string) (combatmove.CombatMove, bool, error) {
	query, args, err := qb.Select("*").From("combat_moves").
		Where(
			qb.Eq("public_id", moveID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return combatmove.CombatMove{}, false, fmt.Errorf("build get combat move by id query: %w", err)
	}

	var row combatMoveTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return combatmove.CombatMove{}, false, nil
		}
		return combatmove.CombatMove{}, false, fmt.Errorf("get combat move by id: %w", err)
	}
	return combatMoveFromRow(row), true, nil
}

func (r *CombatMoveRepository) Create(ctx context.Context, item combatmove.CombatMove) error {
	query, args, err := qb.InsertModel("combat_moves", combatMoveInsertModel{
		PublicID:     item.ID,
		Category:     item.Category,
		AttackName:   item.AttackName,
		AttackDamage: item.AttackDamage,
		AttackKey:    item.AttackKey,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert combat move query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert combat move: %w", err)
	}
	return nil
}

func (r *CombatMoveRepository) Update(ctx context.Context, item combatmove.CombatMove) (bool, error) {
	query, args, err := qb.Update("combat_moves").
		Set("category", item.Category).
		Set("attack_name", item.AttackName).
		Set("attack_damage", item.AttackDamage).
		Set("attack_key", item.AttackKey).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update combat move query: %w", err)
	}

	updated, err := execAffected(ctx, r.db, query, args)
	if err != nil {
		return false, fmt.Errorf("update combat move: %w", err)
	}
	return updated, nil
}

func (r *CombatMoveRepository) Delete(ctx context.Context, moveID string) (bool, error) {
	deleted, err := softDelete(ctx, r.db, "combat_moves", moveID)
	if err != nil {
		return false, fmt.Errorf("delete combat move: %w", err)
	}
	return deleted, nil
}

func combatMoveFromRow(row combatMoveTableModel) combatmove.CombatMove {
	return combatmove.CombatMove{
		ID:           row.PublicID,
		Category:     row.Category,
		AttackName:   row.AttackName,
		AttackDamage: row.AttackDamage,
		AttackKey:    row.AttackKey,
	}
}
