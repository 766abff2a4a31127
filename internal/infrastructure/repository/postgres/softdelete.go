package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/fmma-backend/internal/platform/querybuilder"
)

// softDelete marks a live row deleted and reports whether one was found.
func softDelete(ctx context.Context, db *sqlx.DB, table, publicID string) (bool, error) {
	query, args, err := qb.Update(table).
		Set("deleted_at", time.Now().UTC()).
		Where(
			qb.Eq("public_id", publicID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build soft delete %s query: %w", table, err)
	}
	return execAffected(ctx, db, query, args)
}

func execAffected(ctx context.Context, db *sqlx.DB, query string, args []any) (bool, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
