package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fmma-backend/internal/domain/admin"
	qb "github.com/riskibarqy/fmma-backend/internal/platform/querybuilder"
)

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (admin.Admin, bool, error) {
	query, args, err := qb.Select("*").From("admins").
		Where(
			qb.Eq("email", admin.NormalizeEmail(email)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return admin.Admin{}, false, fmt.Errorf("build get admin by email query: %w", err)
	}

	var row adminTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return admin.Admin{}, false, nil
		}
		return admin.Admin{}, false, fmt.Errorf("get admin by email: %w", err)
	}

	return admin.Admin{
		ID:           row.PublicID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
	}, true, nil
}

func (r *AdminRepository) Upsert(ctx context.Context, item admin.Admin) error {
	query, args, err := qb.InsertModel("admins", adminInsertModel{
		PublicID:     item.ID,
		Name:         item.Name,
		Email:        admin.NormalizeEmail(item.Email),
		PasswordHash: item.PasswordHash,
	}, `ON CONFLICT (email) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    password_hash = EXCLUDED.password_hash,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert admin query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	return nil
}
