package admin

import "context"

type Repository interface {
	GetByEmail(ctx context.Context, email string) (Admin, bool, error)
	Upsert(ctx context.Context, item Admin) error
}
