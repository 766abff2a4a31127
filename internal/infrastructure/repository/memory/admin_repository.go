package memory

import (
	"context"

	"github.com/riskibarqy/fmma-backend/internal/domain/admin"
)

// AdminRepository indexes admins by normalized email.
type AdminRepository struct {
	store *orderedStore[admin.Admin]
}

func NewAdminRepository(admins ...admin.Admin) *AdminRepository {
	repo := &AdminRepository{store: newOrderedStore[admin.Admin](nil)}
	for _, a := range admins {
		repo.store.put(admin.NormalizeEmail(a.Email), a)
	}
	return repo
}

func (r *AdminRepository) GetByEmail(_ context.Context, email string) (admin.Admin, bool, error) {
	item, ok := r.store.get(admin.NormalizeEmail(email))
	return item, ok, nil
}

func (r *AdminRepository) Upsert(_ context.Context, item admin.Admin) error {
	r.store.put(admin.NormalizeEmail(item.Email), item)
	return nil
}
