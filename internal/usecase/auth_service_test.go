package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fmma-backend/internal/domain/admin"
	"github.com/riskibarqy/fmma-backend/internal/infrastructure/repository/memory"
	adminmock "github.com/riskibarqy/fmma-backend/internal/mocks/domain/admin"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type stubIssuer struct {
	principal admin.Principal
}

func (s *stubIssuer) Issue(_ context.Context, principal admin.Principal) (string, time.Time, error) {
	s.principal = principal
	return "signed-token", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewAdminRepository()
	issuer := &stubIssuer{}
	svc := NewAuthService(repo, issuer, staticIDGenerator{id: "admin-1"}, nil)

	if _, err := svc.EnsureAdmin(ctx, "Ops", "Ops@Example.com", "correct-horse"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	got, err := svc.Login(ctx, "ops@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.AdminID != "admin-1" || got.Token != "signed-token" {
		t.Fatalf("unexpected login result: %+v", got)
	}
	if issuer.principal.AdminID != "admin-1" {
		t.Fatalf("issuer got wrong principal: %+v", issuer.principal)
	}

	if _, err := svc.Login(ctx, "ops@example.com", "wrong-password"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthService_LoginWithoutIssuerUsingMockery(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := adminmock.NewRepository(t)
	repo.On("GetByEmail", mock.Anything, "ops@example.com").
		Return(admin.Admin{ID: "admin-9", Email: "ops@example.com", PasswordHash: string(hash)}, true, nil).
		Once()

	svc := NewAuthService(repo, nil, staticIDGenerator{id: "unused"}, nil)
	got, err := svc.Login(context.Background(), " ops@example.com ", "secret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.AdminID != "admin-9" || got.Token != "" {
		t.Fatalf("unexpected login result: %+v", got)
	}
}

func TestAuthService_EnsureAdminRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(memory.NewAdminRepository(), nil, staticIDGenerator{id: "admin-1"}, nil)
	if _, err := svc.EnsureAdmin(t.Context(), "", "ops@example.com", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
