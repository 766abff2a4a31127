package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fmma-backend/internal/domain/admin"
	idgen "github.com/riskibarqy/fmma-backend/internal/platform/id"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs a session token for an authenticated admin.
type TokenIssuer interface {
	Issue(ctx context.Context, principal admin.Principal) (string, time.Time, error)
}

type LoginResult struct {
	AdminID   string
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	repo   admin.Repository
	issuer TokenIssuer
	idGen  idgen.Generator
	logger *logging.Logger
}

// NewAuthService builds the admin auth flow. A nil issuer disables token output.
func NewAuthService(repo admin.Repository, issuer TokenIssuer, idGen idgen.Generator, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{
		repo:   repo,
		issuer: issuer,
		idGen:  idGen,
		logger: logger,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email = admin.NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		recordSpanError(span, err)
		return LoginResult{}, fmt.Errorf("get admin by email: %w", err)
	}
	if !exists {
		return LoginResult{}, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.WarnContext(ctx, "admin login rejected", "admin_id", item.ID)
			return LoginResult{}, fmt.Errorf("%w: invalid password", ErrUnauthorized)
		}
		return LoginResult{}, fmt.Errorf("compare admin password: %w", err)
	}

	result := LoginResult{AdminID: item.ID}
	if s.issuer != nil {
		token, expiresAt, err := s.issuer.Issue(ctx, admin.Principal{AdminID: item.ID, Email: item.Email})
		if err != nil {
			return LoginResult{}, fmt.Errorf("issue admin token: %w", err)
		}
		result.Token = token
		result.ExpiresAt = expiresAt
	}

	s.logger.InfoContext(ctx, "admin logged in", "admin_id", item.ID)
	return result, nil
}

// EnsureAdmin creates or refreshes an admin account with a bcrypt-hashed password.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (admin.Admin, error) {
	email = admin.NormalizeEmail(email)
	if email == "" || len(password) < 8 {
		return admin.Admin{}, fmt.Errorf("%w: admin email and a password of at least 8 characters are required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return admin.Admin{}, fmt.Errorf("get admin by email: %w", err)
	}
	if exists && bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(password)) == nil {
		return item, nil
	}
	if !exists {
		adminID, err := s.idGen.NewID()
		if err != nil {
			return admin.Admin{}, fmt.Errorf("generate admin id: %w", err)
		}
		item = admin.Admin{ID: adminID, Email: email}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return admin.Admin{}, fmt.Errorf("hash admin password: %w", err)
	}
	item.PasswordHash = string(hash)
	if strings.TrimSpace(name) != "" {
		item.Name = strings.TrimSpace(name)
	}
	if err := item.Validate(); err != nil {
		return admin.Admin{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return admin.Admin{}, fmt.Errorf("upsert admin: %w", err)
	}

	s.logger.InfoContext(ctx, "admin account ensured", "admin_id", item.ID)
	return item, nil
}
