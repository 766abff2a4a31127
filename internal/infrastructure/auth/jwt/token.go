package jwt

import (
	"context"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/riskibarqy/fmma-backend/internal/domain/admin"
	"github.com/riskibarqy/fmma-backend/internal/usecase"
)

const issuer = "fmma-backend"

type claims struct {
	Email string `json:"email,omitempty"`
	gojwt.RegisteredClaims
}

// Manager issues and verifies HS256 admin session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be > 0")
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *Manager) Issue(_ context.Context, principal admin.Principal) (string, time.Time, error) {
	if strings.TrimSpace(principal.AdminID) == "" {
		return "", time.Time{}, fmt.Errorf("admin id is required")
	}

	issuedAt := m.now().UTC()
	expiresAt := issuedAt.Add(m.ttl)
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims{
		Email: principal.Email,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   principal.AdminID,
			IssuedAt:  gojwt.NewNumericDate(issuedAt),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm, issuer and expiry.
func (m *Manager) Verify(_ context.Context, token string) (admin.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return admin.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	parsed := &claims{}
	parser := gojwt.Parser{ValidMethods: []string{gojwt.SigningMethodHS256.Alg()}}
	_, err := parser.ParseWithClaims(token, parsed, func(*gojwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return admin.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}
	if !parsed.VerifyIssuer(issuer, true) {
		return admin.Principal{}, fmt.Errorf("%w: unexpected token issuer", usecase.ErrUnauthorized)
	}
	if !parsed.VerifyExpiresAt(m.now(), true) {
		return admin.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return admin.Principal{}, fmt.Errorf("%w: token subject is empty", usecase.ErrUnauthorized)
	}

	return admin.Principal{AdminID: parsed.Subject, Email: parsed.Email}, nil
}
