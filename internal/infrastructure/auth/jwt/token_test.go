package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/riskibarqy/fmma-backend/internal/domain/admin"
	"github.com/riskibarqy/fmma-backend/internal/usecase"
)

func TestManager_IssueAndVerify(t *testing.T) {
	manager, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	manager.now = func() time.Time { return now }

	token, expiresAt, err := manager.Issue(context.Background(), admin.Principal{AdminID: "admin-1", Email: "root@fmma.io"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %s", expiresAt)
	}

	principal, err := manager.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.AdminID != "admin-1" || principal.Email != "root@fmma.io" {
		t.Fatalf("unexpected principal %+v", principal)
	}
}

func TestManager_VerifyRejects(t *testing.T) {
	manager, _ := NewManager("test-secret", time.Hour)
	other, _ := NewManager("other-secret", time.Hour)

	foreign, _, err := other.Issue(context.Background(), admin.Principal{AdminID: "admin-1"})
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	expiredManager, _ := NewManager("test-secret", time.Minute)
	expiredManager.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _, err := expiredManager.Issue(context.Background(), admin.Principal{AdminID: "admin-1"})
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	none := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: "admin-1", Issuer: issuer}})
	unsigned, err := none.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      expired,
		"alg none":     unsigned,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := manager.Verify(context.Background(), token)
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestNewManager_Validates(t *testing.T) {
	if _, err := NewManager(" ", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewManager("s", 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}
