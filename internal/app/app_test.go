package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fmma-backend/internal/config"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		HTTPAddr:               ":0",
		StorageDriver:          config.StorageMemory,
		CacheEnabled:           true,
		CacheTTL:               time.Minute,
		MatchStatusPolicy:      "strict",
		MatchMergeMaxAttempts:  3,
		ImageHost:              config.ImageHostImgBB,
		AdminAuthEnabled:       true,
		JWTSecret:              "test-secret-key",
		JWTTTL:                 time.Hour,
		AdminBootstrapEmail:    "Admin@Example.com",
		AdminBootstrapPassword: "bootstrap-pass",
		CORSAllowedOrigins:     []string{"*"},
	}
}

func serve(t *testing.T, h http.Handler, method, path, body, token string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return rec.Code, decoded
}

func TestNew_MemoryStackWithAuth(t *testing.T) {
	a, err := New(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer a.Close()
	h := a.Server.Handler

	if code, _ := serve(t, h, http.MethodPost, "/addCategory", `{"category":"Kickboxing"}`, ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}

	code, body := serve(t, h, http.MethodPost, "/admin/login", `{"email":"admin@example.com","password":"bootstrap-pass"}`, "")
	if code != http.StatusOK {
		t.Fatalf("expected login 200, got %d body=%v", code, body)
	}
	token, _ := body["data"].(map[string]any)["token"].(string)
	if token == "" {
		t.Fatalf("expected token in login response, got %v", body)
	}

	if code, body := serve(t, h, http.MethodPost, "/addCategory", `{"category":"Kickboxing"}`, token); code != http.StatusCreated {
		t.Fatalf("expected 201 with token, got %d body=%v", code, body)
	}

	code, body = serve(t, h, http.MethodGet, "/category", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if items, _ := body["data"].([]any); len(items) != 3 {
		t.Fatalf("expected seeded categories plus the new one, got %v", body["data"])
	}

	if code, _ := serve(t, h, http.MethodGet, "/readyz", "", ""); code != http.StatusOK {
		t.Fatalf("expected ready without external checks, got %d", code)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "empty addr", mutate: func(c *config.Config) { c.HTTPAddr = "" }},
		{name: "unknown policy", mutate: func(c *config.Config) { c.MatchStatusPolicy = "loose" }},
		{name: "weak bootstrap password", mutate: func(c *config.Config) { c.AdminBootstrapPassword = "short" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
