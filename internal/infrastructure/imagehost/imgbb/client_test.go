package imgbb

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fmma-backend/internal/domain/media"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
	"github.com/riskibarqy/fmma-backend/internal/platform/resilience"
)

func TestClient_UploadSendsBase64ImageAndReturnsURL(t *testing.T) {
	payload := []byte("\x89PNG fake image bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/1/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "secret-key" {
			t.Errorf("unexpected api key %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("image"); got != base64.StdEncoding.EncodeToString(payload) {
			t.Errorf("unexpected image field %q", got)
		}
		if got := r.FormValue("name"); got != "fighter" {
			t.Errorf("unexpected name field %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"url":"https://i.ibb.co/abc/fighter.png","display_url":"https://ibb.co/abc"},"success":true,"status":200}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "secret-key", Timeout: time.Second}, logging.NewNop())
	url, err := client.Upload(context.Background(), media.Image{Filename: "fighter.png", ContentType: "image/png", Data: payload})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://i.ibb.co/abc/fighter.png" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestClient_UploadRejectsErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"status_code":400,"error":{"message":"Invalid API v1 key.","code":100}}`},
		{name: "success without url", status: http.StatusOK, body: `{"data":{},"success":true}`},
		{name: "malformed json", status: http.StatusOK, body: `not-json`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			client := NewClient(Config{BaseURL: srv.URL, APIKey: "k"}, logging.NewNop())
			if _, err := client.Upload(context.Background(), media.Image{Filename: "a.png", Data: []byte("x")}); err == nil {
				t.Fatalf("expected upload error")
			}
		})
	}
}

func TestClient_CircuitOpensOnTransientFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL: srv.URL,
		APIKey:  "k",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	image := media.Image{Filename: "a.png", Data: []byte("x")}
	for i := 0; i < 2; i++ {
		if _, err := client.Upload(context.Background(), image); err == nil {
			t.Fatalf("expected upstream failure")
		}
	}

	_, err := client.Upload(context.Background(), image)
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected open circuit to skip the request, hits=%d", got)
	}
}

func TestClient_UploadRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://api.imgbb.com"}, logging.NewNop())
	if _, err := client.Upload(context.Background(), media.Image{Filename: "a.png", Data: []byte("x")}); err == nil {
		t.Fatalf("expected error without api key")
	}
}
