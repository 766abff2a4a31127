package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	const adminOrigin = "https://fmma-admin.example.com"

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantVary   bool
	}{
		{name: "configured origin", allowed: []string{adminOrigin + "/"}, method: http.MethodGet, origin: adminOrigin, wantStatus: http.StatusOK, wantOrigin: adminOrigin, wantVary: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: adminOrigin, wantStatus: http.StatusNoContent, wantOrigin: "*"},
		{name: "unknown origin", allowed: []string{"https://allowed.example.com", " "}, method: http.MethodGet, origin: adminOrigin, wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			handler := CORS(tt.allowed, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/match/addRoundResults/m-1", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("unexpected Vary header: %q", rec.Header().Get("Vary"))
			}
			if reached == (tt.method == http.MethodOptions) {
				t.Fatalf("unexpected pass-through for %s: reached=%v", tt.method, reached)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer   abc.def ", want: "abc.def"},
		{header: "", wantErr: true},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPut, "/matchToUpdateStatus/m-1", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		got, err := bearerToken(req)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("bearerToken(%q)=%q,%v", tt.header, got, err)
		}
	}
}
