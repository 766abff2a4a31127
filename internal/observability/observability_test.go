package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/fmma-backend/internal/config"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
)

func TestBackendsEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want map[string]bool
	}{
		{
			name: "all disabled",
			cfg:  config.Config{},
			want: map[string]bool{"uptrace": false, "pyroscope": false, "pprof": false},
		},
		{
			name: "uptrace without dsn",
			cfg:  config.Config{UptraceEnabled: true, UptraceDSN: "  "},
			want: map[string]bool{"uptrace": false, "pyroscope": false, "pprof": false},
		},
		{
			name: "everything on",
			cfg:  config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev", PyroscopeEnabled: true, PprofEnabled: true},
			want: map[string]bool{"uptrace": true, "pyroscope": true, "pprof": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, b := range backends {
				if got := b.enabled(tt.cfg); got != tt.want[b.name] {
					t.Fatalf("%s enabled=%v want=%v", b.name, got, tt.want[b.name])
				}
			}
		})
	}
}

func TestStart_AllDisabled(t *testing.T) {
	rt, err := Start(config.Config{ServiceName: "fmma-backend", AppEnv: config.EnvDev}, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if started := rt.Started(); len(started) != 0 {
		t.Fatalf("expected no running backends, got %v", started)
	}
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestRuntimeShutdown_ReverseOrderAndJoin(t *testing.T) {
	var order []string
	stop := func(name string, err error) namedShutdown {
		return namedShutdown{name: name, fn: func(context.Context) error {
			order = append(order, name)
			return err
		}}
	}
	boom := errors.New("flush failed")
	rt := &Runtime{
		logger: logging.NewNop(),
		stops:  []namedShutdown{stop("uptrace", boom), stop("pyroscope", nil), stop("pprof", nil)},
	}

	err := rt.Shutdown(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined flush error, got %v", err)
	}
	if len(order) != 3 || order[0] != "pprof" || order[2] != "uptrace" {
		t.Fatalf("unexpected shutdown order: %v", order)
	}
	if len(rt.Started()) != 0 {
		t.Fatalf("expected runtime cleared after shutdown")
	}
}

func TestProfileTags(t *testing.T) {
	tags := profileTags(config.Config{AppEnv: config.EnvProd, ServiceName: "fmma-backend", StorageDriver: config.StoragePostgres, ImageHost: config.ImageHostR2})
	if tags["storage"] != "postgres" || tags["image_host"] != "r2" || tags["env"] != config.EnvProd {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
