package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("IMAGE_HOST", "")
	t.Setenv("ADMIN_AUTH_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.ImageHost != ImageHostImgBB {
		t.Fatalf("unexpected ImageHost: %q", cfg.ImageHost)
	}
	if cfg.MatchStatusPolicy != "strict" || cfg.MatchMergeMaxAttempts != 3 {
		t.Fatalf("unexpected match defaults: policy=%q attempts=%d", cfg.MatchStatusPolicy, cfg.MatchMergeMaxAttempts)
	}
	if cfg.UploadMaxBytes != 10<<20 {
		t.Fatalf("unexpected UploadMaxBytes: %d", cfg.UploadMaxBytes)
	}
	if cfg.JWTTTL != 12*time.Hour {
		t.Fatalf("unexpected JWTTTL: %s", cfg.JWTTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_EnumValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "storage driver", key: "STORAGE_DRIVER", val: "mongo"},
		{name: "status policy", key: "MATCH_STATUS_POLICY", val: "loose"},
		{name: "image host", key: "IMAGE_HOST", val: "s3"},
		{name: "log level", key: "APP_LOG_LEVEL", val: "verbose"},
		{name: "merge attempts", key: "MATCH_MERGE_MAX_ATTEMPTS", val: "0"},
		{name: "upload bytes", key: "UPLOAD_MAX_BYTES", val: "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestLoad_RequiredWhenEnabled(t *testing.T) {
	t.Run("postgres needs DB_URL", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", StoragePostgres)
		t.Setenv("DB_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STORAGE_DRIVER=postgres without DB_URL")
		}
	})

	t.Run("admin auth needs JWT_SECRET", func(t *testing.T) {
		t.Setenv("ADMIN_AUTH_ENABLED", "true")
		t.Setenv("JWT_SECRET", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when ADMIN_AUTH_ENABLED=true without JWT_SECRET")
		}
	})

	t.Run("r2 needs bucket", func(t *testing.T) {
		t.Setenv("IMAGE_HOST", ImageHostR2)
		t.Setenv("R2_ACCOUNT_ID", "acc")
		t.Setenv("R2_BUCKET", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when IMAGE_HOST=r2 without R2_BUCKET")
		}
	})

	t.Run("uptrace needs DSN", func(t *testing.T) {
		t.Setenv("UPTRACE_ENABLED", "true")
		t.Setenv("UPTRACE_DSN", "")
		t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
		}
	})

	t.Run("bootstrap admin needs both fields", func(t *testing.T) {
		t.Setenv("ADMIN_BOOTSTRAP_EMAIL", "admin@example.com")
		t.Setenv("ADMIN_BOOTSTRAP_PASSWORD", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for bootstrap email without password")
		}
	})
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "PROD")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_URL", "postgres://localhost:5432/fmma")
	t.Setenv("MATCH_STATUS_POLICY", "free")
	t.Setenv("MATCH_MERGE_MAX_ATTEMPTS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("IMGBB_BASE_URL", "https://imgbb.local/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvProd {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.MatchStatusPolicy != "free" || cfg.MatchMergeMaxAttempts != 5 {
		t.Fatalf("unexpected match config: policy=%q attempts=%d", cfg.MatchStatusPolicy, cfg.MatchMergeMaxAttempts)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ImgBBBaseURL != "https://imgbb.local" {
		t.Fatalf("unexpected ImgBBBaseURL: %q", cfg.ImgBBBaseURL)
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	got := parseUptraceDSNFromOTLPHeaders(`x-other=1, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)
	if got != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn: %q", got)
	}
	if got := parseUptraceDSNFromOTLPHeaders(""); got != "" {
		t.Fatalf("expected empty dsn, got %q", got)
	}
}
