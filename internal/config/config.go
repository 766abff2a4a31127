package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	ImageHostImgBB = "imgbb"
	ImageHostR2    = "r2"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	LogLevel                   logging.Level
	StorageDriver              string
	DBURL                      string
	DBDisablePreparedBinary    bool
	DBMaxOpenConns             int
	DBMaxIdleConns             int
	DBConnMaxLifetime          time.Duration
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	MatchStatusPolicy          string
	MatchMergeMaxAttempts      int
	UploadMaxBytes             int64
	ImageHost                  string
	ImgBBBaseURL               string
	ImgBBAPIKey                string
	ImgBBTimeout               time.Duration
	ImgBBCircuitEnabled        bool
	ImgBBCircuitFailureCount   int
	ImgBBCircuitOpenTimeout    time.Duration
	ImgBBCircuitHalfOpenMaxReq int
	R2AccountID                string
	R2AccessKeyID              string
	R2SecretAccessKey          string
	R2Bucket                   string
	R2PublicBaseURL            string
	AdminAuthEnabled           bool
	JWTSecret                  string
	JWTTTL                     time.Duration
	AdminBootstrapName         string
	AdminBootstrapEmail        string
	AdminBootstrapPassword     string
	UptraceEnabled             bool
	UptraceDSN                 string
	PprofEnabled               bool
	PprofAddr                  string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "fmma-backend"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:               getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:               logLevel,
		DBURL:                  strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ImgBBBaseURL:           strings.TrimRight(getEnv("IMGBB_BASE_URL", "https://api.imgbb.com"), "/"),
		ImgBBAPIKey:            strings.TrimSpace(getEnv("IMGBB_API_KEY", "")),
		R2AccountID:            strings.TrimSpace(getEnv("R2_ACCOUNT_ID", "")),
		R2AccessKeyID:          strings.TrimSpace(getEnv("R2_ACCESS_KEY_ID", "")),
		R2SecretAccessKey:      strings.TrimSpace(getEnv("R2_SECRET_ACCESS_KEY", "")),
		R2Bucket:               strings.TrimSpace(getEnv("R2_BUCKET", "")),
		R2PublicBaseURL:        strings.TrimRight(strings.TrimSpace(getEnv("R2_PUBLIC_BASE_URL", "")), "/"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		AdminBootstrapName:     getEnv("ADMIN_BOOTSTRAP_NAME", "admin"),
		AdminBootstrapEmail:    strings.TrimSpace(getEnv("ADMIN_BOOTSTRAP_EMAIL", "")),
		AdminBootstrapPassword: getEnv("ADMIN_BOOTSTRAP_PASSWORD", ""),
		PyroscopeAppName:       getEnv("PYROSCOPE_APP_NAME", "fmma-backend"),
		PyroscopeAuthToken:     getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser: getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
	}
	cfg.PyroscopeBasicAuthPassword = getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")

	if cfg.ReadTimeout, err = time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	if cfg.WriteTimeout, err = time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s")); err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	if err := loadStorage(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadMatch(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadImageHost(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadAuth(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadStorage(cfg *Config) error {
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DBURL == "" {
			return fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", cfg.StorageDriver, StorageMemory, StoragePostgres)
	}

	disableBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = disableBinary

	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}
	if cfg.DBMaxIdleConns, err = getEnvAsInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if cfg.DBMaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}
	if cfg.DBConnMaxLifetime, err = time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m")); err != nil {
		return fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "30s")); err != nil {
		return fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}

	return nil
}

func loadMatch(cfg *Config) error {
	policy := strings.ToLower(strings.TrimSpace(getEnv("MATCH_STATUS_POLICY", "strict")))
	switch policy {
	case "strict", "free":
		cfg.MatchStatusPolicy = policy
	default:
		return fmt.Errorf("invalid MATCH_STATUS_POLICY %q: valid values are strict, free", policy)
	}

	attempts, err := getEnvAsInt("MATCH_MERGE_MAX_ATTEMPTS", 3)
	if err != nil {
		return fmt.Errorf("parse MATCH_MERGE_MAX_ATTEMPTS: %w", err)
	}
	if attempts < 1 {
		return fmt.Errorf("MATCH_MERGE_MAX_ATTEMPTS must be >= 1")
	}
	cfg.MatchMergeMaxAttempts = attempts

	maxBytes, err := getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)
	if err != nil {
		return fmt.Errorf("parse UPLOAD_MAX_BYTES: %w", err)
	}
	if maxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be > 0")
	}
	cfg.UploadMaxBytes = int64(maxBytes)

	return nil
}

func loadImageHost(cfg *Config) error {
	cfg.ImageHost = strings.ToLower(strings.TrimSpace(getEnv("IMAGE_HOST", ImageHostImgBB)))
	switch cfg.ImageHost {
	case ImageHostImgBB:
	case ImageHostR2:
		if cfg.R2AccountID == "" || cfg.R2Bucket == "" {
			return fmt.Errorf("R2_ACCOUNT_ID and R2_BUCKET are required when IMAGE_HOST=r2")
		}
		if cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" {
			return fmt.Errorf("R2_ACCESS_KEY_ID and R2_SECRET_ACCESS_KEY are required when IMAGE_HOST=r2")
		}
		if cfg.R2PublicBaseURL == "" {
			return fmt.Errorf("R2_PUBLIC_BASE_URL is required when IMAGE_HOST=r2")
		}
	default:
		return fmt.Errorf("invalid IMAGE_HOST %q: valid values are %s, %s", cfg.ImageHost, ImageHostImgBB, ImageHostR2)
	}

	var err error
	if cfg.ImgBBTimeout, err = time.ParseDuration(getEnv("IMGBB_TIMEOUT", "15s")); err != nil {
		return fmt.Errorf("parse IMGBB_TIMEOUT: %w", err)
	}
	if cfg.ImgBBTimeout <= 0 {
		return fmt.Errorf("IMGBB_TIMEOUT must be > 0")
	}
	if cfg.ImgBBCircuitEnabled, err = strconv.ParseBool(getEnv("IMGBB_CIRCUIT_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse IMGBB_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.ImgBBCircuitFailureCount, err = getEnvAsInt("IMGBB_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse IMGBB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.ImgBBCircuitFailureCount < 1 {
		return fmt.Errorf("IMGBB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.ImgBBCircuitOpenTimeout, err = time.ParseDuration(getEnv("IMGBB_CIRCUIT_OPEN_TIMEOUT", "30s")); err != nil {
		return fmt.Errorf("parse IMGBB_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cfg.ImgBBCircuitOpenTimeout <= 0 {
		return fmt.Errorf("IMGBB_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	if cfg.ImgBBCircuitHalfOpenMaxReq, err = getEnvAsInt("IMGBB_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return fmt.Errorf("parse IMGBB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.ImgBBCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("IMGBB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	return nil
}

func loadAuth(cfg *Config) error {
	enabled, err := strconv.ParseBool(getEnv("ADMIN_AUTH_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse ADMIN_AUTH_ENABLED: %w", err)
	}
	cfg.AdminAuthEnabled = enabled
	if enabled && strings.TrimSpace(cfg.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required when ADMIN_AUTH_ENABLED=true")
	}

	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "12h")); err != nil {
		return fmt.Errorf("parse JWT_TTL: %w", err)
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}

	if (cfg.AdminBootstrapEmail == "") != (cfg.AdminBootstrapPassword == "") {
		return fmt.Errorf("ADMIN_BOOTSTRAP_EMAIL and ADMIN_BOOTSTRAP_PASSWORD must be set together")
	}

	return nil
}

func loadObservability(cfg *Config) error {
	var err error
	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeUploadRate, err = time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if cfg.PyroscopeUploadRate <= 0 {
		return fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
