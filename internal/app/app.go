package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fmma-backend/internal/config"
	"github.com/riskibarqy/fmma-backend/internal/domain/admin"
	"github.com/riskibarqy/fmma-backend/internal/domain/category"
	"github.com/riskibarqy/fmma-backend/internal/domain/combatmove"
	"github.com/riskibarqy/fmma-backend/internal/domain/fighter"
	"github.com/riskibarqy/fmma-backend/internal/domain/match"
	"github.com/riskibarqy/fmma-backend/internal/domain/media"
	"github.com/riskibarqy/fmma-backend/internal/infrastructure/auth/jwt"
	"github.com/riskibarqy/fmma-backend/internal/infrastructure/imagehost/imgbb"
	"github.com/riskibarqy/fmma-backend/internal/infrastructure/imagehost/r2"
	cacherepo "github.com/riskibarqy/fmma-backend/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fmma-backend/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fmma-backend/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fmma-backend/internal/interfaces/httpapi"
	"github.com/riskibarqy/fmma-backend/internal/platform/database"
	idgen "github.com/riskibarqy/fmma-backend/internal/platform/id"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
	"github.com/riskibarqy/fmma-backend/internal/platform/resilience"
	"github.com/riskibarqy/fmma-backend/internal/usecase"
)

// App owns the HTTP server and the resources it must release on shutdown.
type App struct {
	Server *http.Server
	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	matches     match.Repository
	fighters    fighter.Repository
	categories  category.Repository
	combatMoves combatmove.Repository
	admins      admin.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}
	repos, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	ids := idgen.NewRandomGenerator()
	uploader, err := buildUploader(ctx, cfg, ids, logger)
	if err != nil {
		a.closeDB()
		return nil, err
	}

	var tokens *jwt.Manager
	if cfg.JWTSecret != "" {
		tokens, err = jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			a.closeDB()
			return nil, fmt.Errorf("build token manager: %w", err)
		}
	}

	policy, err := match.ParseTransitionPolicy(cfg.MatchStatusPolicy)
	if err != nil {
		a.closeDB()
		return nil, err
	}

	var issuer usecase.TokenIssuer
	if tokens != nil {
		issuer = tokens
	}
	authSvc := usecase.NewAuthService(repos.admins, issuer, ids, logger)
	if cfg.AdminBootstrapEmail != "" {
		if _, err := authSvc.EnsureAdmin(ctx, cfg.AdminBootstrapName, cfg.AdminBootstrapEmail, cfg.AdminBootstrapPassword); err != nil {
			a.closeDB()
			return nil, fmt.Errorf("bootstrap admin: %w", err)
		}
		logger.Info("bootstrap admin ensured", "email", admin.NormalizeEmail(cfg.AdminBootstrapEmail))
	}

	handler := httpapi.NewHandler(
		usecase.NewMatchService(repos.matches, uploader, ids, usecase.MatchServiceConfig{
			StatusPolicy:     policy,
			MergeMaxAttempts: cfg.MatchMergeMaxAttempts,
		}, logger),
		usecase.NewFighterService(repos.fighters, uploader, ids),
		usecase.NewCategoryService(repos.categories, ids),
		usecase.NewCombatMoveService(repos.combatMoves, ids),
		authSvc,
		httpapi.HandlerConfig{
			UploadMaxBytes:  cfg.UploadMaxBytes,
			ReadinessChecks: a.readinessChecks(),
		},
		logger,
	)

	var verifier httpapi.TokenVerifier
	if cfg.AdminAuthEnabled && tokens != nil {
		verifier = tokens
	} else {
		logger.Warn("admin auth disabled, mutation routes are public")
	}

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := database.Open(ctx, database.Options{
			URL:                         cfg.DBURL,
			DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
			MaxOpenConns:                cfg.DBMaxOpenConns,
			MaxIdleConns:                cfg.DBMaxIdleConns,
			ConnMaxLifetime:             cfg.DBConnMaxLifetime,
		})
		if err != nil {
			return repos, fmt.Errorf("open database: %w", err)
		}
		a.db = db
		repos = repositories{
			matches:     postgres.NewMatchRepository(db),
			fighters:    postgres.NewFighterRepository(db),
			categories:  postgres.NewCategoryRepository(db),
			combatMoves: postgres.NewCombatMoveRepository(db),
			admins:      postgres.NewAdminRepository(db),
		}
		a.logger.Info("storage ready", "driver", cfg.StorageDriver, "db", database.NameFromURL(cfg.DBURL))
	default:
		repos = repositories{
			matches:     memory.NewMatchRepository(),
			fighters:    memory.NewFighterRepository(),
			categories:  memory.NewCategoryRepository(memory.SeedCategories()...),
			combatMoves: memory.NewCombatMoveRepository(memory.SeedCombatMoves()...),
			admins:      memory.NewAdminRepository(),
		}
		a.logger.Info("storage ready", "driver", config.StorageMemory)
	}

	if cfg.CacheEnabled {
		repos.matches = cacherepo.NewMatchRepository(repos.matches, cfg.CacheTTL)
		a.logger.Info("match cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos, nil
}

// buildUploader returns nil when no image host is usable; uploads then fail with 502.
func buildUploader(ctx context.Context, cfg config.Config, ids idgen.Generator, logger *logging.Logger) (media.Uploader, error) {
	switch cfg.ImageHost {
	case config.ImageHostR2:
		uploader, err := r2.NewUploader(ctx, r2.Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Bucket:          cfg.R2Bucket,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		}, ids, logger)
		if err != nil {
			return nil, fmt.Errorf("build r2 uploader: %w", err)
		}
		return uploader, nil
	default:
		if cfg.ImgBBAPIKey == "" {
			logger.Warn("image host not configured", "host", config.ImageHostImgBB)
			return nil, nil
		}
		return imgbb.NewClient(imgbb.Config{
			BaseURL: cfg.ImgBBBaseURL,
			APIKey:  cfg.ImgBBAPIKey,
			Timeout: cfg.ImgBBTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ImgBBCircuitEnabled,
				FailureThreshold: cfg.ImgBBCircuitFailureCount,
				OpenTimeout:      cfg.ImgBBCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ImgBBCircuitHalfOpenMaxReq,
			},
		}, logger), nil
	}
}

func (a *App) readinessChecks() []httpapi.ReadinessCheck {
	if a.db == nil {
		return nil
	}
	return []httpapi.ReadinessCheck{{
		Name:  "postgres",
		Check: a.db.PingContext,
	}}
}

// Close releases the database pool.
func (a *App) Close() {
	a.closeDB()
}

func (a *App) closeDB() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database", "error", err)
	}
	a.db = nil
}
