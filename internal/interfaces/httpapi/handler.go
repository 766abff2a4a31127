package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fmma-backend/internal/domain/media"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
	"github.com/riskibarqy/fmma-backend/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultUploadMaxBytes = 10 << 20
	maxJSONBodyBytes      = 1 << 20
	readinessTimeout      = 3 * time.Second
	imageFormField        = "image"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HandlerConfig struct {
	UploadMaxBytes  int64
	ReadinessChecks []ReadinessCheck
}

type Handler struct {
	matchService      *usecase.MatchService
	fighterService    *usecase.FighterService
	categoryService   *usecase.CategoryService
	combatMoveService *usecase.CombatMoveService
	authService       *usecase.AuthService
	readiness         []ReadinessCheck
	uploadMaxBytes    int64
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	fighterService *usecase.FighterService,
	categoryService *usecase.CategoryService,
	combatMoveService *usecase.CombatMoveService,
	authService *usecase.AuthService,
	cfg HandlerConfig,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.UploadMaxBytes <= 0 {
		cfg.UploadMaxBytes = defaultUploadMaxBytes
	}

	return &Handler{
		matchService:      matchService,
		fighterService:    fighterService,
		categoryService:   categoryService,
		combatMoveService: combatMoveService,
		authService:       authService,
		readiness:         cfg.ReadinessChecks,
		uploadMaxBytes:    cfg.UploadMaxBytes,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type readinessResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Readyz runs every dependency check concurrently and fails when any of them fails.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	checkCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	p := pool.NewWithResults[readinessResult]()
	for _, check := range h.readiness {
		p.Go(func() readinessResult {
			if err := check.Check(checkCtx); err != nil {
				return readinessResult{Name: check.Name, Status: "down", Error: err.Error()}
			}
			return readinessResult{Name: check.Name, Status: "up"}
		})
	}
	results := p.Wait()
	slices.SortFunc(results, func(a, b readinessResult) int { return strings.Compare(a.Name, b.Name) })

	status := http.StatusOK
	overall := "ok"
	for _, result := range results {
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
			overall = "unavailable"
			h.logger.WarnContext(ctx, "readiness check failed", "check", result.Name, "error", result.Error)
		}
	}

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data: map[string]any{
			"status": overall,
			"checks": results,
		},
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mediaType, "multipart/")
}

// parseUploadForm reads a multipart form capped at the configured upload size.
func (h *Handler) parseUploadForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: upload exceeds %d bytes", usecase.ErrInvalidInput, h.uploadMaxBytes)
		}
		return fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// readImage returns an empty image when the field is absent.
func readImage(r *http.Request, field string) (media.Image, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return media.Image{}, nil
	}
	if err != nil {
		return media.Image{}, fmt.Errorf("%w: read %s: %v", usecase.ErrInvalidInput, field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return media.Image{}, fmt.Errorf("%w: read %s: %v", usecase.ErrInvalidInput, field, err)
	}
	if len(data) == 0 {
		return media.Image{}, nil
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return media.Image{}, fmt.Errorf("%w: %s must be an image, got %s", usecase.ErrInvalidInput, field, contentType)
	}

	return media.Image{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

var matchDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range matchDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("%w: matchDate %q is not a valid date", usecase.ErrInvalidInput, raw)
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Root")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, messageResponse{Message: "fmma-backend is running"})
}
