package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
)

// NewRouter builds the HTTP surface. A nil verifier leaves admin mutations open.
func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerMatchRoutes(mux, handler, verifier)
	registerFighterRoutes(mux, handler, verifier)
	registerCatalogRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
			writeInternalError(r.Context(), w)
		}()
		next.ServeHTTP(w, r)
	})
}
