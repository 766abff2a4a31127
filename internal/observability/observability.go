package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/fmma-backend/internal/config"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

type shutdownFunc func(context.Context) error

// backend is one tracing or profiling sink. start is only called when enabled
// reports true for the loaded config.
type backend struct {
	name    string
	enabled func(config.Config) bool
	start   func(config.Config, *logging.Logger) (shutdownFunc, error)
}

var backends = []backend{
	{
		name: "uptrace",
		enabled: func(cfg config.Config) bool {
			return cfg.UptraceEnabled && strings.TrimSpace(cfg.UptraceDSN) != ""
		},
		start: startUptrace,
	},
	{
		name:    "pyroscope",
		enabled: func(cfg config.Config) bool { return cfg.PyroscopeEnabled },
		start:   startPyroscope,
	},
	{
		name:    "pprof",
		enabled: func(cfg config.Config) bool { return cfg.PprofEnabled },
		start:   startPprof,
	},
}

// Runtime holds the backends that were started.
type Runtime struct {
	stops  []namedShutdown
	logger *logging.Logger
}

type namedShutdown struct {
	name string
	fn   shutdownFunc
}

// Start brings up every enabled backend in order. A failure stops whatever
// already started.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	for _, b := range backends {
		if !b.enabled(cfg) {
			logger.Info("observability backend disabled", "backend", b.name)
			continue
		}
		stop, err := b.start(cfg, logger)
		if err != nil {
			_ = rt.Shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", b.name, err)
		}
		rt.stops = append(rt.stops, namedShutdown{name: b.name, fn: stop})
		logger.Info("observability backend started", "backend", b.name)
	}
	return rt, nil
}

// Started lists the running backends in start order.
func (r *Runtime) Started() []string {
	names := make([]string, 0, len(r.stops))
	for _, stop := range r.stops {
		names = append(names, stop.name)
	}
	return names
}

// Shutdown stops backends in reverse start order and joins their errors.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(r.stops) - 1; i >= 0; i-- {
		stop := r.stops[i]
		if err := stop.fn(ctx); err != nil {
			r.logger.WarnContext(ctx, "observability shutdown failed", "backend", stop.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", stop.name, err))
		}
	}
	r.stops = nil
	return errors.Join(errs...)
}

// startUptrace installs the global tracer provider; otelhttp, otelsqlx and
// the handler spans all export through it.
func startUptrace(cfg config.Config, _ *logging.Logger) (shutdownFunc, error) {
	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(strings.TrimSpace(cfg.UptraceDSN)),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	return uptrace.Shutdown, nil
}

var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexDuration,
}

func startPyroscope(cfg config.Config, _ *logging.Logger) (shutdownFunc, error) {
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              profileTags(cfg),
		ProfileTypes:      profileTypes,
	})
	if err != nil {
		return nil, err
	}
	return func(context.Context) error { return profiler.Stop() }, nil
}

// profileTags lets flame graphs be split by storage driver and image host.
func profileTags(cfg config.Config) map[string]string {
	return map[string]string{
		"env":        cfg.AppEnv,
		"service":    cfg.ServiceName,
		"storage":    cfg.StorageDriver,
		"image_host": cfg.ImageHost,
	}
}

func startPprof(cfg config.Config, logger *logging.Logger) (shutdownFunc, error) {
	srv := &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           newPprofMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("pprof server listening", "addr", cfg.PprofAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	return srv.Shutdown, nil
}

func newPprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	return mux
}
