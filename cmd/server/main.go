package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/sotien/internal/amount"
	"github.com/mmynk/sotien/internal/auth"
	"github.com/mmynk/sotien/internal/category"
	"github.com/mmynk/sotien/internal/config"
	"github.com/mmynk/sotien/internal/metrics"
	"github.com/mmynk/sotien/internal/middleware"
	"github.com/mmynk/sotien/internal/service"
	"github.com/mmynk/sotien/internal/storage"
	"github.com/mmynk/sotien/internal/storage/postgres"
	"github.com/mmynk/sotien/internal/storage/sqlite"
	"github.com/mmynk/sotien/pkg/api"
	"github.com/mmynk/sotien/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.SetupWith(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, err := openStore(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DB.Driver)

	m := metrics.New()
	predictor := newPredictor(cfg.Predictor, m)
	slog.Info("Category predictor ready", "mode", cfg.Predictor.Mode)

	var jwtManager *auth.JWTManager
	if cfg.Auth.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		slog.Info("Authentication enabled")
	} else {
		slog.Warn("Authentication disabled, all groups are visible to every caller")
	}

	public, guarded := interceptors(m, jwtManager)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(api.NewExpenseServiceHandler(service.NewExpenseService(store, m), guarded))
	mux.Handle(api.NewGroupServiceHandler(service.NewGroupService(store), guarded))
	mux.Handle(api.NewParserServiceHandler(service.NewParserService(amount.NewExtractor(), predictor, m), public))

	service.NewExportHandler(store, m, jwtManager).Register(mux)
	if cfg.Metrics.Path != "" {
		mux.Handle(cfg.Metrics.Path, m.Handler())
	}
	if cfg.StaticPath != "" {
		if err := registerStatic(mux, cfg.StaticPath); err != nil {
			return err
		}
	}

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(loggedHandler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// interceptors returns the handler options for the public parser service and
// for the account-scoped services. With authentication on, the parser still
// accepts anonymous calls but attributes signed ones to their user.
func interceptors(m *metrics.Metrics, jwtManager *auth.JWTManager) (public, guarded connect.HandlerOption) {
	if jwtManager == nil {
		opts := connect.WithInterceptors(
			middleware.MetricsInterceptor(m),
			middleware.LoggingInterceptor(),
		)
		return opts, opts
	}

	public = connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	guarded = connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	return public, guarded
}

func openStore(ctx context.Context, cfg config.DBConfig) (storage.Store, error) {
	if cfg.Driver == config.DriverPostgres {
		return postgres.New(ctx, cfg.URL)
	}
	return sqlite.New(cfg.Path)
}

func newPredictor(cfg config.PredictorConfig, m *metrics.Metrics) category.Predictor {
	classifier := category.NewClassifier()
	if cfg.Mode != config.PredictorRemote {
		return category.NewKeywordPredictor(classifier)
	}
	return category.NewRemotePredictor(
		category.NewRemoteClient(cfg.URL, nil),
		classifier,
		category.WithThreshold(cfg.Threshold),
		category.WithTimeout(cfg.Timeout),
		category.WithFallbackHook(m.PredictorFallback),
	)
}

// registerStatic serves the web frontend for every path not claimed by an
// API route.
func registerStatic(mux *http.ServeMux, staticPath string) error {
	staticDir, err := filepath.Abs(staticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Unknown Connect procedures must not fall through to index.html
		if strings.HasPrefix(r.URL.Path, "/sotien.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
	return nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
