package commands

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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitbill/internal/auth"
	"github.com/mmynk/splitbill/internal/buildinfo"
	"github.com/mmynk/splitbill/internal/config"
	"github.com/mmynk/splitbill/internal/middleware"
	"github.com/mmynk/splitbill/internal/service"
	"github.com/mmynk/splitbill/internal/storage/sqlite"
	"github.com/mmynk/splitbill/pkg/api/apiconnect"
	"github.com/mmynk/splitbill/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr: cfg.Addr(),
		// h2c serves HTTP/2 without TLS, which Connect clients may use.
		Handler:           h2c.NewHandler(a.handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting",
			"address", srv.Addr,
			"url", fmt.Sprintf("http://localhost%s", srv.Addr),
			"version", buildinfo.Version,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// app is the wired server: storage, services and the HTTP handler tree.
type app struct {
	store   *sqlite.SQLiteStore
	handler http.Handler
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	store, err := sqlite.New(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	logger.Info("Storage initialized", "database", cfg.Storage.DatabasePath)

	if cfg.Auth.JWTSecret == config.DevJWTSecret {
		logger.Warn("Using the development JWT secret; set JWT_SECRET in production")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(metrics),
		service.WithRemainder(cfg.RemainderPolicy()),
	}
	// Metrics count rejected calls too. Logging sits inside auth to see the caller.
	protected := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(logger),
	)
	public := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, logger), public))
	mux.Handle(apiconnect.NewBillServiceHandler(service.NewBillService(store, opts...), protected))
	mux.Handle(apiconnect.NewParticipantServiceHandler(service.NewParticipantService(store, opts...), protected))
	mux.Handle(apiconnect.NewItemServiceHandler(service.NewItemService(store, opts...), protected))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	staticDir, err := filepath.Abs(cfg.Server.StaticPath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("resolving static path: %w", err)
	}
	logger.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	return &app{
		store:   store,
		handler: middleware.RequestLogger(logger, middleware.CORS(mux)),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// apiPrefix starts every Connect procedure path.
const apiPrefix = "/splitbill.v1."

// staticHandler serves the frontend. Unknown paths fall back to index.html
// so client-side routes resolve; unknown API paths stay 404.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))

		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	})
}
