package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/gearcheck/internal/admin"
	"github.com/mmynk/gearcheck/internal/api"
	"github.com/mmynk/gearcheck/internal/app"
	"github.com/mmynk/gearcheck/internal/auth"
	"github.com/mmynk/gearcheck/internal/config"
	"github.com/mmynk/gearcheck/internal/metrics"
	"github.com/mmynk/gearcheck/internal/middleware"
	"github.com/mmynk/gearcheck/internal/service"
	"github.com/mmynk/gearcheck/internal/verify"
	"github.com/mmynk/gearcheck/pkg/logging"
	"github.com/mmynk/gearcheck/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "gearcheck",
		Short:         "Serve the equipment verification form and admin API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("GEARCHECK_CONFIG"), "path to a YAML config file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	logging.Setup()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Configure(cfg.LogLevel, cfg.LogFormat)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	store, err := app.NewTableStore(ctx, cfg, m)
	if err != nil {
		return err
	}

	// A failed first load is not fatal: every request retries the backends.
	if res, err := store.Load(ctx); err != nil {
		slog.Error("Initial table load failed", "error", err)
	} else {
		slog.Info("Table loaded",
			"source", res.Source,
			"people", len(store.Schema().Names(res.Table)),
			"items", len(store.Schema().Items(res.Table)),
		)
	}

	vlog, err := app.OpenVerificationLog(cfg)
	if err != nil {
		return err
	}
	if vlog != nil {
		defer vlog.Close()
	}

	gate, err := auth.NewPasswordGate(cfg.Admin.Password)
	if err != nil {
		return err
	}
	secret := cfg.Admin.TokenSecret
	if !gate.Enabled() {
		slog.Warn("Admin password not set, admin API is disabled")
	}
	if secret == "" {
		secret = uuid.NewString()
	}
	jwtManager := auth.NewJWTManager(secret, cfg.Admin.TokenTTL)

	mux := http.NewServeMux()

	// Register Connect services
	verifySvc := service.NewVerificationService(store, verify.NewRegistry(cfg.SessionTTL), vlog, m)
	verifyPath, verifyHandler := api.NewVerificationServiceHandler(verifySvc,
		connect.WithInterceptors(middleware.LoggingInterceptor(m)),
	)
	mux.Handle(verifyPath, verifyHandler)

	adminSvc := service.NewAdminService(admin.NewManager(store, vlog), gate, jwtManager)
	adminPath, adminHandler := api.NewAdminServiceHandler(adminSvc,
		connect.WithInterceptors(
			middleware.LoggingInterceptor(m),
			middleware.RequireAdmin(jwtManager, api.AdminServiceLoginProcedure),
		),
	)
	mux.Handle(adminPath, adminHandler)

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/", http.FileServer(http.FS(web.Static())))

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(loggedHandler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", cfg.Addr, "url", fmt.Sprintf("http://localhost%s", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
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

		slog.Debug("Request completed",
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
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
