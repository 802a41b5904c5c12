package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "route-engine/internal/app"
	"route-engine/internal/handlers/rest/driver_earnings_get"
	"route-engine/internal/handlers/rest/healthcheck_head"
	"route-engine/internal/handlers/rest/order_cancel_post"
	"route-engine/internal/handlers/rest/order_cost_split_get"
	"route-engine/internal/handlers/rest/order_post"
	"route-engine/internal/handlers/rest/ping_get"
	"route-engine/internal/handlers/rest/route_cancel_post"
	"route-engine/internal/handlers/rest/route_claim_post"
	"route-engine/internal/handlers/rest/route_complete_post"
	"route-engine/internal/handlers/rest/route_earnings_correct_post"
	"route-engine/internal/handlers/rest/route_earnings_finalize_post"
	"route-engine/internal/handlers/rest/route_progress_get"
	"route-engine/internal/handlers/rest/route_release_post"
	"route-engine/internal/handlers/rest/route_start_post"
	"route-engine/internal/handlers/rest/route_tips_post"
	"route-engine/internal/handlers/rest/routes_open_get"
	"route-engine/internal/handlers/rest/stop_status_post"
	"route-engine/internal/pkg/config"
	"route-engine/internal/pkg/dotenv"
	"route-engine/internal/pkg/grpcserver"
	metrics_system "route-engine/internal/pkg/metrics"
	"route-engine/internal/pkg/middlewares/cors"
	"route-engine/internal/pkg/middlewares/graceful_shutdown"
	"route-engine/internal/pkg/middlewares/metrics"
	"route-engine/internal/pkg/middlewares/rate_limiter"
	"route-engine/internal/pkg/middlewares/recovery"
	"route-engine/internal/pkg/middlewares/timeout"
	"route-engine/pkg/clock"
	"route-engine/pkg/logger"
	"route-engine/pkg/logger/zap_adapter"
	"route-engine/pkg/token_bucket"
)

func main() {
	if err := dotenv.Load(); err != nil {
		stdlog.Fatalf("failed to load environment: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting route-engine application")

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	storage, closeStorage, err := application.NewStorage(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closeStorage()

	distance, closeDistance, err := application.NewDistance(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("distance: %w", err)
	}
	defer closeDistance()

	notifier, closeNotifier, err := application.NewNotifier(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("notifier: %w", err)
	}
	defer closeNotifier()

	clk := clock.New()

	businessApp, err := application.InitializeApplication(ctx, log, cfg, storage, distance, notifier, clk)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	if err := metrics_system.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("system metrics: %w", err)
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, clk, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// grpc health сервер
	var grpcServer *grpcserver.Server
	var grpcServerErr chan error
	if cfg.Server.GRPCPort != "" {
		grpcServer = grpcserver.New(log)

		grpcServerErr = make(chan error, 1)
		go func() {
			defer close(grpcServerErr)
			if err := grpcServer.ListenAndServe(cfg.Server.GRPCPort); err != nil {
				grpcServerErr <- err
			}
		}()
	}
	// grpc health сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-grpcServerErr: // nil канал, если GRPC_PORT не задан
		return fmt.Errorf("grpc server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	if grpcServer != nil {
		grpcServer.Drain()
	}

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}
	if grpcServer != nil {
		grpcServer.GracefulStop(shutdownHardPeriod)
	}

	// фоновые свипы остановлены вместе с ctx, дожидаемся текущего прохода
	businessApp.BackgroundWorkers.Wait()

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, clk application.Clock, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(recovery.Middleware(log))
	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewKeyed(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD", "GET")
	router.Handle("/ping", ping_get.New(log, clk)).Methods("GET")

	router.Handle("/orders", order_post.New(log, app.ServiceIntake)).Methods("POST")
	router.Handle("/orders/{id}/cancel", order_cancel_post.New(log, app.ServiceTracking)).Methods("POST")
	router.Handle("/orders/{id}/cost-split", order_cost_split_get.New(log, app.ServiceEarnings)).Methods("GET")

	router.Handle("/routes/open", routes_open_get.New(log, app.ServiceLedger)).Methods("GET")
	router.Handle("/routes/{id}/claim", route_claim_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/routes/{id}/release", route_release_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/routes/{id}/start", route_start_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/routes/{id}/complete", route_complete_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/routes/{id}/cancel", route_cancel_post.New(log, app.ServiceLedger)).Methods("POST")
	router.Handle("/routes/{id}/progress", route_progress_get.New(log, app.ServiceTracking)).Methods("GET")

	router.Handle("/routes/{id}/earnings/finalize", route_earnings_finalize_post.New(log, app.ServiceEarnings)).Methods("POST")
	router.Handle("/routes/{id}/earnings/correct", route_earnings_correct_post.New(log, app.ServiceEarnings)).Methods("POST")
	router.Handle("/routes/{id}/tips", route_tips_post.New(log, app.ServiceEarnings)).Methods("POST")
	router.Handle("/drivers/{id}/earnings", driver_earnings_get.New(log, app.ServiceEarnings)).Methods("GET")

	router.Handle("/stops/{id}/status", stop_status_post.New(log, app.ServiceTracking)).Methods("POST")

	if cfg.CORSOrigins == "" {
		return router
	}
	// preflight OPTIONS не доходит до router.Use, поэтому CORS оборачивает весь роутер
	return cors.Middleware(cfg.CORSOrigins)(router)
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD", "GET")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
