package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wareflow/internal/config"
	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
	dompurchase "github.com/kailas-cloud/wareflow/internal/domain/purchase"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	domuser "github.com/kailas-cloud/wareflow/internal/domain/user"
	logpkg "github.com/kailas-cloud/wareflow/internal/logger"
	"github.com/kailas-cloud/wareflow/internal/metrics"
	"github.com/kailas-cloud/wareflow/internal/repository/activity"
	"github.com/kailas-cloud/wareflow/internal/repository/memstore"
	"github.com/kailas-cloud/wareflow/internal/repository/seed"
	chiTransport "github.com/kailas-cloud/wareflow/internal/transport/chi"
	customeruc "github.com/kailas-cloud/wareflow/internal/usecase/customer"
	"github.com/kailas-cloud/wareflow/internal/usecase/dataview"
	healthuc "github.com/kailas-cloud/wareflow/internal/usecase/health"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
	purchaseuc "github.com/kailas-cloud/wareflow/internal/usecase/purchase"
	useruc "github.com/kailas-cloud/wareflow/internal/usecase/user"
	"github.com/kailas-cloud/wareflow/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting wareflow admin API",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("seed", cfg.Seed.IsEnabled()),
		zap.Bool("strict_fields", cfg.View.StrictFields),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterDataViewMetrics()

	var customerRecords, userRecords, purchaseRecords []record.Record
	var userActivity map[record.ID]domuser.Activity
	if cfg.Seed.IsEnabled() {
		now := time.Now()
		customerRecords = seed.CustomerRecords()
		userRecords = seed.UserRecords(now)
		purchaseRecords = seed.PurchaseRecords()
		userActivity = seed.UserActivity(now)
	}
	customerStore := memstore.New(domcust.SchemaName, customerRecords)
	userStore := memstore.New(domuser.SchemaName, userRecords)
	purchaseStore := memstore.New(dompurchase.SchemaName, purchaseRecords)
	logger.Info("Collections loaded",
		zap.Int("customers", len(customerRecords)),
		zap.Int("users", len(userRecords)),
		zap.Int("purchases", len(purchaseRecords)),
	)

	engineOpts := []dataview.Option{dataview.WithObserver(metrics.DataViewObserver{})}
	if cfg.View.StrictFields {
		engineOpts = append(engineOpts, dataview.WithStrictFields())
	}
	engine := dataview.New(logger, engineOpts...)

	listingOpts := []listing.Option{
		listing.WithLogger(logger),
		listing.WithLimits(listing.Limits{
			DefaultPageSize: cfg.View.DefaultPageSize,
			MaxPageSize:     cfg.View.MaxPageSize,
		}),
		listing.WithBulkObserver(metrics.ObserveBulk),
	}

	customerSvc := customeruc.New(customeruc.NewListing(customerStore, engine, listingOpts...))
	purchaseSvc := purchaseuc.New(purchaseuc.NewListing(purchaseStore, engine, listingOpts...), customerSvc)
	userSvc := useruc.New(useruc.NewListing(userStore, engine, listingOpts...),
		useruc.WithActivityLog(activity.New(userActivity)),
	)
	healthSvc := healthuc.New(customerStore, userStore, purchaseStore)

	server := chiTransport.NewServer(customerSvc, purchaseSvc, userSvc, healthSvc, logger,
		chiTransport.WithPageSizes(cfg.View.PageSizes),
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)
	r.Handle("/metrics", metrics.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logpkg.FromContextOr(r.Context(), logger).Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
