package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"

	"github.com/dinehub/dinehub/internal/admin"
	adminpostgres "github.com/dinehub/dinehub/internal/admin/postgres"
	"github.com/dinehub/dinehub/internal/admin/rediscache"
	"github.com/dinehub/dinehub/internal/catalog"
	catalogpostgres "github.com/dinehub/dinehub/internal/catalog/postgres"
	"github.com/dinehub/dinehub/internal/config"
	"github.com/dinehub/dinehub/internal/database"
	idempostgres "github.com/dinehub/dinehub/internal/idempotency/postgres"
	"github.com/dinehub/dinehub/internal/identity"
	"github.com/dinehub/dinehub/internal/kafka"
	"github.com/dinehub/dinehub/internal/orders/adapters"
	httpadapter "github.com/dinehub/dinehub/internal/orders/adapters/http"
	orderspostgres "github.com/dinehub/dinehub/internal/orders/adapters/postgres"
	ordersapp "github.com/dinehub/dinehub/internal/orders/app"
	ordersmetrics "github.com/dinehub/dinehub/internal/orders/metrics"
	"github.com/dinehub/dinehub/internal/orders/ports"
	"github.com/dinehub/dinehub/internal/payments"
	"github.com/dinehub/dinehub/internal/reviews"
	reviewspostgres "github.com/dinehub/dinehub/internal/reviews/postgres"
	"github.com/dinehub/dinehub/internal/telemetry"
	"github.com/dinehub/dinehub/internal/users"
	userspostgres "github.com/dinehub/dinehub/internal/users/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := telemetry.NewLogger(telemetry.ParseLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing && cfg.Telemetry.OTelEndpoint != "",
		EnableMetrics:  cfg.Telemetry.EnableMetrics && cfg.Telemetry.OTelEndpoint != "",
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	meter := otel.Meter(cfg.Service.Name)

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create database metrics: %w", err)
	}
	kafkaMetrics, err := kafka.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create kafka metrics: %w", err)
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create order metrics: %w", err)
	}
	httpMetrics, err := httpadapter.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create http metrics: %w", err)
	}

	var eventBus ports.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("kafka publisher close failed", "error", err)
			}
		}()
		eventBus = publisher
		logger.Info("kafka publisher enabled", "topic", cfg.Kafka.Topic)
	} else {
		eventBus = kafka.NewNoopEventBus()
	}

	catalogStore := catalogpostgres.NewStore(pool)
	userStore := userspostgres.NewStore(pool)

	repo := adapters.NewObservableRepository(orderspostgres.NewRepository(pool), dbMetrics)
	observedBus := adapters.NewObservableEventBus(eventBus, kafkaMetrics)

	orderService := ordersapp.NewService(
		repo,
		catalogStore,
		userStore,
		observedBus,
		idempostgres.NewStore(pool),
		logger,
		orderMetrics,
	)

	catalogService := catalog.NewService(catalogStore, logger)
	reviewService := reviews.NewService(reviewspostgres.NewStore(pool), catalogStore, logger)

	var statsCache admin.StatsCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("redis close failed", "error", err)
			}
		}()
		statsCache = rediscache.NewCache(redisClient, cfg.Redis.StatsTTL)
		logger.Info("admin stats cache enabled", "addr", cfg.Redis.Addr)
	}
	adminService := admin.NewService(adminpostgres.NewSource(pool), statsCache, logger)

	gateway := payments.NewClient(cfg.Payments.GatewayURL, cfg.Payments.APIKey, cfg.Payments.Timeout)
	checkoutService := payments.NewCheckoutService(gateway, orderService, cfg.Payments.Currency, cfg.Payments.AppBaseURL, logger)
	reconciler := payments.NewReconciler(orderService, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckHealth(r.Context(), pool); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	reviewHandler := reviews.NewHandler(reviewService)
	httpadapter.NewHandler(orderService).Register(mux)
	catalog.NewHandler(catalogService, reviewHandler).Register(mux)
	users.NewHandler(userStore).Register(mux)
	admin.NewHandler(adminService).Register(mux)
	payments.NewHandler(checkoutService, reconciler, cfg.Payments.WebhookSecret, orderMetrics, logger).Register(mux)

	authenticated := identity.Middleware(identity.NewPostgresProvider(pool))(mux)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: true,
	})

	handler := httpadapter.WithRecovery(
		httpadapter.WithRequestLogging(
			httpadapter.WithMetrics(
				corsMiddleware.Handler(authenticated),
				httpMetrics,
			),
			logger,
		),
		logger,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
