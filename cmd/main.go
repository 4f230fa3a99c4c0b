package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"bitary-listing-service/internal/api"
	"bitary-listing-service/internal/config"
	"bitary-listing-service/internal/listing"
	"bitary-listing-service/internal/logger"
	"bitary-listing-service/internal/service"
	"bitary-listing-service/internal/storage"
	"bitary-listing-service/internal/store"
)

const serviceName = "bitary-listing-service"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found, relying on system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Error loading configuration: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: Error building logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zl = zl.With(zap.String("service", serviceName))
	zl.Info("configuration loaded", zap.String("app_env", cfg.AppEnv), zap.String("log_level", cfg.LogLevel))

	// --- Database Connection ---
	db, err := sql.Open("postgres", cfg.Postgres.DSN())
	if err != nil {
		zl.Fatal("failed to initialize database connection", zap.Error(err))
	}
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		zl.Fatal("failed to ping database", zap.Error(err))
	}
	zl.Info("database connection established")
	dbStore := store.NewPostgresStore(db, zl.Named("store"))

	// --- Listing pipelines and use cases ---
	images := newImageResolver(cfg.S3, zl)
	collation, err := language.Parse(cfg.Listing.Collation)
	if err != nil {
		zl.Fatal("invalid LISTING_COLLATION", zap.String("value", cfg.Listing.Collation), zap.Error(err))
	}
	shopPipeline := listing.NewShopPipeline(
		listing.WithPageSize(cfg.Listing.ShopPageSize),
		listing.WithCollation(collation),
	)
	clinicsPipeline := listing.NewClinicsPipeline(
		listing.WithPremiumThreshold(cfg.Listing.PremiumThreshold),
		listing.WithCollation(collation),
	)
	zl.Info("listing pipelines ready",
		zap.Int("shop_page_size", shopPipeline.PageSize()),
		zap.Bool("clinics_paginated", clinicsPipeline.Paginated()),
		zap.Float64("premium_threshold", cfg.Listing.PremiumThreshold),
	)
	shopService := service.NewShopService(dbStore, dbStore, images, shopPipeline, zl.Named("shop"))
	clinicService := service.NewClinicService(dbStore, clinicsPipeline, cfg.Listing.ActiveClinicsOnly, zl.Named("clinics"))

	httpAPIHandler := api.NewHTTPHandler(shopService, clinicService, zl.Named("http"))
	grpcAPIHandler := api.NewGRPCHandler(shopService, clinicService, zl.Named("grpc"))

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter)
	registerHealthCheck(httpRouter, zl, dbStore)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		zl.Info("HTTP server listening", zap.String("port", cfg.HttpServer.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("HTTP server ListenAndServe error", zap.Error(err))
		}
		zl.Info("HTTP server has stopped")
	}()

	// --- Setup & Start gRPC Server ---
	grpcServer := setupGRPCServer(zl, grpcAPIHandler)
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		zl.Fatal("failed to listen for gRPC", zap.String("port", cfg.GrpcServer.Port), zap.Error(err))
	}

	go func() {
		zl.Info("gRPC server listening", zap.String("port", cfg.GrpcServer.Port))
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			zl.Fatal("gRPC server Serve error", zap.Error(err))
		}
		zl.Info("gRPC server has stopped")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(zl, httpServer, grpcServer, dbStore, shutdownComplete)

	<-shutdownComplete
	zl.Info("service shutdown sequence finished")
}

// newImageResolver presigns object keys when an S3 endpoint is configured
// and serves stored references unchanged otherwise.
func newImageResolver(cfg config.S3Config, zl *zap.Logger) storage.ImageResolver {
	if cfg.Endpoint == "" {
		zl.Info("S3 endpoint not set, image references served as stored")
		return storage.PassthroughResolver{}
	}
	resolver, err := storage.NewS3ImageResolver(cfg)
	if err != nil {
		zl.Fatal("failed to init image resolver", zap.Error(err))
	}
	zl.Info("image presigning enabled", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))
	return resolver
}

func setupBaseMiddleware(router *chi.Mux) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
}

func registerHealthCheck(router *chi.Mux, zl *zap.Logger, dbStore *store.PostgresStore) {
	healthPath := "/api/v1/healthz"
	router.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		dbStatus := "healthy"
		if err := dbStore.Ping(ctx); err != nil {
			dbStatus = "unhealthy"
			zl.Warn("health check DB ping failed", zap.Error(err))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK) // Always 200, payload carries the database status
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "healthy",
			"serviceName": serviceName,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"database":    dbStatus,
		})
	})
}

func setupGRPCServer(zl *zap.Logger, grpcAPIHandler *api.GRPCHandler) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(api.LoggingInterceptor(zl.Named("grpc"))))

	api.RegisterListingServer(s, grpcAPIHandler)
	grpc_health_v1.RegisterHealthServer(s, health.NewServer())
	reflection.Register(s)
	zl.Info("gRPC services registered", zap.String("service", api.ListingServiceName))

	return s
}

func waitForShutdown(
	zl *zap.Logger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	dbStore *store.PostgresStore,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	receivedSignal := <-sigChan
	zl.Info("received signal, starting graceful shutdown", zap.String("signal", receivedSignal.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zl.Warn("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		zl.Info("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		zl.Info("gRPC server gracefully shut down")
	case <-shutdownCtx.Done():
		zl.Warn("gRPC graceful shutdown timed out, forcing stop", zap.Error(shutdownCtx.Err()))
		grpcServer.Stop()
	}

	if err := dbStore.Close(); err != nil {
		zl.Warn("error closing database connection", zap.Error(err))
	}
}
