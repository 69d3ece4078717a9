package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/multimark/motos/internal"
	"github.com/multimark/motos/internal/auth"
	"github.com/multimark/motos/internal/cdn"
	"github.com/multimark/motos/internal/handler"
	"github.com/multimark/motos/internal/metrics"
	"github.com/multimark/motos/internal/middleware"
	"github.com/multimark/motos/internal/repository"
	"github.com/multimark/motos/internal/service"
	"github.com/multimark/motos/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sqlx.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(db.DB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	// Initialize repository and services
	repo := repository.New(db)
	motoService := service.NewMotoService(repo, logger)
	settingsService := service.NewSettingsService(repo, logger)

	// Session manager for the single admin principal
	sessions, err := auth.NewManager(auth.Config{
		Secret:            cfg.AuthSecret,
		AdminEmail:        cfg.AdminEmail,
		AdminPassword:     cfg.AdminPassword,
		AdminPasswordHash: cfg.AdminPasswordHash,
	}, logger)
	if err != nil {
		return fmt.Errorf("session manager initialization failed: %w", err)
	}

	// Image pipeline: Cloudinary does its processing server-side, the
	// storage providers get a local thumbnail pass instead.
	var imageService service.ImageService
	var localStore *storage.LocalStorage
	switch cfg.StorageProvider {
	case "cloudinary":
		client := cdn.NewClient(cdn.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		}, logger)
		imageService = service.NewCDNImageService(client, logger)
	case "r2":
		store, err := storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		}, logger)
		if err != nil {
			return fmt.Errorf("R2 storage initialization failed: %w", err)
		}
		imageService = service.NewStorageImageService(store, logger)
	default:
		localStore, err = storage.NewLocalStorage(storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		}, logger)
		if err != nil {
			return fmt.Errorf("local storage initialization failed: %w", err)
		}
		imageService = service.NewStorageImageService(localStore, logger)
	}

	// Initialize middleware
	isSecure := cfg.Env != "development"
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(sessions, logger, isSecure)
	motoHandler := handler.NewMotoHandler(motoService, repo, sessions, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, sessions, logger)
	uploadHandler := handler.NewUploadHandler(imageService, sessions, logger)
	maintenanceHandler := handler.NewMaintenanceHandler(motoService, settingsService, repo, sessions, logger, cfg.Env, cfg.StorageProvider)
	pageHandler, err := handler.NewPageHandler(motoService, settingsService, logger)
	if err != nil {
		return fmt.Errorf("page handler initialization failed: %w", err)
	}

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	handler.RegisterStaticRoutes(mux)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics (basic auth when configured)
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Locally stored uploads
	if localStore != nil {
		mux.Handle("GET /files/", http.StripPrefix("/files/", http.FileServer(http.Dir(localStore.BasePath()))))
	}

	authHandler.RegisterRoutes(mux)
	motoHandler.RegisterRoutes(mux)
	settingsHandler.RegisterRoutes(mux)
	uploadHandler.RegisterRoutes(mux)
	maintenanceHandler.RegisterRoutes(mux)
	pageHandler.RegisterRoutes(mux)

	// Cookie-presence redirects run at the edge for the admin pages;
	// WithSession verifies the token once and exposes the claims to page
	// handlers through the request context.
	stack := middleware.Stack(
		securityMw.Handler,
		loggingMw.Handler,
		metrics.Middleware,
		middleware.WithSession(sessions),
		middleware.AdminPages,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: stack(mux),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "storage", cfg.StorageProvider)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
