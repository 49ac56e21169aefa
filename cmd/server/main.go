package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"puredrop/internal/auth"
	"puredrop/internal/config"
	"puredrop/internal/database"
	"puredrop/internal/handlers"
	"puredrop/internal/redis"
	"puredrop/internal/services"
	"puredrop/internal/storage"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
	}

	location, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Fatal("Invalid dashboard timezone")
	}

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout)
	store, err := database.Initialize(ctx, cfg.DatabaseURL, cfg.DatabaseName, logger)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	logger.WithField("backend", store.Backend).Info("Connected to database")

	checks := map[string]handlers.Pinger{"database": store}

	// Redis is optional; without it profiles are not cached and logins are not throttled
	var (
		redisClient *redis.Client
		shopCache   services.ShopCache
		limiter     services.LoginLimiter
	)
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout)
		redisClient, err = redis.Initialize(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		shopCache = redisClient
		limiter = redisClient
		checks["redis"] = redisClient
	}

	var images storage.ImageStore
	if cfg.MinioEndpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout)
		minioStore, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		cancel()
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize image storage")
		}
		images = minioStore
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	authService := services.NewAuthService(store.Owners, tokens, images, limiter, services.LoginPolicy{
		MaxAttempts: cfg.LoginMaxAttempts,
		Cooldown:    cfg.LoginCooldown,
	}, logger)
	shopService := services.NewShopService(store.Owners, shopCache, time.Duration(cfg.CacheTTL)*time.Second, logger)
	orderService := services.NewOrderService(store.Orders, store.Owners, location, logger)

	// Setup routes
	router := &handlers.Router{
		Owners:         handlers.NewOwnerHandler(authService, logger),
		Shops:          handlers.NewShopHandler(shopService, logger),
		Orders:         handlers.NewOrderHandler(orderService, logger),
		Health:         handlers.NewHealthHandler(checks, logger),
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.DatabaseTimeout,
		Logger:         logger,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.ServerPort).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close Redis connection")
		}
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.WithError(err).Warn("Failed to close database connection")
	}
	logger.Info("Server exited")
}
