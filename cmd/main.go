package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/family_locator/internal/config"
	v1 "github.com/shenikar/family_locator/internal/handler/http/v1"
	"github.com/shenikar/family_locator/internal/realtime"
	"github.com/shenikar/family_locator/internal/repository"
	"github.com/shenikar/family_locator/internal/service"
	"github.com/shenikar/family_locator/internal/session"
	"github.com/shenikar/family_locator/internal/webhook"
	"github.com/shenikar/family_locator/pkg/logger"
	"github.com/shenikar/family_locator/pkg/postgres"
	redisclient "github.com/shenikar/family_locator/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/family_locator/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Family Locator API
// @version 1.0
// @description Live location sharing between followed users with geofence alerts.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New("file://migrations", migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	// Контекст фоновых воркеров
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	hub := realtime.NewHub(redisClient)

	// Очередь push-уведомлений и ее воркер
	pushPublisher := webhook.NewRedisPublisher(redisClient)
	pushWorker := webhook.NewWorker(redisClient, log, cfg)
	pushWorker.Start(ctx)

	// Репозитории
	profileRepo := repository.NewProfileRepository(dbpool, hub)
	locationRepo := repository.NewLocationRepository(dbpool, redisClient, hub)
	notificationRepo := repository.NewNotificationRepository(dbpool)

	// Сервисы
	profileService := service.NewProfileService(profileRepo, notificationRepo, log)
	sessionManager := session.NewManager(session.Deps{
		Locations:     locationRepo,
		Profiles:      profileService,
		Notifications: notificationRepo,
		Push:          pushPublisher,
		Logger:        log,
	}, cfg)

	handler := v1.NewHandler(sessionManager, profileService, log, cfg)

	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Сессии закрываются до остановки воркера, чтобы их последние push-события попали в очередь
	sessionManager.Shutdown()
	cancel()

	log.Info("Server gracefully stopped")
}
