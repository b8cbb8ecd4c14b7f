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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Too-lit247/my-guardian/internal/config"
	v1 "github.com/Too-lit247/my-guardian/internal/handler/http/v1"
	"github.com/Too-lit247/my-guardian/internal/metrics"
	"github.com/Too-lit247/my-guardian/internal/repository"
	"github.com/Too-lit247/my-guardian/internal/service"
	"github.com/Too-lit247/my-guardian/internal/tracing"
	"github.com/Too-lit247/my-guardian/internal/webhook"
	"github.com/Too-lit247/my-guardian/pkg/logger"
	"github.com/Too-lit247/my-guardian/pkg/postgres"
	redisclient "github.com/Too-lit247/my-guardian/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/Too-lit247/my-guardian/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title My Guardian Emergency Routing API
// @version 1.0
// @description Emergency alert routing: device ingestion, incident classification and nearest-station assignment.
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

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
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

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.ServiceName)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Трассировка
	shutdownTracing, err := tracing.Init(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}
	defer tracing.Shutdown(shutdownTracing, log)

	// Метрики
	collector, err := metrics.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация издателя вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)

	// Инициализация и запуск воркера вебхуков
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Инициализация репозиториев
	stationRepo := repository.NewStationRepository(dbpool)
	if cfg.StationCacheTTL > 0 {
		stationRepo = repository.NewCachedStationRepository(stationRepo, redisClient, cfg.StationCacheTTL, log)
	}
	alertRepo := repository.NewAlertRepository(dbpool)
	deviceRepo := repository.NewDeviceRepository(dbpool)

	// Маршрутизация
	classifier := service.NewDepartmentClassifier()
	finder := service.NewStationFinder(stationRepo, collector)
	router := service.NewAlertRouter(classifier, finder, alertRepo, webhookPublisher, collector, log, cfg)
	evaluator := service.NewEmergencyTriggerEvaluator(collector)

	// Фоновое назначение станций тревогам без станции
	reconciler := service.NewReconciler(alertRepo, finder, collector, log, cfg)
	reconciler.Start(ctx)

	// Инициализация сервисов
	alertService := service.NewAlertService(router, alertRepo, stationRepo, reconciler, log, cfg)
	stationService := service.NewStationService(finder, log)
	deviceService := service.NewDeviceService(deviceRepo, evaluator, router, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(alertService, stationService, deviceService, log, cfg)

	// Настройка Gin роутера
	engine := gin.Default()
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики Prometheus
	engine.GET("/metrics", gin.WrapH(collector.Handler()))

	// Добавление маршрута для Swagger UI
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
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

	// Останавливаем воркер вебхуков и сверку
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
