package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Too-lit247/my-guardian/internal/config"
	"github.com/Too-lit247/my-guardian/internal/repository"
	"github.com/Too-lit247/my-guardian/internal/seed"
	"github.com/Too-lit247/my-guardian/pkg/logger"
	"github.com/Too-lit247/my-guardian/pkg/postgres"
	redisclient "github.com/Too-lit247/my-guardian/pkg/redis"
	"github.com/sirupsen/logrus"
)

// Загружает справочник станций из YAML в базу. Таблицы должны быть созданы миграциями основного сервиса.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	file := flag.String("file", cfg.StationsSeedFile, "path to the stations YAML file")
	flag.Parse()

	log := logger.New(cfg.LogLevel, "seed-stations")
	if *file == "" {
		log.Fatal("Stations file is not set: use -file or STATIONS_SEED_FILE")
	}

	stations, err := seed.Load(*file)
	if err != nil {
		log.Fatalf("Failed to load stations: %v", err)
	}
	log.WithField("count", len(stations)).Info("Stations file parsed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbpool, err := postgres.NewPostgresDB(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()

	// При включенном кэше пишем через него, чтобы сервис сразу увидел изменения
	stationRepo := repository.NewStationRepository(dbpool)
	if cfg.StationCacheTTL > 0 {
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		stationRepo = repository.NewCachedStationRepository(stationRepo, redisClient, cfg.StationCacheTTL, log)
	}

	applied, err := seed.Apply(ctx, stationRepo, stations, log)
	log.WithFields(logrus.Fields{"applied": applied, "total": len(stations)}).Info("Stations seeded")
	if err != nil {
		log.WithError(err).Error("Some stations were not seeded")
		dbpool.Close()
		os.Exit(1)
	}
}
