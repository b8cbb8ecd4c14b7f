package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Too-lit247/my-guardian/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	pingAttempts  = 5
	pingBaseDelay = 500 * time.Millisecond
)

// NewPostgresDB создает пул соединений PostgreSQL и ждет, пока база станет доступна
func NewPostgresDB(ctx context.Context, appCfg *config.Config, log *logrus.Logger) (*pgxpool.Pool, error) {
	cfgPool, err := pgxpool.ParseConfig(appCfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}
	cfgPool.MaxConnIdleTime = 5 * time.Minute
	cfgPool.HealthCheckPeriod = time.Minute

	dbpool, err := pgxpool.NewWithConfig(ctx, cfgPool)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	// Проверяем соединение с базой данных, база может подниматься дольше сервиса
	delay := pingBaseDelay
	for attempt := 1; ; attempt++ {
		err = dbpool.Ping(ctx)
		if err == nil {
			return dbpool, nil
		}
		if attempt == pingAttempts {
			break
		}
		log.WithError(err).WithField("attempt", attempt).Warn("PostgreSQL is not ready, retrying")
		select {
		case <-ctx.Done():
			dbpool.Close()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	dbpool.Close()
	return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
}
