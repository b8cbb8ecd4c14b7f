package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/Too-lit247/my-guardian/internal/service"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	stationCacheKeyPrefix = "stations:active:"
	// Медленный Redis не должен задерживать поиск станции дольше этого
	stationCacheTimeout = time.Second
)

// CachedStationRepository кэширует список активных станций службы в Redis.
// Ошибки Redis не фатальны: чтение уходит в базу, запись кэша пропускается.
type CachedStationRepository struct {
	next        service.StationRepository
	redisClient *redis.Client
	ttl         time.Duration
	logger      *logrus.Logger
}

func NewCachedStationRepository(next service.StationRepository, redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) service.StationRepository {
	return &CachedStationRepository{
		next:        next,
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

// ListActiveStations отдает станции из кэша, при промахе читает базу и прогревает кэш
func (r *CachedStationRepository) ListActiveStations(ctx context.Context, department models.Department) ([]models.Station, error) {
	log := r.logger.WithFields(logrus.Fields{"repository": "station_cache", "department": department})

	stations, err := r.getFromCache(ctx, department)
	if err == nil {
		return stations, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.WithError(err).Warn("Station cache read failed")
	}

	stations, err = r.next.ListActiveStations(ctx, department)
	if err != nil {
		return nil, err
	}
	if err := r.setCache(ctx, department, stations); err != nil {
		log.WithError(err).Warn("Station cache write failed")
	}
	return stations, nil
}

func (r *CachedStationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Station, error) {
	return r.next.GetByID(ctx, id)
}

// Upsert пишет станцию и сбрасывает кэш всех служб: при смене службы устаревает и прежний список
func (r *CachedStationRepository) Upsert(ctx context.Context, station *models.Station) error {
	if err := r.next.Upsert(ctx, station); err != nil {
		return err
	}

	departments := models.Departments()
	keys := make([]string, 0, len(departments))
	for _, department := range departments {
		keys = append(keys, stationCacheKey(department))
	}

	cacheCtx, cancel := context.WithTimeout(ctx, stationCacheTimeout)
	defer cancel()
	if err := r.redisClient.Del(cacheCtx, keys...).Err(); err != nil {
		r.logger.WithError(err).WithField("station_code", station.Code).Warn("Failed to invalidate station cache")
	}
	return nil
}

func (r *CachedStationRepository) getFromCache(ctx context.Context, department models.Department) ([]models.Station, error) {
	cacheCtx, cancel := context.WithTimeout(ctx, stationCacheTimeout)
	defer cancel()

	val, err := r.redisClient.Get(cacheCtx, stationCacheKey(department)).Bytes()
	if err != nil {
		return nil, err
	}
	var stations []models.Station
	if err := json.Unmarshal(val, &stations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stations from cache: %w", err)
	}
	return stations, nil
}

func (r *CachedStationRepository) setCache(ctx context.Context, department models.Department, stations []models.Station) error {
	val, err := json.Marshal(stations)
	if err != nil {
		return fmt.Errorf("failed to marshal stations for cache: %w", err)
	}
	cacheCtx, cancel := context.WithTimeout(ctx, stationCacheTimeout)
	defer cancel()
	if err := r.redisClient.Set(cacheCtx, stationCacheKey(department), val, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set stations in cache: %w", err)
	}
	return nil
}

func stationCacheKey(department models.Department) string {
	return stationCacheKeyPrefix + string(department)
}
