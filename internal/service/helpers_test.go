package service

import (
	"bytes"
	"time"

	"github.com/Too-lit247/my-guardian/internal/config"
	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// kmPerDegree - длина одного градуса меридиана при радиусе 6371 км
const kmPerDegree = 111.19492664455873

var origin = models.GeoPoint{Latitude: 0, Longitude: 0}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func newTestConfig() *config.Config {
	return &config.Config{
		RouteMaxDistanceKm:    config.DefaultMaxDistanceKm,
		StationSearchRadiusKm: config.DefaultSearchRadiusKm,
		ExternalCallTimeout:   time.Second,
		StationCoverageWindow: 24 * time.Hour,
		ReconcileBatchSize:    100,
	}
}

// stationAt создает активную станцию в km километрах к северу от origin
func stationAt(name string, department models.Department, km float64) models.Station {
	return models.Station{
		ID:         uuid.New(),
		Name:       name,
		Code:       name,
		Department: department,
		Location:   &models.GeoPoint{Latitude: km / kmPerDegree, Longitude: 0},
		Active:     true,
	}
}

func ptr[T any](v T) *T {
	return &v
}
