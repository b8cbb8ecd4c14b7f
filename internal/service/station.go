package service

import (
	"context"
	"fmt"

	"github.com/Too-lit247/my-guardian/internal/geo"
	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/sirupsen/logrus"
)

type stationService struct {
	finder *StationFinder
	logger *logrus.Logger
}

func NewStationService(finder *StationFinder, logger *logrus.Logger) StationService {
	return &stationService{finder: finder, logger: logger}
}

// Nearest возвращает ближайшую станцию службы. Если станции нет, возвращает ErrNotFound.
func (s *stationService) Nearest(ctx context.Context, point models.GeoPoint, department models.Department, maxDistanceKm float64) (*models.StationMatch, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "station",
		"method":     "Nearest",
		"department": department,
	})
	if err := validateQuery(point, department); err != nil {
		log.WithError(err).Warn("Rejected station query")
		return nil, err
	}

	match, err := s.finder.FindNearest(ctx, point, department, maxDistanceKm)
	if err != nil {
		log.WithError(err).Error("Failed to find nearest station")
		return nil, err
	}
	if match == nil {
		log.Info("No station within distance cap")
		return nil, fmt.Errorf("service: no active %s station near %s: %w", department, point, ErrNotFound)
	}
	match.DistanceKm = geo.RoundKm(match.DistanceKm)
	return match, nil
}

// WithinRadius возвращает станции службы в радиусе по возрастанию расстояния
func (s *stationService) WithinRadius(ctx context.Context, point models.GeoPoint, department models.Department, radiusKm float64) ([]models.StationMatch, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "station",
		"method":     "WithinRadius",
		"department": department,
		"radius_km":  radiusKm,
	})
	if err := validateQuery(point, department); err != nil {
		log.WithError(err).Warn("Rejected station query")
		return nil, err
	}

	matches, err := s.finder.FindWithinRadius(ctx, point, department, radiusKm)
	if err != nil {
		log.WithError(err).Error("Failed to find stations within radius")
		return nil, err
	}
	for i := range matches {
		matches[i].DistanceKm = geo.RoundKm(matches[i].DistanceKm)
	}
	log.WithField("count", len(matches)).Info("Stations found within radius")
	return matches, nil
}

func validateQuery(point models.GeoPoint, department models.Department) error {
	if !point.Valid() {
		return fmt.Errorf("service: coordinates out of range (%s): %w", point, ErrValidation)
	}
	if !department.Valid() {
		return fmt.Errorf("service: unknown department %q: %w", department, ErrValidation)
	}
	return nil
}
