package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Too-lit247/my-guardian/internal/config"
	"github.com/Too-lit247/my-guardian/internal/geo"
	"github.com/Too-lit247/my-guardian/internal/metrics"
	"github.com/Too-lit247/my-guardian/internal/models"
)

// StationFinder ищет станции по расстоянию над текущим снимком справочника.
// Результаты не кешируются: каждый вызов заново читает справочник.
type StationFinder struct {
	directory StationDirectory
	metrics   *metrics.Collector
}

func NewStationFinder(directory StationDirectory, collector *metrics.Collector) *StationFinder {
	return &StationFinder{directory: directory, metrics: collector}
}

// FindNearest возвращает ближайшую активную станцию службы не дальше maxDistanceKm (граница включительно).
// nil без ошибки означает, что подходящей станции нет. При равных расстояниях побеждает первая в справочнике.
// Неположительный maxDistanceKm заменяется на 100 км.
func (f *StationFinder) FindNearest(ctx context.Context, point models.GeoPoint, department models.Department, maxDistanceKm float64) (*models.StationMatch, error) {
	if maxDistanceKm <= 0 {
		maxDistanceKm = config.DefaultMaxDistanceKm
	}

	candidates, err := f.candidates(ctx, point, department)
	if err != nil {
		return nil, err
	}

	var nearest *models.StationMatch
	for i := range candidates {
		if nearest == nil || candidates[i].DistanceKm < nearest.DistanceKm {
			nearest = &candidates[i]
		}
	}
	if nearest == nil || nearest.DistanceKm > maxDistanceKm {
		return nil, nil
	}
	return nearest, nil
}

// FindWithinRadius возвращает все станции службы в радиусе radiusKm по возрастанию расстояния.
// Неположительный radiusKm заменяется на 50 км.
func (f *StationFinder) FindWithinRadius(ctx context.Context, point models.GeoPoint, department models.Department, radiusKm float64) ([]models.StationMatch, error) {
	if radiusKm <= 0 {
		radiusKm = config.DefaultSearchRadiusKm
	}

	candidates, err := f.candidates(ctx, point, department)
	if err != nil {
		return nil, err
	}

	matches := make([]models.StationMatch, 0, len(candidates))
	for _, c := range candidates {
		if c.DistanceKm <= radiusKm {
			matches = append(matches, c)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	return matches, nil
}

// candidates отбирает активные станции нужной службы с координатами и считает расстояние до точки
func (f *StationFinder) candidates(ctx context.Context, point models.GeoPoint, department models.Department) ([]models.StationMatch, error) {
	start := time.Now()
	stations, err := f.directory.ListActiveStations(ctx, department)
	f.metrics.ObserveLookup(department.String(), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("service: could not list %s stations: %w", department, err)
	}

	out := make([]models.StationMatch, 0, len(stations))
	for _, s := range stations {
		if !s.Active || s.Department != department || s.Location == nil {
			continue
		}
		out = append(out, models.StationMatch{
			Station:    s,
			DistanceKm: geo.DistanceKm(point, *s.Location),
		})
	}
	return out, nil
}
