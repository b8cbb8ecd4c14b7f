// Package seed загружает справочник станций из YAML-файла
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalidStation - запись файла не прошла проверку
var ErrInvalidStation = errors.New("invalid station entry")

// StationEntry - одна станция в файле
type StationEntry struct {
	Name       string   `yaml:"name"`
	Code       string   `yaml:"code"`
	Department string   `yaml:"department"` // fire | police | medical
	Region     string   `yaml:"region"`
	Latitude   *float64 `yaml:"latitude"`
	Longitude  *float64 `yaml:"longitude"`
	Active     *bool    `yaml:"active"` // по умолчанию true
}

type File struct {
	Stations []StationEntry `yaml:"stations"`
}

// StationWriter - получатель станций
type StationWriter interface {
	Upsert(ctx context.Context, station *models.Station) error
}

// Load читает и проверяет файл станций
func Load(path string) ([]models.Station, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(b)
}

// Parse разбирает YAML и проверяет каждую запись. Коды станций должны быть уникальны.
func Parse(data []byte) ([]models.Station, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	stations := make([]models.Station, 0, len(f.Stations))
	seen := make(map[string]int, len(f.Stations))
	var errs []error
	for i, e := range f.Stations {
		st, err := e.toStation()
		if err != nil {
			errs = append(errs, fmt.Errorf("station #%d: %w", i+1, err))
			continue
		}
		if prev, ok := seen[st.Code]; ok {
			errs = append(errs, fmt.Errorf("station #%d: code %q already used by #%d: %w", i+1, st.Code, prev, ErrInvalidStation))
			continue
		}
		seen[st.Code] = i + 1
		stations = append(stations, st)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return stations, nil
}

func (e StationEntry) toStation() (models.Station, error) {
	name := strings.TrimSpace(e.Name)
	code := strings.TrimSpace(e.Code)
	if name == "" || code == "" {
		return models.Station{}, fmt.Errorf("name and code are required: %w", ErrInvalidStation)
	}

	dept := models.Department(strings.ToLower(strings.TrimSpace(e.Department)))
	if !dept.Valid() {
		return models.Station{}, fmt.Errorf("unknown department %q: %w", e.Department, ErrInvalidStation)
	}

	if (e.Latitude == nil) != (e.Longitude == nil) {
		return models.Station{}, fmt.Errorf("latitude and longitude must be set together: %w", ErrInvalidStation)
	}
	location := models.NewGeoPoint(e.Latitude, e.Longitude)
	if location != nil && !location.Valid() {
		return models.Station{}, fmt.Errorf("coordinates out of range (%s): %w", location, ErrInvalidStation)
	}

	active := true
	if e.Active != nil {
		active = *e.Active
	}

	return models.Station{
		Name:       name,
		Code:       code,
		Department: dept,
		Region:     strings.TrimSpace(e.Region),
		Location:   location,
		Active:     active,
	}, nil
}

// Apply записывает станции по одной. Ошибка одной станции не останавливает остальные.
func Apply(ctx context.Context, w StationWriter, stations []models.Station, logger *logrus.Logger) (int, error) {
	var (
		applied int
		errs    []error
	)
	for i := range stations {
		st := &stations[i]
		log := logger.WithFields(logrus.Fields{"code": st.Code, "department": st.Department})
		if err := w.Upsert(ctx, st); err != nil {
			log.WithError(err).Error("Failed to upsert station")
			errs = append(errs, fmt.Errorf("station %s: %w", st.Code, err))
			continue
		}
		log.Debug("Station upserted")
		applied++
	}
	return applied, errors.Join(errs...)
}
