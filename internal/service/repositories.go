package service

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
)

// StationDirectory - представление справочника станций только на чтение
type StationDirectory interface {
	ListActiveStations(ctx context.Context, department models.Department) ([]models.Station, error)
}

// StationRepository определяет контракт для работы с бд станций
type StationRepository interface {
	ListActiveStations(ctx context.Context, department models.Department) ([]models.Station, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Station, error)
	Upsert(ctx context.Context, station *models.Station) error
}

// AlertSink - приемник созданных тревог. Один вызов на тревогу.
type AlertSink interface {
	Save(ctx context.Context, alert *models.RoutedAlert) (*models.RoutedAlert, error)
}

// AlertRepository определяет контракт для работы с бд тревог
type AlertRepository interface {
	Save(ctx context.Context, alert *models.RoutedAlert) (*models.RoutedAlert, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.RoutedAlert, error)
	List(ctx context.Context, filter models.AlertFilter, page, pageSize int) ([]*models.RoutedAlert, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.AlertStatus) error
	ListUnassigned(ctx context.Context, after *models.AlertCursor, limit int) ([]*models.RoutedAlert, error)
	AssignStation(ctx context.Context, id, stationID uuid.UUID, distanceKm float64) (bool, error)
	CountForStation(ctx context.Context, stationID uuid.UUID, statuses []models.AlertStatus, since time.Time) (int, error)
}

// DeviceRepository определяет контракт для работы с бд устройств и их показаний
type DeviceRepository interface {
	GetActiveByMAC(ctx context.Context, mac string) (*models.Device, error)
	UpdateTelemetry(ctx context.Context, device *models.Device) error
	SaveReading(ctx context.Context, reading *models.SensorReading) error
	SaveTrigger(ctx context.Context, trigger *models.Trigger) error
}
