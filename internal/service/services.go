package service

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
)

// Router определяет контракт маршрутизации тревог
type Router interface {
	RouteTrigger(ctx context.Context, trigger models.Trigger) (*models.RoutingResult, error)
	RouteIncident(ctx context.Context, incident models.Incident) (*models.RoutingResult, error)
}

// AlertService определяет контракт бизнес-логики управления тревогами
type AlertService interface {
	RouteIncident(ctx context.Context, incident models.Incident) (*models.RoutingResult, error)
	GetAlert(ctx context.Context, id uuid.UUID) (*models.RoutedAlert, error)
	ListAlerts(ctx context.Context, filter models.AlertFilter, page, pageSize int) ([]*models.RoutedAlert, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.AlertStatus) (*models.RoutedAlert, error)
	StationCoverage(ctx context.Context, stationID uuid.UUID) (*models.StationCoverage, error)
	Reconcile(ctx context.Context) (*models.ReconcileReport, error)
}

// StationService определяет контракт поиска станций
type StationService interface {
	Nearest(ctx context.Context, point models.GeoPoint, department models.Department, maxDistanceKm float64) (*models.StationMatch, error)
	WithinRadius(ctx context.Context, point models.GeoPoint, department models.Department, radiusKm float64) ([]models.StationMatch, error)
}

// DeviceService определяет контракт приема показаний устройств
type DeviceService interface {
	IngestReading(ctx context.Context, mac string, reading *models.SensorReading) (*models.IngestResult, error)
}
