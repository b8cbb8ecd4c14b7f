package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Too-lit247/my-guardian/internal/config"
	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type alertService struct {
	router         Router
	alerts         AlertRepository
	stations       StationRepository
	reconciler     *Reconciler
	logger         *logrus.Logger
	coverageRadius float64
	coverageWindow time.Duration
	now            func() time.Time
}

func NewAlertService(
	router Router,
	alerts AlertRepository,
	stations StationRepository,
	reconciler *Reconciler,
	logger *logrus.Logger,
	cfg *config.Config,
) AlertService {
	return &alertService{
		router:         router,
		alerts:         alerts,
		stations:       stations,
		reconciler:     reconciler,
		logger:         logger,
		coverageRadius: cfg.StationSearchRadiusKm,
		coverageWindow: cfg.StationCoverageWindow,
		now:            time.Now,
	}
}

// RouteIncident маршрутизирует инцидент, сообщенный вручную
func (s *alertService) RouteIncident(ctx context.Context, incident models.Incident) (*models.RoutingResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "RouteIncident",
		"type":    incident.Type,
	})
	log.Info("Attempting to route a reported incident")

	result, err := s.router.RouteIncident(ctx, incident)
	if err != nil {
		log.WithError(err).Warn("Incident rejected by router")
		return nil, err
	}
	return result, nil
}

// GetAlert получает тревогу по ID
func (s *alertService) GetAlert(ctx context.Context, id uuid.UUID) (*models.RoutedAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "GetAlert",
		"alert_id": id,
	})
	log.Info("Fetching alert by ID")

	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get alert in repository")
		return nil, fmt.Errorf("service: could not get alert: %w", err)
	}
	return alert, nil
}

// ListAlerts возвращает страницу тревог по фильтру
func (s *alertService) ListAlerts(ctx context.Context, filter models.AlertFilter, page, pageSize int) ([]*models.RoutedAlert, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":   "alert",
		"method":    "ListAlerts",
		"page":      page,
		"page_size": pageSize,
	})
	log.Info("Listing alerts")

	alerts, err := s.alerts.List(ctx, filter, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	log.WithField("count", len(alerts)).Info("Alerts listed successfully")
	return alerts, nil
}

// UpdateStatus переводит тревогу в новый статус: active -> in_progress -> resolved, либо active -> cancelled
func (s *alertService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AlertStatus) (*models.RoutedAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "UpdateStatus",
		"alert_id": id,
		"status":   status,
	})
	log.Info("Attempting to update alert status")

	if !status.Valid() {
		return nil, fmt.Errorf("service: unknown alert status %q: %w", status, ErrValidation)
	}

	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent alert")
		return nil, fmt.Errorf("service: could not get alert for update: %w", err)
	}

	if !alert.Status.CanTransitionTo(status) {
		log.WithField("current", alert.Status).Warn("Rejected status transition")
		return nil, fmt.Errorf("service: %s -> %s: %w", alert.Status, status, ErrInvalidTransition)
	}

	// Условное обновление: если статус успели изменить параллельно, репозиторий вернет ErrInvalidTransition
	if err := s.alerts.UpdateStatus(ctx, id, alert.Status, status); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			log.Warn("Alert status changed concurrently")
			return nil, fmt.Errorf("service: %s -> %s: %w", alert.Status, status, err)
		}
		log.WithError(err).Error("Failed to update alert status in repository")
		return nil, fmt.Errorf("service: could not update alert status: %w", err)
	}

	now := s.now().UTC()
	alert.Status = status
	alert.UpdatedAt = now
	if status == models.AlertStatusResolved {
		alert.ResolvedAt = &now
	}
	log.Info("Alert status updated successfully")
	return alert, nil
}

// StationCoverage возвращает нагрузку станции: открытые тревоги и тревоги за окно наблюдения
func (s *alertService) StationCoverage(ctx context.Context, stationID uuid.UUID) (*models.StationCoverage, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "alert",
		"method":     "StationCoverage",
		"station_id": stationID,
	})
	log.Info("Calculating station coverage")

	station, err := s.stations.GetByID(ctx, stationID)
	if err != nil {
		log.WithError(err).Error("Failed to get station in repository")
		return nil, fmt.Errorf("service: could not get station: %w", err)
	}

	open := []models.AlertStatus{models.AlertStatusActive, models.AlertStatusInProgress}
	active, err := s.alerts.CountForStation(ctx, stationID, open, time.Time{})
	if err != nil {
		log.WithError(err).Error("Failed to count open alerts")
		return nil, fmt.Errorf("service: could not count open alerts: %w", err)
	}

	since := s.now().UTC().Add(-s.coverageWindow)
	recent, err := s.alerts.CountForStation(ctx, stationID, nil, since)
	if err != nil {
		log.WithError(err).Error("Failed to count recent alerts")
		return nil, fmt.Errorf("service: could not count recent alerts: %w", err)
	}

	radius := 0.0
	if station.Location != nil {
		radius = s.coverageRadius
	}
	return &models.StationCoverage{
		Station:           *station,
		CoverageRadiusKm:  radius,
		ActiveAlertsCount: active,
		RecentAlertsCount: recent,
	}, nil
}

// Reconcile запускает разовый проход назначения станций для неназначенных тревог
func (s *alertService) Reconcile(ctx context.Context) (*models.ReconcileReport, error) {
	return s.reconciler.Run(ctx)
}
