package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Too-lit247/my-guardian/internal/config"
	"github.com/Too-lit247/my-guardian/internal/metrics"
	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/sirupsen/logrus"
)

// Результаты прохода для метрики alerts_reconciled_total
const (
	ReconcileAssigned = "assigned"
	ReconcileSkipped  = "skipped"
	ReconcileFailed   = "failed"
)

// Reconciler догоняюще назначает станции тревогам, оставшимся без станции.
// Назначенную тревогу не трогает: AssignStation срабатывает только пока станция не задана.
// Проходы идут пачками по курсору; неполная пачка завершает обход, и следующий начинается с самых старых.
type Reconciler struct {
	mu     sync.Mutex
	cursor *models.AlertCursor


	alerts        AlertRepository
	finder        *StationFinder
	metrics       *metrics.Collector
	logger        *logrus.Logger
	interval      time.Duration
	batchSize     int
	maxDistanceKm float64
	timeout       time.Duration
}

func NewReconciler(alerts AlertRepository, finder *StationFinder, collector *metrics.Collector, logger *logrus.Logger, cfg *config.Config) *Reconciler {
	return &Reconciler{
		alerts:        alerts,
		finder:        finder,
		metrics:       collector,
		logger:        logger,
		interval:      cfg.ReconcileInterval,
		batchSize:     cfg.ReconcileBatchSize,
		maxDistanceKm: cfg.RouteMaxDistanceKm,
		timeout:       cfg.ExternalCallTimeout,
	}
}

// Run выполняет один проход по пачке неназначенных тревог с координатами
func (r *Reconciler) Run(ctx context.Context) (*models.ReconcileReport, error) {
	log := r.logger.WithFields(logrus.Fields{
		"service": "reconciler",
		"method":  "Run",
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	alerts, err := r.alerts.ListUnassigned(ctx, r.cursor, r.batchSize)
	if err != nil {
		log.WithError(err).Error("Failed to list unassigned alerts")
		return nil, fmt.Errorf("service: could not list unassigned alerts: %w", err)
	}
	if len(alerts) == 0 || len(alerts) < r.batchSize {
		r.cursor = nil
	} else {
		r.cursor = models.CursorOf(alerts[len(alerts)-1])
	}

	report := &models.ReconcileReport{}
	for _, alert := range alerts {
		if alert.Location == nil || alert.Assigned() || alert.Status.Terminal() {
			continue
		}
		report.Processed++
		entry := log.WithField("alert_id", alert.ID)

		lookupCtx, cancel := withTimeout(ctx, r.timeout)
		match, err := r.finder.FindNearest(lookupCtx, *alert.Location, alert.Department, r.maxDistanceKm)
		cancel()
		if err != nil {
			entry.WithError(err).Warn("Station lookup failed during reconcile")
			r.record(report, ReconcileFailed)
			continue
		}
		if match == nil {
			r.record(report, ReconcileSkipped)
			continue
		}

		ok, err := r.alerts.AssignStation(ctx, alert.ID, match.Station.ID, match.DistanceKm)
		if err != nil {
			entry.WithError(err).Error("Failed to assign station during reconcile")
			r.record(report, ReconcileFailed)
			continue
		}
		if !ok {
			// назначена параллельно
			r.record(report, ReconcileSkipped)
			continue
		}
		entry.WithFields(logrus.Fields{
			"station_id":  match.Station.ID,
			"distance_km": match.DistanceKm,
		}).Info("Alert assigned by reconcile")
		r.record(report, ReconcileAssigned)
	}

	log.WithFields(logrus.Fields{
		"processed": report.Processed,
		"assigned":  report.Assigned,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
		"wrapped":   r.cursor == nil,
	}).Info("Reconcile pass completed")
	return report, nil
}

func (r *Reconciler) record(report *models.ReconcileReport, result string) {
	switch result {
	case ReconcileAssigned:
		report.Assigned++
	case ReconcileSkipped:
		report.Skipped++
	case ReconcileFailed:
		report.Failed++
	}
	r.metrics.ObserveReconcile(result)
}

// Start запускает периодические проходы. При нулевом интервале ничего не делает.
func (r *Reconciler) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("Reconciler disabled")
		return
	}
	r.logger.WithField("interval", r.interval).Info("Starting reconciler...")
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Stopping reconciler.")
				return
			case <-ticker.C:
				if _, err := r.Run(ctx); err != nil {
					r.logger.WithError(err).Error("Reconcile pass failed")
				}
			}
		}
	}()
}
