package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Too-lit247/my-guardian/internal/config"
	"github.com/Too-lit247/my-guardian/internal/metrics"
	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/Too-lit247/my-guardian/internal/webhook"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const tracerName = "github.com/Too-lit247/my-guardian/internal/service"

var _ Router = (*AlertRouter)(nil)

// Типы вспомогательных тревог. Ни один из них не входит в набор пожарных типов, поэтому рассылка не рекурсивна.
const (
	medicalSupportType = "injury"
	policeSupportType  = "traffic_violation"
)

// AlertRouter классифицирует входящее событие, назначает ближайшую станцию и сохраняет тревоги.
// Состояния не хранит, параллельные вызовы независимы.
type AlertRouter struct {
	classifier    *DepartmentClassifier
	finder        *StationFinder
	sink          AlertSink
	publisher     webhook.WebhookPublisher
	metrics       *metrics.Collector
	logger        *logrus.Logger
	tracer        trace.Tracer
	maxDistanceKm float64
	timeout       time.Duration
	now           func() time.Time
}

func NewAlertRouter(
	classifier *DepartmentClassifier,
	finder *StationFinder,
	sink AlertSink,
	publisher webhook.WebhookPublisher,
	collector *metrics.Collector,
	logger *logrus.Logger,
	cfg *config.Config,
) *AlertRouter {
	return &AlertRouter{
		classifier:    classifier,
		finder:        finder,
		sink:          sink,
		publisher:     publisher,
		metrics:       collector,
		logger:        logger,
		tracer:        otel.Tracer(tracerName),
		maxDistanceKm: cfg.RouteMaxDistanceKm,
		timeout:       cfg.ExternalCallTimeout,
		now:           time.Now,
	}
}

type routeRequest struct {
	alertType   string
	severity    models.Severity
	location    *models.GeoPoint
	description string
	reportedBy  string
}

// RouteTrigger создает тревогу по триггеру устройства
func (r *AlertRouter) RouteTrigger(ctx context.Context, trigger models.Trigger) (*models.RoutingResult, error) {
	reportedBy := ""
	if trigger.DeviceID != uuid.Nil {
		reportedBy = "device:" + trigger.DeviceID.String()
	}
	return r.route(ctx, routeRequest{
		alertType:   string(trigger.Type),
		severity:    trigger.Severity,
		location:    trigger.Location,
		description: r.triggerDescription(trigger),
		reportedBy:  reportedBy,
	})
}

// RouteIncident создает тревогу по инциденту, сообщенному вручную
func (r *AlertRouter) RouteIncident(ctx context.Context, incident models.Incident) (*models.RoutingResult, error) {
	return r.route(ctx, routeRequest{
		alertType:   incident.Type,
		severity:    incident.Severity,
		location:    incident.Location,
		description: incident.Description,
		reportedBy:  incident.ReportedBy,
	})
}

func (r *AlertRouter) route(ctx context.Context, req routeRequest) (*models.RoutingResult, error) {
	log := r.logger.WithFields(logrus.Fields{
		"service":    "router",
		"method":     "Route",
		"alert_type": req.alertType,
		"severity":   req.severity,
	})

	priority, ok := models.PriorityFor(req.severity)
	if !ok {
		log.Warn("Rejected event with unknown severity")
		return nil, fmt.Errorf("service: unknown severity %q: %w", req.severity, ErrValidation)
	}
	if req.location != nil && !req.location.Valid() {
		log.Warn("Rejected event with malformed coordinates")
		return nil, fmt.Errorf("service: coordinates out of range (%s): %w", req.location, ErrValidation)
	}

	department := r.classifier.Classify(req.alertType)

	ctx, span := r.tracer.Start(ctx, "AlertRouter/Route", trace.WithAttributes(
		attribute.String("alert.type", req.alertType),
		attribute.String("alert.department", department.String()),
		attribute.Bool("alert.has_location", req.location != nil),
	))
	defer span.End()

	log.WithField("department", department).Info("Routing emergency alert")

	label := r.humanize(req.alertType)
	primary := r.newAlert(req, req.alertType, department, priority, "Emergency: "+label, req.description, nil)
	result := &models.RoutingResult{Primary: r.dispatch(ctx, primary, models.RolePrimary)}

	if IsFireCompound(req.alertType) {
		parent := primary.ID
		medical := r.newAlert(req, medicalSupportType, models.DepartmentMedical, priority,
			"Medical Support: "+label,
			"Medical support requested for fire emergency.\n\nOriginal Alert:\n"+req.description,
			&parent)
		police := r.newAlert(req, policeSupportType, models.DepartmentPolice, models.PriorityMedium,
			"Police Support: "+label,
			"Police support requested for fire emergency - crowd control and traffic management.\n\nOriginal Alert:\n"+req.description,
			&parent)

		result.Supporting = append(result.Supporting,
			r.dispatch(ctx, medical, models.RoleSupporting),
			r.dispatch(ctx, police, models.RoleSupporting),
		)
	}

	if failed := result.Failed(); len(failed) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d alerts failed to persist", len(failed), len(result.Outcomes())))
		log.WithField("failed", len(failed)).Error("Alert routing completed with persistence failures")
	} else {
		log.WithField("alerts", len(result.Outcomes())).Info("Alert routing completed")
	}
	return result, nil
}

func (r *AlertRouter) newAlert(req routeRequest, alertType string, department models.Department, priority models.Priority, title, description string, parent *uuid.UUID) *models.RoutedAlert {
	now := r.now().UTC()
	var location *models.GeoPoint
	if req.location != nil {
		p := *req.location
		location = &p
	}
	return &models.RoutedAlert{
		ID:            uuid.New(),
		Title:         title,
		AlertType:     alertType,
		Department:    department,
		Priority:      priority,
		Status:        models.AlertStatusActive,
		Location:      location,
		ParentAlertID: parent,
		Description:   description,
		ReportedBy:    req.reportedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// dispatch назначает станцию (если есть координаты), сохраняет тревогу и публикует событие
func (r *AlertRouter) dispatch(ctx context.Context, alert *models.RoutedAlert, role string) models.AlertOutcome {
	log := r.logger.WithFields(logrus.Fields{
		"service":    "router",
		"method":     "dispatch",
		"alert_id":   alert.ID,
		"department": alert.Department,
		"role":       role,
	})
	outcome := models.AlertOutcome{Role: role, Alert: alert}
	metricOutcome := metrics.OutcomeUnrouted

	if alert.Location == nil {
		outcome.Warning = "unrouted: alert has no location"
		log.Warn("Alert has no location, skipping station assignment")
	} else {
		outcome.Warning = r.assign(ctx, alert)
		if alert.Assigned() {
			metricOutcome = metrics.OutcomeAssigned
			log.WithFields(logrus.Fields{
				"station_id":  *alert.AssignedStationID,
				"distance_km": *alert.AssignmentDistanceKm,
			}).Info("Alert assigned to nearest station")
		} else {
			metricOutcome = metrics.OutcomeUnassigned
			log.Warn(outcome.Warning)
		}
	}

	saveCtx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	saveCtx, span := r.tracer.Start(saveCtx, "AlertSink/Save")
	saved, err := r.sink.Save(saveCtx, alert)
	span.End()
	if err != nil {
		outcome.Err = fmt.Errorf("service: could not save %s alert %s: %w: %w", alert.Department, alert.ID, ErrPersistence, err)
		r.metrics.ObserveAlert(alert.Department.String(), role, metrics.OutcomePersistFailed)
		log.WithError(err).Error("Failed to persist alert")
		return outcome
	}
	if saved != nil {
		outcome.Alert = saved
	}
	r.metrics.ObserveAlert(alert.Department.String(), role, metricOutcome)

	if r.publisher != nil {
		event := webhook.NewAlertEvent(outcome.Alert, role)
		if err := r.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("Failed to publish alert notification")
		}
	}
	return outcome
}

// assign ищет ближайшую станцию службы тревоги. Возвращает предупреждение, если станция не назначена.
func (r *AlertRouter) assign(ctx context.Context, alert *models.RoutedAlert) string {
	lookupCtx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	lookupCtx, span := r.tracer.Start(lookupCtx, "StationFinder/FindNearest",
		trace.WithAttributes(attribute.String("station.department", alert.Department.String())))
	defer span.End()

	match, err := r.finder.FindNearest(lookupCtx, *alert.Location, alert.Department, r.maxDistanceKm)
	if err != nil {
		span.RecordError(err)
		return fmt.Sprintf("station lookup failed: %v", err)
	}
	if match == nil {
		return fmt.Sprintf("no active %s station within %.0f km", alert.Department, r.maxDistanceKm)
	}

	stationID := match.Station.ID
	distance := match.DistanceKm
	alert.AssignedStationID = &stationID
	alert.AssignmentDistanceKm = &distance
	return ""
}

func (r *AlertRouter) humanize(alertType string) string {
	label := strings.TrimSpace(strings.ReplaceAll(alertType, "_", " "))
	if label == "" {
		return "Unspecified"
	}
	return titleCase(label)
}

func (r *AlertRouter) triggerDescription(t models.Trigger) string {
	var b strings.Builder
	if t.DeviceID != uuid.Nil {
		fmt.Fprintf(&b, "Emergency detected from device %s\n", t.DeviceID)
	}
	fmt.Fprintf(&b, "Trigger: %s\n", r.humanize(string(t.Type)))
	fmt.Fprintf(&b, "Severity: %s\n", titleCase(string(t.Severity)))
	fmt.Fprintf(&b, "Value: %g (Threshold: %g)", t.Value, t.Threshold)
	return b.String()
}

// titleCase создает Caser на каждый вызов: Caser хранит состояние и не разделяется между горутинами
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// withTimeout ограничивает внешний вызов. Неположительный таймаут означает вызов без дедлайна.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
