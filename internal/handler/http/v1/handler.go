package v1

import (
	"errors"
	"net/http"

	"github.com/Too-lit247/my-guardian/internal/config"
	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/Too-lit247/my-guardian/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	alertService   service.AlertService
	stationService service.StationService
	deviceService  service.DeviceService
	logger         *logrus.Logger
	validate       *validator.Validate
	cfg            *config.Config
	limiter        *DeviceRateLimiter
}

func NewHandler(
	alertService service.AlertService,
	stationService service.StationService,
	deviceService service.DeviceService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		alertService:   alertService,
		stationService: stationService,
		deviceService:  deviceService,
		logger:         logger,
		validate:       validator.New(),
		cfg:            cfg,
		limiter:        NewDeviceRateLimiter(cfg.DeviceRateLimit, cfg.DeviceRateBurst),
	}
}

// @Summary Ingest a device reading
// @Description Store a sensor reading from a registered device, evaluate emergency thresholds and route an alert for every trigger.
// @Tags Devices
// @Accept json
// @Produce json
// @Param reading body DeviceDataRequest true "Device reading"
// @Success 201 {object} IngestResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "Device not found or inactive"
// @Failure 429 {object} map[string]string "Too many readings from the device"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /devices/data [post]
func (h *Handler) ingestDeviceData(c *gin.Context) {
	var input DeviceDataRequest
	log := h.logger.WithField("method", "ingestDeviceData")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := checkCoordinatePair(input.Latitude, input.Longitude); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log = log.WithField("mac", input.MACAddress)
	if !h.limiter.Allow(input.MACAddress) {
		log.Warn("Device reading rate limit exceeded")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many readings"})
		return
	}

	result, err := h.deviceService.IngestReading(c.Request.Context(), input.MACAddress, DTOToSensorReading(input))
	if err != nil {
		h.respondError(c, log, err, "failed to ingest reading")
		return
	}
	c.JSON(http.StatusCreated, ResultToIngestResponse(result))
}

// @Summary Report an incident
// @Description Classify an incident, assign the nearest active station and fan out supporting alerts for fires. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param alert body CreateAlertRequest true "Incident report"
// @Success 201 {object} RoutingResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} RoutingResponse "No alert could be stored"
// @Router /alerts [post]
func (h *Handler) createAlert(c *gin.Context) {
	var input CreateAlertRequest
	log := h.logger.WithField("method", "createAlert")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := checkCoordinatePair(input.Latitude, input.Longitude); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.alertService.RouteIncident(c.Request.Context(), DTOToIncident(input))
	if err != nil {
		h.respondError(c, log, err, "failed to route incident")
		return
	}

	// Частичный успех остается успехом; 500 только если не сохранилась ни одна тревога
	status := http.StatusCreated
	if len(result.Failed()) == len(result.Outcomes()) {
		log.Error("No alert of the routing result was stored")
		status = http.StatusInternalServerError
	}
	c.JSON(status, ResultToRoutingResponse(result))
}

// @Summary Get a list of alerts
// @Description Get a paginated list of alerts, newest first. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Param department query string false "Department" Enums(fire, police, medical)
// @Param status query string false "Status" Enums(active, in_progress, resolved, cancelled)
// @Param station_id query string false "Assigned station ID"
// @Param assigned query bool false "Only assigned or only unassigned alerts"
// @Success 200 {array} AlertResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	var query ListAlertsQuery
	log := h.logger.WithField("method", "listAlerts")

	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), QueryToAlertFilter(query), query.Page, query.PageSize)
	if err != nil {
		h.respondError(c, log, err, "failed to list alerts")
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Get alert by ID
// @Description Get a single alert by its ID. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert ID"})
		return
	}
	log := h.logger.WithField("method", "getAlert").WithField("id", id)

	alert, err := h.alertService.GetAlert(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "failed to get alert")
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Change alert status
// @Description Move an alert along its lifecycle: active, in_progress, then resolved or cancelled. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Param status body UpdateAlertStatusRequest true "New status"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id}/status [patch]
func (h *Handler) updateAlertStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert ID"})
		return
	}
	log := h.logger.WithField("method", "updateAlertStatus").WithField("id", id)

	var input UpdateAlertStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := h.alertService.UpdateStatus(c.Request.Context(), id, models.AlertStatus(input.Status))
	if err != nil {
		h.respondError(c, log, err, "failed to update alert status")
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Assign stations to unassigned alerts
// @Description Run one reconciliation pass over open alerts that have coordinates but no station. Requires API key.
// @Tags Alerts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} ReconcileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/reconcile [post]
func (h *Handler) reconcileAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "reconcileAlerts")

	report, err := h.alertService.Reconcile(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err, "failed to reconcile alerts")
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Find the nearest station
// @Description Find the nearest active station of a department. Requires API key.
// @Tags Stations
// @Produce json
// @Security ApiKeyAuth
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Param department query string true "Department" Enums(fire, police, medical)
// @Param max_distance_km query number false "Search cap in km" default(100)
// @Success 200 {object} StationMatchResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No station within the cap"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stations/nearest [get]
func (h *Handler) nearestStation(c *gin.Context) {
	log := h.logger.WithField("method", "nearestStation")

	query, ok := h.bindStationQuery(c, log)
	if !ok {
		return
	}

	maxDistance := query.DistanceKm
	if maxDistance <= 0 {
		maxDistance = h.cfg.RouteMaxDistanceKm
	}

	point := models.GeoPoint{Latitude: *query.Latitude, Longitude: *query.Longitude}
	match, err := h.stationService.Nearest(c.Request.Context(), point, models.Department(query.Department), maxDistance)
	if err != nil {
		h.respondError(c, log, err, "failed to find nearest station")
		return
	}
	c.JSON(http.StatusOK, ModelToMatchResponse(*match))
}

// @Summary Find stations within a radius
// @Description List active stations of a department within a radius, nearest first. Requires API key.
// @Tags Stations
// @Produce json
// @Security ApiKeyAuth
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Param department query string true "Department" Enums(fire, police, medical)
// @Param radius_km query number false "Radius in km" default(50)
// @Success 200 {array} StationMatchResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stations/nearby [get]
func (h *Handler) nearbyStations(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyStations")

	query, ok := h.bindStationQuery(c, log)
	if !ok {
		return
	}

	radius := query.RadiusKm
	if radius <= 0 {
		radius = h.cfg.StationSearchRadiusKm
	}

	point := models.GeoPoint{Latitude: *query.Latitude, Longitude: *query.Longitude}
	matches, err := h.stationService.WithinRadius(c.Request.Context(), point, models.Department(query.Department), radius)
	if err != nil {
		h.respondError(c, log, err, "failed to find stations")
		return
	}
	c.JSON(http.StatusOK, MatchesToResponses(matches))
}

// @Summary Get station coverage
// @Description Get the open and recent alert counts of a station. Requires API key.
// @Tags Stations
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Station ID"
// @Success 200 {object} CoverageResponse
// @Failure 400 {object} map[string]string "Invalid station ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Station not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stations/{id}/coverage [get]
func (h *Handler) stationCoverage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid station ID"})
		return
	}
	log := h.logger.WithField("method", "stationCoverage").WithField("id", id)

	coverage, err := h.alertService.StationCoverage(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "failed to get station coverage")
		return
	}
	c.JSON(http.StatusOK, ModelToCoverageResponse(coverage))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) bindStationQuery(c *gin.Context, log *logrus.Entry) (StationQuery, bool) {
	var query StationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return query, false
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return query, false
	}
	return query, true
}

// respondError переводит ошибку сервиса в HTTP-статус
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		log.WithError(err).Warn("Rejected by service")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		log.WithError(err).Warn("Status transition rejected")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

var errCoordinatePair = errors.New("latitude and longitude must be provided together")

func checkCoordinatePair(lat, lon *float64) error {
	if (lat == nil) != (lon == nil) {
		return errCoordinatePair
	}
	return nil
}
