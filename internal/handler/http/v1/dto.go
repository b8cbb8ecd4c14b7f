package v1

import (
	"encoding/json"
	"time"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
)

// DeviceDataRequest DTO показания устройства
// @Description DTO показания устройства
type DeviceDataRequest struct {
	MACAddress      string          `json:"mac_address" validate:"required,mac"`
	ReadingType     string          `json:"reading_type" validate:"required,oneof=audio heart_rate temperature smoke location battery"`
	HeartRate       *int            `json:"heart_rate,omitempty" validate:"omitempty,gte=0,lte=300"`
	Temperature     *float64        `json:"temperature,omitempty" validate:"omitempty,gte=-100,lte=200"`
	SmokeLevel      *float64        `json:"smoke_level,omitempty" validate:"omitempty,gte=0,lte=1"`
	BatteryLevel    *int            `json:"battery_level,omitempty" validate:"omitempty,gte=0,lte=100"`
	FearProbability *float64        `json:"fear_probability,omitempty" validate:"omitempty,gte=0,lte=1"`
	Latitude        *float64        `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude       *float64        `json:"longitude,omitempty" validate:"omitempty,longitude"`
	RawData         json.RawMessage `json:"raw_data,omitempty" swaggertype:"object"`
}

// IngestResponse DTO ответа на прием показания
// @Description DTO ответа на прием показания
type IngestResponse struct {
	ReadingID   uuid.UUID         `json:"reading_id"`
	IsEmergency bool              `json:"is_emergency"`
	TriggeredBy string            `json:"triggered_by,omitempty"`
	Triggers    []TriggerResponse `json:"triggers"`
}

// TriggerResponse DTO сработавшего триггера и созданных по нему тревог
// @Description DTO сработавшего триггера
type TriggerResponse struct {
	ID        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"`
	Severity  string                 `json:"severity"`
	Value     float64                `json:"value"`
	Threshold float64                `json:"threshold"`
	AlertID   *uuid.UUID             `json:"alert_id,omitempty"`
	Alerts    []AlertOutcomeResponse `json:"alerts,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// CreateAlertRequest DTO для ручного сообщения об инциденте
// @Description DTO для ручного сообщения об инциденте
type CreateAlertRequest struct {
	AlertType   string   `json:"alert_type" validate:"required,max=50"`
	Severity    string   `json:"severity" validate:"required,oneof=low medium high critical"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Description string   `json:"description,omitempty" validate:"max=2000"`
	ReportedBy  string   `json:"reported_by,omitempty" validate:"max=100"`
}

// UpdateAlertStatusRequest DTO для смены статуса тревоги
// @Description DTO для смены статуса тревоги
type UpdateAlertStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active in_progress resolved cancelled"`
}

// ListAlertsQuery параметры выборки тревог
type ListAlertsQuery struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
	Department string `form:"department" validate:"omitempty,oneof=fire police medical"`
	Status     string `form:"status" validate:"omitempty,oneof=active in_progress resolved cancelled"`
	StationID  string `form:"station_id" validate:"omitempty,uuid"`
	Assigned   *bool  `form:"assigned"`
}

// StationQuery параметры поиска станций
type StationQuery struct {
	Latitude   *float64 `form:"latitude" validate:"required,latitude"`
	Longitude  *float64 `form:"longitude" validate:"required,longitude"`
	Department string   `form:"department" validate:"required,oneof=fire police medical"`
	DistanceKm float64  `form:"max_distance_km" validate:"gte=0"`
	RadiusKm   float64  `form:"radius_km" validate:"gte=0"`
}

// AlertResponse DTO тревоги
// @Description DTO тревоги
type AlertResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Title                string     `json:"title"`
	AlertType            string     `json:"alert_type"`
	Department           string     `json:"department"`
	Priority             string     `json:"priority"`
	Status               string     `json:"status"`
	Latitude             *float64   `json:"latitude,omitempty"`
	Longitude            *float64   `json:"longitude,omitempty"`
	AssignedStationID    *uuid.UUID `json:"assigned_station_id,omitempty"`
	AssignmentDistanceKm *float64   `json:"assignment_distance_km,omitempty"`
	ParentAlertID        *uuid.UUID `json:"parent_alert_id,omitempty"`
	Description          string     `json:"description,omitempty"`
	ReportedBy           string     `json:"reported_by,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
}

// AlertOutcomeResponse DTO исхода по одной тревоге: предупреждение или ошибка записи
// @Description DTO исхода по одной тревоге
type AlertOutcomeResponse struct {
	Role    string         `json:"role"`
	Alert   *AlertResponse `json:"alert,omitempty"`
	Warning string         `json:"warning,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// RoutingResponse DTO результата маршрутизации
// @Description DTO результата маршрутизации
type RoutingResponse struct {
	Alerts []AlertOutcomeResponse `json:"alerts"`
}

// StationResponse DTO станции
// @Description DTO станции
type StationResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Department string    `json:"department"`
	Region     string    `json:"region,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Active     bool      `json:"active"`
}

// StationMatchResponse DTO станции с расстоянием
// @Description DTO станции с расстоянием
type StationMatchResponse struct {
	Station    StationResponse `json:"station"`
	DistanceKm float64         `json:"distance_km"`
}

// CoverageResponse DTO нагрузки станции
// @Description DTO нагрузки станции
type CoverageResponse struct {
	Station           StationResponse `json:"station"`
	CoverageRadiusKm  float64         `json:"coverage_radius_km"`
	ActiveAlertsCount int             `json:"active_alerts_count"`
	RecentAlertsCount int             `json:"recent_alerts_count"`
}

// ReconcileResponse DTO итога прохода назначения
// @Description DTO итога прохода назначения
type ReconcileResponse = models.ReconcileReport
