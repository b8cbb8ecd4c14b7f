package models

import (
	"time"

	"github.com/google/uuid"
)

// TriggerType - вид экстренной ситуации, обнаруженной устройством
type TriggerType string

const (
	TriggerFearDetected  TriggerType = "fear_detected"
	TriggerHighHeartRate TriggerType = "high_heart_rate"
	TriggerFireDetected  TriggerType = "fire_detected"
	TriggerPanicButton   TriggerType = "panic_button"
	TriggerFallDetected  TriggerType = "fall_detected"
	TriggerDeviceOffline TriggerType = "device_offline"
)

func (t TriggerType) Valid() bool {
	switch t {
	case TriggerFearDetected, TriggerHighHeartRate, TriggerFireDetected,
		TriggerPanicButton, TriggerFallDetected, TriggerDeviceOffline:
		return true
	}
	return false
}

// Trigger - одноразовое событие, полученное из показаний датчика
type Trigger struct {
	ID             uuid.UUID   `json:"id"`
	DeviceID       uuid.UUID   `json:"device_id,omitempty"`
	ReadingID      uuid.UUID   `json:"reading_id,omitempty"`
	Type           TriggerType `json:"type"`
	Severity       Severity    `json:"severity"`
	Value          float64     `json:"value"`
	Threshold      float64     `json:"threshold"`
	Location       *GeoPoint   `json:"location,omitempty"`
	AlertCreatedID *uuid.UUID  `json:"alert_created_id,omitempty"`
	TriggeredAt    time.Time   `json:"triggered_at"`
}

// Incident - вход маршрутизации, сообщенный вручную
type Incident struct {
	Type        string    `json:"type"`
	Location    *GeoPoint `json:"location,omitempty"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	ReportedBy  string    `json:"reported_by"`
}
