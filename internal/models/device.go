package models

import (
	"encoding/json"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ReadingType string

const (
	ReadingAudio       ReadingType = "audio"
	ReadingHeartRate   ReadingType = "heart_rate"
	ReadingTemperature ReadingType = "temperature"
	ReadingSmoke       ReadingType = "smoke"
	ReadingLocation    ReadingType = "location"
	ReadingBattery     ReadingType = "battery"
)

// Device - носимое устройство (браслет, часы, кулон)
type Device struct {
	ID               uuid.UUID  `json:"id"`
	MACAddress       string     `json:"mac_address"`
	SerialNumber     string     `json:"serial_number"`
	OwnerName        string     `json:"owner_name"`
	Status           string     `json:"status"`
	BatteryLevel     int        `json:"battery_level"`
	LastHeartbeat    *time.Time `json:"last_heartbeat,omitempty"`
	LastKnownLoc     *GeoPoint  `json:"last_known_location,omitempty"`
	LastLocationTime *time.Time `json:"last_location_update,omitempty"`
}

// SensorReading - одно показание устройства. Все сенсорные поля необязательны.
type SensorReading struct {
	ID              uuid.UUID       `json:"id"`
	DeviceID        uuid.UUID       `json:"device_id"`
	Type            ReadingType     `json:"reading_type"`
	HeartRate       *int            `json:"heart_rate,omitempty"`
	Temperature     *float64        `json:"temperature,omitempty"`
	SmokeLevel      *float64        `json:"smoke_level,omitempty"`
	BatteryLevel    *int            `json:"battery_level,omitempty"`
	FearProbability *float64        `json:"fear_probability,omitempty"`
	Location        *GeoPoint       `json:"location,omitempty"`
	RawData         json.RawMessage `json:"raw_data,omitempty"`
	IsEmergency     bool            `json:"is_emergency"`
	TriggeredBy     string          `json:"triggered_by,omitempty"`
	RecordedAt      time.Time       `json:"recorded_at"`
}

// NormalizeMAC приводит MAC-адрес к виду AA:BB:CC:DD:EE:FF независимо от записи
// (aa-bb-..., aabb.ccdd.eeff). Нераспознанный адрес только обрезается и переводится в верхний регистр.
func NormalizeMAC(mac string) string {
	mac = strings.TrimSpace(mac)
	if hw, err := net.ParseMAC(mac); err == nil {
		return strings.ToUpper(hw.String())
	}
	return strings.ToUpper(mac)
}
