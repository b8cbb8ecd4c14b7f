package models

import (
	"time"

	"github.com/google/uuid"
)

// Station - пункт реагирования (пожарная часть, отделение полиции, станция скорой помощи).
// Станция без координат не участвует в поиске по расстоянию.
type Station struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Code       string     `json:"code"`
	Department Department `json:"department"`
	Region     string     `json:"region"`
	Location   *GeoPoint  `json:"location,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// StationMatch - станция вместе с расстоянием до точки запроса
type StationMatch struct {
	Station    Station `json:"station"`
	DistanceKm float64 `json:"distance_km"`
}

// StationCoverage - сводка нагрузки станции
type StationCoverage struct {
	Station           Station `json:"station"`
	CoverageRadiusKm  float64 `json:"coverage_radius_km"`
	ActiveAlertsCount int     `json:"active_alerts_count"`
	RecentAlertsCount int     `json:"recent_alerts_count"`
}
