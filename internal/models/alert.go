package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertStatus - статус тревоги: active -> in_progress -> resolved, либо active -> cancelled
type AlertStatus string

const (
	AlertStatusActive     AlertStatus = "active"
	AlertStatusInProgress AlertStatus = "in_progress"
	AlertStatusResolved   AlertStatus = "resolved"
	AlertStatusCancelled  AlertStatus = "cancelled"
)

var alertTransitions = map[AlertStatus][]AlertStatus{
	AlertStatusActive:     {AlertStatusInProgress, AlertStatusCancelled},
	AlertStatusInProgress: {AlertStatusResolved},
}

func (s AlertStatus) Valid() bool {
	switch s {
	case AlertStatusActive, AlertStatusInProgress, AlertStatusResolved, AlertStatusCancelled:
		return true
	}
	return false
}

// Terminal - resolved и cancelled не имеют исходящих переходов
func (s AlertStatus) Terminal() bool {
	return s == AlertStatusResolved || s == AlertStatusCancelled
}

// CanTransitionTo проверяет допустимость перехода. Обратных переходов нет.
func (s AlertStatus) CanTransitionTo(next AlertStatus) bool {
	for _, allowed := range alertTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RoutedAlert - тревога после классификации и попытки назначения станции.
// Если AssignedStationID задан, служба станции совпадает с Department.
type RoutedAlert struct {
	ID                   uuid.UUID   `json:"id"`
	Title                string      `json:"title"`
	AlertType            string      `json:"alert_type"`
	Department           Department  `json:"department"`
	Priority             Priority    `json:"priority"`
	Status               AlertStatus `json:"status"`
	Location             *GeoPoint   `json:"location,omitempty"`
	AssignedStationID    *uuid.UUID  `json:"assigned_station_id,omitempty"`
	AssignmentDistanceKm *float64    `json:"assignment_distance_km,omitempty"`
	ParentAlertID        *uuid.UUID  `json:"parent_alert_id,omitempty"`
	Description          string      `json:"description"`
	ReportedBy           string      `json:"reported_by,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
	ResolvedAt           *time.Time  `json:"resolved_at,omitempty"`
}

// Assigned сообщает, назначена ли станция
func (a *RoutedAlert) Assigned() bool {
	return a.AssignedStationID != nil
}

// AlertCursor - позиция обхода тревог по (created_at, id)
type AlertCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// CursorOf возвращает позицию тревоги для продолжения обхода
func CursorOf(alert *RoutedAlert) *AlertCursor {
	return &AlertCursor{CreatedAt: alert.CreatedAt, ID: alert.ID}
}

// AlertFilter - фильтр выборки тревог
type AlertFilter struct {
	Department *Department
	Status     *AlertStatus
	StationID  *uuid.UUID
	Assigned   *bool
}
