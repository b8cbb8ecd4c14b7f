package webhook

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/Too-lit247/my-guardian/internal/models"
)

const (
	webhookQueueKey = "alert_events"
)

// WebhookEvent - уведомление о созданной тревоге для слоя оповещения
type WebhookEvent struct {
	AlertID           uuid.UUID          `json:"alert_id"`
	ParentAlertID     *uuid.UUID         `json:"parent_alert_id,omitempty"`
	Role              string             `json:"role"`
	Title             string             `json:"title"`
	AlertType         string             `json:"alert_type"`
	Department        models.Department  `json:"department"`
	Priority          models.Priority    `json:"priority"`
	Status            models.AlertStatus `json:"status"`
	Location          *models.GeoPoint   `json:"location,omitempty"`
	AssignedStationID *uuid.UUID         `json:"assigned_station_id,omitempty"`
	DistanceKm        *float64           `json:"distance_km,omitempty"`
	Timestamp         time.Time          `json:"timestamp"`
}

// NewAlertEvent собирает событие из сохраненной тревоги
func NewAlertEvent(alert *models.RoutedAlert, role string) WebhookEvent {
	return WebhookEvent{
		AlertID:           alert.ID,
		ParentAlertID:     alert.ParentAlertID,
		Role:              role,
		Title:             alert.Title,
		AlertType:         alert.AlertType,
		Department:        alert.Department,
		Priority:          alert.Priority,
		Status:            alert.Status,
		Location:          alert.Location,
		AssignedStationID: alert.AssignedStationID,
		DistanceKm:        alert.AssignmentDistanceKm,
		Timestamp:         alert.CreatedAt,
	}
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста через BRPOP
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
