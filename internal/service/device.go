package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type deviceService struct {
	repo      DeviceRepository
	evaluator *EmergencyTriggerEvaluator
	router    Router
	logger    *logrus.Logger
	now       func() time.Time
}

func NewDeviceService(repo DeviceRepository, evaluator *EmergencyTriggerEvaluator, router Router, logger *logrus.Logger) DeviceService {
	return &deviceService{
		repo:      repo,
		evaluator: evaluator,
		router:    router,
		logger:    logger,
		now:       time.Now,
	}
}

// IngestReading принимает показание от устройства по MAC-адресу
func (s *deviceService) IngestReading(ctx context.Context, mac string, reading *models.SensorReading) (*models.IngestResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "device",
		"method":       "IngestReading",
		"mac_address":  mac,
		"reading_type": reading.Type,
	})
	log.Info("Receiving device reading")

	if reading.Location != nil && !reading.Location.Valid() {
		log.Warn("Rejected reading with malformed coordinates")
		return nil, fmt.Errorf("service: coordinates out of range (%s): %w", reading.Location, ErrValidation)
	}

	device, err := s.repo.GetActiveByMAC(ctx, models.NormalizeMAC(mac))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Device not found or inactive")
			return nil, fmt.Errorf("service: device %s not found or inactive: %w", mac, err)
		}
		log.WithError(err).Error("Failed to get device in repository")
		return nil, fmt.Errorf("service: could not get device: %w", err)
	}

	now := s.now().UTC()
	reading.ID = uuid.New()
	reading.DeviceID = device.ID
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = now
	}

	triggers := s.evaluator.Evaluate(*reading)
	if len(triggers) > 0 {
		reading.IsEmergency = true
		types := make([]string, 0, len(triggers))
		for _, t := range triggers {
			types = append(types, string(t.Type))
		}
		reading.TriggeredBy = strings.Join(types, ",")
	}

	if err := s.repo.SaveReading(ctx, reading); err != nil {
		log.WithError(err).Error("Failed to save reading in repository")
		return nil, fmt.Errorf("service: could not save reading: %w", err)
	}

	s.touchDevice(ctx, log, device, reading, now)

	result := &models.IngestResult{Reading: reading}
	for _, trigger := range triggers {
		result.Triggers = append(result.Triggers, s.routeTrigger(ctx, log, trigger))
	}

	log.WithFields(logrus.Fields{
		"reading_id": reading.ID,
		"triggers":   len(triggers),
	}).Info("Device reading processed")
	return result, nil
}

// touchDevice обновляет heartbeat, батарею и последнюю позицию. Ошибка не прерывает прием показания.
func (s *deviceService) touchDevice(ctx context.Context, log *logrus.Entry, device *models.Device, reading *models.SensorReading, now time.Time) {
	device.LastHeartbeat = &now
	if reading.BatteryLevel != nil {
		device.BatteryLevel = *reading.BatteryLevel
	}
	if reading.Location != nil {
		loc := *reading.Location
		device.LastKnownLoc = &loc
		device.LastLocationTime = &now
	}
	if err := s.repo.UpdateTelemetry(ctx, device); err != nil {
		log.WithError(err).Warn("Failed to update device telemetry")
	}
}

func (s *deviceService) routeTrigger(ctx context.Context, log *logrus.Entry, trigger models.Trigger) models.TriggerOutcome {
	log = log.WithFields(logrus.Fields{
		"trigger_id":   trigger.ID,
		"trigger_type": trigger.Type,
	})
	outcome := models.TriggerOutcome{Trigger: trigger}

	result, err := s.router.RouteTrigger(ctx, trigger)
	if err != nil {
		log.WithError(err).Warn("Failed to route trigger")
		outcome.Err = err
	} else {
		outcome.Result = result
		if result.Primary.Err == nil && result.Primary.Alert != nil {
			id := result.Primary.Alert.ID
			outcome.Trigger.AlertCreatedID = &id
		}
	}

	if err := s.repo.SaveTrigger(ctx, &outcome.Trigger); err != nil {
		log.WithError(err).Error("Failed to save trigger in repository")
		if outcome.Err == nil {
			outcome.Err = fmt.Errorf("service: could not save trigger: %w: %w", ErrPersistence, err)
		}
	}
	return outcome
}
