package service

import (
	"time"

	"github.com/Too-lit247/my-guardian/internal/metrics"
	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
)

// Пороговые значения датчиков
const (
	HeartRateThreshold       = 120.0
	HeartRateHighThreshold   = 150.0
	TemperatureThreshold     = 40.0
	TemperatureCritical      = 50.0
	SmokeThreshold           = 0.3
	SmokeCritical            = 0.7
	FearProbabilityThreshold = 0.7
	FearProbabilityCritical  = 0.9
)

// EmergencyTriggerEvaluator превращает показание датчика в 0..n триггеров по фиксированной таблице порогов.
// Триггеры одного показания не объединяются.
type EmergencyTriggerEvaluator struct {
	metrics *metrics.Collector
	now     func() time.Time
}

func NewEmergencyTriggerEvaluator(collector *metrics.Collector) *EmergencyTriggerEvaluator {
	return &EmergencyTriggerEvaluator{metrics: collector, now: time.Now}
}

// Evaluate сравнивает показание с порогами. Сравнения строгие: значение ровно на пороге триггер не создает.
func (e *EmergencyTriggerEvaluator) Evaluate(reading models.SensorReading) []models.Trigger {
	var triggers []models.Trigger

	if reading.HeartRate != nil {
		hr := float64(*reading.HeartRate)
		if hr > HeartRateThreshold {
			severity := models.SeverityMedium
			if hr > HeartRateHighThreshold {
				severity = models.SeverityHigh
			}
			triggers = append(triggers, e.newTrigger(reading, models.TriggerHighHeartRate, severity, hr, HeartRateThreshold))
		}
	}

	if reading.Temperature != nil && *reading.Temperature > TemperatureThreshold {
		severity := models.SeverityHigh
		if *reading.Temperature > TemperatureCritical {
			severity = models.SeverityCritical
		}
		triggers = append(triggers, e.newTrigger(reading, models.TriggerFireDetected, severity, *reading.Temperature, TemperatureThreshold))
	}

	if reading.SmokeLevel != nil && *reading.SmokeLevel > SmokeThreshold {
		severity := models.SeverityHigh
		if *reading.SmokeLevel > SmokeCritical {
			severity = models.SeverityCritical
		}
		triggers = append(triggers, e.newTrigger(reading, models.TriggerFireDetected, severity, *reading.SmokeLevel, SmokeThreshold))
	}

	if reading.FearProbability != nil && *reading.FearProbability > FearProbabilityThreshold {
		severity := models.SeverityHigh
		if *reading.FearProbability > FearProbabilityCritical {
			severity = models.SeverityCritical
		}
		triggers = append(triggers, e.newTrigger(reading, models.TriggerFearDetected, severity, *reading.FearProbability, FearProbabilityThreshold))
	}

	for _, t := range triggers {
		e.metrics.ObserveTrigger(string(t.Type))
	}
	return triggers
}

func (e *EmergencyTriggerEvaluator) newTrigger(reading models.SensorReading, typ models.TriggerType, severity models.Severity, value, threshold float64) models.Trigger {
	var location *models.GeoPoint
	if reading.Location != nil {
		p := *reading.Location
		location = &p
	}
	return models.Trigger{
		ID:          uuid.New(),
		DeviceID:    reading.DeviceID,
		ReadingID:   reading.ID,
		Type:        typ,
		Severity:    severity,
		Value:       value,
		Threshold:   threshold,
		Location:    location,
		TriggeredAt: e.now().UTC(),
	}
}
