package service

import (
	"testing"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Thresholds(t *testing.T) {
	evaluator := NewEmergencyTriggerEvaluator(nil)

	tests := []struct {
		name     string
		reading  models.SensorReading
		wantType models.TriggerType
		severity models.Severity
	}{
		{"heart rate medium", models.SensorReading{HeartRate: ptr(130)}, models.TriggerHighHeartRate, models.SeverityMedium},
		{"heart rate high", models.SensorReading{HeartRate: ptr(151)}, models.TriggerHighHeartRate, models.SeverityHigh},
		{"temperature high", models.SensorReading{Temperature: ptr(45.0)}, models.TriggerFireDetected, models.SeverityHigh},
		{"temperature critical", models.SensorReading{Temperature: ptr(50.5)}, models.TriggerFireDetected, models.SeverityCritical},
		{"smoke high", models.SensorReading{SmokeLevel: ptr(0.5)}, models.TriggerFireDetected, models.SeverityHigh},
		{"smoke critical", models.SensorReading{SmokeLevel: ptr(0.8)}, models.TriggerFireDetected, models.SeverityCritical},
		{"fear high", models.SensorReading{FearProbability: ptr(0.8)}, models.TriggerFearDetected, models.SeverityHigh},
		{"fear critical", models.SensorReading{FearProbability: ptr(0.95)}, models.TriggerFearDetected, models.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triggers := evaluator.Evaluate(tt.reading)

			require.Len(t, triggers, 1)
			assert.Equal(t, tt.wantType, triggers[0].Type)
			assert.Equal(t, tt.severity, triggers[0].Severity)
		})
	}
}

func TestEvaluate_AtThresholdDoesNotFire(t *testing.T) {
	evaluator := NewEmergencyTriggerEvaluator(nil)
	reading := models.SensorReading{
		HeartRate:       ptr(120),
		Temperature:     ptr(40.0),
		SmokeLevel:      ptr(0.3),
		FearProbability: ptr(0.7),
	}

	assert.Empty(t, evaluator.Evaluate(reading))
}

func TestEvaluate_MultipleTriggersFromOneReading(t *testing.T) {
	// Подготовка
	evaluator := NewEmergencyTriggerEvaluator(nil)
	location := models.GeoPoint{Latitude: 55.75, Longitude: 37.62}
	reading := models.SensorReading{
		ID:          uuid.New(),
		DeviceID:    uuid.New(),
		HeartRate:   ptr(160),
		Temperature: ptr(55.0),
		SmokeLevel:  ptr(0.9),
		Location:    &location,
	}

	// Действие
	triggers := evaluator.Evaluate(reading)

	// Проверки
	require.Len(t, triggers, 3)
	assert.Equal(t, models.TriggerHighHeartRate, triggers[0].Type)
	assert.Equal(t, models.TriggerFireDetected, triggers[1].Type)
	assert.Equal(t, 55.0, triggers[1].Value)
	assert.Equal(t, TemperatureThreshold, triggers[1].Threshold)
	assert.Equal(t, models.TriggerFireDetected, triggers[2].Type)
	assert.Equal(t, 0.9, triggers[2].Value)
	for _, tr := range triggers {
		assert.Equal(t, reading.DeviceID, tr.DeviceID)
		assert.Equal(t, reading.ID, tr.ReadingID)
		require.NotNil(t, tr.Location)
		assert.Equal(t, location, *tr.Location)
		assert.NotEqual(t, uuid.Nil, tr.ID)
	}
}

func TestEvaluate_NoSensorValues(t *testing.T) {
	evaluator := NewEmergencyTriggerEvaluator(nil)

	triggers := evaluator.Evaluate(models.SensorReading{Type: models.ReadingBattery, BatteryLevel: ptr(5)})

	assert.Empty(t, triggers)
}
