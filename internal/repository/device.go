package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/Too-lit247/my-guardian/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeviceRepository struct {
	db *pgxpool.Pool
}

func NewDeviceRepository(db *pgxpool.Pool) service.DeviceRepository {
	return &DeviceRepository{db: db}
}

// GetActiveByMAC возвращает активное устройство по MAC-адресу
func (r *DeviceRepository) GetActiveByMAC(ctx context.Context, mac string) (*models.Device, error) {
	device := &models.Device{}
	var lat, lon *float64
	query := `
		SELECT
			id,
			mac_address,
			serial_number,
			owner_name,
			status,
			battery_level,
			last_heartbeat,
			ST_Y(last_location::geometry) AS latitude,
			ST_X(last_location::geometry) AS longitude,
			last_location_update
		FROM devices
		WHERE mac_address = $1 AND status = 'active';
	`
	err := r.db.QueryRow(ctx, query, mac).Scan(
		&device.ID,
		&device.MACAddress,
		&device.SerialNumber,
		&device.OwnerName,
		&device.Status,
		&device.BatteryLevel,
		&device.LastHeartbeat,
		&lat,
		&lon,
		&device.LastLocationTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("active device with mac %s: %w", mac, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get device by mac: %w", err)
	}
	device.LastKnownLoc = models.NewGeoPoint(lat, lon)
	return device, nil
}

// UpdateTelemetry сохраняет heartbeat, заряд батареи и последнюю позицию
func (r *DeviceRepository) UpdateTelemetry(ctx context.Context, device *models.Device) error {
	lon, lat := pointArgs(device.LastKnownLoc)
	query := `
		UPDATE devices SET
			battery_level = $1,
			last_heartbeat = $2,
			last_location = COALESCE(ST_SetSRID(ST_MakePoint($3::float8, $4::float8), 4326), last_location),
			last_location_update = COALESCE($5, last_location_update)
		WHERE id = $6;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		device.BatteryLevel,
		device.LastHeartbeat,
		lon,
		lat,
		device.LastLocationTime,
		device.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update device telemetry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("device with id %s: %w", device.ID, service.ErrNotFound)
	}
	return nil
}

// SaveReading записывает показание датчика
func (r *DeviceRepository) SaveReading(ctx context.Context, reading *models.SensorReading) error {
	lon, lat := pointArgs(reading.Location)
	var rawData []byte
	if len(reading.RawData) > 0 {
		rawData = reading.RawData
	}
	query := `
		INSERT INTO sensor_readings (
			id, device_id, reading_type, heart_rate, temperature, smoke_level,
			battery_level, fear_probability, location, raw_data, is_emergency, triggered_by, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			ST_SetSRID(ST_MakePoint($9::float8, $10::float8), 4326), $11, $12, $13, $14);
	`
	_, err := r.db.Exec(ctx, query,
		reading.ID,
		reading.DeviceID,
		reading.Type,
		reading.HeartRate,
		reading.Temperature,
		reading.SmokeLevel,
		reading.BatteryLevel,
		reading.FearProbability,
		lon,
		lat,
		rawData,
		reading.IsEmergency,
		reading.TriggeredBy,
		reading.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sensor reading: %w", err)
	}
	return nil
}

// SaveTrigger записывает сработавший триггер вместе с id созданной тревоги
func (r *DeviceRepository) SaveTrigger(ctx context.Context, trigger *models.Trigger) error {
	lon, lat := pointArgs(trigger.Location)
	query := `
		INSERT INTO emergency_triggers (
			id, device_id, reading_id, trigger_type, severity, value, threshold,
			location, alert_created_id, triggered_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			ST_SetSRID(ST_MakePoint($8::float8, $9::float8), 4326), $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		trigger.ID,
		nullableUUID(trigger.DeviceID),
		nullableUUID(trigger.ReadingID),
		trigger.Type,
		trigger.Severity,
		trigger.Value,
		trigger.Threshold,
		lon,
		lat,
		trigger.AlertCreatedID,
		trigger.TriggeredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create emergency trigger: %w", err)
	}
	return nil
}
