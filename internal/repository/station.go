package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/Too-lit247/my-guardian/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const stationColumns = `
	id,
	name,
	code,
	department,
	region,
	ST_Y(location::geometry) AS latitude,
	ST_X(location::geometry) AS longitude,
	active,
	created_at,
	updated_at`

type StationRepository struct {
	db *pgxpool.Pool
}

func NewStationRepository(db *pgxpool.Pool) service.StationRepository {
	return &StationRepository{db: db}
}

// ListActiveStations возвращает активные станции службы. Станции без координат тоже попадают в выборку.
func (r *StationRepository) ListActiveStations(ctx context.Context, department models.Department) ([]models.Station, error) {
	query := `SELECT ` + stationColumns + `
		FROM stations
		WHERE active = TRUE AND department = $1
		ORDER BY code;
	`
	rows, err := r.db.Query(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	defer rows.Close()

	stations := make([]models.Station, 0)
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		stations = append(stations, *station)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return stations, nil
}

// GetByID возвращает станцию по ее UUID
func (r *StationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE id = $1;`
	station, err := scanStation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("station with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get station by id: %w", err)
	}
	return station, nil
}

// Upsert создает станцию или обновляет существующую с тем же кодом
func (r *StationRepository) Upsert(ctx context.Context, station *models.Station) error {
	lon, lat := pointArgs(station.Location)
	query := `
		INSERT INTO stations (name, code, department, region, location, active)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5::float8, $6::float8), 4326), $7)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			department = EXCLUDED.department,
			region = EXCLUDED.region,
			location = EXCLUDED.location,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		station.Name,
		station.Code,
		station.Department,
		station.Region,
		lon,
		lat,
		station.Active,
	).Scan(&station.ID, &station.CreatedAt, &station.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert station: %w", err)
	}
	return nil
}

func scanStation(row pgx.Row) (*models.Station, error) {
	station := &models.Station{}
	var lat, lon *float64
	err := row.Scan(
		&station.ID,
		&station.Name,
		&station.Code,
		&station.Department,
		&station.Region,
		&lat,
		&lon,
		&station.Active,
		&station.CreatedAt,
		&station.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	station.Location = models.NewGeoPoint(lat, lon)
	return station, nil
}
