package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/Too-lit247/my-guardian/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const alertColumns = `
	id,
	title,
	alert_type,
	department,
	priority,
	status,
	ST_Y(location::geometry) AS latitude,
	ST_X(location::geometry) AS longitude,
	assigned_station_id,
	assignment_distance_km,
	parent_alert_id,
	description,
	reported_by,
	created_at,
	updated_at,
	resolved_at`

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{db: db}
}

// Save записывает одну тревогу. Каждая тревога фиксируется отдельно.
func (r *AlertRepository) Save(ctx context.Context, alert *models.RoutedAlert) (*models.RoutedAlert, error) {
	lon, lat := pointArgs(alert.Location)
	query := `
		INSERT INTO alerts (
			id, title, alert_type, department, priority, status, location,
			assigned_station_id, assignment_distance_km, parent_alert_id,
			description, reported_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($7::float8, $8::float8), 4326),
			$9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at;
	`
	saved := *alert
	err := r.db.QueryRow(ctx, query,
		alert.ID,
		alert.Title,
		alert.AlertType,
		alert.Department,
		alert.Priority,
		alert.Status,
		lon,
		lat,
		alert.AssignedStationID,
		alert.AssignmentDistanceKm,
		alert.ParentAlertID,
		alert.Description,
		alert.ReportedBy,
		alert.CreatedAt,
		alert.UpdatedAt,
	).Scan(&saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return &saved, nil
}

// GetByID возвращает тревогу по ее UUID
func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RoutedAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1;`
	alert, err := scanAlert(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("alert with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get alert by id: %w", err)
	}
	return alert, nil
}

// List возвращает тревоги по фильтру с пагинацией, новые первыми
func (r *AlertRepository) List(ctx context.Context, filter models.AlertFilter, page, pageSize int) ([]*models.RoutedAlert, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	where, args := alertFilterClause(filter)
	args = append(args, pageSize, offset)
	query := fmt.Sprintf(`SELECT %s FROM alerts %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		alertColumns, where, len(args)-1, len(args))

	return r.queryAlerts(ctx, query, args...)
}

// UpdateStatus меняет статус, только если текущий статус равен from
func (r *AlertRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.AlertStatus) error {
	query := `
		UPDATE alerts SET
			status = $1,
			updated_at = NOW(),
			resolved_at = CASE WHEN $1 = 'resolved' THEN NOW() ELSE resolved_at END
		WHERE id = $2 AND status = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update alert status: %w", err)
	}

	// Ни одной строки: тревоги нет либо статус уже изменен
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM alerts WHERE id = $1);`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check alert existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("alert with id %s: %w", id, service.ErrNotFound)
		}
		return fmt.Errorf("alert %s is no longer %s: %w", id, from, service.ErrInvalidTransition)
	}
	return nil
}

// ListUnassigned возвращает открытые тревоги с координатами, но без станции, в порядке (created_at, id).
// С курсором выборка продолжается строго после него.
func (r *AlertRepository) ListUnassigned(ctx context.Context, after *models.AlertCursor, limit int) ([]*models.RoutedAlert, error) {
	query, args := unassignedQuery(after, limit)
	return r.queryAlerts(ctx, query, args...)
}

func unassignedQuery(after *models.AlertCursor, limit int) (string, []any) {
	conditions := []string{
		"assigned_station_id IS NULL",
		"location IS NOT NULL",
		"status IN ('active', 'in_progress')",
	}
	var args []any
	if after != nil {
		args = append(args, after.CreatedAt, after.ID)
		conditions = append(conditions, "(created_at, id) > ($1, $2)")
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT %s FROM alerts WHERE %s ORDER BY created_at, id LIMIT $%d;`,
		alertColumns, strings.Join(conditions, " AND "), len(args))
	return query, args
}

// AssignStation назначает станцию, только пока тревога не назначена. false - тревогу успели назначить.
func (r *AlertRepository) AssignStation(ctx context.Context, id, stationID uuid.UUID, distanceKm float64) (bool, error) {
	query := `
		UPDATE alerts SET
			assigned_station_id = $1,
			assignment_distance_km = $2,
			updated_at = NOW()
		WHERE id = $3 AND assigned_station_id IS NULL;
	`
	cmdTag, err := r.db.Exec(ctx, query, stationID, distanceKm, id)
	if err != nil {
		return false, fmt.Errorf("failed to assign station: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

// CountForStation считает тревоги станции. Пустой statuses - любые статусы, нулевой since - без ограничения по времени.
func (r *AlertRepository) CountForStation(ctx context.Context, stationID uuid.UUID, statuses []models.AlertStatus, since time.Time) (int, error) {
	conditions := []string{"assigned_station_id = $1"}
	args := []any{stationID}
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		args = append(args, values)
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if !since.IsZero() {
		args = append(args, since)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	query := `SELECT COUNT(*) FROM alerts WHERE ` + strings.Join(conditions, " AND ") + `;`
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count station alerts: %w", err)
	}
	return count, nil
}

func (r *AlertRepository) queryAlerts(ctx context.Context, query string, args ...any) ([]*models.RoutedAlert, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.RoutedAlert, 0)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return alerts, nil
}

// alertFilterClause собирает WHERE с позиционными параметрами
func alertFilterClause(filter models.AlertFilter) (string, []any) {
	var conditions []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Department != nil {
		add("department = $%d", string(*filter.Department))
	}
	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}
	if filter.StationID != nil {
		add("assigned_station_id = $%d", *filter.StationID)
	}
	if filter.Assigned != nil {
		if *filter.Assigned {
			conditions = append(conditions, "assigned_station_id IS NOT NULL")
		} else {
			conditions = append(conditions, "assigned_station_id IS NULL")
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanAlert(row pgx.Row) (*models.RoutedAlert, error) {
	alert := &models.RoutedAlert{}
	var lat, lon *float64
	err := row.Scan(
		&alert.ID,
		&alert.Title,
		&alert.AlertType,
		&alert.Department,
		&alert.Priority,
		&alert.Status,
		&lat,
		&lon,
		&alert.AssignedStationID,
		&alert.AssignmentDistanceKm,
		&alert.ParentAlertID,
		&alert.Description,
		&alert.ReportedBy,
		&alert.CreatedAt,
		&alert.UpdatedAt,
		&alert.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	alert.Location = models.NewGeoPoint(lat, lon)
	return alert, nil
}
