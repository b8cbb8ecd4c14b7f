package repository

import (
	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
)

// pointArgs раскладывает точку в аргументы ST_MakePoint(lon, lat).
// Для nil оба аргумента NULL, и ST_MakePoint возвращает NULL.
func pointArgs(p *models.GeoPoint) (lon, lat *float64) {
	if p == nil {
		return nil, nil
	}
	lo, la := p.Longitude, p.Latitude
	return &lo, &la
}

// nullableUUID превращает нулевой UUID в NULL
func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
