package models

import "fmt"

// GeoPoint - точка WGS 84
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewGeoPoint собирает точку из nullable координат. Точка есть только если заданы обе координаты.
func NewGeoPoint(lat, lon *float64) *GeoPoint {
	if lat == nil || lon == nil {
		return nil
	}
	return &GeoPoint{Latitude: *lat, Longitude: *lon}
}

// Valid проверяет диапазоны широты и долготы
func (p GeoPoint) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("Lat: %.6f, Lng: %.6f", p.Latitude, p.Longitude)
}
