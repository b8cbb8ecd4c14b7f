package geo

import (
	"math"

	"github.com/Too-lit247/my-guardian/internal/models"
)

// EarthRadiusKm - средний радиус Земли, используемый формулой гаверсинусов
const EarthRadiusKm = 6371.0

// DistanceKm возвращает расстояние по большому кругу между двумя точками в километрах.
// Диапазоны координат не проверяются: это ответственность вызывающего кода.
func DistanceKm(a, b models.GeoPoint) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude) - toRadians(a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// погрешность округления может дать h чуть больше 1
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// RoundKm округляет расстояние до сотых километра
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
