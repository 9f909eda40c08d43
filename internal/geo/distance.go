package geo

import (
	"math"

	"github.com/shenikar/family_locator/internal/models"
)

// EarthRadiusMeters - средний радиус Земли
const EarthRadiusMeters = 6371000.0

// DistanceMeters возвращает расстояние между двумя позициями по формуле гаверсинусов
func DistanceMeters(a, b models.Position) float64 {
	return Distance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// Distance - то же самое для "сырых" координат в градусах
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	// из-за погрешностей h может немного выйти за [0, 1] у диаметрально противоположных точек
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// InArea проверяет, попадает ли позиция в геозону (граница включительно)
func InArea(area models.MonitoredArea, p models.Position) bool {
	return Distance(area.CenterLatitude, area.CenterLongitude, p.Latitude, p.Longitude) <= area.RadiusMeters
}

// OffsetNorth сдвигает позицию на заданное число метров вдоль меридиана
func OffsetNorth(p models.Position, meters float64) models.Position {
	p.Latitude += toDegrees(meters / EarthRadiusMeters)
	return p
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
