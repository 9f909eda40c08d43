package geo

import (
	"math"
	"testing"

	"github.com/shenikar/family_locator/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	points := []models.Position{
		{Latitude: 0, Longitude: 0},
		{Latitude: 41.0, Longitude: 29.0},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 89.9999, Longitude: -179.9999},
	}
	for _, p := range points {
		assert.InDelta(t, 0, DistanceMeters(p, p), 1e-6)
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := models.Position{Latitude: 41.0082, Longitude: 28.9784}
	b := models.Position{Latitude: 39.9334, Longitude: 32.8597}

	assert.InDelta(t, DistanceMeters(a, b), DistanceMeters(b, a), 1e-9)
}

func TestDistanceMeters_OneKilometerAlongMeridian(t *testing.T) {
	a := models.Position{Latitude: 41.0, Longitude: 29.0}
	b := OffsetNorth(a, 1000)

	d := DistanceMeters(a, b)
	assert.InDelta(t, 1000, d, 10) // 1%
}

func TestDistanceMeters_Antipodal(t *testing.T) {
	a := models.Position{Latitude: 0, Longitude: 0}
	b := models.Position{Latitude: 0, Longitude: 180}

	d := DistanceMeters(a, b)
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*EarthRadiusMeters, d, 1)
}

func TestDistanceMeters_KnownCities(t *testing.T) {
	istanbul := models.Position{Latitude: 41.0082, Longitude: 28.9784}
	ankara := models.Position{Latitude: 39.9334, Longitude: 32.8597}

	// ~350 км по дуге большого круга
	assert.InDelta(t, 350_000, DistanceMeters(istanbul, ankara), 5_000)
}

func TestInArea(t *testing.T) {
	center := models.Position{Latitude: 41.0, Longitude: 29.0}
	area := models.MonitoredArea{
		CenterLatitude:  center.Latitude,
		CenterLongitude: center.Longitude,
		RadiusMeters:    3000,
	}

	assert.True(t, InArea(area, center))
	assert.True(t, InArea(area, OffsetNorth(center, 2999)))
	assert.False(t, InArea(area, OffsetNorth(center, 3001)))
}
