package valueobject

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/recyhub/recy-backend/internal/pkg/apperror"
)

// Location — географическая точка ресурса в градусах WGS84.
type Location struct {
	Lat float64
	Lng float64
}

func NewLocation(lat, lng float64) (Location, error) {
	if lat < -90 || lat > 90 {
		return Location{}, apperror.New(apperror.ErrCodeValidation, "широта должна быть в диапазоне [-90, 90]")
	}
	if lng < -180 || lng > 180 {
		return Location{}, apperror.New(apperror.ErrCodeValidation, "долгота должна быть в диапазоне [-180, 180]")
	}
	return Location{Lat: lat, Lng: lng}, nil
}

// Point возвращает точку orb (порядок координат lng, lat).
func (l Location) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// DistanceKm — расстояние по большой окружности в километрах.
func (l Location) DistanceKm(other Location) float64 {
	return geo.DistanceHaversine(l.Point(), other.Point()) / 1000
}
