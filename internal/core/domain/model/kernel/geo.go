package kernel

import (
	"fmt"
	"math"
	"time"

	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0

	// deliveryBaseDuration is the fixed part of the delivery estimate.
	deliveryBaseDuration = 30 * time.Minute
	// deliveryPerKmDuration is the variable part of the delivery estimate.
	deliveryPerKmDuration = 2 * time.Minute
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value
// GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"GeoPoint must be created via NewGeoPoint constructor")

// GeoPoint is an immutable latitude/longitude pair in degrees.
// Coordinates are optional on orders (address-only orders are valid), so the
// domain treats GeoPoint values as opaque positions and never requires a
// geocoding provider to interpret them.
//
// The zero value is invalid and fails validation; use NewGeoPoint.
//
// Example:
//
//	pickup, err := kernel.NewGeoPoint(40.7128, -74.0060)
//	if err != nil {
//	    // latitude or longitude out of bounds
//	}
type GeoPoint struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint after bounds-checking both coordinates:
// latitude must lie in [-90, 90] and longitude in [-180, 180].
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < LatitudeMin || lat > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	if lng < LongitudeMin || lng > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}
	return GeoPoint{lat: lat, lng: lng, guard: guard.NewConstructorGuard()}, nil
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 { return p.lat }

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 { return p.lng }

// IsEqual compares two GeoPoints by coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// String renders the point as "(lat,lng)".
func (p GeoPoint) String() string {
	return fmt.Sprintf("(%g,%g)", p.lat, p.lng)
}

// Validate returns ErrGeoPointIsNotConstructed for zero-value points.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// DistanceKm returns the great-circle distance to other in kilometers,
// computed with the haversine formula.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	dLat := toRadians(other.lat - p.lat)
	dLng := toRadians(other.lng - p.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(p.lat))*math.Cos(toRadians(other.lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// EstimateDeliveryDuration returns the straight-line delivery estimate
// between pickup and drop: 30 minutes plus 2 minutes per kilometer. This is
// a display heuristic only and gates no invariant.
func EstimateDeliveryDuration(pickup, drop GeoPoint) time.Duration {
	km := pickup.DistanceKm(drop)
	return deliveryBaseDuration + time.Duration(km*float64(deliveryPerKmDuration))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
