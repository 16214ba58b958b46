// Package geodesy provides the spherical-earth distance and coordinate
// transform support used by the sponge calculator and the FVCOM codecs.
package geodesy

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusM is the mean Earth radius in meters. All distances in this
// package are great-circle distances on a sphere of this radius; the
// whole-meter rounding below makes the spherical/ellipsoidal difference
// irrelevant for sponge radii, which are capped at 100 km.
const EarthRadiusM = 6371.0e3

// DistanceMeters returns the great-circle surface distance between two
// points given in degrees, rounded up to the nearest whole meter.
// Coincident points return exactly 0.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return math.Ceil(p1.Distance(p2).Radians() * EarthRadiusM)
}
