package geometry

import "math"

const earthRadiusMeters = 6371000

// DistanceMeters returns the great-circle (haversine) distance in meters
// between two points given in decimal degrees. The result is non-negative,
// symmetric, and zero for identical points.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return c * earthRadiusMeters
}
