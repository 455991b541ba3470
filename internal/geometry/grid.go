package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// metersPerDegree is the approximate length of one degree of latitude.
const metersPerDegree = 111000

// GridPoints generates a square grid of sample points centered on the given
// coordinate, keeping only points within radius meters of the center. The
// grid resolution is min(20, radius/500) cells per axis. Longitude steps are
// corrected by cos(latitude) so physical spacing stays uniform away from the
// equator.
func GridPoints(centerLat, centerLng, radius float64) []orb.Point {
	gridSize := int(radius / 500)
	if gridSize > 20 {
		gridSize = 20
	}
	if gridSize < 1 {
		gridSize = 1
	}
	stepSize := radius / float64(gridSize)

	var points []orb.Point
	for i := -gridSize; i <= gridSize; i++ {
		for j := -gridSize; j <= gridSize; j++ {
			lat := centerLat + float64(i)*stepSize/metersPerDegree
			lng := centerLng + float64(j)*stepSize/(metersPerDegree*math.Cos(centerLat*math.Pi/180))

			if DistanceMeters(centerLat, centerLng, lat, lng) <= radius {
				points = append(points, orb.Point{lng, lat})
			}
		}
	}
	return points
}

// HeatmapFeatureCollection converts weighted points into a GeoJSON feature
// collection for map rendering.
func HeatmapFeatureCollection(points []orb.Point, weights []float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, p := range points {
		feature := geojson.NewFeature(p)
		weight := 0.0
		if i < len(weights) {
			weight = weights[i]
		}
		feature.Properties = geojson.Properties{"weight": weight}
		fc.Features = append(fc.Features, feature)
	}
	return fc
}
