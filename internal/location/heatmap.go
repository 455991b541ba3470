package location

import (
	"context"

	"smartestate/server/internal/geometry"
	"smartestate/server/internal/models"
)

// Heatmap types selecting which categories contribute to point weights.
const (
	HeatmapAll       = "all"
	HeatmapSchools   = "schools"
	HeatmapHospitals = "hospitals"
	HeatmapTransport = "transport"
	HeatmapCrime     = "crime"
	HeatmapGreen     = "green"
)

// pointRadiusMeters is the lookup radius around each grid point.
const pointRadiusMeters = 1000

// HeatmapData is the grid of weighted points around a center.
type HeatmapData struct {
	Center models.Geocode        `json:"center"`
	Radius int                   `json:"radius"`
	Type   string                `json:"type"`
	Points []models.HeatmapPoint `json:"points"`
}

// Heatmap samples a grid inside the radius and weights each point by a
// type-filtered partial score normalized to [0,1].
func (s *Scorer) Heatmap(ctx context.Context, center string, radiusMeters int, heatmapType string) (HeatmapData, error) {
	geocode, err := s.geocoder.Geocode(ctx, center)
	if err != nil || geocode == nil {
		s.logger.WithError(err).WithField("center", center).Warn("geocoding heatmap center failed")
		return HeatmapData{}, ErrGeocodeFailed
	}

	gridPoints := geometry.GridPoints(geocode.Lat, geocode.Lng, float64(radiusMeters))
	points := make([]models.HeatmapPoint, 0, len(gridPoints))
	for _, gp := range gridPoints {
		lng, lat := gp[0], gp[1]
		points = append(points, models.HeatmapPoint{
			Lat:    lat,
			Lng:    lng,
			Weight: s.pointWeight(ctx, lat, lng, heatmapType),
		})
	}

	return HeatmapData{
		Center: *geocode,
		Radius: radiusMeters,
		Type:   heatmapType,
		Points: points,
	}, nil
}

func (s *Scorer) pointWeight(ctx context.Context, lat, lng float64, heatmapType string) float64 {
	var schoolsScore, hospitalsScore, transportScore, greenScore, crimeScore float64

	if heatmapType == HeatmapAll || heatmapType == HeatmapSchools {
		schoolsScore = CategoryScore(s.nearby(ctx, lat, lng, pointRadiusMeters, "school"), "school")
	}
	if heatmapType == HeatmapAll || heatmapType == HeatmapHospitals {
		hospitalsScore = CategoryScore(s.nearby(ctx, lat, lng, pointRadiusMeters, "hospital"), "hospital")
	}
	if heatmapType == HeatmapAll || heatmapType == HeatmapTransport {
		transportScore = CategoryScore(s.nearby(ctx, lat, lng, pointRadiusMeters, "transit_station"), "transport")
	}
	if heatmapType == HeatmapAll || heatmapType == HeatmapGreen {
		parks := s.nearby(ctx, lat, lng, pointRadiusMeters, "park")
		details, err := s.area.AreaDetails(ctx, lat, lng, pointRadiusMeters)
		if err != nil {
			details = models.AreaDetails{}
		}
		greenScore = GreenScore(parks, details.GreenAreas)
	}
	if heatmapType == HeatmapAll || heatmapType == HeatmapCrime {
		crimeScore = s.crime.CrimeScore(ctx, lat, lng)
	}

	var total float64
	switch heatmapType {
	case HeatmapAll:
		// The heatmap blend drops development and gives its weight to
		// green space.
		total = schoolsScore*0.2 + hospitalsScore*0.15 + transportScore*0.2 +
			crimeScore*0.2 + greenScore*0.25
	case HeatmapSchools:
		total = schoolsScore
	case HeatmapHospitals:
		total = hospitalsScore
	case HeatmapTransport:
		total = transportScore
	case HeatmapCrime:
		total = crimeScore
	case HeatmapGreen:
		total = greenScore
	}

	return total / 100
}
