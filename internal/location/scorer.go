// Package location computes composite location intelligence scores from
// nearby points of interest and area details.
package location

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"smartestate/server/internal/models"
)

// ErrGeocodeFailed is returned when a location cannot be resolved to
// coordinates.
var ErrGeocodeFailed = errors.New("failed to geocode location")

// Geocoder resolves free-text locations to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*models.Geocode, error)
}

// PlacesSource finds points of interest of a category around a coordinate.
type PlacesSource interface {
	NearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters int, category string) ([]models.NearbyPlace, error)
}

// AreaSource provides amenity, green-area and walkability details.
type AreaSource interface {
	AreaDetails(ctx context.Context, lat, lng float64, radiusMeters int) (models.AreaDetails, error)
}

// CrimeSource scores an area's safety in [0,100]. The default implementation
// returns a constant; a real data source can be swapped in without touching
// the composite formula.
type CrimeSource interface {
	CrimeScore(ctx context.Context, lat, lng float64) float64
}

// ConstantCrime is the default CrimeSource, pending a real data feed.
type ConstantCrime struct{}

func (ConstantCrime) CrimeScore(context.Context, float64, float64) float64 { return 75 }

// Composite weights. They sum to 1.0; TotalScore is their weighted sum.
const (
	weightSchools     = 0.20
	weightHospitals   = 0.15
	weightTransport   = 0.20
	weightCrime       = 0.20
	weightGreen       = 0.10
	weightDevelopment = 0.15
)

type Scorer struct {
	geocoder Geocoder
	places   PlacesSource
	area     AreaSource
	crime    CrimeSource
	cache    ScoreCache
	logger   *logrus.Logger
}

func NewScorer(geocoder Geocoder, places PlacesSource, area AreaSource, crime CrimeSource, cache ScoreCache, logger *logrus.Logger) *Scorer {
	if logger == nil {
		logger = logrus.New()
	}
	if crime == nil {
		crime = ConstantCrime{}
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Scorer{
		geocoder: geocoder,
		places:   places,
		area:     area,
		crime:    crime,
		cache:    cache,
		logger:   logger,
	}
}

// Score computes the composite score for a location, serving repeat queries
// for the same location string from the cache.
func (s *Scorer) Score(ctx context.Context, location string, radiusMeters int) (models.LocationScore, error) {
	if cached, ok := s.cache.Get(location); ok {
		return cached, nil
	}

	geocode, err := s.geocoder.Geocode(ctx, location)
	if err != nil || geocode == nil {
		s.logger.WithError(err).WithField("location", location).Warn("geocoding failed")
		return models.LocationScore{}, ErrGeocodeFailed
	}

	score := s.scoreAt(ctx, geocode.Lat, geocode.Lng, radiusMeters)
	score.Location = geocode.FormattedAddress

	s.cache.Put(location, score)
	return score, nil
}

// Compare scores several locations, skipping any that fail to geocode.
func (s *Scorer) Compare(ctx context.Context, locations []string, radiusMeters int) []models.LocationScore {
	scores := make([]models.LocationScore, 0, len(locations))
	for _, location := range locations {
		score, err := s.Score(ctx, location, radiusMeters)
		if err != nil {
			s.logger.WithField("location", location).Warn("skipping location in comparison")
			continue
		}
		scores = append(scores, score)
	}
	return scores
}

func (s *Scorer) scoreAt(ctx context.Context, lat, lng float64, radiusMeters int) models.LocationScore {
	schools := s.nearby(ctx, lat, lng, radiusMeters, "school")
	hospitals := s.nearby(ctx, lat, lng, radiusMeters, "hospital")
	transport := s.nearby(ctx, lat, lng, radiusMeters, "transit_station")
	parks := s.nearby(ctx, lat, lng, radiusMeters, "park")

	details, err := s.area.AreaDetails(ctx, lat, lng, radiusMeters)
	if err != nil {
		s.logger.WithError(err).Warn("area details unavailable, scoring without them")
		details = models.AreaDetails{}
	}

	schoolsScore := CategoryScore(schools, "school")
	hospitalsScore := CategoryScore(hospitals, "hospital")
	transportScore := CategoryScore(transport, "transport")
	crimeScore := s.crime.CrimeScore(ctx, lat, lng)
	greenScore := GreenScore(parks, details.GreenAreas)
	developmentScore := DevelopmentScore(details)

	total := schoolsScore*weightSchools +
		hospitalsScore*weightHospitals +
		transportScore*weightTransport +
		crimeScore*weightCrime +
		greenScore*weightGreen +
		developmentScore*weightDevelopment

	return models.LocationScore{
		TotalScore:       round1(total),
		SchoolsScore:     round1(schoolsScore),
		HospitalsScore:   round1(hospitalsScore),
		TransportScore:   round1(transportScore),
		CrimeScore:       round1(crimeScore),
		GreenZonesScore:  round1(greenScore),
		DevelopmentScore: round1(developmentScore),
	}
}

func (s *Scorer) nearby(ctx context.Context, lat, lng float64, radiusMeters int, category string) []models.NearbyPlace {
	places, err := s.places.NearbyPlaces(ctx, lat, lng, radiusMeters, category)
	if err != nil {
		s.logger.WithError(err).WithField("category", category).Warn("places lookup failed, scoring without category")
		return nil
	}
	return places
}

// categoryWeights hold the per-item weight and score cap per category.
var categoryWeights = map[string]struct {
	perItem float64
	cap     float64
}{
	"school":    {15, 85},
	"hospital":  {20, 90},
	"transport": {10, 80},
}

// CategoryScore scores one place category from count and average distance.
// No places means 0, not an error.
func CategoryScore(places []models.NearbyPlace, category string) float64 {
	if len(places) == 0 {
		return 0
	}

	weights, ok := categoryWeights[category]
	if !ok {
		weights.perItem, weights.cap = 10, 70
	}
	baseScore := math.Min(float64(len(places))*weights.perItem, weights.cap)

	var totalDistance float64
	for _, place := range places {
		totalDistance += place.DistanceMeters
	}
	avgDistance := totalDistance / float64(len(places))

	score := baseScore * proximityFactor(avgDistance)
	return math.Min(score, 100)
}

// GreenScore scores green space from parks plus area green zones.
func GreenScore(parks, greenAreas []models.NearbyPlace) float64 {
	count := len(parks) + len(greenAreas)
	if count == 0 {
		return 0
	}

	baseScore := math.Min(float64(count)*12, 85)

	var totalDistance float64
	for _, place := range parks {
		totalDistance += place.DistanceMeters
	}
	for _, area := range greenAreas {
		totalDistance += area.DistanceMeters
	}
	avgDistance := totalDistance / float64(count)

	score := baseScore * proximityFactor(avgDistance)
	return math.Min(score, 100)
}

// DevelopmentScore blends walkability with amenity density.
func DevelopmentScore(details models.AreaDetails) float64 {
	walkability := math.Min(details.WalkabilityScore, 90)
	amenityFactor := math.Min(float64(len(details.Amenities))/20, 1)
	return math.Min(walkability*0.7+amenityFactor*30, 100)
}

// proximityFactor discounts scores as average distance approaches 2km.
func proximityFactor(avgDistanceMeters float64) float64 {
	return 0.7 + 0.3*math.Max(0, 1-avgDistanceMeters/2000)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
