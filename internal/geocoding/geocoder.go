package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"smartestate/server/internal/models"
)

const nominatimURL = "https://nominatim.openstreetmap.org/search"

// Well-known city coordinates used when the geocoding service cannot be
// reached. Ordered so substring matching is deterministic.
var sampleCities = []struct {
	name    string
	lat     float64
	lng     float64
	address string
}{
	{"new york", 40.7128, -74.0060, "New York, NY, USA"},
	{"los angeles", 34.0522, -118.2437, "Los Angeles, CA, USA"},
	{"chicago", 41.8781, -87.6298, "Chicago, IL, USA"},
	{"houston", 29.7604, -95.3698, "Houston, TX, USA"},
	{"phoenix", 33.4484, -112.0740, "Phoenix, AZ, USA"},
	{"philadelphia", 39.9526, -75.1652, "Philadelphia, PA, USA"},
	{"san antonio", 29.4241, -98.4936, "San Antonio, TX, USA"},
	{"san diego", 32.7157, -117.1611, "San Diego, CA, USA"},
	{"dallas", 32.7767, -96.7970, "Dallas, TX, USA"},
	{"san francisco", 37.7749, -122.4194, "San Francisco, CA, USA"},
}

// Geocoder resolves free-text locations to coordinates via Nominatim, with
// an in-memory cache and a sample-data fallback so lookups never hard-fail.
type Geocoder struct {
	baseURL   string
	client    *http.Client
	rng       *rand.Rand
	logger    *logrus.Logger
	cache     map[string]*models.Geocode
	cacheLock sync.RWMutex
}

// NewGeocoder creates a geocoder. A nil rng seeds from the clock and a nil
// logger falls back to the logrus standard logger.
func NewGeocoder(timeout time.Duration, rng *rand.Rand, logger *logrus.Logger) *Geocoder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Geocoder{
		baseURL: nominatimURL,
		client:  &http.Client{Timeout: timeout},
		rng:     rng,
		logger:  logger,
		cache:   make(map[string]*models.Geocode),
	}
}

// SetBaseURL points the geocoder at a different search endpoint, for tests.
func (g *Geocoder) SetBaseURL(baseURL string) {
	g.baseURL = baseURL
}

type nominatimResponse []struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a location string. Results are cached for the process
// lifetime; when the lookup fails a plausible coordinate is synthesized, so
// the returned error is always nil for non-empty locations.
func (g *Geocoder) Geocode(ctx context.Context, location string) (*models.Geocode, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("empty location")
	}

	cacheKey := strings.ToLower(strings.TrimSpace(location))
	g.cacheLock.RLock()
	if cached, ok := g.cache[cacheKey]; ok {
		g.cacheLock.RUnlock()
		return cached, nil
	}
	g.cacheLock.RUnlock()

	result, err := g.lookup(ctx, location)
	if err != nil {
		g.logger.WithError(err).WithField("location", location).Warn("Geocoding failed, using sample coordinates")
		result = g.sampleGeocode(location)
	}

	g.cacheLock.Lock()
	g.cache[cacheKey] = result
	g.cacheLock.Unlock()

	return result, nil
}

func (g *Geocoder) lookup(ctx context.Context, location string) (*models.Geocode, error) {
	params := url.Values{
		"q":      []string{location},
		"format": []string{"json"},
		"limit":  []string{"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", "SmartEstateCompass/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	var result nominatimResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no results found for location: %s", location)
	}

	var lat, lng float64
	fmt.Sscanf(result[0].Lat, "%f", &lat)
	fmt.Sscanf(result[0].Lon, "%f", &lng)

	g.logger.WithFields(logrus.Fields{
		"location":  location,
		"latitude":  lat,
		"longitude": lng,
		"source":    "nominatim",
	}).Info("Successfully geocoded location")

	return &models.Geocode{
		Lat:              lat,
		Lng:              lng,
		FormattedAddress: result[0].DisplayName,
	}, nil
}

// sampleGeocode matches the location against a well-known city table, or
// falls back to a random point in the continental US.
func (g *Geocoder) sampleGeocode(location string) *models.Geocode {
	lower := strings.ToLower(location)
	for _, city := range sampleCities {
		if strings.Contains(lower, city.name) {
			return &models.Geocode{
				Lat:              city.lat,
				Lng:              city.lng,
				FormattedAddress: city.address,
			}
		}
	}
	return &models.Geocode{
		Lat:              25 + g.rng.Float64()*24,
		Lng:              -125 + g.rng.Float64()*55,
		FormattedAddress: fmt.Sprintf("%s, USA", location),
	}
}
