package places

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"smartestate/server/internal/geometry"
	"smartestate/server/internal/models"
)

const nearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// Name fragments for synthesized places, keyed by category.
var placeNamePrefixes = map[string][]string{
	"school":          {"Elementary School", "High School", "Middle School", "Academy", "University"},
	"hospital":        {"Hospital", "Medical Center", "Clinic", "Health Center"},
	"transit_station": {"Station", "Transit Center", "Stop", "Terminal"},
	"park":            {"Park", "Gardens", "Playground", "Recreation Area"},
	"restaurant":      {"Restaurant", "Cafe", "Bistro", "Diner"},
	"shopping_mall":   {"Mall", "Shopping Center", "Galleria", "Plaza"},
	"supermarket":     {"Supermarket", "Grocery", "Market", "Food Store"},
}

var streetNames = []string{"Main", "Oak", "Pine", "Maple", "Cedar", "Elm", "Washington", "Lincoln", "Jefferson", "Adams"}

var directions = []string{"North", "South", "East", "West", "Central"}

// Client finds points of interest around a coordinate through the Places
// API, synthesizing plausible results when no API key is configured or the
// request fails.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	rng        *rand.Rand
	logger     *logrus.Logger
}

// NewClient creates a places client. A nil rng seeds from the clock and a
// nil logger falls back to the logrus standard logger.
func NewClient(apiKey string, timeout time.Duration, rng *rand.Rand, logger *logrus.Logger) *Client {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    nearbySearchURL,
		httpClient: &http.Client{Timeout: timeout},
		rng:        rng,
		logger:     logger,
	}
}

// SetBaseURL points the client at a different search endpoint, for tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// NearbyPlaces returns points of interest of a category within the radius.
// Failures degrade to sample data; the returned error is always nil.
func (c *Client) NearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters int, category string) ([]models.NearbyPlace, error) {
	if c.apiKey != "" {
		found, err := c.search(ctx, lat, lng, radiusMeters, category)
		if err == nil && len(found) > 0 {
			return found, nil
		}
		c.logger.WithError(err).WithFields(logrus.Fields{
			"category": category,
			"lat":      lat,
			"lng":      lng,
		}).Warn("Places search failed, generating sample places")
	}
	return c.samplePlaces(lat, lng, radiusMeters, category, 10), nil
}

func (c *Client) search(ctx context.Context, lat, lng float64, radiusMeters int, category string) ([]models.NearbyPlace, error) {
	params := url.Values{
		"location": []string{fmt.Sprintf("%f,%f", lat, lng)},
		"radius":   []string{fmt.Sprintf("%d", radiusMeters)},
		"type":     []string{category},
		"key":      []string{c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Name     string `json:"name"`
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
			Rating float64 `json:"rating"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("places API error: %s", payload.Status)
	}

	found := make([]models.NearbyPlace, 0, len(payload.Results))
	for _, result := range payload.Results {
		found = append(found, models.NearbyPlace{
			Name:           result.Name,
			Type:           category,
			Lat:            result.Geometry.Location.Lat,
			Lng:            result.Geometry.Location.Lng,
			DistanceMeters: geometry.DistanceMeters(lat, lng, result.Geometry.Location.Lat, result.Geometry.Location.Lng),
			Rating:         result.Rating,
		})
	}
	return found, nil
}

// samplePlaces scatters count synthetic places uniformly around the center.
func (c *Client) samplePlaces(lat, lng float64, radiusMeters int, category string, count int) []models.NearbyPlace {
	prefixes, ok := placeNamePrefixes[category]
	if !ok {
		prefixes = []string{"Business"}
	}

	radiusDeg := float64(radiusMeters) / 111000

	found := make([]models.NearbyPlace, 0, count)
	for i := 0; i < count; i++ {
		angle := c.rng.Float64() * 2 * math.Pi
		dist := c.rng.Float64() * radiusDeg
		placeLat := lat + dist*math.Cos(angle)
		placeLng := lng + dist*math.Sin(angle)

		name := fmt.Sprintf("%s %s %s",
			directions[c.rng.Intn(len(directions))],
			streetNames[c.rng.Intn(len(streetNames))],
			prefixes[c.rng.Intn(len(prefixes))])

		found = append(found, models.NearbyPlace{
			Name:           name,
			Type:           category,
			Lat:            placeLat,
			Lng:            placeLng,
			DistanceMeters: geometry.DistanceMeters(lat, lng, placeLat, placeLng),
			Rating:         math.Round((2.0+c.rng.Float64()*3.0)*10) / 10,
		})
	}
	return found
}
