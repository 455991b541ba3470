package places

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"smartestate/server/internal/geometry"
	"smartestate/server/internal/models"
)

const overpassURL = "https://overpass-api.de/api/interpreter"

var (
	sampleAmenityTypes = []string{
		"restaurant", "cafe", "bar", "supermarket", "school",
		"pharmacy", "hospital", "bank", "post_office", "library",
	}
	sampleGreenTypes     = []string{"park", "forest", "garden", "water", "nature_reserve"}
	sampleTransportTypes = []string{"bus_stop", "train_station", "subway", "tram_stop", "major_road"}
)

// AreaClient assembles amenity, green-area, transportation and walkability
// details for a coordinate from OpenStreetMap, with sample fallbacks so the
// lookup never hard-fails.
type AreaClient struct {
	baseURL    string
	httpClient *http.Client
	rng        *rand.Rand
	logger     *logrus.Logger
}

// NewAreaClient creates an area-detail client. A nil rng seeds from the
// clock and a nil logger falls back to the logrus standard logger.
func NewAreaClient(timeout time.Duration, rng *rand.Rand, logger *logrus.Logger) *AreaClient {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AreaClient{
		baseURL:    overpassURL,
		httpClient: &http.Client{Timeout: timeout},
		rng:        rng,
		logger:     logger,
	}
}

// SetBaseURL points the client at a different Overpass endpoint, for tests.
func (c *AreaClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// AreaDetails returns the amenities, green areas and transportation around a
// coordinate plus a derived walkability score. Query failures are replaced
// per-part with sample data; the returned error is always nil.
func (c *AreaClient) AreaDetails(ctx context.Context, lat, lng float64, radiusMeters int) (models.AreaDetails, error) {
	amenities, err := c.queryNodes(ctx, lat, lng, radiusMeters, "amenity")
	if err != nil {
		c.logger.WithError(err).Warn("Amenity query failed, generating sample amenities")
		amenities = c.sampleNodes(lat, lng, radiusMeters, sampleAmenityTypes, 5+c.rng.Intn(11))
	}

	greenAreas, err := c.queryNodes(ctx, lat, lng, radiusMeters, "leisure")
	if err != nil {
		c.logger.WithError(err).Warn("Green-area query failed, generating sample green areas")
		greenAreas = c.sampleNodes(lat, lng, radiusMeters, sampleGreenTypes, 2+c.rng.Intn(7))
	}

	transportation, err := c.queryNodes(ctx, lat, lng, radiusMeters, "public_transport")
	if err != nil {
		c.logger.WithError(err).Warn("Transportation query failed, generating sample transportation")
		transportation = c.sampleNodes(lat, lng, radiusMeters, sampleTransportTypes, 3+c.rng.Intn(10))
	}

	return models.AreaDetails{
		Amenities:        amenities,
		GreenAreas:       greenAreas,
		Transportation:   transportation,
		WalkabilityScore: WalkabilityScore(amenities, transportation),
	}, nil
}

// queryNodes fetches named OSM nodes carrying the given tag within the
// radius.
func (c *AreaClient) queryNodes(ctx context.Context, lat, lng float64, radiusMeters int, tag string) ([]models.NearbyPlace, error) {
	query := fmt.Sprintf(`[out:json][timeout:10];node[%q][name](around:%d,%f,%f);out body 50;`, tag, radiusMeters, lat, lng)

	form := url.Values{"data": []string{query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "SmartEstateCompass/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var payload struct {
		Elements []struct {
			Lat  float64           `json:"lat"`
			Lon  float64           `json:"lon"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}
	if len(payload.Elements) == 0 {
		return nil, fmt.Errorf("no %s nodes found", tag)
	}

	found := make([]models.NearbyPlace, 0, len(payload.Elements))
	for _, el := range payload.Elements {
		found = append(found, models.NearbyPlace{
			Name:           el.Tags["name"],
			Type:           el.Tags[tag],
			Lat:            el.Lat,
			Lng:            el.Lon,
			DistanceMeters: geometry.DistanceMeters(lat, lng, el.Lat, el.Lon),
		})
	}
	return found, nil
}

func (c *AreaClient) sampleNodes(lat, lng float64, radiusMeters int, types []string, count int) []models.NearbyPlace {
	radiusDeg := float64(radiusMeters) / 111000

	found := make([]models.NearbyPlace, 0, count)
	for i := 0; i < count; i++ {
		angle := c.rng.Float64() * 2 * math.Pi
		dist := c.rng.Float64() * radiusDeg
		nodeLat := lat + dist*math.Cos(angle)
		nodeLng := lng + dist*math.Sin(angle)

		nodeType := types[c.rng.Intn(len(types))]
		found = append(found, models.NearbyPlace{
			Name:           fmt.Sprintf("%s %d", titleCase(nodeType), i+1),
			Type:           nodeType,
			Lat:            nodeLat,
			Lng:            nodeLng,
			DistanceMeters: geometry.DistanceMeters(lat, lng, nodeLat, nodeLng),
		})
	}
	return found
}

// WalkabilityScore rates a location 0-100 from the mix of amenities and
// public transit within walking distance. Each category is capped so a
// single dense category cannot dominate.
func WalkabilityScore(amenities, transportation []models.NearbyPlace) float64 {
	var grocery, restaurants, retail, entertainment, schools int
	for _, a := range amenities {
		switch strings.ToLower(a.Type) {
		case "supermarket", "grocery", "marketplace":
			grocery++
		case "restaurant", "cafe", "pub", "bar", "fast_food":
			restaurants++
		case "shop", "mall", "department_store":
			retail++
		case "cinema", "theatre", "arts_centre", "library":
			entertainment++
		case "school", "university", "college":
			schools++
		}
	}

	var transit int
	for _, t := range transportation {
		switch t.Type {
		case "bus_stop", "train_station", "subway", "tram_stop":
			transit++
		}
	}

	score := minInt(3, grocery)*6 +
		minInt(5, restaurants)*3 +
		minInt(5, retail)*2 +
		minInt(4, entertainment)*3 +
		minInt(3, schools)*5 +
		minInt(6, transit)*5

	return float64(minInt(100, score))
}

func titleCase(nodeType string) string {
	words := strings.Split(strings.ReplaceAll(nodeType, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
