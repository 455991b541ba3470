package economic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"smartestate/server/internal/models"
)

// Commodity symbols tracked for construction cost estimates, with the
// plausible spot range used when synthesizing prices.
var materialRanges = map[string][2]float64{
	"lumber":     {350, 450},
	"steel":      {800, 1000},
	"concrete":   {90, 130},
	"copper":     {3.5, 4.5},
	"aluminum":   {1.8, 2.2},
	"insulation": {0.4, 0.6},
	"drywall":    {10, 14},
}

// Fallback prices when a material has no range and no live quote.
var materialDefaults = map[string]float64{
	"lumber":     400,
	"steel":      900,
	"concrete":   110,
	"copper":     4,
	"aluminum":   2,
	"insulation": 0.5,
	"drywall":    12,
}

// MaterialPrice returns the default price for a material, or 100 for an
// unknown one.
func MaterialPrice(material string) float64 {
	if price, ok := materialDefaults[material]; ok {
		return price
	}
	return 100
}

// MaterialPrices returns current construction material prices. Live quotes
// come from the commodity markets endpoint when an API key is configured;
// otherwise each material is sampled uniformly from its plausible range.
func (c *Client) MaterialPrices(ctx context.Context) []models.MaterialPrice {
	if c.apiKey != "" {
		prices, err := c.fetchMaterialQuotes(ctx)
		if err == nil && len(prices) > 0 {
			return prices
		}
		c.logger.WithError(err).Warn("Material quote fetch failed, generating sample prices")
	}
	return c.sampleMaterialPrices()
}

func (c *Client) fetchMaterialQuotes(ctx context.Context) ([]models.MaterialPrice, error) {
	endpoint := fmt.Sprintf("%s/markets/commodities", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building commodity request: %w", err)
	}
	q := req.URL.Query()
	q.Set("c", c.apiKey)
	q.Set("f", "json")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting commodity data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("commodity API returned status %d", resp.StatusCode)
	}

	var rows []struct {
		Symbol string  `json:"Symbol"`
		Name   string  `json:"Name"`
		Last   float64 `json:"Last"`
		Unit   string  `json:"unit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding commodity response: %w", err)
	}

	now := c.nowFn()
	prices := make([]models.MaterialPrice, 0, len(materialRanges))
	for _, row := range rows {
		material := matchMaterial(row.Name)
		if material == "" {
			continue
		}
		prices = append(prices, models.MaterialPrice{
			Material: material,
			Price:    row.Last,
			Unit:     row.Unit,
			Date:     now,
			Source:   sourceName,
		})
	}
	return prices, nil
}

func matchMaterial(name string) string {
	lower := strings.ToLower(name)
	for material := range materialRanges {
		if strings.Contains(lower, material) {
			return material
		}
	}
	return ""
}

func (c *Client) sampleMaterialPrices() []models.MaterialPrice {
	now := c.nowFn()
	prices := make([]models.MaterialPrice, 0, len(materialRanges))
	for _, material := range []string{"lumber", "steel", "concrete", "copper", "aluminum", "insulation", "drywall"} {
		bounds := materialRanges[material]
		prices = append(prices, models.MaterialPrice{
			Material: material,
			Price:    round2(bounds[0] + c.rng.Float64()*(bounds[1]-bounds[0])),
			Unit:     materialUnit(material),
			Date:     now,
			Source:   sourceName,
		})
	}
	return prices
}

func materialUnit(material string) string {
	switch material {
	case "lumber":
		return "per 1000 board feet"
	case "steel":
		return "per metric ton"
	case "concrete":
		return "per cubic yard"
	case "copper", "aluminum":
		return "per pound"
	case "insulation":
		return "per sq ft"
	case "drywall":
		return "per sheet"
	default:
		return "per unit"
	}
}
