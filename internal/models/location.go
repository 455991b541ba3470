package models

// LocationScore is the weighted composite location intelligence score.
// TotalScore must equal the documented weighted sum of the six sub-scores:
// 0.20*schools + 0.15*hospitals + 0.20*transport + 0.20*crime +
// 0.10*green + 0.15*development. All scores lie in [0,100].
type LocationScore struct {
	Location         string  `json:"location"`
	TotalScore       float64 `json:"total_score"`
	SchoolsScore     float64 `json:"schools_score"`
	HospitalsScore   float64 `json:"hospitals_score"`
	TransportScore   float64 `json:"transport_score"`
	CrimeScore       float64 `json:"crime_score"`
	GreenZonesScore  float64 `json:"green_zones_score"`
	DevelopmentScore float64 `json:"development_score"`
}

// NearbyPlace is a point of interest returned by the places collaborator.
// Used transiently by the location scorer; not persisted.
type NearbyPlace struct {
	Name           string  `json:"name"`
	Type           string  `json:"type,omitempty"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	DistanceMeters float64 `json:"distance"`
	Rating         float64 `json:"rating,omitempty"`
}

// AreaDetails is the payload produced by the area-detail collaborator.
type AreaDetails struct {
	Amenities        []NearbyPlace `json:"amenities"`
	GreenAreas       []NearbyPlace `json:"green_areas"`
	Transportation   []NearbyPlace `json:"transportation"`
	WalkabilityScore float64       `json:"walkability_score"`
}

// Geocode is the result of resolving a free-text location.
type Geocode struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
}

// HeatmapPoint is one weighted sample of the spatial heatmap grid.
type HeatmapPoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight float64 `json:"weight"`
}
