package model

// GeoPlace is one entry of the OpenWeatherMap direct geocoding response.
type GeoPlace struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
