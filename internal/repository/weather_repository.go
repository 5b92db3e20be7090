package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/model"
)

// WeatherRepository defines the interface for current-weather data access
type WeatherRepository interface {
	GetWeather(ctx context.Context, location string) (*model.WeatherReport, error)
}

// weatherRepository implements WeatherRepository
type weatherRepository struct {
	httpClient *http.Client
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(httpClient ...*http.Client) WeatherRepository {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherRepository{
		httpClient: client,
	}
}

// GetWeather retrieves current weather for a location from the OpenWeatherMap
// API. Weather responses are never cached; every search hits the API.
func (r *weatherRepository) GetWeather(ctx context.Context, location string) (*model.WeatherReport, error) {
	apiKey := config.GetOpenWeatherMapAPIKey()
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	reqURL := fmt.Sprintf("%s?q=%s&appid=%s&units=metric",
		config.GetOpenWeatherApiUrl(), url.QueryEscape(location), apiKey)
	resp, err := r.httpClient.Get(reqURL)
	if err != nil {
		return nil, ErrExternalAPI
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrLocationNotFound
		}
		return nil, statusError(resp)
	}

	var data model.OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	return model.NewWeatherReport(data), nil
}

// statusError maps a non-200 response to a StatusError, preferring the
// message field of the API's error body over the generic status text.
func statusError(resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)

	var body model.OpenWeatherMapError
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		message = body.Message
	}

	return &StatusError{Code: resp.StatusCode, Message: message}
}
