package service

import (
	"context"
	"strings"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/repository"
)

// WeatherServiceInterface defines the weather service interface for testing
type WeatherServiceInterface interface {
	GetWeather(ctx context.Context, location string) (*model.WeatherReport, error)
}

// WeatherService resolves a query to a place name and fetches its current weather
type WeatherService struct {
	WeatherRepo repository.WeatherRepository
}

// NewWeatherService creates a new weather service instance
func NewWeatherService(repo ...repository.WeatherRepository) *WeatherService {
	var weatherRepo repository.WeatherRepository
	if len(repo) > 0 && repo[0] != nil {
		weatherRepo = repo[0]
	} else {
		weatherRepo = repository.NewWeatherRepository()
	}
	return &WeatherService{WeatherRepo: weatherRepo}
}

// GetWeather fetches current weather for a location. A blank location falls
// back to the configured default place.
func (s *WeatherService) GetWeather(ctx context.Context, location string) (*model.WeatherReport, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = config.GetDefaultLocation()
	}
	return s.WeatherRepo.GetWeather(ctx, location)
}
