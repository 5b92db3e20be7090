package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/repository"
)

// SuggestServiceInterface defines the suggestion service interface for testing
type SuggestServiceInterface interface {
	Suggest(ctx context.Context, query string) ([]model.Suggestion, error)
}

// SuggestService maps partial queries to place suggestions
type SuggestService struct {
	GeoRepo repository.GeocodingRepository
}

// NewSuggestService creates a new suggestion service instance
func NewSuggestService(repo ...repository.GeocodingRepository) *SuggestService {
	var geoRepo repository.GeocodingRepository
	if len(repo) > 0 && repo[0] != nil {
		geoRepo = repo[0]
	} else {
		geoRepo = repository.NewGeocodingRepository()
	}
	return &SuggestService{GeoRepo: geoRepo}
}

// Suggest returns up to the configured limit of suggestions for a partial
// query. Queries shorter than the minimum length return an empty list
// without touching the geocoding API.
func (s *SuggestService) Suggest(ctx context.Context, query string) ([]model.Suggestion, error) {
	trimmed := strings.TrimSpace(query)
	// Rune count, not byte length: "é" is one character, not two.
	if utf8.RuneCountInString(trimmed) < config.GetSuggestMinQueryLength() {
		return []model.Suggestion{}, nil
	}

	limit := config.GetSuggestLimit()
	places, err := s.GeoRepo.SearchPlaces(ctx, trimmed, limit)
	if err != nil {
		return nil, err
	}
	// The limit travels with the request, but a misbehaving upstream or a
	// cache entry written under a larger limit could still overshoot it.
	if len(places) > limit {
		places = places[:limit]
	}

	suggestions := make([]model.Suggestion, 0, len(places))
	for _, place := range places {
		suggestions = append(suggestions, model.NewSuggestion(place))
	}
	return suggestions, nil
}
