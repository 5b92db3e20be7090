package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/redis"
	redisv9 "github.com/redis/go-redis/v9"
)

// redisCmdable is the subset of the Redis client used by the repositories.
// Declared as an interface so tests can swap in a mock.
type redisCmdable interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

// GeocodingRepository defines the interface for place lookups
type GeocodingRepository interface {
	SearchPlaces(ctx context.Context, query string, limit int) ([]model.GeoPlace, error)
}

// geocodingRepository implements GeocodingRepository
type geocodingRepository struct {
	redisClient redisCmdable
	httpClient  *http.Client
}

// NewGeocodingRepository creates a new geocoding repository instance
func NewGeocodingRepository(httpClient ...*http.Client) GeocodingRepository {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &geocodingRepository{
		redisClient: redis.GetClient(),
		httpClient:  client,
	}
}

// SearchPlaces retrieves place candidates for a partial query, checking the
// cache first, then the geocoding API.
func (r *geocodingRepository) SearchPlaces(ctx context.Context, query string, limit int) ([]model.GeoPlace, error) {
	if cached, err := r.getFromCache(ctx, query, limit); err == nil {
		return cached, nil
	}

	places, err := r.fetchFromExternalAPI(query, limit)
	if err != nil {
		return nil, err
	}

	r.cachePlaces(ctx, query, limit, places)

	return places, nil
}

// getFromCache retrieves a place list from the Redis cache
func (r *geocodingRepository) getFromCache(ctx context.Context, query string, limit int) ([]model.GeoPlace, error) {
	val, err := r.redisClient.Get(ctx, cacheKey(query, limit)).Result()
	if err != nil {
		return nil, err
	}

	var places []model.GeoPlace
	if err := json.Unmarshal([]byte(val), &places); err != nil {
		return nil, err
	}

	return places, nil
}

// fetchFromExternalAPI retrieves place candidates from the OpenWeatherMap
// direct geocoding API
func (r *geocodingRepository) fetchFromExternalAPI(query string, limit int) ([]model.GeoPlace, error) {
	apiKey := config.GetOpenWeatherMapAPIKey()
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	reqURL := fmt.Sprintf("%s?q=%s&limit=%d&appid=%s",
		config.GetGeocodingApiUrl(), url.QueryEscape(query), limit, apiKey)
	resp, err := r.httpClient.Get(reqURL)
	if err != nil {
		return nil, ErrExternalAPI
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrExternalAPI
	}

	var places []model.GeoPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, err
	}

	return places, nil
}

// cachePlaces stores a place list in the Redis cache
func (r *geocodingRepository) cachePlaces(ctx context.Context, query string, limit int, places []model.GeoPlace) {
	if b, err := json.Marshal(places); err == nil {
		_ = r.redisClient.Set(ctx, cacheKey(query, limit), b, config.GetSuggestionCacheExpiration()).Err()
	}
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("suggest:%s:%d", strings.ToLower(query), limit)
}
