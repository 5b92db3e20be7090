package config

import (
	"flag"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
		}

		err = viper.MergeInConfig()
		if err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.api_url")
}

func GetGeocodingApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.geo_api_url")
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetServerPort() string {
	initConfig()
	return viper.GetString("server.port")
}

func GetServerTimeout(key string) string {
	initConfig()
	return viper.GetString("server." + key)
}

// GetSuggestionCacheExpiration returns the TTL for cached suggestion lookups.
// Defaults to 30m if not set or invalid.
func GetSuggestionCacheExpiration() time.Duration {
	initConfig()
	dur, err := time.ParseDuration(viper.GetString("cache.suggestion_expiration"))
	if err != nil {
		return 30 * time.Minute
	}
	return dur
}

// GetSuggestDebounce returns the quiet period the suggestion engine waits
// after the last keystroke before issuing a geocoding lookup.
// Defaults to 250ms if not set or invalid.
func GetSuggestDebounce() time.Duration {
	initConfig()
	dur, err := time.ParseDuration(viper.GetString("suggest.debounce"))
	if err != nil {
		return 250 * time.Millisecond
	}
	return dur
}

// GetSuggestLimit returns the maximum number of suggestions per geocoding lookup.
func GetSuggestLimit() int {
	initConfig()
	limit := viper.GetInt("suggest.limit")
	if limit <= 0 {
		limit = 6
	}
	return limit
}

// GetSuggestMinQueryLength returns the minimum trimmed query length that
// triggers a geocoding lookup.
func GetSuggestMinQueryLength() int {
	initConfig()
	minLen := viper.GetInt("suggest.min_query_length")
	if minLen <= 0 {
		minLen = 2
	}
	return minLen
}

// GetDefaultLocation returns the place name used when a search is submitted
// with a blank query.
func GetDefaultLocation() string {
	initConfig()
	location := viper.GetString("weather.default_location")
	if location == "" {
		location = "Algiers"
	}
	return location
}

func GetTestRedisMockPort() string {
	initConfig()
	return viper.GetString("test.redis_mock_port")
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
