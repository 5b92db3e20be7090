package integrationtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/redis"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type WidgetAPITestSuite struct {
	suite.Suite
	httpServer *httptest.Server
	mockGeo    *httptest.Server
	mockOWM    *httptest.Server
}

func (suite *WidgetAPITestSuite) SetupSuite() {
	createMockRedisServer()
	viper.Set("redis.addr", miniRedisMock.Addr())

	os.Setenv("OPENWEATHERMAP_API_KEY", "test_api_key")

	suite.mockGeo = mockGeoAPI()
	suite.mockOWM = mockWeatherAPI()
	viper.Set("openweathermap.geo_api_url", suite.mockGeo.URL)
	viper.Set("openweathermap.api_url", suite.mockOWM.URL)

	config.ReloadConfigForTest()
	redis.ResetClientForTest()

	suite.httpServer = setupIntegrationTestServer()
}

func (suite *WidgetAPITestSuite) TearDownSuite() {
	if suite.httpServer != nil {
		suite.httpServer.Close()
	}
	if suite.mockGeo != nil {
		suite.mockGeo.Close()
	}
	if suite.mockOWM != nil {
		suite.mockOWM.Close()
	}
	if miniRedisMock != nil {
		miniRedisMock.Close()
	}
	os.Unsetenv("OPENWEATHERMAP_API_KEY")
}

func TestWidgetAPITestSuite(t *testing.T) {
	suite.Run(t, new(WidgetAPITestSuite))
}

func (suite *WidgetAPITestSuite) get(path string) *http.Response {
	resp, err := suite.httpServer.Client().Get(suite.httpServer.URL + path)
	assert.NoError(suite.T(), err)
	return resp
}

func decodeSuggestions(t *testing.T, resp *http.Response) []model.Suggestion {
	var body struct {
		Data []model.Suggestion `json:"data"`
	}
	err := json.NewDecoder(resp.Body).Decode(&body)
	assert.NoError(t, err)
	return body.Data
}

func (suite *WidgetAPITestSuite) TestSuggestEndpoint() {
	suite.Run("Success - maps geocoding entries to suggestions", func() {
		miniRedisMock.FlushAll()

		resp := suite.get("/api/v1/suggest?q=Paris")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
		suggestions := decodeSuggestions(suite.T(), resp)
		assert.Len(suite.T(), suggestions, 2)
		assert.Equal(suite.T(), model.Suggestion{Label: "Paris, FR", Value: "Paris,FR"}, suggestions[0])
		assert.Equal(suite.T(), model.Suggestion{Label: "Paris, Texas, US", Value: "Paris,US"}, suggestions[1])
	})

	suite.Run("Success - second lookup served from cache", func() {
		miniRedisMock.FlushAll()
		geoAPICalls = 0

		resp := suite.get("/api/v1/suggest?q=Paris")
		resp.Body.Close()
		assert.Equal(suite.T(), 1, geoAPICalls)

		cached, err := redis.GetClient().Get(redis.GetContext(), "suggest:paris:6").Result()
		assert.NoError(suite.T(), err)
		assert.Contains(suite.T(), cached, "Paris")

		resp = suite.get("/api/v1/suggest?q=Paris")
		defer resp.Body.Close()
		suggestions := decodeSuggestions(suite.T(), resp)
		assert.Len(suite.T(), suggestions, 2)
		assert.Equal(suite.T(), 1, geoAPICalls)
	})

	suite.Run("Success - short query returns empty list without lookup", func() {
		geoAPICalls = 0

		resp := suite.get("/api/v1/suggest?q=P")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
		assert.Empty(suite.T(), decodeSuggestions(suite.T(), resp))
		assert.Equal(suite.T(), 0, geoAPICalls)
	})

	suite.Run("Success - unknown place returns empty list", func() {
		miniRedisMock.FlushAll()

		resp := suite.get("/api/v1/suggest?q=Zzzz")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
		assert.Empty(suite.T(), decodeSuggestions(suite.T(), resp))
	})

	suite.Run("Failure is silent - missing API key yields empty list", func() {
		miniRedisMock.FlushAll()
		os.Unsetenv("OPENWEATHERMAP_API_KEY")
		defer os.Setenv("OPENWEATHERMAP_API_KEY", "test_api_key")

		resp := suite.get("/api/v1/suggest?q=Paris")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
		assert.Empty(suite.T(), decodeSuggestions(suite.T(), resp))
	})
}

func (suite *WidgetAPITestSuite) TestWeatherEndpoint() {
	suite.Run("Success - valid location", func() {
		resp := suite.get("/api/v1/weather?location=London")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

		var body struct {
			Data model.WeatherReport `json:"data"`
		}
		err := json.NewDecoder(resp.Body).Decode(&body)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), "London", body.Data.Location)
		assert.Equal(suite.T(), "Clear", body.Data.Condition)
		assert.Equal(suite.T(), "clear sky", body.Data.Description)
		assert.Equal(suite.T(), 15.2, body.Data.Temperature)
		assert.Equal(suite.T(), 4.1, body.Data.WindSpeed)
		assert.Equal(suite.T(), 10000, body.Data.Visibility)
	})

	suite.Run("Success - blank location falls back to default place", func() {
		resp := suite.get("/api/v1/weather")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

		var body struct {
			Data model.WeatherReport `json:"data"`
		}
		err := json.NewDecoder(resp.Body).Decode(&body)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Algiers", body.Data.Location)
	})

	suite.Run("Success - canonical suggestion value resolves", func() {
		resp := suite.get("/api/v1/weather?location=Paris%2CFR")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	})

	suite.Run("Failed - unknown location", func() {
		resp := suite.get("/api/v1/weather?location=Nowheresville")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(suite.T(), string(body), "Location not found")
	})

	suite.Run("Failed - upstream rejects API key", func() {
		os.Setenv("OPENWEATHERMAP_API_KEY", "invalid_key")
		defer os.Setenv("OPENWEATHERMAP_API_KEY", "test_api_key")

		resp := suite.get("/api/v1/weather?location=London")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusBadGateway, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(suite.T(), string(body), "Invalid API key")
	})

	suite.Run("Failed - missing API key", func() {
		os.Unsetenv("OPENWEATHERMAP_API_KEY")
		defer os.Setenv("OPENWEATHERMAP_API_KEY", "test_api_key")

		resp := suite.get("/api/v1/weather?location=London")
		defer resp.Body.Close()

		assert.Equal(suite.T(), http.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(suite.T(), string(body), "Missing API key")
	})
}
