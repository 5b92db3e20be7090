package integrationtest

import (
	"net/http"
	"net/http/httptest"

	"github.com/alicebob/miniredis/v2"
	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/handler"
)

var (
	miniRedisMock *miniredis.Miniredis
	geoAPICalls   int
)

func createMockRedisServer() {
	miniRedisMock = miniredis.NewMiniRedis()
	err := miniRedisMock.StartAddr(config.GetTestRedisMockPort())
	if err != nil {
		panic(err)
	}
}

func setupIntegrationTestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/suggest", handler.NewSuggestHandler().HandleSuggest)
	mux.HandleFunc("/api/v1/weather", handler.NewWeatherHandler().HandleWeather)
	return httptest.NewServer(mux)
}

// mockGeoAPI mimics the OpenWeatherMap direct geocoding endpoint.
func mockGeoAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geoAPICalls++
		if r.URL.Query().Get("appid") != "test_api_key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") == "Paris" {
			_, _ = w.Write([]byte(`[
				{"name":"Paris","country":"FR","lat":48.8589,"lon":2.32},
				{"name":"Paris","state":"Texas","country":"US","lat":33.6617,"lon":-95.5555}
			]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
}

// mockWeatherAPI mimics the OpenWeatherMap current-weather endpoint.
func mockWeatherAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "test_api_key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			return
		}
		q := r.URL.Query().Get("q")
		switch q {
		case "London", "Algiers", "Paris,FR":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"name": "` + place(q) + `",
				"weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
				"main": {"temp": 15.2, "feels_like": 14.1, "temp_min": 13.0, "temp_max": 17.4, "pressure": 1012, "humidity": 62},
				"wind": {"speed": 4.1, "deg": 250},
				"visibility": 10000
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
		}
	}))
}

// place strips the country part of a canonical query token.
func place(q string) string {
	for i := range q {
		if q[i] == ',' {
			return q[:i]
		}
	}
	return q
}
