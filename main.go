package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/handler"
)

func newRouter() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/suggest", handler.NewSuggestHandler().HandleSuggest).Methods(http.MethodGet)
	api.HandleFunc("/weather", handler.NewWeatherHandler().HandleWeather).Methods(http.MethodGet)

	return r
}

func serverTimeout(key string, fallback time.Duration) time.Duration {
	dur, err := time.ParseDuration(config.GetServerTimeout(key))
	if err != nil {
		return fallback
	}
	return dur
}

func main() {
	logger := config.GetLogger()

	port := config.GetServerPort()
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           newRouter(),
		ReadHeaderTimeout: serverTimeout("read_header_timeout", 15*time.Second),
		ReadTimeout:       serverTimeout("read_timeout", 15*time.Second),
		WriteTimeout:      serverTimeout("write_timeout", 10*time.Second),
		IdleTimeout:       serverTimeout("idle_timeout", 30*time.Second),
	}

	logger.Infow("weather widget server running", "port", port)
	logger.Fatalw("server stopped", "error", srv.ListenAndServe())
}
