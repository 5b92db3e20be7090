package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/repository"
	"github.com/fakhrymubarak/weather-widget/internal/service"
)

type WeatherHandler struct {
	WeatherService service.WeatherServiceInterface
}

func NewWeatherHandler(svc ...service.WeatherServiceInterface) *WeatherHandler {
	var weatherService service.WeatherServiceInterface
	if len(svc) > 0 && svc[0] != nil {
		weatherService = svc[0]
	} else {
		weatherService = service.NewWeatherService()
	}
	return &WeatherHandler{
		WeatherService: weatherService,
	}
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

// HandleWeather serves GET /api/v1/weather?location=<place>. A blank or
// missing location falls back to the configured default place.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errMsg := "Method not allowed"
		w.Header().Set("Allow", http.MethodGet)
		writeJSONResponse(w, http.StatusMethodNotAllowed, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	location := r.URL.Query().Get("location")

	weather, err := h.WeatherService.GetWeather(r.Context(), location)
	if err != nil {
		status, errMsg := mapWeatherError(err)
		writeJSONResponse(w, status, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    weather,
		Message: "Success",
	})
}

// mapWeatherError translates repository failures into HTTP responses,
// keeping the upstream status description when one exists.
func mapWeatherError(err error) (int, string) {
	var statusErr *repository.StatusError
	switch {
	case errors.Is(err, repository.ErrAPIKeyMissing):
		return http.StatusInternalServerError, "Missing API key"
	case errors.Is(err, repository.ErrLocationNotFound):
		return http.StatusNotFound, "Location not found"
	case errors.As(err, &statusErr):
		return http.StatusBadGateway, statusErr.Message
	default:
		return http.StatusInternalServerError, "Failed to fetch weather data"
	}
}
