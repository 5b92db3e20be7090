package widget

import (
	"context"
	"errors"
	"sync"

	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/repository"
	"github.com/fakhrymubarak/weather-widget/internal/service"
)

// StatusKind enumerates the lifecycle of a weather search.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (k StatusKind) String() string {
	switch k {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// RequestStatus holds exactly one of the four search states. Report is set
// only for StatusReady, Message only for StatusFailed.
type RequestStatus struct {
	Kind    StatusKind
	Report  *model.WeatherReport
	Message string
}

const (
	missingKeyMessage     = "Missing API key"
	locationNotFoundMsg   = "Location not found"
	genericFailureMessage = "Failed to fetch weather data"
)

// WeatherQuery runs weather searches and exposes their status. Overlapping
// searches are not coalesced: the last one to complete wins.
type WeatherQuery struct {
	provider service.WeatherServiceInterface

	mu     sync.Mutex
	status RequestStatus
}

// NewWeatherQuery creates a WeatherQuery in the Idle state.
func NewWeatherQuery(provider service.WeatherServiceInterface) *WeatherQuery {
	return &WeatherQuery{
		provider: provider,
		status:   RequestStatus{Kind: StatusIdle},
	}
}

// Search fetches current weather for the query text and returns the final
// status. The status is Loading while the call is in flight; blank input is
// resolved to the default place by the provider. A missing API key fails
// fast without any network call.
func (q *WeatherQuery) Search(ctx context.Context, queryText string) RequestStatus {
	q.mu.Lock()
	q.status = RequestStatus{Kind: StatusLoading}
	q.mu.Unlock()

	report, err := q.provider.GetWeather(ctx, queryText)

	q.mu.Lock()
	defer q.mu.Unlock()
	if err != nil {
		q.status = RequestStatus{Kind: StatusFailed, Message: failureMessage(err)}
	} else {
		q.status = RequestStatus{Kind: StatusReady, Report: report}
	}
	return q.status
}

// Status returns the status of the most recent search.
func (q *WeatherQuery) Status() RequestStatus {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.status
}

// failureMessage derives the user-visible message from the failure cause:
// the missing-credential notice, the upstream status description, or a
// generic fallback.
func failureMessage(err error) string {
	var statusErr *repository.StatusError
	switch {
	case errors.Is(err, repository.ErrAPIKeyMissing):
		return missingKeyMessage
	case errors.Is(err, repository.ErrLocationNotFound):
		return locationNotFoundMsg
	case errors.As(err, &statusErr):
		return statusErr.Message
	default:
		return genericFailureMessage
	}
}
