package widget

import (
	"context"

	"github.com/fakhrymubarak/weather-widget/internal/service"
)

// Widget composes the suggestion engine and the weather query the way the
// page wires them: every confirmation from the engine triggers a search.
// The two components share nothing beyond the confirmed query string.
type Widget struct {
	Engine *SuggestionEngine
	Query  *WeatherQuery
}

// New builds a widget over the given collaborators. Searches run
// asynchronously; observe their progress through Query.Status.
func New(suggester service.SuggestServiceInterface, provider service.WeatherServiceInterface) *Widget {
	query := NewWeatherQuery(provider)
	w := &Widget{Query: query}
	w.Engine = NewSuggestionEngine(suggester, func(q string) {
		go query.Search(context.Background(), q)
	})
	return w
}
