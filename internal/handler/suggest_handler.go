package handler

import (
	"net/http"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/service"
)

type SuggestHandler struct {
	SuggestService service.SuggestServiceInterface
}

func NewSuggestHandler(svc ...service.SuggestServiceInterface) *SuggestHandler {
	var suggestService service.SuggestServiceInterface
	if len(svc) > 0 && svc[0] != nil {
		suggestService = svc[0]
	} else {
		suggestService = service.NewSuggestService()
	}
	return &SuggestHandler{
		SuggestService: suggestService,
	}
}

// HandleSuggest serves GET /api/v1/suggest?q=<partial>. Lookup failures are
// deliberately indistinguishable from empty results: the dropdown goes blank
// and manual search stays available.
func (h *SuggestHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errMsg := "Method not allowed"
		w.Header().Set("Allow", http.MethodGet)
		writeJSONResponse(w, http.StatusMethodNotAllowed, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	query := r.URL.Query().Get("q")

	suggestions, err := h.SuggestService.Suggest(r.Context(), query)
	if err != nil {
		config.GetLogger().Warnw("suggestion lookup failed", "query", query, "error", err)
		suggestions = []model.Suggestion{}
	}

	writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    suggestions,
		Message: "Success",
	})
}
