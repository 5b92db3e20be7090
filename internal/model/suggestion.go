package model

import "strings"

// Suggestion is a single entry in the autosuggest dropdown. Label is the
// display text ("Algiers, DZ"), Value is the canonical query token sent to
// the weather API ("Algiers,DZ"). Suggestions are immutable once produced.
type Suggestion struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// NewSuggestion builds a Suggestion from a geocoding entry. The label joins
// name, state and country with commas where present; the value keeps only
// name and country so the weather API can resolve it.
func NewSuggestion(place GeoPlace) Suggestion {
	labelParts := []string{place.Name}
	if place.State != "" {
		labelParts = append(labelParts, place.State)
	}
	if place.Country != "" {
		labelParts = append(labelParts, place.Country)
	}

	value := place.Name
	if place.Country != "" {
		value += "," + place.Country
	}

	return Suggestion{
		Label: strings.Join(labelParts, ", "),
		Value: value,
	}
}
