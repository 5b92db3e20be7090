package widget

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/service"
)

// Key identifies the keyboard events the suggestion engine reacts to.
// Values match DOM KeyboardEvent.key so a front end can forward them as-is.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// SuggestionState is a snapshot of the dropdown state for rendering.
// HighlightIndex is -1 when nothing is highlighted, otherwise a valid index
// into Items. Open is true only while Items is non-empty and no confirmation
// has happened since the last population.
type SuggestionState struct {
	Query          string             `json:"query"`
	Items          []model.Suggestion `json:"items"`
	Open           bool               `json:"open"`
	HighlightIndex int                `json:"highlight_index"`
}

// stopper is the cancellable handle of a scheduled lookup. *time.Timer
// satisfies it; tests substitute a manual implementation.
type stopper interface {
	Stop() bool
}

type timerFactory func(d time.Duration, fn func()) stopper

func afterFunc(d time.Duration, fn func()) stopper {
	return time.AfterFunc(d, fn)
}

// SuggestionEngine owns the debounced autosuggest state machine: it debounces
// keystrokes into geocoding lookups and tracks keyboard/mouse selection over
// the returned list. Confirmation (Enter, Pick) hands the finalized query to
// the confirm callback.
type SuggestionEngine struct {
	suggester service.SuggestServiceInterface
	confirm   func(query string)

	debounce time.Duration
	minLen   int
	newTimer timerFactory

	mu        sync.Mutex
	query     string
	items     []model.Suggestion
	open      bool
	highlight int
	pending   stopper
	seq       uint64
}

// NewSuggestionEngine creates an engine wired to the given suggestion source.
// confirm is invoked with the finalized query text on every confirmation.
func NewSuggestionEngine(suggester service.SuggestServiceInterface, confirm func(query string)) *SuggestionEngine {
	if confirm == nil {
		confirm = func(string) {}
	}
	return &SuggestionEngine{
		suggester: suggester,
		confirm:   confirm,
		debounce:  config.GetSuggestDebounce(),
		minLen:    config.GetSuggestMinQueryLength(),
		newTimer:  afterFunc,
		highlight: -1,
	}
}

// OnInputChange records a keystroke. Short queries clear the dropdown and
// cancel any pending lookup; longer ones re-arm the single debounce slot so
// only the quietest, most recent keystroke ever reaches the geocoding API.
func (e *SuggestionEngine) OnInputChange(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.query = text
	e.cancelPendingLocked()
	e.seq++

	// Rune count, not byte length: "é" is one character, not two.
	if utf8.RuneCountInString(strings.TrimSpace(text)) < e.minLen {
		e.items = nil
		e.open = false
		e.highlight = -1
		return
	}

	seq := e.seq
	e.pending = e.newTimer(e.debounce, func() {
		e.lookup(seq, text)
	})
}

// lookup runs when the debounce timer fires. Responses carrying a stale
// sequence number are discarded so a superseded keystroke can never
// repopulate the list out of order.
func (e *SuggestionEngine) lookup(seq uint64, query string) {
	items, err := e.suggester.Suggest(context.Background(), query)

	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq {
		return
	}
	if err != nil {
		// Lookup failure is silent: the user can still search manually.
		e.items = nil
		e.open = false
		e.highlight = -1
		return
	}
	e.items = items
	e.open = len(items) > 0
	e.highlight = -1
}

// OnKeyDown handles a keyboard event and reports whether the event was
// consumed, so the caller can suppress its default behavior.
func (e *SuggestionEngine) OnKeyDown(key Key) bool {
	e.mu.Lock()

	switch key {
	case KeyArrowDown:
		if !e.open || len(e.items) == 0 {
			e.mu.Unlock()
			return false
		}
		e.highlight = (e.highlight + 1) % len(e.items)
		e.mu.Unlock()
		return true

	case KeyArrowUp:
		if !e.open || len(e.items) == 0 {
			e.mu.Unlock()
			return false
		}
		if e.highlight <= 0 {
			e.highlight = len(e.items) - 1
		} else {
			e.highlight--
		}
		e.mu.Unlock()
		return true

	case KeyEnter:
		var confirmed string
		if e.open && e.highlight >= 0 && e.highlight < len(e.items) {
			confirmed = e.items[e.highlight].Value
			e.query = confirmed
		} else {
			confirmed = e.query
		}
		e.resetLocked()
		e.mu.Unlock()
		e.confirm(confirmed)
		return true

	case KeyEscape:
		e.open = false
		e.highlight = -1
		e.mu.Unlock()
		return true
	}

	e.mu.Unlock()
	return false
}

// Pick confirms a suggestion chosen by pointer.
func (e *SuggestionEngine) Pick(s model.Suggestion) {
	e.mu.Lock()
	e.query = s.Value
	e.resetLocked()
	e.mu.Unlock()
	e.confirm(s.Value)
}

// OnFocusLoss dismisses the dropdown when an interaction lands outside the
// component's region. The containment predicate is the caller's concern;
// here only its verdict arrives.
func (e *SuggestionEngine) OnFocusLoss(inside bool) {
	if inside {
		return
	}
	e.mu.Lock()
	e.open = false
	e.mu.Unlock()
}

// State returns a snapshot of the current suggestion state.
func (e *SuggestionEngine) State() SuggestionState {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]model.Suggestion, len(e.items))
	copy(items, e.items)
	return SuggestionState{
		Query:          e.query,
		Items:          items,
		Open:           e.open,
		HighlightIndex: e.highlight,
	}
}

// resetLocked discards the suggestion list after a confirmation. Bumping the
// sequence number voids any lookup still in flight, keeping the dropdown
// closed until the user types again.
func (e *SuggestionEngine) resetLocked() {
	e.cancelPendingLocked()
	e.seq++
	e.items = nil
	e.open = false
	e.highlight = -1
}

func (e *SuggestionEngine) cancelPendingLocked() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}
