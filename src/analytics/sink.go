package analytics

import "github.com/guregu/null/v6"

const (
	actionTrackEvent      = "trackEvent"
	actionTrackSiteSearch = "trackSiteSearch"
)

// Event is a named user action. Value is only recorded when Name is set.
type Event struct {
	Category string
	Action   string
	Name     null.String
	Value    null.Float
}

type Search struct {
	Keyword      string
	Category     string
	ResultsCount int
}

// Sink records analytics best-effort. Implementations never block the caller on
// delivery and never report failures.
type Sink interface {
	TrackEvent(event Event)
	TrackSearch(search Search)
}

type Noop struct{}

func (Noop) TrackEvent(Event)   {}
func (Noop) TrackSearch(Search) {}

// eventArgs renders an event as a tracker command tuple.
func eventArgs(event Event) []any {
	args := []any{actionTrackEvent, event.Category, event.Action}
	if !event.Name.Valid {
		return args
	}
	args = append(args, event.Name.String)
	if event.Value.Valid {
		args = append(args, event.Value.Float64)
	}
	return args
}

func searchArgs(search Search) []any {
	return []any{actionTrackSiteSearch, search.Keyword, search.Category, search.ResultsCount}
}
