package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestQueueSinkTuples(t *testing.T) {
	tests := []struct {
		name  string
		track func(*Tracker)
		want  []any
	}{
		{
			name:  "category and action only",
			track: func(tr *Tracker) { tr.Event("Pokemon", "list") },
			want:  []any{"trackEvent", "Pokemon", "list"},
		},
		{
			name:  "pokedex select",
			track: func(tr *Tracker) { tr.PokedexSelect("kanto") },
			want:  []any{"trackEvent", "Pokedex", "select", "kanto"},
		},
		{
			name:  "language change",
			track: func(tr *Tracker) { tr.LanguageChange("fr") },
			want:  []any{"trackEvent", "Settings", "language", "fr"},
		},
		{
			name:  "pokemon view carries id as value",
			track: func(tr *Tracker) { tr.PokemonView("bulbasaur", 1) },
			want:  []any{"trackEvent", "Pokemon", "view", "bulbasaur", float64(1)},
		},
		{
			name:  "encounters open",
			track: func(tr *Tracker) { tr.EncountersOpen("pikachu") },
			want:  []any{"trackEvent", "Pokemon", "encounters_open", "pikachu"},
		},
		{
			name:  "pokemon search",
			track: func(tr *Tracker) { tr.PokemonSearch("bulb", 2) },
			want:  []any{"trackSiteSearch", "bulb", "pokemon", 2},
		},
		{
			name:  "search defaults",
			track: func(tr *Tracker) { tr.Search("pika", "", 0) },
			want:  []any{"trackSiteSearch", "pika", "", 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := NewQueue()
			tt.track(NewTracker(NewQueueSink(queue)))
			assert.Equal(t, [][]any{tt.want}, queue.Items())
		})
	}
}

func TestValueWithoutNameIsDropped(t *testing.T) {
	queue := NewQueue()
	NewQueueSink(queue).TrackEvent(Event{Category: "Pokemon", Action: "view", Value: null.FloatFrom(3)})
	assert.Equal(t, [][]any{{"trackEvent", "Pokemon", "view"}}, queue.Items())
}

func TestAbsentQueueIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		tracker := NewTracker(NewQueueSink(nil))
		tracker.PokemonView("bulbasaur", 1)
		tracker.PokemonSearch("bulb", 1)

		var sink *QueueSink
		sink.TrackEvent(Event{Category: "x", Action: "y"})

		NewTracker(nil).LanguageChange("en")
	})
}

func TestNewSinkDisabledWithoutConfig(t *testing.T) {
	sugar := zap.NewNop().Sugar()
	assert.IsType(t, Noop{}, NewSink(Config{}, "", sugar))
	assert.IsType(t, Noop{}, NewSink(Config{Host: "stats.example.org"}, "", sugar))
	assert.IsType(t, &MatomoSink{}, NewSink(Config{Host: "stats.example.org", SiteID: 3}, "", sugar))
}

func TestNewVisitorID(t *testing.T) {
	id := NewVisitorID()
	assert.Len(t, id, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", id)
	assert.NotEqual(t, id, NewVisitorID())
}

func TestMatomoSinkSendsTrackingRequests(t *testing.T) {
	var mu sync.Mutex
	var received []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matomo.php", r.URL.Path)
		mu.Lock()
		received = append(received, r.URL.Query())
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sink := NewMatomoSink(Config{Host: server.URL + "/", SiteID: 7}, "0123456789abcdef", server.Client(), zap.NewNop().Sugar())
	tracker := NewTracker(sink)
	tracker.PokemonView("bulbasaur", 1)
	tracker.PokemonSearch("bulb", 2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sink.Close(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	byKind := map[string]url.Values{}
	for _, params := range received {
		assert.Equal(t, "7", params.Get("idsite"))
		assert.Equal(t, "1", params.Get("rec"))
		assert.Equal(t, "0123456789abcdef", params.Get("_id"))
		if params.Has("search") {
			byKind["search"] = params
		} else {
			byKind["event"] = params
		}
	}
	assert.Equal(t, "Pokemon", byKind["event"].Get("e_c"))
	assert.Equal(t, "view", byKind["event"].Get("e_a"))
	assert.Equal(t, "bulbasaur", byKind["event"].Get("e_n"))
	assert.Equal(t, "1", byKind["event"].Get("e_v"))
	assert.Equal(t, "bulb", byKind["search"].Get("search"))
	assert.Equal(t, "pokemon", byKind["search"].Get("search_cat"))
	assert.Equal(t, "2", byKind["search"].Get("search_count"))
}

func TestMatomoSinkSuppressesFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	server.Close()

	sink := NewMatomoSink(Config{Host: server.URL, SiteID: 1}, "", server.Client(), zap.NewNop().Sugar())
	assert.NotPanics(t, func() {
		sink.TrackEvent(Event{Category: "Pokemon", Action: "view"})
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, sink.Close(ctx))
}
