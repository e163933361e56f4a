package analytics

import "github.com/guregu/null/v6"

const (
	categoryPokedex  = "Pokedex"
	categorySettings = "Settings"
	categoryPokemon  = "Pokemon"
	searchPokemon    = "pokemon"
)

// Tracker names the application's events on top of a Sink.
type Tracker struct {
	sink Sink
}

func NewTracker(sink Sink) *Tracker {
	if sink == nil {
		sink = Noop{}
	}
	return &Tracker{sink: sink}
}

func (t *Tracker) Event(category, action string) {
	t.sink.TrackEvent(Event{Category: category, Action: action})
}

func (t *Tracker) NamedEvent(category, action, name string) {
	t.sink.TrackEvent(Event{Category: category, Action: action, Name: null.StringFrom(name)})
}

func (t *Tracker) ValuedEvent(category, action, name string, value float64) {
	t.sink.TrackEvent(Event{
		Category: category,
		Action:   action,
		Name:     null.StringFrom(name),
		Value:    null.FloatFrom(value),
	})
}

func (t *Tracker) Search(keyword, category string, resultsCount int) {
	t.sink.TrackSearch(Search{Keyword: keyword, Category: category, ResultsCount: resultsCount})
}

func (t *Tracker) PokedexSelect(pokedexName string) {
	t.NamedEvent(categoryPokedex, "select", pokedexName)
}

func (t *Tracker) LanguageChange(lang string) {
	t.NamedEvent(categorySettings, "language", lang)
}

func (t *Tracker) PokemonView(pokemonName string, pokemonID int) {
	t.ValuedEvent(categoryPokemon, "view", pokemonName, float64(pokemonID))
}

func (t *Tracker) PokemonSearch(query string, resultsCount int) {
	t.Search(query, searchPokemon, resultsCount)
}

func (t *Tracker) EncountersOpen(pokemonName string) {
	t.NamedEvent(categoryPokemon, "encounters_open", pokemonName)
}
