package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/BielosX/wombat/pokenat/src/config"
	"github.com/BielosX/wombat/pokenat/src/locale"
	"github.com/BielosX/wombat/pokenat/src/pokedata"
	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	sugar = zap.NewNop().Sugar()
	os.Exit(m.Run())
}

func TestScheduleTasks(t *testing.T) {
	schedules := scheduleTasks(ScheduleRequest{PageSize: 50, StartOffset: 100, PageCount: 3})
	assert.Equal(t, []Schedule{
		{Limit: 50, Offset: 100},
		{Limit: 50, Offset: 150},
		{Limit: 50, Offset: 200},
	}, schedules)
	assert.Empty(t, scheduleTasks(ScheduleRequest{PageSize: 50}))
}

func newTranslator(t *testing.T, code string) *locale.Translator {
	t.Helper()
	bundle, err := locale.NewBundle()
	require.NoError(t, err)
	return locale.NewTranslator(bundle, code)
}

func TestPrintDetails(t *testing.T) {
	var out bytes.Buffer
	printDetails(&out, newTranslator(t, locale.French), pokedata.PokemonDetails{
		ID:          2,
		Name:        "ivysaur",
		Types:       []string{"grass", "poison"},
		Height:      10,
		Weight:      130,
		Stats:       pokedata.Stats{HP: 60},
		Abilities:   []pokedata.Ability{{Name: "overgrow"}, {Name: "chlorophyll", IsHidden: true}},
		Generation:  "generation-i",
		Color:       "green",
		EvolvesFrom: null.StringFrom("bulbasaur"),
	})

	text := out.String()
	assert.Contains(t, text, "#2 ivysaur\n")
	assert.Contains(t, text, "Types: grass, poison\n")
	assert.Contains(t, text, "  PV: 60\n")
	assert.Contains(t, text, "  Vitesse: 0\n")
	assert.Contains(t, text, "Talents: overgrow, chlorophyll (caché)\n")
	assert.Contains(t, text, "Légendaire: non\n")
	assert.Contains(t, text, "Habitat: inconnu\n")
	assert.Contains(t, text, "Évolue de: bulbasaur\n")
}

func TestPrintEncounters(t *testing.T) {
	tr := newTranslator(t, locale.English)

	var out bytes.Buffer
	printEncounters(&out, tr, nil)
	assert.Equal(t, "No known encounter location\n", out.String())

	out.Reset()
	printEncounters(&out, tr, []pokedata.PokemonEncounter{{LocationArea: "pallet-town-area", Versions: []string{"red", "blue"}}})
	assert.Equal(t, "Encounters:\n  pallet-town-area: red, blue\n", out.String())
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"25"})
	require.NoError(t, err)
	assert.Equal(t, 25, id)

	_, err = parseID(nil)
	assert.ErrorIs(t, err, errUsage)
	_, err = parseID([]string{"pikachu"})
	assert.Error(t, err)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		PokeApiBaseUrl: "http://127.0.0.1:1/api/v2/",
		PrefsPath:      filepath.Join(t.TempDir(), "prefs.db"),
		DataDir:        t.TempDir(),
	}
}

func TestRunCommandUsage(t *testing.T) {
	cfg := testConfig(t)
	assert.ErrorIs(t, runCommand(context.Background(), cfg, nil, &bytes.Buffer{}), errUsage)
	assert.ErrorIs(t, runCommand(context.Background(), cfg, []string{"unknown"}, &bytes.Buffer{}), errUsage)
}

func TestRunCommandPlace(t *testing.T) {
	var out bytes.Buffer
	err := runCommand(context.Background(), testConfig(t), []string{"place", "-l", "5", "-c", "6", "31"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Pokedex National ID #31: box 2, line 1, column 1\n", out.String())
}

func TestRunCommandLanguagePersists(t *testing.T) {
	cfg := testConfig(t)

	var out bytes.Buffer
	require.NoError(t, runCommand(context.Background(), cfg, []string{"language", "fr"}, &out))
	assert.Equal(t, "Langue définie : fr\n", out.String())

	out.Reset()
	require.NoError(t, runCommand(context.Background(), cfg, []string{"language"}, &out))
	assert.Equal(t, "Langue actuelle : fr\n", out.String())

	err := runCommand(context.Background(), cfg, []string{"language", "de"}, &out)
	assert.ErrorIs(t, err, locale.ErrUnsupported)
}

type encountersUpstream struct {
	mu           sync.Mutex
	pokemonCalls int
	events       []url.Values
}

func newEncountersUpstream(t *testing.T) (*encountersUpstream, config.Config) {
	t.Helper()
	upstream := &encountersUpstream{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstream.mu.Lock()
		defer upstream.mu.Unlock()
		switch r.URL.Path {
		case "/matomo.php":
			upstream.events = append(upstream.events, r.URL.Query())
		case "/api/v2/pokemon/1/encounters":
			_, _ = fmt.Fprint(w, `[{"location_area": {"name": "pallet-town-area"},
				"version_details": [{"version": {"name": "red"}}, {"version": {"name": "red"}}]}]`)
		case "/api/v2/pokemon/1":
			upstream.pokemonCalls++
			_, _ = fmt.Fprint(w, `{"id": 1, "name": "bulbasaur"}`)
		case "/api/v2/pokemon-species/1":
			_, _ = fmt.Fprint(w, `{"id": 1, "name": "bulbasaur"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	cfg := testConfig(t)
	cfg.PokeApiBaseUrl = server.URL + "/api/v2/"
	cfg.MatomoHost = server.URL
	cfg.MatomoSiteID = 1
	return upstream, cfg
}

func (u *encountersUpstream) eventNames(action string) []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	var names []string
	for _, event := range u.events {
		if event.Get("e_a") == action {
			names = append(names, event.Get("e_n"))
		}
	}
	return names
}

func TestRunCommandEncountersTracksPokemonName(t *testing.T) {
	upstream, cfg := newEncountersUpstream(t)

	var out bytes.Buffer
	require.NoError(t, runCommand(context.Background(), cfg, []string{"encounters", "1"}, &out))
	assert.Equal(t, "Encounters:\n  pallet-town-area: red\n", out.String())
	assert.Equal(t, []string{"bulbasaur"}, upstream.eventNames("encounters_open"))
}

func TestRunCommandEncountersWithExplicitName(t *testing.T) {
	upstream, cfg := newEncountersUpstream(t)

	require.NoError(t, runCommand(context.Background(), cfg, []string{"encounters", "-name", "bulbizarre", "1"}, &bytes.Buffer{}))
	assert.Equal(t, []string{"bulbizarre"}, upstream.eventNames("encounters_open"))
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	assert.Zero(t, upstream.pokemonCalls)
}
