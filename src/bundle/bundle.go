package bundle

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BielosX/wombat/pokenat/src/locale"
	"github.com/BielosX/wombat/pokenat/src/pokeapi"
	"go.uber.org/zap"
)

const (
	IndexFile       = "index.json"
	DataFile        = "data.json"
	NationalPokedex = "national"
	SpriteUrlFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"
)

// Pokemon is one entry of data.json. Names is keyed by language code and Pokedex by
// pokedex name, holding the entry number in that pokedex.
type Pokemon struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Names   map[string]string `json:"names"`
	Pokedex map[string]int    `json:"pokedex"`
	Sprite  string            `json:"sprite"`
}

type IndexEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Index struct {
	Pokedexes []IndexEntry `json:"pokedexes"`
	Total     int          `json:"total"`
}

func FromSpecies(species pokeapi.PokemonSpecies) Pokemon {
	names := make(map[string]string, len(locale.Supported))
	for _, name := range species.Names {
		if locale.IsSupported(name.Language.Name) {
			names[name.Language.Name] = strings.ToLower(name.Name)
		}
	}
	pokedex := make(map[string]int, len(species.PokedexNumbers))
	for _, number := range species.PokedexNumbers {
		pokedex[number.Pokedex.Name] = int(number.EntryNumber)
	}
	return Pokemon{
		ID:      int(species.Id),
		Name:    species.Name,
		Names:   names,
		Pokedex: pokedex,
		Sprite:  fmt.Sprintf(SpriteUrlFormat, species.Id),
	}
}

// BuildIndex counts entries per pokedex, ordered by pokedex name.
func BuildIndex(entries []Pokemon) Index {
	counts := make(map[string]int)
	for _, entry := range entries {
		for name := range entry.Pokedex {
			counts[name]++
		}
	}
	pokedexes := make([]IndexEntry, 0, len(counts))
	for name, count := range counts {
		pokedexes = append(pokedexes, IndexEntry{Name: name, Count: count})
	}
	slices.SortFunc(pokedexes, func(a, b IndexEntry) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return Index{Pokedexes: pokedexes, Total: len(entries)}
}

// Search matches query case-insensitively against the id, the species name and every
// localized name. An empty query matches nothing.
func Search(entries []Pokemon, query string) []Pokemon {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var result []Pokemon
	for _, entry := range entries {
		if matches(entry, query) {
			result = append(result, entry)
		}
	}
	return result
}

func matches(entry Pokemon, query string) bool {
	if strconv.Itoa(entry.ID) == query || strings.Contains(strings.ToLower(entry.Name), query) {
		return true
	}
	for _, name := range entry.Names {
		if strings.Contains(strings.ToLower(name), query) {
			return true
		}
	}
	return false
}

// InPokedex keeps the entries listed in the named pokedex, ordered by their entry number there.
func InPokedex(entries []Pokemon, pokedex string) []Pokemon {
	var result []Pokemon
	for _, entry := range entries {
		if _, ok := entry.Pokedex[pokedex]; ok {
			result = append(result, entry)
		}
	}
	slices.SortStableFunc(result, func(a, b Pokemon) int {
		return cmp.Compare(a.Pokedex[pokedex], b.Pokedex[pokedex])
	})
	return result
}

type SpeciesLister interface {
	ListSpecies(ctx context.Context, ids []int) ([]pokeapi.PokemonSpecies, error)
}

type Builder struct {
	source SpeciesLister
	sugar  *zap.SugaredLogger
}

func NewBuilder(source SpeciesLister, sugar *zap.SugaredLogger) *Builder {
	return &Builder{source: source, sugar: sugar}
}

// Build fetches national ids first..last inclusive. Ids past the last known species are left out.
func (b *Builder) Build(ctx context.Context, first, last int) ([]Pokemon, error) {
	if first < 1 || last < first {
		return nil, fmt.Errorf("invalid id range %d..%d", first, last)
	}
	ids := make([]int, 0, last-first+1)
	for id := first; id <= last; id++ {
		ids = append(ids, id)
	}
	b.sugar.Infof("Building dataset for Pokemon %d..%d", first, last)
	species, err := b.source.ListSpecies(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make([]Pokemon, 0, len(species))
	for _, s := range species {
		entries = append(entries, FromSpecies(s))
	}
	return entries, nil
}

func WriteFiles(dir string, entries []Pokemon) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, DataFile), entries); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, IndexFile), BuildIndex(entries))
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func ReadData(path string) ([]Pokemon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []Pokemon
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return entries, nil
}
