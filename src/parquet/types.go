package parquet

import (
	"cmp"
	"slices"

	"github.com/BielosX/wombat/pokenat/src/bundle"
	"github.com/BielosX/wombat/pokenat/src/locale"
)

// PokedexEntry is one (pokemon, pokedex) pair of the flattened dataset export.
type PokedexEntry struct {
	Id          int32  `parquet:"name=id, type=INT32"`
	Name        string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	NameEn      string `parquet:"name=name_en, type=BYTE_ARRAY, convertedtype=UTF8"`
	NameFr      string `parquet:"name=name_fr, type=BYTE_ARRAY, convertedtype=UTF8"`
	Pokedex     string `parquet:"name=pokedex, type=BYTE_ARRAY, convertedtype=UTF8"`
	EntryNumber int32  `parquet:"name=entry_number, type=INT32"`
	Sprite      string `parquet:"name=sprite, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ToEntries produces one row per pokedex the pokemon appears in, ordered by pokedex name.
func ToEntries(pokemon bundle.Pokemon) []PokedexEntry {
	entries := make([]PokedexEntry, 0, len(pokemon.Pokedex))
	for pokedex, number := range pokemon.Pokedex {
		entries = append(entries, PokedexEntry{
			Id:          int32(pokemon.ID),
			Name:        pokemon.Name,
			NameEn:      pokemon.Names[locale.English],
			NameFr:      pokemon.Names[locale.French],
			Pokedex:     pokedex,
			EntryNumber: int32(number),
			Sprite:      pokemon.Sprite,
		})
	}
	slices.SortFunc(entries, func(a, b PokedexEntry) int {
		return cmp.Compare(a.Pokedex, b.Pokedex)
	})
	return entries
}
