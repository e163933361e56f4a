package pokeapi

type NamedAPIResource struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type NamedAPIResourceList struct {
	Count    int32              `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []NamedAPIResource `json:"results"`
}

type PokemonType struct {
	Slot int32            `json:"slot"`
	Type NamedAPIResource `json:"type"`
}

type PokemonStat struct {
	BaseStat int32            `json:"base_stat"`
	Effort   int32            `json:"effort"`
	Stat     NamedAPIResource `json:"stat"`
}

type PokemonAbility struct {
	IsHidden bool             `json:"is_hidden"`
	Slot     int32            `json:"slot"`
	Ability  NamedAPIResource `json:"ability"`
}

type PokemonResponse struct {
	Id        int32            `json:"id"`
	Name      string           `json:"name"`
	Weight    int32            `json:"weight"`
	Height    int32            `json:"height"`
	Types     []PokemonType    `json:"types"`
	Stats     []PokemonStat    `json:"stats"`
	Abilities []PokemonAbility `json:"abilities"`
	Species   NamedAPIResource `json:"species"`
}

type LocalizedName struct {
	Name     string           `json:"name"`
	Language NamedAPIResource `json:"language"`
}

type PokedexNumber struct {
	EntryNumber int32            `json:"entry_number"`
	Pokedex     NamedAPIResource `json:"pokedex"`
}

// PokemonSpecies is the /pokemon-species record. Habitat and EvolvesFromSpecies are null
// upstream for many species.
type PokemonSpecies struct {
	Id                 int32             `json:"id"`
	Name               string            `json:"name"`
	Generation         NamedAPIResource  `json:"generation"`
	IsLegendary        bool              `json:"is_legendary"`
	IsMythical         bool              `json:"is_mythical"`
	Color              NamedAPIResource  `json:"color"`
	Habitat            *NamedAPIResource `json:"habitat"`
	EvolvesFromSpecies *NamedAPIResource `json:"evolves_from_species"`
	Names              []LocalizedName   `json:"names"`
	PokedexNumbers     []PokedexNumber   `json:"pokedex_numbers"`
}

type EncounterDetail struct {
	MinLevel int32            `json:"min_level"`
	MaxLevel int32            `json:"max_level"`
	Chance   int32            `json:"chance"`
	Method   NamedAPIResource `json:"method"`
}

type VersionEncounterDetail struct {
	Version          NamedAPIResource  `json:"version"`
	MaxChance        int32             `json:"max_chance"`
	EncounterDetails []EncounterDetail `json:"encounter_details"`
}

type LocationAreaEncounter struct {
	LocationArea   NamedAPIResource         `json:"location_area"`
	VersionDetails []VersionEncounterDetail `json:"version_details"`
}

type PokemonEntry struct {
	EntryNumber    int32            `json:"entry_number"`
	PokemonSpecies NamedAPIResource `json:"pokemon_species"`
}

type Pokedex struct {
	Id             int32             `json:"id"`
	Name           string            `json:"name"`
	IsMainSeries   bool              `json:"is_main_series"`
	PokemonEntries []PokemonEntry    `json:"pokemon_entries"`
	Region         *NamedAPIResource `json:"region"`
}
