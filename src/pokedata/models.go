package pokedata

import "github.com/guregu/null/v6"

// Stats always carries all six base stats; a stat missing upstream is 0.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

type Ability struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"isHidden"`
}

// PokemonDetails is the flattened view of a pokemon and its species record.
// Height is in decimetres and Weight in hectograms, as served upstream.
// Values handed out by Service are shared with its cache and must not be modified.
type PokemonDetails struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Types       []string    `json:"types"`
	Height      int         `json:"height"`
	Weight      int         `json:"weight"`
	Stats       Stats       `json:"stats"`
	Abilities   []Ability   `json:"abilities"`
	Generation  string      `json:"generation"`
	IsLegendary bool        `json:"isLegendary"`
	IsMythical  bool        `json:"isMythical"`
	Color       string      `json:"color"`
	Habitat     null.String `json:"habitat"`
	EvolvesFrom null.String `json:"evolvesFrom"`
}

// PokemonEncounter lists the game versions in which a location area yields the pokemon.
// Versions holds each name once, in first-seen order.
type PokemonEncounter struct {
	LocationArea string   `json:"locationArea"`
	Versions     []string `json:"versions"`
}
