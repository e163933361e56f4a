package pokedata

import (
	"github.com/BielosX/wombat/pokenat/src/pokeapi"
	"github.com/guregu/null/v6"
)

const (
	statHP             = "hp"
	statAttack         = "attack"
	statDefense        = "defense"
	statSpecialAttack  = "special-attack"
	statSpecialDefense = "special-defense"
	statSpeed          = "speed"
)

func ToStats(stats []pokeapi.PokemonStat) Stats {
	byName := make(map[string]int, len(stats))
	for _, stat := range stats {
		byName[stat.Stat.Name] = int(stat.BaseStat)
	}
	return Stats{
		HP:             byName[statHP],
		Attack:         byName[statAttack],
		Defense:        byName[statDefense],
		SpecialAttack:  byName[statSpecialAttack],
		SpecialDefense: byName[statSpecialDefense],
		Speed:          byName[statSpeed],
	}
}

func ToAbilities(abilities []pokeapi.PokemonAbility) []Ability {
	result := make([]Ability, 0, len(abilities))
	for _, ability := range abilities {
		result = append(result, Ability{
			Name:     ability.Ability.Name,
			IsHidden: ability.IsHidden,
		})
	}
	return result
}

func ToTypes(types []pokeapi.PokemonType) []string {
	result := make([]string, 0, len(types))
	for _, t := range types {
		result = append(result, t.Type.Name)
	}
	return result
}

func optionalName(resource *pokeapi.NamedAPIResource) null.String {
	if resource == nil {
		return null.String{}
	}
	return null.StringFrom(resource.Name)
}

func ToDetails(pokemon pokeapi.PokemonResponse, species pokeapi.PokemonSpecies) PokemonDetails {
	return PokemonDetails{
		ID:          int(pokemon.Id),
		Name:        pokemon.Name,
		Types:       ToTypes(pokemon.Types),
		Height:      int(pokemon.Height),
		Weight:      int(pokemon.Weight),
		Stats:       ToStats(pokemon.Stats),
		Abilities:   ToAbilities(pokemon.Abilities),
		Generation:  species.Generation.Name,
		IsLegendary: species.IsLegendary,
		IsMythical:  species.IsMythical,
		Color:       species.Color.Name,
		Habitat:     optionalName(species.Habitat),
		EvolvesFrom: optionalName(species.EvolvesFromSpecies),
	}
}

// ToEncounters keeps one record per location area and drops chance, level and method detail.
func ToEncounters(encounters []pokeapi.LocationAreaEncounter) []PokemonEncounter {
	result := make([]PokemonEncounter, 0, len(encounters))
	for _, encounter := range encounters {
		seen := make(map[string]struct{}, len(encounter.VersionDetails))
		versions := make([]string, 0, len(encounter.VersionDetails))
		for _, detail := range encounter.VersionDetails {
			name := detail.Version.Name
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			versions = append(versions, name)
		}
		result = append(result, PokemonEncounter{
			LocationArea: encounter.LocationArea.Name,
			Versions:     versions,
		})
	}
	return result
}
