package pokedata

import (
	"context"
	"errors"
	"sync"

	"github.com/BielosX/wombat/pokenat/src/cache"
	"github.com/BielosX/wombat/pokenat/src/pokeapi"
	"go.uber.org/zap"
)

// Source is the raw remote API; *pokeapi.Client satisfies it.
type Source interface {
	GetPokedexes(ctx context.Context) (pokeapi.NamedAPIResourceList, error)
	GetPokemon(ctx context.Context, id int) (pokeapi.PokemonResponse, error)
	GetPokemonSpecies(ctx context.Context, id int) (pokeapi.PokemonSpecies, error)
	GetPokemonEncounters(ctx context.Context, id int) ([]pokeapi.LocationAreaEncounter, error)
}

// Service normalizes remote records into view records and memoizes them per id.
type Service struct {
	source     Source
	sugar      *zap.SugaredLogger
	details    *cache.IDCache[PokemonDetails]
	encounters *cache.IDCache[[]PokemonEncounter]
}

func NewService(source Source, sugar *zap.SugaredLogger) *Service {
	return &Service{
		source:     source,
		sugar:      sugar,
		details:    cache.NewIDCache[PokemonDetails](),
		encounters: cache.NewIDCache[[]PokemonEncounter](),
	}
}

func (s *Service) GetPokedexes(ctx context.Context) (pokeapi.NamedAPIResourceList, error) {
	return s.source.GetPokedexes(ctx)
}

func (s *Service) GetPokemonDetails(ctx context.Context, id int) (PokemonDetails, error) {
	return s.details.GetOrCompute(ctx, id, s.fetchDetails)
}

func (s *Service) GetPokemonEncounters(ctx context.Context, id int) ([]PokemonEncounter, error) {
	return s.encounters.GetOrCompute(ctx, id, s.fetchEncounters)
}

func (s *Service) DetailsStats() cache.Stats {
	return s.details.Stats()
}

func (s *Service) EncountersStats() cache.Stats {
	return s.encounters.Stats()
}

func (s *Service) fetchDetails(ctx context.Context, id int) (PokemonDetails, error) {
	s.sugar.Infof("Fetching details for Pokemon %d", id)
	var waitGroup sync.WaitGroup
	var pokemon pokeapi.PokemonResponse
	var species pokeapi.PokemonSpecies
	var pokemonErr, speciesErr error
	waitGroup.Add(2)
	go func() {
		defer waitGroup.Done()
		pokemon, pokemonErr = s.source.GetPokemon(ctx, id)
	}()
	go func() {
		defer waitGroup.Done()
		species, speciesErr = s.source.GetPokemonSpecies(ctx, id)
	}()
	waitGroup.Wait()
	if err := errors.Join(pokemonErr, speciesErr); err != nil {
		s.sugar.Errorf("Failed to fetch details for Pokemon %d: %s", id, err)
		return PokemonDetails{}, err
	}
	return ToDetails(pokemon, species), nil
}

func (s *Service) fetchEncounters(ctx context.Context, id int) ([]PokemonEncounter, error) {
	s.sugar.Infof("Fetching encounters for Pokemon %d", id)
	encounters, err := s.source.GetPokemonEncounters(ctx, id)
	if err != nil {
		s.sugar.Errorf("Failed to fetch encounters for Pokemon %d: %s", id, err)
		return nil, err
	}
	return ToEncounters(encounters), nil
}
