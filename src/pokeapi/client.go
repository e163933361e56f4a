package pokeapi

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/BielosX/wombat/pokenat/src/utils"
	"go.uber.org/zap"
)

const (
	DefaultBaseUrl     = "https://pokeapi.co/api/v2/"
	DefaultConcurrency = 16
)

type Client struct {
	baseUrl     string
	client      *http.Client
	concurrency int
	sugar       *zap.SugaredLogger
}

type Option func(*Client)

func WithBaseUrl(baseUrl string) Option {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

// WithHTTPClient replaces the transport. No timeout is set on the default one.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithConcurrency bounds the requests ListSpecies keeps in flight. Values under 1 are ignored.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func NewClient(sugar *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseUrl:     DefaultBaseUrl,
		client:      &http.Client{},
		concurrency: DefaultConcurrency,
		sugar:       sugar,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseUrl = strings.TrimRight(c.baseUrl, "/")
	return c
}

func (c *Client) url(format string, args ...any) string {
	return c.baseUrl + fmt.Sprintf(format, args...)
}

func (c *Client) getAndDecode(ctx context.Context, url string, target any) error {
	c.sugar.Debugf("GET %s", url)
	return utils.GetJSON(ctx, c.client, url, target)
}

func (c *Client) GetPokedexes(ctx context.Context) (NamedAPIResourceList, error) {
	var result NamedAPIResourceList
	err := c.getAndDecode(ctx, c.url("/pokedex/"), &result)
	return result, err
}

func (c *Client) GetPokedex(ctx context.Context, name string) (Pokedex, error) {
	var result Pokedex
	err := c.getAndDecode(ctx, c.url("/pokedex/%s", name), &result)
	return result, err
}

func (c *Client) GetPokemon(ctx context.Context, id int) (PokemonResponse, error) {
	var result PokemonResponse
	err := c.getAndDecode(ctx, c.url("/pokemon/%d", id), &result)
	return result, err
}

func (c *Client) GetPokemonSpecies(ctx context.Context, id int) (PokemonSpecies, error) {
	var result PokemonSpecies
	err := c.getAndDecode(ctx, c.url("/pokemon-species/%d", id), &result)
	return result, err
}

func (c *Client) GetPokemonEncounters(ctx context.Context, id int) ([]LocationAreaEncounter, error) {
	var result []LocationAreaEncounter
	err := c.getAndDecode(ctx, c.url("/pokemon/%d/encounters", id), &result)
	return result, err
}

func (c *Client) fetchSpecies(ctx context.Context,
	id int,
	errChan chan<- error,
	resultChan chan<- PokemonSpecies,
	slots <-chan struct{},
	waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()
	defer func() { <-slots }()
	c.sugar.Infof("Fetching PokemonSpecies %d", id)
	species, err := c.GetPokemonSpecies(ctx, id)
	if utils.IsNotFound(err) {
		c.sugar.Infof("PokemonSpecies %d does not exist, skipping", id)
		return
	}
	if err != nil {
		errChan <- err
		return
	}
	resultChan <- species
}

// ListSpecies fetches species concurrently, at most c.concurrency at a time.
// Ids unknown upstream are skipped; any other failure fails the whole call.
// Results are ordered by species id.
func (c *Client) ListSpecies(ctx context.Context, ids []int) ([]PokemonSpecies, error) {
	var waitGroup sync.WaitGroup
	errChan := make(chan error, len(ids))
	resultChan := make(chan PokemonSpecies, len(ids))
	slots := make(chan struct{}, c.concurrency)
	for _, id := range ids {
		slots <- struct{}{}
		waitGroup.Add(1)
		go c.fetchSpecies(ctx, id, errChan, resultChan, slots, &waitGroup)
	}
	waitGroup.Wait()
	close(errChan)
	close(resultChan)
	var errs []error
	for e := range errChan {
		if e != nil {
			errs = append(errs, e)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	results := make([]PokemonSpecies, 0, len(ids))
	for species := range resultChan {
		results = append(results, species)
	}
	slices.SortFunc(results, func(a, b PokemonSpecies) int {
		return cmp.Compare(a.Id, b.Id)
	})
	return results, nil
}
