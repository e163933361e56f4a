package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/BielosX/wombat/pokenat/src/analytics"
	"github.com/BielosX/wombat/pokenat/src/bundle"
	"github.com/BielosX/wombat/pokenat/src/config"
	"github.com/BielosX/wombat/pokenat/src/localdata"
	"github.com/BielosX/wombat/pokenat/src/locale"
	"github.com/BielosX/wombat/pokenat/src/organizer"
	"github.com/BielosX/wombat/pokenat/src/pokeapi"
	"github.com/BielosX/wombat/pokenat/src/pokedata"
	"github.com/BielosX/wombat/pokenat/src/prefs"
	"github.com/BielosX/wombat/pokenat/src/server"
	"github.com/guregu/null/v6"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

const (
	usage = `usage: pokenat <command> [arguments]

commands:
  serve                      serve the API and the local dataset
  details <id>               show a pokemon's details
  encounters [-name N] <id>  show where a pokemon can be encountered
  pokedexes                  list the pokedexes known upstream
  place [-l N] [-c N] <id>   locate a national id in storage boxes
  bundle [-out DIR] <first> <last>
                             build index.json and data.json for national ids first..last
  local <index|data>         print the dataset published by a running server
  language [fr|en]           show or set the display language`
	shutdownTimeout = 10 * time.Second
)

var errUsage = errors.New(usage)

type app struct {
	cfg        config.Config
	store      *prefs.SQLiteStore
	remote     *pokeapi.Client
	data       *pokedata.Service
	sink       analytics.Sink
	tracker    *analytics.Tracker
	bundle     *i18n.Bundle
	translator *locale.Translator
	out        io.Writer
}

func newApp(ctx context.Context, cfg config.Config, out io.Writer) (*app, error) {
	store, err := prefs.OpenSQLite(cfg.PrefsPath)
	if err != nil {
		return nil, err
	}
	language, err := locale.Load(ctx, store)
	if err != nil {
		sugar.Warnf("Failed to read language preference, using %s: %s", language, err)
	}
	visitorID, err := prefs.VisitorID(ctx, store, analytics.NewVisitorID)
	if err != nil {
		sugar.Warnf("Failed to read visitor id: %s", err)
	}
	messages, err := locale.NewBundle()
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	remote := pokeapi.NewClient(sugar, pokeapi.WithBaseUrl(cfg.PokeApiBaseUrl))
	sink := analytics.NewSink(cfg.Analytics(), visitorID, sugar)
	return &app{
		cfg:        cfg,
		store:      store,
		remote:     remote,
		data:       pokedata.NewService(remote, sugar),
		sink:       sink,
		tracker:    analytics.NewTracker(sink),
		bundle:     messages,
		translator: locale.NewTranslator(messages, language),
		out:        out,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if closer, ok := a.sink.(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(ctx); err != nil {
			sugar.Warnf("Analytics did not drain: %s", err)
		}
	}
	if err := a.store.Close(); err != nil {
		sugar.Warnf("Failed to close preferences: %s", err)
	}
}

func runCommand(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	a, err := newApp(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.close(closeCtx)
	}()
	command, rest := args[0], args[1:]
	switch command {
	case "serve":
		return a.serve(ctx)
	case "details":
		return a.details(ctx, rest)
	case "encounters":
		return a.encounters(ctx, rest)
	case "pokedexes":
		return a.pokedexes(ctx)
	case "place":
		return a.place(rest)
	case "bundle":
		return a.buildBundle(ctx, rest)
	case "local":
		return a.local(ctx, rest)
	case "language":
		return a.language(ctx, rest)
	default:
		return errUsage
	}
}

func parseID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid pokemon id %q", args[0])
	}
	return id, nil
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv := server.New(a.data, a.tracker, a.store, a.cfg.DataDir, sugar)
	httpServer := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		sugar.Infof("Listening on %s, serving dataset from %s", a.cfg.ListenAddr, a.cfg.DataDir)
		errChan <- httpServer.ListenAndServe()
	}()
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}
	sugar.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (a *app) details(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	details, err := a.data.GetPokemonDetails(ctx, id)
	if err != nil {
		return err
	}
	a.tracker.PokemonView(details.Name, id)
	printDetails(a.out, a.translator, details)
	return nil
}

func (a *app) encounters(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("encounters", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	name := flags.String("name", "", "pokemon name reported to analytics")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}
	id, err := parseID(flags.Args())
	if err != nil {
		return err
	}
	encounters, err := a.data.GetPokemonEncounters(ctx, id)
	if err != nil {
		return err
	}
	a.tracker.EncountersOpen(a.pokemonName(ctx, *name, id))
	printEncounters(a.out, a.translator, encounters)
	return nil
}

// pokemonName prefers the given name, then the cached details, then the id.
func (a *app) pokemonName(ctx context.Context, name string, id int) string {
	if name != "" {
		return name
	}
	details, err := a.data.GetPokemonDetails(ctx, id)
	if err != nil {
		sugar.Warnf("Failed to resolve name of Pokemon %d: %s", id, err)
		return strconv.Itoa(id)
	}
	return details.Name
}

func (a *app) pokedexes(ctx context.Context) error {
	pokedexes, err := a.data.GetPokedexes(ctx)
	if err != nil {
		return err
	}
	for _, pokedex := range pokedexes.Results {
		fmt.Fprintln(a.out, pokedex.Name)
	}
	return nil
}

func (a *app) place(args []string) error {
	flags := flag.NewFlagSet("place", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	lines := flags.Int("l", organizer.DefaultLines, "lines per box")
	columns := flags.Int("c", organizer.DefaultColumns, "columns per box")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}
	id, err := parseID(flags.Args())
	if err != nil {
		return err
	}
	placement, err := organizer.Place(id, *lines, *columns)
	if err != nil {
		return err
	}
	printPlacement(a.out, a.translator, id, placement)
	return nil
}

func (a *app) buildBundle(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("bundle", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	dir := flags.String("out", a.cfg.DataDir, "output directory")
	if err := flags.Parse(args); err != nil || flags.NArg() != 2 {
		return errUsage
	}
	first, err := strconv.Atoi(flags.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid first id %q", flags.Arg(0))
	}
	last, err := strconv.Atoi(flags.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid last id %q", flags.Arg(1))
	}
	entries, err := bundle.NewBuilder(a.remote, sugar).Build(ctx, first, last)
	if err != nil {
		return err
	}
	if err := bundle.WriteFiles(*dir, entries); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.translator.Tf("BundleWritten", map[string]any{"Count": len(entries), "Dir": *dir}))
	return nil
}

func (a *app) local(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	client := localdata.NewClient(a.cfg.LocalDataUrl, nil, sugar)
	var raw json.RawMessage
	var err error
	switch args[0] {
	case "index":
		raw, err = client.GetIndex(ctx)
	case "data":
		raw, err = client.GetPokedex(ctx)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(raw))
	return err
}

func (a *app) language(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprintln(a.out, a.translator.Tf("LanguageCurrent", map[string]any{"Language": a.translator.Language()}))
		return nil
	case 1:
		code := strings.ToLower(args[0])
		if err := locale.Save(ctx, a.store, code); err != nil {
			return err
		}
		a.tracker.LanguageChange(code)
		a.translator = locale.NewTranslator(a.bundle, code)
		fmt.Fprintln(a.out, a.translator.Tf("LanguageSet", map[string]any{"Language": code}))
		return nil
	default:
		return errUsage
	}
}

func yesNo(tr *locale.Translator, value bool) string {
	if value {
		return tr.T("LabelYes")
	}
	return tr.T("LabelNo")
}

func orUnknown(tr *locale.Translator, value null.String) string {
	if !value.Valid {
		return tr.T("LabelUnknown")
	}
	return value.String
}

func printDetails(out io.Writer, tr *locale.Translator, details pokedata.PokemonDetails) {
	fmt.Fprintf(out, "#%d %s\n", details.ID, details.Name)
	fmt.Fprintf(out, "%s: %s\n", tr.T("LabelTypes"), strings.Join(details.Types, ", "))
	fmt.Fprintf(out, "%s: %d dm\n", tr.T("LabelHeight"), details.Height)
	fmt.Fprintf(out, "%s: %d hg\n", tr.T("LabelWeight"), details.Weight)
	stats := []struct {
		label string
		value int
	}{
		{"StatHP", details.Stats.HP},
		{"StatAttack", details.Stats.Attack},
		{"StatDefense", details.Stats.Defense},
		{"StatSpecialAttack", details.Stats.SpecialAttack},
		{"StatSpecialDefense", details.Stats.SpecialDefense},
		{"StatSpeed", details.Stats.Speed},
	}
	for _, stat := range stats {
		fmt.Fprintf(out, "  %s: %d\n", tr.T(stat.label), stat.value)
	}
	abilities := make([]string, 0, len(details.Abilities))
	for _, ability := range details.Abilities {
		if ability.IsHidden {
			abilities = append(abilities, fmt.Sprintf("%s (%s)", ability.Name, tr.T("LabelHidden")))
		} else {
			abilities = append(abilities, ability.Name)
		}
	}
	fmt.Fprintf(out, "%s: %s\n", tr.T("LabelAbilities"), strings.Join(abilities, ", "))
	fmt.Fprintf(out, "%s: %s\n", tr.T("LabelGeneration"), details.Generation)
	fmt.Fprintf(out, "%s: %s\n", tr.T("LabelLegendary"), yesNo(tr, details.IsLegendary))
	fmt.Fprintf(out, "%s: %s\n", tr.T("LabelMythical"), yesNo(tr, details.IsMythical))
	fmt.Fprintf(out, "%s: %s\n", tr.T("LabelColor"), details.Color)
	fmt.Fprintf(out, "%s: %s\n", tr.T("LabelHabitat"), orUnknown(tr, details.Habitat))
	fmt.Fprintf(out, "%s: %s\n", tr.T("LabelEvolvesFrom"), orUnknown(tr, details.EvolvesFrom))
}

func printEncounters(out io.Writer, tr *locale.Translator, encounters []pokedata.PokemonEncounter) {
	if len(encounters) == 0 {
		fmt.Fprintln(out, tr.T("NoEncounters"))
		return
	}
	fmt.Fprintf(out, "%s:\n", tr.T("EncountersTitle"))
	for _, encounter := range encounters {
		fmt.Fprintf(out, "  %s: %s\n", encounter.LocationArea, strings.Join(encounter.Versions, ", "))
	}
}

func printPlacement(out io.Writer, tr *locale.Translator, id int, placement organizer.Placement) {
	fmt.Fprintln(out, tr.Tf("Placement", map[string]any{
		"ID":     id,
		"Box":    placement.Box,
		"Line":   placement.Line,
		"Column": placement.Column,
	}))
}
