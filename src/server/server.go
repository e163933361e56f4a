package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BielosX/wombat/pokenat/src/analytics"
	"github.com/BielosX/wombat/pokenat/src/bundle"
	"github.com/BielosX/wombat/pokenat/src/locale"
	"github.com/BielosX/wombat/pokenat/src/organizer"
	"github.com/BielosX/wombat/pokenat/src/pokeapi"
	"github.com/BielosX/wombat/pokenat/src/pokedata"
	"github.com/BielosX/wombat/pokenat/src/prefs"
	"github.com/BielosX/wombat/pokenat/src/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type DataService interface {
	GetPokedexes(ctx context.Context) (pokeapi.NamedAPIResourceList, error)
	GetPokemonDetails(ctx context.Context, id int) (pokedata.PokemonDetails, error)
	GetPokemonEncounters(ctx context.Context, id int) ([]pokedata.PokemonEncounter, error)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type LanguageBody struct {
	Language string `json:"language"`
}

type SearchResponse struct {
	Pokemon []bundle.Pokemon `json:"pokemon"`
	Total   int              `json:"total"`
}

type Server struct {
	data    DataService
	tracker *analytics.Tracker
	store   prefs.Store
	dataDir string
	sugar   *zap.SugaredLogger
}

func New(data DataService, tracker *analytics.Tracker, store prefs.Store, dataDir string, sugar *zap.SugaredLogger) *Server {
	return &Server{
		data:    data,
		tracker: tracker,
		store:   store,
		dataDir: dataDir,
		sugar:   sugar,
	}
}

func (s *Server) Router() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.logRequests)

	router.Route("/api", func(r chi.Router) {
		r.Get("/"+bundle.IndexFile, s.serveStatic(bundle.IndexFile))
		r.Get("/"+bundle.DataFile, s.serveStatic(bundle.DataFile))

		r.Get("/pokedexes", s.listPokedexes)
		r.Get("/search", s.search)

		r.Get("/pokemon/{id}", s.getPokemon)
		r.Get("/pokemon/{id}/encounters", s.getEncounters)
		r.Get("/pokemon/{id}/placement", s.getPlacement)

		r.Get("/settings/language", s.getLanguage)
		r.Put("/settings/language", s.putLanguage)
	})
	return router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.sugar.Infof("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (s *Server) serveStatic(name string) http.HandlerFunc {
	path := filepath.Join(s.dataDir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, path)
	}
}

func (s *Server) listPokedexes(w http.ResponseWriter, r *http.Request) {
	pokedexes, err := s.data.GetPokedexes(r.Context())
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pokedexes)
}

func (s *Server) getPokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	details, err := s.data.GetPokemonDetails(r.Context(), id)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	s.tracker.PokemonView(details.Name, id)
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) getEncounters(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	encounters, err := s.data.GetPokemonEncounters(r.Context(), id)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = strconv.Itoa(id)
	}
	s.tracker.EncountersOpen(name)
	writeJSON(w, http.StatusOK, encounters)
}

func (s *Server) getPlacement(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	lines, err := queryInt(r, "lines", organizer.DefaultLines)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "lines must be an integer")
		return
	}
	columns, err := queryInt(r, "columns", organizer.DefaultColumns)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "columns must be an integer")
		return
	}
	placement, err := organizer.Place(id, lines, columns)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, placement)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	entries, err := bundle.ReadData(filepath.Join(s.dataDir, bundle.DataFile))
	if err != nil {
		s.sugar.Errorf("Failed to read local dataset: %s", err)
		writeError(w, http.StatusServiceUnavailable, "unavailable", "local dataset not available")
		return
	}
	if pokedex := r.URL.Query().Get("pokedex"); pokedex != "" {
		s.tracker.PokedexSelect(pokedex)
		entries = bundle.InPokedex(entries, pokedex)
	}
	query := r.URL.Query().Get("q")
	found := bundle.Search(entries, query)
	if found == nil {
		found = []bundle.Pokemon{}
	}
	s.tracker.PokemonSearch(query, len(found))
	writeJSON(w, http.StatusOK, SearchResponse{Pokemon: found, Total: len(found)})
}

func (s *Server) getLanguage(w http.ResponseWriter, r *http.Request) {
	code, err := locale.Load(r.Context(), s.store)
	if err != nil {
		s.sugar.Errorf("Failed to read language preference: %s", err)
	}
	writeJSON(w, http.StatusOK, LanguageBody{Language: code})
}

func (s *Server) putLanguage(w http.ResponseWriter, r *http.Request) {
	var body LanguageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	err := locale.Save(r.Context(), s.store, body.Language)
	if errors.Is(err, locale.ErrUnsupported) {
		writeError(w, http.StatusBadRequest, "unsupported_language", err.Error())
		return
	}
	if err != nil {
		s.sugar.Errorf("Failed to save language preference: %s", err)
		writeError(w, http.StatusInternalServerError, "internal", "could not save language")
		return
	}
	s.tracker.LanguageChange(body.Language)
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	if utils.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", "pokemon not found")
		return
	}
	s.sugar.Errorf("Upstream request failed: %s", err)
	writeError(w, http.StatusBadGateway, "upstream", "upstream request failed")
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}
