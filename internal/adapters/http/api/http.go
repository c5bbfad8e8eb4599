// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/marquee/internal/adapters/repository"
	"github.com/okian/marquee/internal/domain/dice"
	"github.com/okian/marquee/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	MovieDependencies
	GenresDependencies
	RollDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	logger logger.Logger

	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	moviesHandler *MoviesHandler
	genresHandler *GenresHandler
	rollHandler   *RollHandler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for failed requests.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.moviesHandler = NewMoviesHandler(deps, s.logger)
	s.genresHandler = NewGenresHandler(deps)
	s.rollHandler = NewRollHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	route("GET /movies", "movies", s.moviesHandler.HandleList)
	route("POST /movies", "movies", s.moviesHandler.HandleCreate)
	route("GET /movies/first", "movies_first", s.moviesHandler.HandleFirst)
	route("GET /movies/random", "movies_random", s.moviesHandler.HandleRandom)
	route("GET /movies/count", "movies_count", s.moviesHandler.HandleCount)
	route("GET /movies/{index}", "movie", s.moviesHandler.HandleGet)
	route("PATCH /movies/{index}", "movie", s.moviesHandler.HandleUpdate)
	route("DELETE /movies/{index}", "movie", s.moviesHandler.HandleDelete)
	route("GET /movies/{index}/runtime", "movie_runtime", s.moviesHandler.HandleRuntime)

	route("GET /genres", "genres", s.genresHandler.HandleGenres)
	route("GET /roll", "roll", s.rollHandler.HandleRoll)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeCatalogError maps catalog and dice errors onto HTTP statuses.
func writeCatalogError(l logger.Logger, w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, dice.ErrInvalidArgument), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "invalid_argument", Wrap(op, err))
	default:
		l.Error(r.Context(), "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal, ""))
	}
}
