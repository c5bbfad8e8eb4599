// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/pkg/logger"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// MovieDependencies defines the catalog operations the movie routes use.
type MovieDependencies interface {
	AllMovies(ctx context.Context) []model.Movie
	GetMovie(ctx context.Context, index int) (model.Movie, error)
	FirstMovie(ctx context.Context) (model.Movie, error)
	GetRandomMovie(ctx context.Context) (model.Movie, error)
	CountMovies(ctx context.Context) int
	MoviesInRange(ctx context.Context, start, count int) []model.Movie
	GetMoviesByGenre(ctx context.Context, genre model.Genre) []model.Movie
	GetMovieRuntime(ctx context.Context, index int) (int, error)
	AddMovie(ctx context.Context, title string, genre model.Genre, rating float64, runtime int) model.Movie
	UpdateMovie(ctx context.Context, index int, patch model.MoviePatch) (model.Movie, error)
	DeleteMovie(ctx context.Context, index int) (model.Movie, error)
}

// MoviesHandler handles /movies requests.
type MoviesHandler struct {
	deps   MovieDependencies
	logger logger.Logger
}

// NewMoviesHandler creates a new movies handler.
func NewMoviesHandler(deps MovieDependencies, l logger.Logger) *MoviesHandler {
	return &MoviesHandler{deps: deps, logger: l}
}

// HandleList handles GET /movies, GET /movies?genre=G and
// GET /movies?start=S&count=N.
func (h *MoviesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_movies"
	q := r.URL.Query()

	genre, hasGenre := q.Get("genre"), q.Has("genre")
	hasRange := q.Has("start") || q.Has("count")

	switch {
	case hasGenre && hasRange:
		writeError(w, http.StatusBadRequest, "bad_request",
			NewKind(op, ErrBadRequest, "genre cannot be combined with start/count"))
	case hasGenre:
		writeJSON(w, http.StatusOK, h.deps.GetMoviesByGenre(r.Context(), model.Genre(genre)))
	case hasRange:
		start, err := intParam(q.Get("start"), "start")
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
			return
		}
		count, err := intParam(q.Get("count"), "count")
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, h.deps.MoviesInRange(r.Context(), start, count))
	default:
		writeJSON(w, http.StatusOK, h.deps.AllMovies(r.Context()))
	}
}

// HandleFirst handles GET /movies/first.
func (h *MoviesHandler) HandleFirst(w http.ResponseWriter, r *http.Request) {
	m, err := h.deps.FirstMovie(r.Context())
	if err != nil {
		writeCatalogError(h.logger, w, r, "api.first_movie", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HandleRandom handles GET /movies/random.
func (h *MoviesHandler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	m, err := h.deps.GetRandomMovie(r.Context())
	if err != nil {
		writeCatalogError(h.logger, w, r, "api.random_movie", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type countResponse struct {
	Count int `json:"count"`
}

// HandleCount handles GET /movies/count.
func (h *MoviesHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, countResponse{Count: h.deps.CountMovies(r.Context())})
}

// HandleGet handles GET /movies/{index}.
func (h *MoviesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_movie"
	index, err := indexParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	m, err := h.deps.GetMovie(r.Context(), index)
	if err != nil {
		writeCatalogError(h.logger, w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type runtimeResponse struct {
	Runtime int `json:"runtime"`
}

// HandleRuntime handles GET /movies/{index}/runtime.
func (h *MoviesHandler) HandleRuntime(w http.ResponseWriter, r *http.Request) {
	const op = "api.movie_runtime"
	index, err := indexParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	rt, err := h.deps.GetMovieRuntime(r.Context(), index)
	if err != nil {
		writeCatalogError(h.logger, w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, runtimeResponse{Runtime: rt})
}

// createRequest mirrors the OpenAPI schema for POST /movies. Every field is
// required; values are otherwise stored as given.
type createRequest struct {
	Title   *string  `json:"title"`
	Genre   *string  `json:"genre"`
	Rating  *float64 `json:"rating"`
	Runtime *int     `json:"runtime"`
}

func (c createRequest) validate() error {
	switch {
	case c.Title == nil:
		return errors.New("missing title")
	case c.Genre == nil:
		return errors.New("missing genre")
	case c.Rating == nil:
		return errors.New("missing rating")
	case c.Runtime == nil:
		return errors.New("missing runtime")
	}
	return nil
}

// HandleCreate handles POST /movies.
func (h *MoviesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_movie"
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest, err.Error()))
		return
	}
	m := h.deps.AddMovie(r.Context(), *req.Title, model.Genre(*req.Genre), *req.Rating, *req.Runtime)
	writeJSON(w, http.StatusCreated, m)
}

// updateRequest mirrors the OpenAPI schema for PATCH /movies/{index}.
// Omitted fields are left unchanged.
type updateRequest struct {
	Title   *string  `json:"title"`
	Genre   *string  `json:"genre"`
	Rating  *float64 `json:"rating"`
	Runtime *int     `json:"runtime"`
}

func (u updateRequest) patch() model.MoviePatch {
	p := model.MoviePatch{Title: u.Title, Rating: u.Rating, Runtime: u.Runtime}
	if u.Genre != nil {
		g := model.Genre(*u.Genre)
		p.Genre = &g
	}
	return p
}

// HandleUpdate handles PATCH /movies/{index}.
func (h *MoviesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_movie"
	index, err := indexParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	var req updateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	m, err := h.deps.UpdateMovie(r.Context(), index, req.patch())
	if err != nil {
		writeCatalogError(h.logger, w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HandleDelete handles DELETE /movies/{index} and returns the removed movie.
func (h *MoviesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_movie"
	index, err := indexParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	m, err := h.deps.DeleteMovie(r.Context(), index)
	if err != nil {
		writeCatalogError(h.logger, w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func indexParam(r *http.Request) (int, error) {
	return intParam(r.PathValue("index"), "index")
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, NewKind("param", ErrBadRequest, "missing "+name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewKind("param", ErrBadRequest, "invalid "+name+"; must be an integer")
	}
	return n, nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return NewKind("decode", ErrBadRequest, err.Error())
	}
	if dec.More() {
		return NewKind("decode", ErrBadRequest, "trailing data after JSON body")
	}
	return nil
}
