// Package service provides the catalog service that implements the
// dependencies required by the HTTP and GraphQL boundaries.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	repository "github.com/okian/marquee/internal/adapters/repository"
	"github.com/okian/marquee/internal/domain/dice"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/random"
	"github.com/okian/marquee/pkg/logger"
	"github.com/okian/marquee/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxDiceRolls = 10_000
)

// Service owns the movie catalog and the dice utility.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store
	rng   random.Source

	// Configuration
	seed         []model.Movie
	maxDiceRolls int

	// State
	started bool
	seeded  bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the default in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRandSource sets the source used by GetRandomMovie and GetRoll.
// The source is wrapped so it is safe to share between requests.
func WithRandSource(src random.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.rng = random.Locked(src)
		}
	}
}

// WithSeedMovies sets the records loaded by Start. nil disables seeding.
func WithSeedMovies(movies []model.Movie) Option {
	return func(s *Service) {
		s.seed = movies
	}
}

// WithMaxDiceRolls bounds the rolls argument of GetRoll. n <= 0 disables the bound.
func WithMaxDiceRolls(n int) Option {
	return func(s *Service) {
		s.maxDiceRolls = n
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seed:         model.SeedMovies(),
		maxDiceRolls: defaultMaxDiceRolls,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemStore(context.Background())
	}
	if s.rng == nil {
		s.rng = random.Locked(random.FromSeed(0))
	}
	return s
}

// Start seeds the catalog on first start. Calling it again is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if !s.seeded && len(s.seed) > 0 {
		s.store.Reset(ctx, s.seed)
		s.seeded = true
	}

	count := s.store.Count(ctx)
	metrics.UpdateCatalogMovies(count)

	s.started = true
	s.logger.Info(ctx, "catalog service started",
		logger.Int("movies", count),
		logger.Int("maxDiceRolls", s.maxDiceRolls),
	)
	return nil
}

// Stop marks the service stopped. The catalog is kept in memory.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

// log returns the configured logger, or a no-op one before Start.
func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}

// observe records the outcome of a catalog operation.
func observe(op string, start time.Time, err error) {
	metrics.RecordCatalogOperation(op, outcome(err), float64(time.Since(start).Microseconds())/1000)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, repository.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, dice.ErrInvalidArgument):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

// AllMovies returns the full catalog in current order.
func (s *Service) AllMovies(ctx context.Context) []model.Movie {
	defer observe("allMovies", time.Now(), nil)
	return s.store.All(ctx)
}

// GetMovie returns the movie at index, or repository.ErrNotFound.
func (s *Service) GetMovie(ctx context.Context, index int) (m model.Movie, err error) {
	defer func(start time.Time) { observe("getMovie", start, err) }(time.Now())
	return s.store.Get(ctx, index)
}

// FirstMovie is GetMovie(ctx, 0).
func (s *Service) FirstMovie(ctx context.Context) (m model.Movie, err error) {
	defer func(start time.Time) { observe("firstMovie", start, err) }(time.Now())
	return s.store.Get(ctx, 0)
}

// GetRandomMovie picks a uniformly random movie. An empty catalog yields
// repository.ErrNotFound.
func (s *Service) GetRandomMovie(ctx context.Context) (m model.Movie, err error) {
	defer func(start time.Time) { observe("getRandomMovie", start, err) }(time.Now())
	return s.store.Choose(ctx, s.rng.Intn)
}

// CountMovies returns the current catalog length.
func (s *Service) CountMovies(ctx context.Context) int {
	defer observe("countMovies", time.Now(), nil)
	return s.store.Count(ctx)
}

// MoviesInRange returns the movies in [start, start+count) clipped to the catalog.
func (s *Service) MoviesInRange(ctx context.Context, start, count int) []model.Movie {
	defer observe("moviesInRange", time.Now(), nil)
	return s.store.Range(ctx, start, count)
}

// GetMoviesByGenre returns every movie of genre, order preserved.
func (s *Service) GetMoviesByGenre(ctx context.Context, genre model.Genre) []model.Movie {
	defer observe("getMoviesByGenre", time.Now(), nil)
	return s.store.ByGenre(ctx, genre)
}

// AllGenres returns the distinct genres present, in first-occurrence order.
func (s *Service) AllGenres(ctx context.Context) []model.Genre {
	defer observe("allGenres", time.Now(), nil)
	return s.store.Genres(ctx)
}

// GetMovieRuntime returns the runtime of the movie at index. Unlike the
// other lookups, absence here is an error for the caller to report.
func (s *Service) GetMovieRuntime(ctx context.Context, index int) (runtime int, err error) {
	defer func(start time.Time) { observe("getMovieRuntime", start, err) }(time.Now())
	m, err := s.store.Get(ctx, index)
	if err != nil {
		return 0, err
	}
	return m.Runtime, nil
}

// GetRoll rolls a die with sides faces rolls times.
func (s *Service) GetRoll(ctx context.Context, sides, rolls int) (r model.DieRoll, err error) {
	defer func(start time.Time) { observe("getRoll", start, err) }(time.Now())
	r, err = dice.RollWithLimit(s.rng, sides, rolls, s.maxDiceRolls)
	if err != nil {
		s.log().Debug(ctx, "roll rejected",
			logger.Int("sides", sides),
			logger.Int("rolls", rolls),
			logger.Error(err),
		)
		return model.DieRoll{}, err
	}
	metrics.RecordDiceRoll(len(r.Rolls))
	return r, nil
}

// AddMovie appends a new movie built from the given fields. Nothing is
// validated: free-text genres and negative numbers are stored as given.
func (s *Service) AddMovie(ctx context.Context, title string, genre model.Genre, rating float64, runtime int) model.Movie {
	defer observe("addMovie", time.Now(), nil)
	m := s.store.Append(ctx, model.NewMovie(title, genre, rating, runtime))
	metrics.UpdateCatalogMovies(s.store.Count(ctx))

	s.log().Info(ctx, "movie added",
		logger.String("movieID", m.ID.String()),
		logger.String("title", m.Title),
		logger.String("genre", string(m.Genre)),
		logger.Bool("knownGenre", m.Genre.Valid()),
	)
	return m
}

// UpdateMovie merges the supplied fields into the movie at index and
// returns it. A missing index leaves the catalog untouched.
func (s *Service) UpdateMovie(ctx context.Context, index int, patch model.MoviePatch) (m model.Movie, err error) {
	defer func(start time.Time) { observe("updateMovie", start, err) }(time.Now())
	m, err = s.store.Update(ctx, index, patch)
	if err != nil {
		return model.Movie{}, err
	}

	s.log().Info(ctx, "movie updated",
		logger.Int("index", index),
		logger.String("movieID", m.ID.String()),
		logger.Bool("noop", patch.Empty()),
	)
	return m, nil
}

// DeleteMovie removes the movie at index and returns it. Every later movie
// moves one position to the left.
func (s *Service) DeleteMovie(ctx context.Context, index int) (m model.Movie, err error) {
	defer func(start time.Time) { observe("deleteMovie", start, err) }(time.Now())
	m, err = s.store.Delete(ctx, index)
	if err != nil {
		return model.Movie{}, err
	}
	metrics.UpdateCatalogMovies(s.store.Count(ctx))

	s.log().Info(ctx, "movie deleted",
		logger.Int("index", index),
		logger.String("movieID", m.ID.String()),
		logger.String("title", m.Title),
	)
	return m, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	ctx := context.Background()
	count := s.store.Count(ctx)
	genres := s.store.Genres(ctx)
	metrics.UpdateCatalogMovies(count)

	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = string(g)
	}

	return map[string]interface{}{
		"started":      started,
		"movies":       count,
		"genres":       names,
		"maxDiceRolls": s.maxDiceRolls,
	}
}
