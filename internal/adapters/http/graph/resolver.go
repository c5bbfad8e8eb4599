package graph

import (
	"context"
	"errors"
	"fmt"
	"math"

	repository "github.com/okian/marquee/internal/adapters/repository"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/pkg/logger"
)

// Catalog is the slice of the catalog service the resolvers call.
type Catalog interface {
	AllMovies(ctx context.Context) []model.Movie
	GetMovie(ctx context.Context, index int) (model.Movie, error)
	FirstMovie(ctx context.Context) (model.Movie, error)
	GetRandomMovie(ctx context.Context) (model.Movie, error)
	CountMovies(ctx context.Context) int
	MoviesInRange(ctx context.Context, start, count int) []model.Movie
	GetMoviesByGenre(ctx context.Context, genre model.Genre) []model.Movie
	AllGenres(ctx context.Context) []model.Genre
	GetMovieRuntime(ctx context.Context, index int) (int, error)
	GetRoll(ctx context.Context, sides, rolls int) (model.DieRoll, error)
	AddMovie(ctx context.Context, title string, genre model.Genre, rating float64, runtime int) model.Movie
	UpdateMovie(ctx context.Context, index int, patch model.MoviePatch) (model.Movie, error)
	DeleteMovie(ctx context.Context, index int) (model.Movie, error)
}

// rootResolver serves both Query and Mutation fields.
type rootResolver struct {
	catalog Catalog
	logger  logger.Logger
}

// optional turns a lookup result into a nullable Movie. NotFound becomes
// null; anything else is reported.
func (r *rootResolver) optional(ctx context.Context, field string, m model.Movie, err error) (*movieResolver, error) {
	if errors.Is(err, repository.ErrNotFound) {
		r.logger.Debug(ctx, "movie absent", logger.String("field", field), logger.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movieResolver{m: m}, nil
}

func (r *rootResolver) AllMovies(ctx context.Context) []*movieResolver {
	return movies(r.catalog.AllMovies(ctx))
}

func (r *rootResolver) GetMovie(ctx context.Context, args struct{ Index int32 }) (*movieResolver, error) {
	m, err := r.catalog.GetMovie(ctx, int(args.Index))
	return r.optional(ctx, "getMovie", m, err)
}

func (r *rootResolver) FirstMovie(ctx context.Context) (*movieResolver, error) {
	m, err := r.catalog.FirstMovie(ctx)
	return r.optional(ctx, "firstMovie", m, err)
}

func (r *rootResolver) GetRandomMovie(ctx context.Context) (*movieResolver, error) {
	m, err := r.catalog.GetRandomMovie(ctx)
	return r.optional(ctx, "getRandomMovie", m, err)
}

func (r *rootResolver) CountMovies(ctx context.Context) *int32 {
	n := int32(r.catalog.CountMovies(ctx))
	return &n
}

func (r *rootResolver) MoviesInRange(ctx context.Context, args struct{ Start, Count int32 }) []*movieResolver {
	return movies(r.catalog.MoviesInRange(ctx, int(args.Start), int(args.Count)))
}

func (r *rootResolver) GetMoviesByGenre(ctx context.Context, args struct{ Genre string }) []*movieResolver {
	return movies(r.catalog.GetMoviesByGenre(ctx, model.Genre(args.Genre)))
}

func (r *rootResolver) AllGenres(ctx context.Context) []string {
	genres := r.catalog.AllGenres(ctx)
	out := make([]string, len(genres))
	for i, g := range genres {
		out[i] = string(g)
	}
	return out
}

func (r *rootResolver) GetMovieRuntime(ctx context.Context, args struct{ Index int32 }) (int32, error) {
	rt, err := r.catalog.GetMovieRuntime(ctx, int(args.Index))
	if err != nil {
		return 0, err
	}
	return int32Of(rt)
}

func (r *rootResolver) GetRoll(ctx context.Context, args struct{ Sides, Rolls int32 }) (*dieRollResolver, error) {
	roll, err := r.catalog.GetRoll(ctx, int(args.Sides), int(args.Rolls))
	if err != nil {
		return nil, err
	}
	return &dieRollResolver{roll: roll}, nil
}

type addMovieArgs struct {
	Title   string
	Genre   string
	Rating  float64
	Runtime int32
}

func (r *rootResolver) AddMovie(ctx context.Context, args addMovieArgs) *movieResolver {
	m := r.catalog.AddMovie(ctx, args.Title, model.Genre(args.Genre), args.Rating, int(args.Runtime))
	return &movieResolver{m: m}
}

type updateMovieArgs struct {
	Index   int32
	Title   *string
	Genre   *string
	Rating  *float64
	Runtime *int32
}

// patch keeps omitted arguments nil so they leave the record untouched.
func (a updateMovieArgs) patch() model.MoviePatch {
	var p model.MoviePatch
	p.Title = a.Title
	p.Rating = a.Rating
	if a.Genre != nil {
		g := model.Genre(*a.Genre)
		p.Genre = &g
	}
	if a.Runtime != nil {
		rt := int(*a.Runtime)
		p.Runtime = &rt
	}
	return p
}

func (r *rootResolver) UpdateMovie(ctx context.Context, args updateMovieArgs) (*movieResolver, error) {
	m, err := r.catalog.UpdateMovie(ctx, int(args.Index), args.patch())
	return r.optional(ctx, "updateMovie", m, err)
}

func (r *rootResolver) DeleteMovie(ctx context.Context, args struct{ Index int32 }) (*movieResolver, error) {
	m, err := r.catalog.DeleteMovie(ctx, int(args.Index))
	return r.optional(ctx, "deleteMovie", m, err)
}

type movieResolver struct {
	m model.Movie
}

func movies(in []model.Movie) []*movieResolver {
	out := make([]*movieResolver, len(in))
	for i := range in {
		out[i] = &movieResolver{m: in[i]}
	}
	return out
}

func (r *movieResolver) Title() string   { return r.m.Title }
func (r *movieResolver) Genre() string   { return string(r.m.Genre) }
func (r *movieResolver) Rating() float64 { return r.m.Rating }
func (r *movieResolver) Runtime() (int32, error) { return int32Of(r.m.Runtime) }

type dieRollResolver struct {
	roll model.DieRoll
}

func (r *dieRollResolver) Total() (int32, error) { return int32Of(r.roll.Total) }
func (r *dieRollResolver) Sides() int32 { return int32(r.roll.Sides) }

func (r *dieRollResolver) Rolls() []int32 {
	out := make([]int32, len(r.roll.Rolls))
	for i, v := range r.roll.Rolls {
		out[i] = int32(v)
	}
	return out
}

// int32Of narrows v to the GraphQL Int range. Out-of-range values are a
// field error, never a wrapped number.
func int32Of(v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrIntRange, v)
	}
	return int32(v), nil
}
