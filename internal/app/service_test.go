package service_test

import (
	"context"
	"errors"
	"testing"

	repository "github.com/okian/marquee/internal/adapters/repository"
	service "github.com/okian/marquee/internal/app"
	"github.com/okian/marquee/internal/domain/dice"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/random"
	"github.com/okian/marquee/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// sequence returns the queued values modulo n, cycling.
type sequence struct {
	values []int
	next   int
}

func (s *sequence) Intn(n int) int {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func ptr[T any](v T) *T { return &v }

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then the catalog should stay empty until started", func() {
			So(svc, ShouldNotBeNil)
			So(svc.CountMovies(context.Background()), ShouldEqual, 0)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		store := repository.NewMemStore(context.Background())
		svc := service.New(
			service.WithStore(store),
			service.WithRandSource(random.New(1)),
			service.WithMaxDiceRolls(5),
			service.WithLogger(logger.Nop()),
			service.WithSeedMovies(nil),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Start(context.Background()), ShouldBeNil)
			So(store.Count(context.Background()), ShouldEqual, 0)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should load the 14 seed movies", func() {
				So(err, ShouldBeNil)
				So(svc.CountMovies(ctx), ShouldEqual, 14)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})

			Convey("And restarting should not reseed the catalog", func() {
				_, err := svc.DeleteMovie(ctx, 0)
				So(err, ShouldBeNil)
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.CountMovies(ctx), ShouldEqual, 13)
			})
		})
	})
}

func TestService_Reads(t *testing.T) {
	Convey("Given a started service over the seed catalog", t, func() {
		ctx := context.Background()
		svc := startedService()

		Convey("When reading every position", func() {
			all := svc.AllMovies(ctx)

			Convey("Then GetMovie should agree with AllMovies", func() {
				So(len(all), ShouldEqual, 14)
				for i := range all {
					m, err := svc.GetMovie(ctx, i)
					So(err, ShouldBeNil)
					So(m, ShouldResemble, all[i])
				}
			})
		})

		Convey("When reading out of range", func() {
			_, errNeg := svc.GetMovie(ctx, -1)
			_, errHigh := svc.GetMovie(ctx, 14)

			Convey("Then the movie should be absent", func() {
				So(errors.Is(errNeg, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(errHigh, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When reading the first movie", func() {
			m, err := svc.FirstMovie(ctx)

			Convey("Then it should be Inception", func() {
				So(err, ShouldBeNil)
				So(m.Title, ShouldEqual, "Inception")
			})
		})

		Convey("When filtering by Drama", func() {
			drama := svc.GetMoviesByGenre(ctx, model.GenreDrama)

			Convey("Then seven dramas should come back in catalog order", func() {
				So(len(drama), ShouldEqual, 7)
				So(drama[0].Title, ShouldEqual, "Pulp Fiction")
				So(drama[1].Title, ShouldEqual, "In The Mood For Love")
				So(drama[2].Title, ShouldEqual, "Eternal Sunshine of the Spotless Mind")
				So(drama[3].Title, ShouldEqual, "Past Lives")
				So(drama[4].Title, ShouldEqual, "The Shawshank Redemption")
				So(drama[5].Title, ShouldEqual, "The Godfather")
				So(drama[6].Title, ShouldEqual, "Forrest Gump")
			})
		})

		Convey("When listing genres", func() {
			genres := svc.AllGenres(ctx)

			Convey("Then each genre should appear once in first-occurrence order", func() {
				So(genres, ShouldResemble, []model.Genre{
					model.GenreSciFi, model.GenreAction, model.GenreDrama, model.GenreComedy,
				})
			})
		})

		Convey("When slicing a range", func() {
			Convey("Then the window should be clipped to the catalog", func() {
				So(len(svc.MoviesInRange(ctx, 0, 5)), ShouldEqual, 5)
				So(len(svc.MoviesInRange(ctx, 10, 10)), ShouldEqual, 4)
				So(len(svc.MoviesInRange(ctx, 14, 3)), ShouldEqual, 0)
				So(svc.MoviesInRange(ctx, 1, 1)[0].Title, ShouldEqual, "The Dark Knight")
			})
		})

		Convey("When asking for a runtime", func() {
			rt, err := svc.GetMovieRuntime(ctx, 13)
			_, missing := svc.GetMovieRuntime(ctx, 99)

			Convey("Then a present index should yield minutes and a missing one NotFound", func() {
				So(err, ShouldBeNil)
				So(rt, ShouldEqual, 169)
				So(errors.Is(missing, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_RandomMovie(t *testing.T) {
	Convey("Given a service with a scripted random source", t, func() {
		ctx := context.Background()
		svc := startedService(service.WithRandSource(&sequence{values: []int{10, 2}}))

		Convey("When picking random movies", func() {
			first, err1 := svc.GetRandomMovie(ctx)
			second, err2 := svc.GetRandomMovie(ctx)

			Convey("Then the picks should follow the source", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first.Title, ShouldEqual, "The Matrix")
				So(second.Title, ShouldEqual, "Pulp Fiction")
			})
		})
	})

	Convey("Given a service with an empty catalog", t, func() {
		ctx := context.Background()
		svc := startedService(service.WithSeedMovies(nil))

		Convey("When picking a random movie", func() {
			_, err := svc.GetRandomMovie(ctx)

			Convey("Then it should be absent", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Mutations(t *testing.T) {
	Convey("Given a started service over the seed catalog", t, func() {
		ctx := context.Background()
		svc := startedService()

		Convey("When adding a movie", func() {
			m := svc.AddMovie(ctx, "New Movie", model.GenreSciFi, 4.5, 120)

			Convey("Then it should be appended exactly as given", func() {
				So(svc.CountMovies(ctx), ShouldEqual, 15)
				last, err := svc.GetMovie(ctx, 14)
				So(err, ShouldBeNil)
				So(last, ShouldResemble, m)
				So(last.Title, ShouldEqual, "New Movie")
				So(last.Genre, ShouldEqual, model.GenreSciFi)
				So(last.Rating, ShouldEqual, 4.5)
				So(last.Runtime, ShouldEqual, 120)
			})
		})

		Convey("When adding a movie with unchecked fields", func() {
			m := svc.AddMovie(ctx, "", model.Genre("western"), -1, -30)

			Convey("Then it should be stored as given", func() {
				So(m.Genre, ShouldEqual, model.Genre("western"))
				So(m.Rating, ShouldEqual, -1)
				So(m.Runtime, ShouldEqual, -30)
				So(svc.AllGenres(ctx), ShouldContain, model.Genre("western"))
			})
		})

		Convey("When updating only the title", func() {
			before, _ := svc.GetMovie(ctx, 3)
			m, err := svc.UpdateMovie(ctx, 3, model.MoviePatch{Title: ptr("X")})

			Convey("Then the other fields should be unchanged", func() {
				So(err, ShouldBeNil)
				So(m.Title, ShouldEqual, "X")
				So(m.Genre, ShouldEqual, before.Genre)
				So(m.Rating, ShouldEqual, before.Rating)
				So(m.Runtime, ShouldEqual, before.Runtime)
				after, _ := svc.GetMovie(ctx, 3)
				So(after, ShouldResemble, m)
			})
		})

		Convey("When updating every field", func() {
			m, err := svc.UpdateMovie(ctx, 0, model.MoviePatch{
				Title:   ptr("Updated Movie Title"),
				Genre:   ptr(model.GenreDrama),
				Rating:  ptr(4.8),
				Runtime: ptr(130),
			})

			Convey("Then the record should carry the new values", func() {
				So(err, ShouldBeNil)
				So(m.Title, ShouldEqual, "Updated Movie Title")
				So(m.Genre, ShouldEqual, model.GenreDrama)
				So(m.Rating, ShouldEqual, 4.8)
				So(m.Runtime, ShouldEqual, 130)
			})
		})

		Convey("When updating a missing index", func() {
			_, err := svc.UpdateMovie(ctx, 14, model.MoviePatch{Title: ptr("X")})

			Convey("Then nothing should change", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(svc.CountMovies(ctx), ShouldEqual, 14)
			})
		})

		Convey("When deleting the first movie", func() {
			removed, err := svc.DeleteMovie(ctx, 0)

			Convey("Then Inception should be returned and the rest should shift", func() {
				So(err, ShouldBeNil)
				So(removed.Title, ShouldEqual, "Inception")
				So(svc.CountMovies(ctx), ShouldEqual, 13)
				first, err := svc.GetMovie(ctx, 0)
				So(err, ShouldBeNil)
				So(first.Title, ShouldEqual, "The Dark Knight")
			})
		})

		Convey("When deleting a missing index", func() {
			_, err := svc.DeleteMovie(ctx, -3)

			Convey("Then it should be absent and the catalog unchanged", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(svc.CountMovies(ctx), ShouldEqual, 14)
			})
		})
	})
}

func TestService_GetRoll(t *testing.T) {
	Convey("Given a service with a seeded random source", t, func() {
		ctx := context.Background()
		svc := startedService(service.WithRandSource(random.New(42)), service.WithMaxDiceRolls(100))

		Convey("When rolling 3d6", func() {
			r, err := svc.GetRoll(ctx, 6, 3)

			Convey("Then three values in [1,6] should sum to the total", func() {
				So(err, ShouldBeNil)
				So(r.Sides, ShouldEqual, 6)
				So(len(r.Rolls), ShouldEqual, 3)
				sum := 0
				for _, v := range r.Rolls {
					So(v, ShouldBeBetweenOrEqual, 1, 6)
					sum += v
				}
				So(r.Total, ShouldEqual, sum)
			})
		})

		Convey("When rolling zero dice", func() {
			r, err := svc.GetRoll(ctx, 6, 0)

			Convey("Then the roll should be empty", func() {
				So(err, ShouldBeNil)
				So(r.Rolls, ShouldBeEmpty)
				So(r.Total, ShouldEqual, 0)
			})
		})

		Convey("When rolling a die without sides", func() {
			_, err := svc.GetRoll(ctx, 0, 2)

			Convey("Then it should be an invalid argument", func() {
				So(errors.Is(err, dice.ErrInvalidArgument), ShouldBeTrue)
			})
		})

		Convey("When rolling more dice than allowed", func() {
			_, err := svc.GetRoll(ctx, 6, 101)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, dice.ErrTooManyRolls), ShouldBeTrue)
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()

		Convey("When getting stats", func() {
			stats := svc.GetStats()

			Convey("Then it should report catalog figures", func() {
				So(stats["movies"], ShouldEqual, 14)
				So(stats["genres"], ShouldResemble, []string{"SciFi", "Action", "Drama", "Comedy"})
				So(stats["maxDiceRolls"], ShouldEqual, 10_000)
			})
		})
	})
}
