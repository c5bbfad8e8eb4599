package smoke

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/marquee/pkg/logger"
)

// Dice checked by the run.
const (
	rollSides = 6
	rollCount = 10
)

// Run executes the complete smoke test and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	log := logger.Named("smoke")
	stats := &Stats{StartTime: time.Now()}
	client := NewClient(config.BaseURL, config.Timeout)

	log.Info(ctx, "starting marquee smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("movies", config.NumMovies),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Record the starting count
	initial, err := client.Count(ctx)
	if err != nil {
		return stats, fmt.Errorf("initial count failed: %w", err)
	}
	stats.InitialCount = initial

	// Step 3: Add movies concurrently
	movies := generateMovies(config.NumMovies)
	if err := addMovies(ctx, client, config, movies, stats); err != nil {
		return stats, fmt.Errorf("adding movies failed: %w", err)
	}

	// Step 4: Verify the count grew by exactly what was added
	if err := expectCount(ctx, client, initial+stats.MoviesAdded); err != nil {
		return stats, err
	}

	// Step 5: Verify genre filtering sees every added movie
	if err := verifyGenres(ctx, client, movies, stats); err != nil {
		return stats, err
	}

	// Step 6: Roll dice
	if err := verifyRoll(ctx, client, stats); err != nil {
		return stats, err
	}

	// Step 7: Remove the added movies from the tail
	if err := removeAdded(ctx, client, initial, movies, stats); err != nil {
		return stats, err
	}
	if err := expectCount(ctx, client, initial); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)
	return stats, nil
}

// addMovies posts movies with a pool of workers.
func addMovies(ctx context.Context, client *Client, config *Config, movies []Movie, stats *Stats) error {
	log := logger.Named("smoke")
	workers := max(config.Workers, 1)

	var added, failed int64
	work := make(chan Movie, workers*2)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range work {
				if _, err := client.Add(ctx, m); err != nil {
					atomic.AddInt64(&failed, 1)
					log.Warn(ctx, "add movie failed", logger.String("title", m.Title), logger.Error(err))
					continue
				}
				atomic.AddInt64(&added, 1)
				log.Debug(ctx, "movie added", logger.String("title", m.Title))
			}
		}()
	}

	go func() {
		defer close(work)
		for _, m := range movies {
			select {
			case <-ctx.Done():
				return
			case work <- m:
			}
		}
	}()

	wg.Wait()

	stats.MoviesAdded = int(atomic.LoadInt64(&added))
	stats.MoviesFailed = int(atomic.LoadInt64(&failed))
	if err := ctx.Err(); err != nil {
		return err
	}
	if stats.MoviesFailed > 0 {
		return fmt.Errorf("%d of %d movies failed", stats.MoviesFailed, len(movies))
	}
	return nil
}

func expectCount(ctx context.Context, client *Client, want int) error {
	got, err := client.Count(ctx)
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}
	if got != want {
		return fmt.Errorf("%w: expected %d movies, found %d", ErrMismatch, want, got)
	}
	return nil
}

func verifyGenres(ctx context.Context, client *Client, movies []Movie, stats *Stats) error {
	byGenre := make(map[string]map[string]struct{})
	for _, m := range movies {
		if byGenre[m.Genre] == nil {
			byGenre[m.Genre] = make(map[string]struct{})
		}
		byGenre[m.Genre][m.Title] = struct{}{}
	}

	for genre, titles := range byGenre {
		listed, err := client.ByGenre(ctx, genre)
		if err != nil {
			return fmt.Errorf("genre %s: %w", genre, err)
		}
		seen := 0
		for _, m := range listed {
			if m.Genre != genre {
				return fmt.Errorf("%w: genre %s returned a %s movie", ErrMismatch, genre, m.Genre)
			}
			if _, ok := titles[m.Title]; ok {
				seen++
			}
		}
		if seen != len(titles) {
			return fmt.Errorf("%w: genre %s lists %d of %d added movies", ErrMismatch, genre, seen, len(titles))
		}
		stats.GenresVerified++
	}
	return nil
}

func verifyRoll(ctx context.Context, client *Client, stats *Stats) error {
	roll, err := client.Roll(ctx, rollSides, rollCount)
	if err != nil {
		return fmt.Errorf("roll failed: %w", err)
	}
	if roll.Sides != rollSides || len(roll.Rolls) != rollCount {
		return fmt.Errorf("%w: roll shape %+v", ErrMismatch, roll)
	}
	sum := 0
	for _, v := range roll.Rolls {
		if v < 1 || v > rollSides {
			return fmt.Errorf("%w: roll value %d out of range", ErrMismatch, v)
		}
		sum += v
	}
	if sum != roll.Total {
		return fmt.Errorf("%w: roll total %d, sum %d", ErrMismatch, roll.Total, sum)
	}
	stats.RollsChecked++
	return nil
}

// removeAdded deletes from the tail, which holds exactly the added movies.
func removeAdded(ctx context.Context, client *Client, initial int, movies []Movie, stats *Stats) error {
	titles := make(map[string]struct{}, len(movies))
	for _, m := range movies {
		titles[m.Title] = struct{}{}
	}

	for index := initial + stats.MoviesAdded - 1; index >= initial; index-- {
		removed, err := client.Delete(ctx, index)
		if err != nil {
			return fmt.Errorf("delete %d failed: %w", index, err)
		}
		if _, ok := titles[removed.Title]; !ok {
			return fmt.Errorf("%w: removed %q which was not added by this run", ErrMismatch, removed.Title)
		}
		stats.MoviesRemoved++
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.MoviesAdded+stats.MoviesRemoved) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("initialCount", stats.InitialCount),
		logger.Int("moviesAdded", stats.MoviesAdded),
		logger.Int("moviesRemoved", stats.MoviesRemoved),
		logger.Int("genresVerified", stats.GenresVerified),
		logger.Int("rollsChecked", stats.RollsChecked),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("writesPerSecond", perSecond))
}
