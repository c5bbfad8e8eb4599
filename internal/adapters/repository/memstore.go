// Package repository defines the catalog store interface and errors.
package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/pkg/metrics"
)

// MemStore is an in-memory Store. One RWMutex guards the slice, so every
// call observes and produces a consistent catalog.
type MemStore struct {
	mu     sync.RWMutex
	movies []model.Movie
}

var _ Store = (*MemStore)(nil)

// NewMemStore constructs an empty store with configuration options.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{}

	for _, opt := range opts {
		opt(s)
	}

	metrics.UpdateRepositoryRecordsTotal(len(s.movies))
	return s
}

func observeQuery(start time.Time) {
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()))
}

func observeUpdate(start time.Time) {
	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()))
}

// All implements Store.All. The result is a copy.
func (s *MemStore) All(_ context.Context) []model.Movie {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.movies)
}

// Get implements Store.Get.
func (s *MemStore) Get(_ context.Context, index int) (model.Movie, error) {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.inRange(index) {
		return model.Movie{}, notFound(index)
	}
	return s.movies[index], nil
}

// Count implements Store.Count.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}

// Range implements Store.Range. The window [start, start+count) is
// intersected with [0, len); a negative start shrinks it from the left.
// A negative start is not counted back from the tail: (-5, 3) is empty,
// not the records at len-5 .. len-3.
func (s *MemStore) Range(_ context.Context, start, count int) []model.Movie {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	if count <= 0 {
		return []model.Movie{}
	}
	lo, hi := start, start+count
	if hi < lo {
		// overflow
		hi = len(s.movies)
	}
	lo = max(lo, 0)
	hi = min(hi, len(s.movies))
	if lo >= hi {
		return []model.Movie{}
	}
	return clone(s.movies[lo:hi])
}

// ByGenre implements Store.ByGenre.
func (s *MemStore) ByGenre(_ context.Context, genre model.Genre) []model.Movie {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Movie{}
	for _, m := range s.movies {
		if m.Genre == genre {
			out = append(out, m)
		}
	}
	return out
}

// Genres implements Store.Genres.
func (s *MemStore) Genres(_ context.Context) []model.Genre {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[model.Genre]struct{}, len(model.Genres()))
	out := []model.Genre{}
	for _, m := range s.movies {
		if _, ok := seen[m.Genre]; ok {
			continue
		}
		seen[m.Genre] = struct{}{}
		out = append(out, m.Genre)
	}
	return out
}

// Choose implements Store.Choose.
func (s *MemStore) Choose(_ context.Context, pick func(n int) int) (model.Movie, error) {
	defer observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.movies) == 0 {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Movie{}, fmt.Errorf("choose from empty catalog: %w", ErrNotFound)
	}
	index := pick(len(s.movies))
	if !s.inRange(index) {
		return model.Movie{}, notFound(index)
	}
	return s.movies[index], nil
}

// Append implements Store.Append.
func (s *MemStore) Append(_ context.Context, m model.Movie) model.Movie {
	defer observeUpdate(time.Now())
	s.mu.Lock()
	s.movies = append(s.movies, m)
	n := len(s.movies)
	s.mu.Unlock()

	metrics.UpdateRepositoryRecordsTotal(n)
	return m
}

// Update implements Store.Update. The record keeps its position and id.
func (s *MemStore) Update(_ context.Context, index int, patch model.MoviePatch) (model.Movie, error) {
	defer observeUpdate(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inRange(index) {
		return model.Movie{}, notFound(index)
	}
	patch.Apply(&s.movies[index])
	return s.movies[index], nil
}

// Delete implements Store.Delete.
func (s *MemStore) Delete(_ context.Context, index int) (model.Movie, error) {
	defer observeUpdate(time.Now())
	s.mu.Lock()
	if !s.inRange(index) {
		s.mu.Unlock()
		return model.Movie{}, notFound(index)
	}
	removed := s.movies[index]
	s.movies = append(s.movies[:index], s.movies[index+1:]...)
	n := len(s.movies)
	s.mu.Unlock()

	metrics.UpdateRepositoryRecordsTotal(n)
	return removed, nil
}

// Reset implements Store.Reset.
func (s *MemStore) Reset(_ context.Context, movies []model.Movie) {
	defer observeUpdate(time.Now())
	s.mu.Lock()
	s.movies = clone(movies)
	n := len(s.movies)
	s.mu.Unlock()

	metrics.UpdateRepositoryRecordsTotal(n)
}

// inRange must be called with the lock held.
func (s *MemStore) inRange(index int) bool {
	return index >= 0 && index < len(s.movies)
}

func notFound(index int) error {
	metrics.RecordErrorByComponent("repository", "not_found")
	return fmt.Errorf("index %d: %w", index, ErrNotFound)
}

func clone(movies []model.Movie) []model.Movie {
	return append(make([]model.Movie, 0, len(movies)), movies...)
}
