// Package repository defines the catalog store interface and errors.
package repository

import "github.com/okian/marquee/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMovies sets the initial catalog. The slice is copied.
func WithMovies(movies []model.Movie) Option {
	return func(s *MemStore) {
		s.movies = append(make([]model.Movie, 0, len(movies)), movies...)
	}
}
