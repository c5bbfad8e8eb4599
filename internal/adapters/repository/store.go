// Package repository defines the catalog store interface and errors.
package repository

import (
	"context"

	"github.com/okian/marquee/internal/domain/model"
)

// Store provides read/write access to the ordered movie catalog.
// Records are addressed by position; a delete shifts every later record one
// place to the left.
type Store interface {
	// All returns the catalog in its current order.
	All(ctx context.Context) []model.Movie
	// Get returns the record at index. Returns ErrNotFound when index is out of range.
	Get(ctx context.Context, index int) (model.Movie, error)
	// Count returns the number of records.
	Count(ctx context.Context) int
	// Range returns the records in [start, start+count) clipped to the catalog.
	Range(ctx context.Context, start, count int) []model.Movie
	// ByGenre returns the records whose genre equals genre, order preserved.
	ByGenre(ctx context.Context, genre model.Genre) []model.Movie
	// Genres returns the distinct genres present, in first-occurrence order.
	Genres(ctx context.Context) []model.Genre
	// Choose returns the record at pick(Count()), evaluated under the same
	// lock as the read. Returns ErrNotFound on an empty catalog.
	Choose(ctx context.Context, pick func(n int) int) (model.Movie, error)

	// Append adds m at the end and returns it.
	Append(ctx context.Context, m model.Movie) model.Movie
	// Update merges patch into the record at index and returns the result.
	Update(ctx context.Context, index int, patch model.MoviePatch) (model.Movie, error)
	// Delete removes the record at index and returns it.
	Delete(ctx context.Context, index int) (model.Movie, error)
	// Reset replaces the whole catalog.
	Reset(ctx context.Context, movies []model.Movie)
}
