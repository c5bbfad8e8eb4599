// Package model contains domain models passed between layers.
package model

import "github.com/google/uuid"

// Genre is a movie category. The closed set below is what the seed data and
// the GraphQL schema use; writes accept any text and store it as given.
type Genre string

// Known genres.
const (
	GenreAction Genre = "Action"
	GenreComedy Genre = "Comedy"
	GenreDrama  Genre = "Drama"
	GenreSciFi  Genre = "SciFi"
)

// Genres returns the closed genre set in declaration order.
func Genres() []Genre {
	return []Genre{GenreAction, GenreComedy, GenreDrama, GenreSciFi}
}

// Valid reports whether g belongs to the closed genre set.
func (g Genre) Valid() bool {
	switch g {
	case GenreAction, GenreComedy, GenreDrama, GenreSciFi:
		return true
	default:
		return false
	}
}

// Movie is a catalog record. Records are addressed by their position in the
// catalog; ID is internal and survives updates, it is never exposed.
type Movie struct {
	ID      uuid.UUID `json:"-"`
	Title   string    `json:"title"`
	Genre   Genre     `json:"genre"`
	Rating  float64   `json:"rating"`
	Runtime int       `json:"runtime"` // minutes
}

// NewMovie builds a record with a fresh internal id.
func NewMovie(title string, genre Genre, rating float64, runtime int) Movie {
	return Movie{
		ID:      uuid.New(),
		Title:   title,
		Genre:   genre,
		Rating:  rating,
		Runtime: runtime,
	}
}

// MoviePatch carries a partial update. Nil fields are left untouched.
type MoviePatch struct {
	Title   *string
	Genre   *Genre
	Rating  *float64
	Runtime *int
}

// Apply merges the supplied fields into m in place.
func (p MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.Runtime != nil {
		m.Runtime = *p.Runtime
	}
}

// Empty reports whether the patch carries no fields.
func (p MoviePatch) Empty() bool {
	return p.Title == nil && p.Genre == nil && p.Rating == nil && p.Runtime == nil
}

// DieRoll is the result of rolling the same die several times.
type DieRoll struct {
	Total int   `json:"total"`
	Sides int   `json:"sides"`
	Rolls []int `json:"rolls"`
}
