package model

var seed = []struct {
	title   string
	genre   Genre
	rating  float64
	runtime int
}{
	{"Inception", GenreSciFi, 4.5, 148},
	{"The Dark Knight", GenreAction, 4.8, 152},
	{"Pulp Fiction", GenreDrama, 4.7, 154},
	{"In The Mood For Love", GenreDrama, 4.9, 98},
	{"Eternal Sunshine of the Spotless Mind", GenreDrama, 4.8, 108},
	{"Past Lives", GenreDrama, 4.9, 120},
	{"Barbie", GenreComedy, 4.9, 95},
	{"The Shawshank Redemption", GenreDrama, 4.7, 142},
	{"The Godfather", GenreDrama, 4.7, 175},
	{"Forrest Gump", GenreDrama, 4.3, 142},
	{"The Matrix", GenreSciFi, 4.8, 136},
	{"The Lord of the Rings: The Fellowship of the Ring", GenreAction, 4.0, 178},
	{"The Grand Budapest Hotel", GenreComedy, 4.2, 100},
	{"Interstellar", GenreSciFi, 4.7, 169},
}

// SeedMovies returns the startup catalog. Each call returns new records
// with new ids.
func SeedMovies() []Movie {
	out := make([]Movie, len(seed))
	for i, s := range seed {
		out[i] = NewMovie(s.title, s.genre, s.rating, s.runtime)
	}
	return out
}
