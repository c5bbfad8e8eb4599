package smoke

import (
	"github.com/google/uuid"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/random"
)

// Ranges for generated records.
const (
	minRuntime   = 80
	runtimeRange = 100
	ratingSteps  = 41 // 1.0 to 5.0 in tenths
)

// generateMovies builds n movies with unique titles, cycling through the
// known genres so every genre query has something to find.
func generateMovies(n int) []Movie {
	rng := random.FromSeed(0)
	genres := model.Genres()

	out := make([]Movie, n)
	for i := range out {
		out[i] = Movie{
			Title:   "smoke-" + uuid.NewString(),
			Genre:   string(genres[i%len(genres)]),
			Rating:  1 + float64(rng.Intn(ratingSteps))/10,
			Runtime: minRuntime + rng.Intn(runtimeRange),
		}
	}
	return out
}
