// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/marquee/internal/domain/model"
)

// GenresDependencies defines the interface for genre listing.
type GenresDependencies interface {
	AllGenres(ctx context.Context) []model.Genre
}

// GenresHandler handles genre requests.
type GenresHandler struct {
	deps GenresDependencies
}

// NewGenresHandler creates a new genres handler.
func NewGenresHandler(deps GenresDependencies) *GenresHandler {
	return &GenresHandler{deps: deps}
}

// HandleGenres handles GET /genres.
func (h *GenresHandler) HandleGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.AllGenres(r.Context()))
}
