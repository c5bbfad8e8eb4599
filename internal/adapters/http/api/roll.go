// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/pkg/logger"
)

// RollDependencies defines the interface for dice rolls.
type RollDependencies interface {
	GetRoll(ctx context.Context, sides, rolls int) (model.DieRoll, error)
}

// RollHandler handles dice requests.
type RollHandler struct {
	deps   RollDependencies
	logger logger.Logger
}

// NewRollHandler creates a new roll handler.
func NewRollHandler(deps RollDependencies, l logger.Logger) *RollHandler {
	return &RollHandler{deps: deps, logger: l}
}

// HandleRoll handles GET /roll?sides=S&rolls=N requests.
func (h *RollHandler) HandleRoll(w http.ResponseWriter, r *http.Request) {
	const op = "api.roll"
	q := r.URL.Query()
	sides, err := intParam(q.Get("sides"), "sides")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	rolls, err := intParam(q.Get("rolls"), "rolls")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	roll, err := h.deps.GetRoll(r.Context(), sides, rolls)
	if err != nil {
		writeCatalogError(h.logger, w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, roll)
}
