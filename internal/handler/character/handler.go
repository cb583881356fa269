package character

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeonwoo-dev/kumascot/backend/internal/model/character"
	"github.com/yeonwoo-dev/kumascot/backend/pkg/utils"
)

// Handler serves the static character registry.
type Handler struct {
	characters character.Store
}

// New creates the character handler.
func New(characters character.Store) *Handler {
	return &Handler{characters: characters}
}

// RegisterRoutes registers the character routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/characters", h.handleListCharacters)
}

func (h *Handler) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.characters.List())
}
