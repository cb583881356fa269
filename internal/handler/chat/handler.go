package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/yeonwoo-dev/kumascot/backend/internal/model/chat"
	chatservice "github.com/yeonwoo-dev/kumascot/backend/internal/service/chat"
	"github.com/yeonwoo-dev/kumascot/backend/pkg/utils"
)

// Handler exposes the chat pipeline over HTTP.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// handleChat answers one message. A malformed body is the only case
// surfaced as an explicit error; pipeline failures degrade to fallback
// replies inside the service.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatmodel.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.chatSvc.Respond(r.Context(), req)
	if err != nil {
		if errors.Is(err, chatservice.ErrCanceled) {
			// Superseded or abandoned request: emit nothing.
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "chat failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
