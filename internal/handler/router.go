package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	characterHandler "github.com/yeonwoo-dev/kumascot/backend/internal/handler/character"
	chatHandler "github.com/yeonwoo-dev/kumascot/backend/internal/handler/chat"
	middlewarePkg "github.com/yeonwoo-dev/kumascot/backend/internal/middleware"
	characterModel "github.com/yeonwoo-dev/kumascot/backend/internal/model/character"
	chatService "github.com/yeonwoo-dev/kumascot/backend/internal/service/chat"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(characters characterModel.Store, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		characterHandler.New(characters).RegisterRoutes(api)
		chatHandler.New(chatSvc).RegisterRoutes(api)
		chatHandler.NewWebSocket(chatSvc).RegisterRoutes(api)
	})

	return r
}
