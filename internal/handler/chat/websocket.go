package chat

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	chatmodel "github.com/yeonwoo-dev/kumascot/backend/internal/model/chat"
	chatservice "github.com/yeonwoo-dev/kumascot/backend/internal/service/chat"
)

// WebSocketHandler answers chat turns over a websocket. A turn received
// while another is still generating supersedes it: the in-flight turn's
// context is canceled and that turn emits no reply frame.
type WebSocketHandler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// NewWebSocket creates the websocket chat handler.
func NewWebSocket(chatSvc *chatservice.Service) *WebSocketHandler {
	return &WebSocketHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket route.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws", h.handleWebSocket)
}

// turnRequest is one inbound frame: the regular chat request plus an
// optional client-chosen id echoed back on the reply.
type turnRequest struct {
	ID string `json:"id"`
	chatmodel.Request
}

type turnReply struct {
	ID string `json:"id"`
	chatmodel.Response
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	var cancelInflight context.CancelFunc
	defer func() {
		if cancelInflight != nil {
			cancelInflight()
		}
	}()

	for {
		var turn turnRequest
		if err := conn.ReadJSON(&turn); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error: %v", err)
			}
			return
		}
		if turn.ID == "" {
			turn.ID = uuid.NewString()
		}

		if cancelInflight != nil {
			cancelInflight()
		}
		turnCtx, cancel := context.WithCancel(r.Context())
		cancelInflight = cancel

		go h.respond(turnCtx, conn, &writeMu, turn)
	}
}

func (h *WebSocketHandler) respond(ctx context.Context, conn *websocket.Conn, writeMu *sync.Mutex, turn turnRequest) {
	resp, err := h.chatSvc.Respond(ctx, turn.Request)
	if err != nil {
		// A superseded turn vanishes silently.
		if !errors.Is(err, chatservice.ErrCanceled) {
			log.Printf("[ws] turn %s failed: %v", turn.ID, err)
		}
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	if err := conn.WriteJSON(turnReply{ID: turn.ID, Response: resp}); err != nil {
		log.Printf("[ws] failed to write reply for turn %s: %v", turn.ID, err)
	}
}
