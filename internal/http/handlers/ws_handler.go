package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/recyhub/recy-backend/internal/interface/http/response"
	"github.com/recyhub/recy-backend/internal/validation"
	"github.com/recyhub/recy-backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений.
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер. Пустой список origins разрешает любой источник.
func NewWSHandler(hub *ws.Hub, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 {
					return true
				}
				_, ok := allowed[origin]
				if !ok {
					_, ok = allowed["*"]
				}
				return ok
			},
		},
	}
}

// Handle обслуживает GET /api/ws?email=...
// Личность не проверяется: email принимается как есть.
func (h *WSHandler) Handle(c *gin.Context) {
	email := c.Query("email")
	if err := validation.ValidateEmail(email); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(conn, h.hub, email)
	if !h.hub.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "сервер останавливается"))
		conn.Close()
		return
	}

	client.Run()
}
