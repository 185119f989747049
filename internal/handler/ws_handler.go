package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/quiz-channels-api/internal/middleware"
	"github.com/yourusername/quiz-channels-api/internal/websocket"
)

// WSHandler подключает администраторов к потоку событий викторины
type WSHandler struct {
	hub      *websocket.Hub
	upgrader gorillaws.Upgrader
}

// NewWSHandler создает обработчик WebSocket. Соединения из браузера принимаются
// только с origin из allowedOrigins, клиенты без Origin (curl, приложения) допускаются.
func NewWSHandler(hub *websocket.Hub, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &WSHandler{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				log.Warn().Str("origin", origin).Msg("WebSocket: отклонен неразрешенный origin")
				return false
			},
		},
	}
}

// HandleConnection переводит запрос в WebSocket и регистрирует клиента в хабе
// GET /admin/ws
func (h *WSHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже отправил ответ с ошибкой
		log.Debug().Err(err).Msg("WebSocket: ошибка upgrade")
		return
	}

	username := c.GetString(middleware.ContextAdminUsername)
	websocket.NewClient(h.hub, conn, username).Start()
}
