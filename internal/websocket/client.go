package websocket

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Время, которое разрешено писать сообщение клиенту.
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента.
	pongWait = 30 * time.Second

	// Периодичность отправки ping-сообщений клиенту.
	pingPeriod = (pongWait * 9) / 10

	// Канал только для чтения событий, входящие сообщения маленькие
	maxMessageSize = 512

	// Размер буфера исходящих сообщений клиента
	clientBufferSize = 64
)

// Client является посредником между WebSocket соединением и хабом.
type Client struct {
	// Уникальный ID соединения
	ConnectionID string

	// Имя администратора, открывшего соединение
	Username string

	hub  *Hub
	conn *websocket.Conn

	// Буферизованный канал исходящих сообщений. Закрывает только хаб.
	send chan []byte
}

// NewClient создает нового клиента
func NewClient(hub *Hub, conn *websocket.Conn, username string) *Client {
	return &Client{
		ConnectionID: uuid.NewString(),
		Username:     username,
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, clientBufferSize),
	}
}

// Start регистрирует клиента в хабе и запускает горутины чтения и записи
func (c *Client) Start() {
	if !c.hub.register(c) {
		_ = c.conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// readPump читает соединение до ошибки. Входящие сообщения не обрабатываются,
// чтение нужно для ping/pong и обнаружения закрытия.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("conn_id", c.ConnectionID).Msg("WebSocket: неожиданное закрытие соединения")
			}
			return
		}
	}
}

// writePump отправляет сообщения клиенту из канала send
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл канал
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Str("conn_id", c.ConnectionID).Msg("WebSocket: ошибка записи")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
