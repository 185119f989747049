package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Event - сообщение, рассылаемое клиентам
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub хранит подключенных клиентов админки и рассылает им события.
// Все изменения набора клиентов выполняются в горутине Run.
type Hub struct {
	clients    map[*Client]struct{}
	registerCh chan *Client
	leaveCh    chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu    sync.RWMutex
	count int
}

// NewHub создает новый хаб. Перед использованием нужно запустить Run.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		registerCh: make(chan *Client),
		leaveCh:    make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run обслуживает хаб до отмены ctx, затем закрывает все соединения
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for client := range h.clients {
			h.remove(client)
		}
		close(h.done)
		log.Info().Msg("WebSocket хаб остановлен")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.registerCh:
			h.clients[client] = struct{}{}
			h.setCount(len(h.clients))
			log.Info().Str("conn_id", client.ConnectionID).Str("username", client.Username).Msg("WebSocket: клиент подключен")

		case client := <-h.leaveCh:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				log.Info().Str("conn_id", client.ConnectionID).Msg("WebSocket: клиент отключен")
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Клиент не успевает читать
					log.Warn().Str("conn_id", client.ConnectionID).Msg("WebSocket: буфер клиента переполнен, отключаем")
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.setCount(len(h.clients))
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// ClientCount возвращает число подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *Hub) register(client *Client) bool {
	select {
	case h.registerCh <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(client *Client) {
	select {
	case h.leaveCh <- client:
	case <-h.done:
	}
}

// Publish рассылает событие всем клиентам. Не блокирует вызывающего:
// при переполненной очереди событие отбрасывается.
func (h *Hub) Publish(eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()})
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("WebSocket: не удалось сериализовать событие")
		return
	}

	select {
	case h.broadcast <- payload:
	case <-h.done:
	default:
		log.Warn().Str("event", eventType).Msg("WebSocket: очередь событий переполнена, событие отброшено")
	}
}
