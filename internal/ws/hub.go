package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/recyhub/recy-backend/internal/logger"
)

// Hub управляет WebSocket клиентами. Клиенты сгруппированы по email.
// Всё состояние меняется только в горутине Run.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	outbox     chan envelope
	done       chan struct{}
}

// envelope — адресованное сообщение. Пустой список адресатов означает всех.
type envelope struct {
	to      []string
	payload []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbox:     make(chan envelope, 64),
		done:       make(chan struct{}),
	}
}

// Run запускает главный цикл хаба и возвращается после отмены ctx,
// закрыв каналы отправки всех клиентов.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.outbox:
			h.deliver(msg)
		}
	}
}

// Register добавляет клиента. После остановки хаба ничего не делает.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send отправляет событие перечисленным адресатам; без адресатов — всем.
func (h *Hub) Send(event string, data any, to ...string) error {
	// Сообщение для клиента: "type" содержит имя события, "data" — полезную нагрузку.
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	select {
	case h.outbox <- envelope{to: to, payload: raw}:
	case <-h.done:
	}
	return nil
}

// Online возвращает число открытых соединений пользователя.
func (h *Hub) Online(email string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[email])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.email]; !ok {
		h.clients[client.email] = make(map[*Client]struct{})
	}
	h.clients[client.email][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLocked(client)
}

// dropLocked удаляет клиента и закрывает его канал. Вызывать под h.mu.
func (h *Hub) dropLocked(client *Client) {
	clients, ok := h.clients[client.email]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.email)
	}
}

func (h *Hub) deliver(msg envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var targets []*Client
	if len(msg.to) == 0 {
		for _, clients := range h.clients {
			for c := range clients {
				targets = append(targets, c)
			}
		}
	} else {
		seen := make(map[string]struct{}, len(msg.to))
		for _, email := range msg.to {
			if _, dup := seen[email]; dup || email == "" {
				continue
			}
			seen[email] = struct{}{}
			for c := range h.clients[email] {
				targets = append(targets, c)
			}
		}
	}

	for _, c := range targets {
		select {
		case c.send <- msg.payload:
		default:
			logger.Component("ws").WithFields(logrus.Fields{
				"email": c.email,
			}).Warn("клиент не успевает читать, отключаем")
			h.dropLocked(c)
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for c := range clients {
			h.dropLocked(c)
		}
	}
}
