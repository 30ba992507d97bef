// services/ws/manager.go
package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type userMessage struct {
	userID int
	data   []byte
}

// Manager рассылает события смен (старт/стоп, обед) всем подключённым
// устройствам одного пользователя, чтобы таймеры оставались в синхроне.
type Manager struct {
	clients    map[*Client]bool
	events     chan userMessage
	register   chan *Client
	unregister chan *Client
	Store      *StatusStore
	mu         sync.RWMutex
}

func NewManager(store *StatusStore) *Manager {
	m := &Manager{
		clients:    make(map[*Client]bool),
		events:     make(chan userMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		Store:      store,
	}
	go m.Run()
	return m
}

func (m *Manager) Register(client *Client) {
	m.register <- client
}

func (m *Manager) Unregister(client *Client) {
	m.unregister <- client
}

// NotifyUser отправляет событие всем подключениям пользователя
func (m *Manager) NotifyUser(userID int, event string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type":      event,
		"payload":   payload,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Failed to marshal ws event %s: %v", event, err)
		return
	}
	m.events <- userMessage{userID: userID, data: data}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.mu.Unlock()
			m.sendActiveShift(client)
		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.Send)
			}
			m.mu.Unlock()
		case msg := <-m.events:
			m.mu.RLock()
			for client := range m.clients {
				if client.UserID != msg.userID {
					continue
				}
				select {
				case client.Send <- msg.data:
				default:
					close(client.Send)
					delete(m.clients, client)
				}
			}
			m.mu.RUnlock()
		}
	}
}

// sendActiveShift отдаёт новому подключению текущее состояние таймера
func (m *Manager) sendActiveShift(client *Client) {
	if m.Store == nil {
		return
	}
	shift, err := m.Store.GetActiveShift(client.UserID)
	if err != nil {
		return // нет открытой смены
	}
	data, _ := json.Marshal(map[string]interface{}{
		"type":      "active_shift",
		"payload":   shift,
		"timestamp": time.Now().UTC(),
	})
	select {
	case client.Send <- data:
	default:
	}
}

func (m *Manager) ReadPump(client *Client) {
	defer func() {
		m.Unregister(client)
		client.Conn.Close()
	}()

	for {
		// Клиенты ничего не присылают, соединение живёт ради рассылки
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (m *Manager) WritePump(client *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			client.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			client.Conn.WriteMessage(websocket.PingMessage, nil)
		}
	}
}
