// handlers/ws/websocket.go
package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/evn/shiftpay_backendl/internal/middleware"
	wsService "github.com/evn/shiftpay_backendl/internal/services/ws"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func WebSocketHandler(manager *wsService.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok || userID == 0 {
			http.Error(w, "invalid user", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("Upgrade error:", err)
			return
		}

		client := &wsService.Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			UserID: userID,
		}

		manager.Register(client)

		go manager.ReadPump(client)
		go manager.WritePump(client)
	}
}
