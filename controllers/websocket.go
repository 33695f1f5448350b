package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsClients = make(map[*websocket.Conn]bool)
	wsLock    sync.Mutex
)

// HandleWebSocket upgrades the connection and keeps it registered for
// reading and run broadcasts until the peer goes away.
func HandleWebSocket(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wsLock.Lock()
	wsClients[conn] = true
	wsLock.Unlock()

	defer func() {
		wsLock.Lock()
		delete(wsClients, conn)
		wsLock.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Broadcast pushes an event to every connected dashboard. Connections that
// fail to take the write are dropped on the spot.
func Broadcast(event string, payload any) {
	msg, err := json.Marshal(gin.H{"type": event, "data": payload})
	if err != nil {
		return
	}

	wsLock.Lock()
	defer wsLock.Unlock()
	for conn := range wsClients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(wsClients, conn)
		}
	}
}
