// Package websocket pushes live content updates (new sermons, edited events)
// to connected browsers so open tabs stay current.
// File: websocket/globals.go
package websocket

import (
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"
)

// connections tracks every active browser connection.
var connections = make(map[*Connection]bool)

// connectionsMutex guards the connections map.
var connectionsMutex sync.Mutex

// broadcast is the channel feeding HandleMessages.
var broadcast = make(chan []byte)

// upgrader upgrades HTTP requests to WebSocket connections.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all if Test-Mode
		if r.Header.Get("Test-Mode") == "true" {
			return true
		}
		origin := r.Header.Get("Origin")
		return origin == "http://localhost:8080" ||
			origin == os.Getenv("APPLICATION_URL")
	},
}

// registerConnection adds the connection and refreshes the gauge metric.
func registerConnection(c *Connection) {
	connectionsMutex.Lock()
	connections[c] = true
	count := len(connections)
	connectionsMutex.Unlock()

	go PublishSiteConnections(count)
}

// unregisterConnection removes the connection and refreshes the gauge metric.
func unregisterConnection(c *Connection) {
	connectionsMutex.Lock()
	delete(connections, c)
	count := len(connections)
	connectionsMutex.Unlock()

	go PublishSiteConnections(count)
}

// ConnectionCount returns the number of active connections.
func ConnectionCount() int {
	connectionsMutex.Lock()
	defer connectionsMutex.Unlock()
	return len(connections)
}
