// File: websocket/broadcast.go
package websocket

import (
	"encoding/json"

	"chapel-site/logger"
)

// HandleMessages distributes queued update messages to every connection.
// Run once from main in its own goroutine.
func HandleMessages() {
	for {
		msg := <-broadcast

		connectionsMutex.Lock()
		for c := range connections {
			select {
			case c.send <- msg:
			default:
				logger.Warn.Printf("Dropping broadcast message for connection %v", c.conn.RemoteAddr())
			}
		}
		connectionsMutex.Unlock()
	}
}

// BroadcastUpdate pushes a content-update message to all connected clients,
// e.g. BroadcastUpdate("sermonAdded", sermon).
func BroadcastUpdate(action string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"action":  action,
		"payload": payload,
	})
	if err != nil {
		logger.Error.Printf("BroadcastUpdate: marshalling %s failed: %v", action, err)
		return
	}

	logger.Debug.Printf("BroadcastUpdate: %s", action)
	broadcast <- msg
}

// BroadcastProgress pushes an upload progress percentage so the admin's
// other open tabs can mirror the progress bar.
func BroadcastProgress(key string, percent int) {
	BroadcastUpdate("uploadProgress", map[string]interface{}{
		"key":     key,
		"percent": percent,
	})
}
