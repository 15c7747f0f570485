// File: websocket/test_helpers.go
package websocket

// InitTest resets the hub state so each test starts clean.
func InitTest() {
	connectionsMutex.Lock()
	connections = make(map[*Connection]bool)
	connectionsMutex.Unlock()

	broadcast = make(chan []byte, 16)
	metricsEnabled = false
}
