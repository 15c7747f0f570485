// File: websocket/broadcast_test.go
package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastUpdate_EnqueuesActionEnvelope(t *testing.T) {
	InitTest()

	BroadcastUpdate("sermonAdded", map[string]string{"id": "s1", "title": "Grace"})

	var msg []byte
	select {
	case msg = <-broadcast:
	case <-time.After(time.Second):
		t.Fatal("no message queued")
	}

	var envelope struct {
		Action  string            `json:"action"`
		Payload map[string]string `json:"payload"`
	}
	assert.NoError(t, json.Unmarshal(msg, &envelope))
	assert.Equal(t, "sermonAdded", envelope.Action)
	assert.Equal(t, "Grace", envelope.Payload["title"])
}

func TestBroadcastProgress_CarriesKeyAndPercent(t *testing.T) {
	InitTest()

	BroadcastProgress("sunday.mp3", 42)

	var msg []byte
	select {
	case msg = <-broadcast:
	case <-time.After(time.Second):
		t.Fatal("no message queued")
	}

	var envelope struct {
		Action  string `json:"action"`
		Payload struct {
			Key     string `json:"key"`
			Percent int    `json:"percent"`
		} `json:"payload"`
	}
	assert.NoError(t, json.Unmarshal(msg, &envelope))
	assert.Equal(t, "uploadProgress", envelope.Action)
	assert.Equal(t, "sunday.mp3", envelope.Payload.Key)
	assert.Equal(t, 42, envelope.Payload.Percent)
}

func TestHandleMessages_FansOutToEveryConnection(t *testing.T) {
	InitTest()

	first := &Connection{conn: newFakeConn(), send: make(chan []byte, 1)}
	second := &Connection{conn: newFakeConn(), send: make(chan []byte, 1)}
	registerConnection(first)
	registerConnection(second)
	defer func() {
		unregisterConnection(first)
		unregisterConnection(second)
	}()

	go HandleMessages()

	BroadcastUpdate("eventSaved", map[string]string{"id": "evt-1"})

	for _, c := range []*Connection{first, second} {
		select {
		case msg := <-c.send:
			assert.Contains(t, string(msg), "eventSaved")
		case <-time.After(time.Second):
			t.Fatal("connection never received the broadcast")
		}
	}
}

func TestConnectionCount_TracksRegistrations(t *testing.T) {
	InitTest()
	assert.Equal(t, 0, ConnectionCount())

	c := &Connection{conn: newFakeConn(), send: make(chan []byte, 1)}
	registerConnection(c)
	assert.Equal(t, 1, ConnectionCount())

	unregisterConnection(c)
	assert.Equal(t, 0, ConnectionCount())
}
