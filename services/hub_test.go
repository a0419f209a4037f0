package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(h *Hub, challengeID string) *Client {
	return &Client{
		hub:         h,
		id:          "test-" + challengeID,
		send:        make(chan []byte, 16),
		challengeID: challengeID,
		userID:      "admin-1",
	}
}

func TestHubNotifyChallenge(t *testing.T) {
	h := NewHub()

	watcher := testClient(h, "ch-1")
	other := testClient(h, "ch-2")
	h.clients[watcher] = true
	h.clients[other] = true

	h.NotifyChallenge("ch-1")

	select {
	case data := <-watcher.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "summary_refresh", msg.Type)

		payload, ok := msg.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "ch-1", payload["challengeId"])
	default:
		t.Fatal("watcher did not receive refresh message")
	}

	select {
	case <-other.send:
		t.Fatal("client watching another challenge received the message")
	default:
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := testClient(h, "ch-1")
	h.register <- client
	// register is unbuffered, so the hub has processed it once a second
	// send goes through
	h.register <- testClient(h, "ch-2")
	assert.GreaterOrEqual(t, h.ClientCount(), 1)

	h.unregister <- client
	h.register <- testClient(h, "ch-3")

	h.mutex.RLock()
	_, stillThere := h.clients[client]
	h.mutex.RUnlock()
	assert.False(t, stillThere)
}
