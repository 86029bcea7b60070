package socket

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestClient(userID, matchID string, buffer int) *Client {
	return &Client{
		UserID:  userID,
		MatchID: matchID,
		Send:    make(chan []byte, buffer),
	}
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		if !ok {
			t.Fatal("send channel closed unexpectedly")
		}
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func expectNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("expected no frame, got %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcastScopedToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := newTestClient("alice", "match-1", 8)
	bob := newTestClient("bob", "match-1", 8)
	stranger := newTestClient("carol", "match-2", 8)

	hub.Register <- alice
	hub.Register <- bob
	hub.Register <- stranger

	hub.Emit("match-1", EventNewMessage, map[string]string{"content": "jambo"})

	for _, c := range []*Client{alice, bob} {
		var envelope Envelope
		if err := json.Unmarshal(receive(t, c), &envelope); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		if envelope.Event != EventNewMessage {
			t.Fatalf("expected %s, got %s", EventNewMessage, envelope.Event)
		}
	}

	expectNoFrame(t, stranger)
}

func TestHubEmitExceptSkipsSender(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := newTestClient("alice", "match-1", 8)
	bob := newTestClient("bob", "match-1", 8)

	hub.Register <- alice
	hub.Register <- bob

	hub.EmitExcept("match-1", EventUserTyping, UserTypingPayload{UserID: "alice", IsTyping: true}, alice)

	var envelope Envelope
	if err := json.Unmarshal(receive(t, bob), &envelope); err != nil {
		t.Fatalf("bad frame: %v", err)
	}
	if envelope.Event != EventUserTyping {
		t.Fatalf("expected %s, got %s", EventUserTyping, envelope.Event)
	}

	expectNoFrame(t, alice)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := newTestClient("alice", "match-1", 8)
	hub.Register <- alice
	hub.Unregister <- alice

	select {
	case _, ok := <-alice.Send:
		if ok {
			t.Fatal("expected closed channel after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	healthy := newTestClient("alice", "match-1", 8)
	slow := newTestClient("bob", "match-1", 0) // no buffer, never read

	hub.Register <- healthy
	hub.Register <- slow

	// First broadcast evicts the slow client, second proves the room still works
	hub.Emit("match-1", EventNewMessage, map[string]string{"content": "one"})
	receive(t, healthy)
	hub.Emit("match-1", EventNewMessage, map[string]string{"content": "two"})
	receive(t, healthy)

	if size := hub.RoomSize("match-1"); size != 1 {
		t.Fatalf("expected 1 client left in room, got %d", size)
	}
}
