package socket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"safariconnect_server/models"
	"safariconnect_server/services"
	"safariconnect_server/utils"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ChatHandler bridges the realtime channel and the durable chat aggregate.
// Messages and read receipts are persisted through ChatService first; the
// broadcast is a best-effort mirror on top.
type ChatHandler struct {
	Hub  *Hub
	Chat *services.ChatService
}

// ServeWS upgrades the connection and subscribes it to the match's room.
// The client supplies its own userId; socket identity is taken as given.
func (h *ChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	userID := r.URL.Query().Get("userId")
	if matchID == "" || userID == "" {
		http.Error(w, `{"error": "matchId and userId are required"}`, http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		UserID:  userID,
		MatchID: matchID,
		Send:    make(chan []byte, 256),
		Conn:    conn,
	}
	h.Hub.Register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *ChatHandler) writePump(client *Client) {
	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
	client.Conn.Close()
}

func (h *ChatHandler) readPump(client *Client) {
	defer func() {
		h.Hub.Unregister <- client
		client.Conn.Close()
		log.Printf("🔌 User %s left room %s", client.UserID, client.MatchID)
	}()

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}

		var envelope inboundEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			h.sendError(client, "malformed event")
			continue
		}

		h.dispatch(client, envelope)
	}
}

func (h *ChatHandler) dispatch(client *Client, envelope inboundEnvelope) {
	switch envelope.Event {
	case EventSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			h.sendError(client, "malformed send-message payload")
			return
		}
		h.handleSendMessage(client, payload)
	case EventTypingStart, EventTypingStop:
		var payload TypingPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			h.sendError(client, "malformed typing payload")
			return
		}
		h.Hub.EmitExcept(client.MatchID, EventUserTyping, UserTypingPayload{
			UserID:   payload.UserID,
			IsTyping: envelope.Event == EventTypingStart,
		}, client)
	case EventMarkRead:
		var payload MarkReadPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			h.sendError(client, "malformed mark-read payload")
			return
		}
		h.handleMarkRead(client, payload)
	case EventShareLocation:
		var payload ShareLocationPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			h.sendError(client, "malformed share-location payload")
			return
		}
		h.handleShareLocation(client, payload)
	default:
		h.sendError(client, "unknown event: "+envelope.Event)
	}
}

// handleSendMessage persists through the chat aggregate, then mirrors the
// stored message to the room. A failed broadcast never rolls the append back.
func (h *ChatHandler) handleSendMessage(client *Client, payload SendMessagePayload) {
	kind := payload.Kind
	if kind == "" {
		kind = models.MessageKindText
	}

	threadID := utils.ThreadIDForMatch(client.MatchID)
	message, err := h.Chat.AddMessage(context.Background(), threadID, payload.SenderID, payload.Message, kind, nil, nil)
	if err != nil {
		log.Printf("❌ Durable write failed for room %s: %v", client.MatchID, err)
		h.sendError(client, "message could not be saved")
		return
	}

	h.Hub.Emit(client.MatchID, EventNewMessage, message)
}

func (h *ChatHandler) handleMarkRead(client *Client, payload MarkReadPayload) {
	threadID := utils.ThreadIDForMatch(client.MatchID)
	err := h.Chat.MarkRead(context.Background(), threadID, payload.UserID, []string{payload.MessageID})
	if err != nil {
		log.Printf("❌ Read receipt persist failed for room %s: %v", client.MatchID, err)
		h.sendError(client, "read receipt could not be saved")
		return
	}

	h.Hub.Emit(client.MatchID, EventMessageRead, MessageReadPayload{
		MessageID: payload.MessageID,
		UserID:    payload.UserID,
	})
}

func (h *ChatHandler) handleShareLocation(client *Client, payload ShareLocationPayload) {
	location := payload.Location
	threadID := utils.ThreadIDForMatch(client.MatchID)
	message, err := h.Chat.AddMessage(context.Background(), threadID, payload.SenderID, "", models.MessageKindLocation, &location, nil)
	if err != nil {
		log.Printf("❌ Durable write failed for location share in room %s: %v", client.MatchID, err)
		h.sendError(client, "location could not be saved")
		return
	}

	h.Hub.Emit(client.MatchID, EventNewMessage, message)
}

// sendError delivers an error event to one client without touching the room
func (h *ChatHandler) sendError(client *Client, message string) {
	data, err := json.Marshal(Envelope{Event: EventError, Data: ErrorPayload{Message: message}})
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}
