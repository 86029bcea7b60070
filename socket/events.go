package socket

import (
	"encoding/json"

	"safariconnect_server/models"
)

// Inbound event names (client -> server)
const (
	EventSendMessage   = "send-message"
	EventTypingStart   = "typing-start"
	EventTypingStop    = "typing-stop"
	EventMarkRead      = "mark-read"
	EventShareLocation = "share-location"
)

// Outbound event names (server -> room)
const (
	EventNewMessage  = "new-message"
	EventUserTyping  = "user-typing"
	EventMessageRead = "message-read"
	EventError       = "error"
)

// Envelope is the wire frame for every channel event
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// inboundEnvelope defers payload decoding until the event is known
type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// SendMessagePayload carries a chat message over the channel
type SendMessagePayload struct {
	MatchID  string `json:"matchId"`
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
	Kind     string `json:"messageType,omitempty"` // Defaults to text
}

// TypingPayload identifies who is typing in which match
type TypingPayload struct {
	MatchID string `json:"matchId"`
	UserID  string `json:"userId"`
}

// UserTypingPayload is the broadcast form of a typing indicator
type UserTypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// MarkReadPayload carries a read receipt
type MarkReadPayload struct {
	MatchID   string `json:"matchId"`
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

// MessageReadPayload is the broadcast form of a read receipt
type MessageReadPayload struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

// ShareLocationPayload carries a live location share
type ShareLocationPayload struct {
	MatchID  string                 `json:"matchId"`
	SenderID string                 `json:"senderId"`
	Location models.LocationPayload `json:"location"`
}

// ErrorPayload is sent to the originating client only
type ErrorPayload struct {
	Message string `json:"message"`
}
