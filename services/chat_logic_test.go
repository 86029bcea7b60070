package services

import (
	"testing"

	"safariconnect_server/models"
)

var threadParticipants = []string{"alice", "bob"}

func textMessage(id, sender string, readBy ...string) models.Message {
	return models.Message{
		MessageID: id,
		SenderID:  sender,
		Kind:      models.MessageKindText,
		Content:   "hello",
		ReadBy:    readBy,
	}
}

func TestValidateMessagePayload(t *testing.T) {
	location := &models.LocationPayload{Latitude: -1.29, Longitude: 36.82}
	file := &models.FileMeta{URL: "s3://bucket/key", Name: "itinerary.pdf"}

	tests := []struct {
		name     string
		kind     string
		content  string
		location *models.LocationPayload
		file     *models.FileMeta
		wantErr  bool
	}{
		{"plain text", models.MessageKindText, "hi", nil, nil, false},
		{"text without content", models.MessageKindText, "", nil, nil, true},
		{"location with payload", models.MessageKindLocation, "", location, nil, false},
		{"location without payload", models.MessageKindLocation, "", nil, nil, true},
		{"text with stray location", models.MessageKindText, "hi", location, nil, true},
		{"file with meta", models.MessageKindFile, "", nil, file, false},
		{"file without meta", models.MessageKindFile, "", nil, nil, true},
		{"unknown kind", "sticker", "hi", nil, nil, true},
	}

	for _, tt := range tests {
		err := ValidateMessagePayload(tt.kind, tt.content, tt.location, tt.file)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: got err=%v, wantErr=%v", tt.name, err, tt.wantErr)
		}
	}
}

func TestMessagesToMarkAllUnread(t *testing.T) {
	// Three messages from alice, none read by bob; nil IDs means all unread.
	messages := []models.Message{
		textMessage("m1", "alice"),
		textMessage("m2", "alice"),
		textMessage("m3", "alice"),
	}

	toMark := MessagesToMark(messages, "bob", nil)
	if len(toMark) != 3 {
		t.Fatalf("expected all 3 messages selected, got %d", len(toMark))
	}
}

func TestMessagesToMarkSkipsOwnAndAlreadyRead(t *testing.T) {
	messages := []models.Message{
		textMessage("m1", "alice"),        // unread by bob
		textMessage("m2", "alice", "bob"), // already read
		textMessage("m3", "bob"),          // bob's own
	}

	toMark := MessagesToMark(messages, "bob", nil)
	if len(toMark) != 1 || toMark[0].MessageID != "m1" {
		t.Fatalf("expected only m1 selected, got %+v", toMark)
	}
}

func TestMessagesToMarkTargetedIDs(t *testing.T) {
	messages := []models.Message{
		textMessage("m1", "alice"),
		textMessage("m2", "alice"),
	}

	toMark := MessagesToMark(messages, "bob", []string{"m2"})
	if len(toMark) != 1 || toMark[0].MessageID != "m2" {
		t.Fatalf("expected only targeted m2 selected, got %+v", toMark)
	}
}

func TestMessagesToMarkIdempotent(t *testing.T) {
	messages := []models.Message{
		textMessage("m1", "alice"),
		textMessage("m2", "alice"),
	}

	first := MessagesToMark(messages, "bob", []string{"m1", "m2"})
	if len(first) != 2 {
		t.Fatalf("expected 2 selected on first pass, got %d", len(first))
	}

	// Apply the first pass, then mark again with the same IDs
	for i := range messages {
		messages[i].ReadBy = append(messages[i].ReadBy, "bob")
	}
	second := MessagesToMark(messages, "bob", []string{"m1", "m2"})
	if len(second) != 0 {
		t.Fatalf("second identical markRead should select nothing, got %d", len(second))
	}
	for _, msg := range messages {
		if len(msg.ReadBy) != 1 {
			t.Fatalf("readBy must not grow duplicates: %+v", msg.ReadBy)
		}
	}
}

func TestMessageReadStateTransitions(t *testing.T) {
	msg := textMessage("m1", "alice")
	if got := MessageReadState(msg, threadParticipants); got != models.MessageStateSent {
		t.Fatalf("fresh message should be sent, got %s", got)
	}

	msg.ReadBy = []string{"bob"}
	if got := MessageReadState(msg, threadParticipants); got != models.MessageStateReadByAll {
		t.Fatalf("two-party thread read by the other side is read-by-all, got %s", got)
	}

	// With a hypothetical third participant the intermediate state shows up
	three := []string{"alice", "bob", "carol"}
	if got := MessageReadState(msg, three); got != models.MessageStateDeliveredToSome {
		t.Fatalf("partially read message should be delivered-to-some, got %s", got)
	}
}

func TestThreadOpenScenario(t *testing.T) {
	// One side sends 3 messages; the other opens the thread with no message
	// IDs: everything gets read and, in a two-party thread, reaches the
	// terminal state.
	messages := []models.Message{
		textMessage("m1", "alice"),
		textMessage("m2", "alice"),
		textMessage("m3", "alice"),
	}

	for _, msg := range MessagesToMark(messages, "bob", nil) {
		for i := range messages {
			if messages[i].MessageID == msg.MessageID {
				messages[i].ReadBy = append(messages[i].ReadBy, "bob")
			}
		}
	}

	for _, msg := range messages {
		if !msg.ReadByUser("bob") {
			t.Fatalf("message %s should be read by bob", msg.MessageID)
		}
		if got := MessageReadState(msg, threadParticipants); got != models.MessageStateReadByAll {
			t.Fatalf("message %s should be read-by-all, got %s", msg.MessageID, got)
		}
	}
}
