package models

// LocationPayload is the coordinate payload of a location message
type LocationPayload struct {
	Latitude  float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude float64 `dynamodbav:"longitude" json:"longitude"`
	Address   string  `dynamodbav:"address,omitempty" json:"address,omitempty"`
}

// FileMeta describes an uploaded attachment on a file message
type FileMeta struct {
	URL  string `dynamodbav:"url" json:"url"`
	Name string `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Size int64  `dynamodbav:"size,omitempty" json:"size,omitempty"`
}

// Message is one entry in a thread's append-only log.
// Immutable once written except for readBy growth.
type Message struct {
	ThreadID  string           `dynamodbav:"threadId" json:"threadId"`   // ✅ Partition Key
	CreatedAt string           `dynamodbav:"createdAt" json:"createdAt"` // ✅ Sort Key (RFC3339Nano timestamp)
	MessageID string           `dynamodbav:"messageId" json:"messageId"`
	SenderID  string           `dynamodbav:"senderId" json:"senderId"` // Must be a thread participant
	Content   string           `dynamodbav:"content,omitempty" json:"content,omitempty"`
	Kind      string           `dynamodbav:"kind" json:"kind"` // text, image, location, voice, file
	Location  *LocationPayload `dynamodbav:"location,omitempty" json:"location,omitempty"` // Present iff kind=location
	File      *FileMeta        `dynamodbav:"file,omitempty" json:"file,omitempty"`         // Present iff kind=file
	ReadBy    []string         `dynamodbav:"readBy,omitempty" json:"readBy,omitempty"`     // Participants other than sender who have read it
}

// ReadByUser reports whether userID is already in the message's readBy set
func (m *Message) ReadByUser(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
