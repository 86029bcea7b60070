package models

// ChatThread is the durable conversation bound to exactly one match
type ChatThread struct {
	ThreadID      string         `dynamodbav:"threadId" json:"threadId"` // ✅ Partition Key, derived from matchId (one thread per match)
	MatchID       string         `dynamodbav:"matchId" json:"matchId"`
	Participants  []string       `dynamodbav:"participants" json:"participants"` // Exactly the match's two users
	UnreadCount   map[string]int `dynamodbav:"unreadCount" json:"unreadCount"`   // ✅ Per-user unread counters, keys ⊆ participants
	LastMessageAt string         `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	IsActive      bool           `dynamodbav:"isActive" json:"isActive"`
	CreatedAt     string         `dynamodbav:"createdAt" json:"createdAt"`
}

// HasParticipant reports whether userID belongs to the thread
func (t *ChatThread) HasParticipant(userID string) bool {
	for _, p := range t.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// ThreadSummary is the per-thread view returned by the thread list endpoint
type ThreadSummary struct {
	ThreadID      string   `json:"threadId"`
	MatchID       string   `json:"matchId"`
	Participants  []string `json:"participants"`
	OtherUserID   string   `json:"otherUserId,omitempty"`
	UnreadCount   int      `json:"unreadCount"`
	LastMessage   *Message `json:"lastMessage,omitempty"`
	LastMessageAt string   `json:"lastMessageAt,omitempty"`
}

// ChatStats aggregates a user's chat activity
type ChatStats struct {
	TotalChats  int `json:"totalChats"`
	TotalUnread int `json:"totalUnread"`
	ActiveChats int `json:"activeChats"`
}

// ChatThreadsTable is the DynamoDB table name for chat threads
const ChatThreadsTable = "ChatThreads"
