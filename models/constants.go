package models

// ✅ Match statuses
const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusRejected = "rejected"
	MatchStatusExpired  = "expired"
)

// ✅ Message kinds
const (
	MessageKindText     = "text"
	MessageKindImage    = "image"
	MessageKindLocation = "location"
	MessageKindVoice    = "voice"
	MessageKindFile     = "file"
)

// ✅ Message read states (derived, not stored)
const (
	MessageStateSent            = "sent"              // Nobody has read it yet
	MessageStateDeliveredToSome = "delivered-to-some" // Read by some, not all, recipients
	MessageStateReadByAll       = "read-by-all"       // Terminal: read by every non-sender participant
)

// ✅ Travel styles
const (
	TravelStyleBudget     = "budget"
	TravelStyleLuxury     = "luxury"
	TravelStyleAdventure  = "adventure"
	TravelStyleRelaxation = "relaxation"
	TravelStyleCultural   = "cultural"
	TravelStyleMixed      = "mixed"
)

// ✅ Relationship statuses
const (
	RelationshipSingle         = "single"
	RelationshipMarried        = "married"
	RelationshipComplicated    = "complicated"
	RelationshipPreferNotToSay = "prefer-not-to-say"
)

// ValidMatchStatus reports whether s is a known match status
func ValidMatchStatus(s string) bool {
	switch s {
	case MatchStatusPending, MatchStatusAccepted, MatchStatusRejected, MatchStatusExpired:
		return true
	}
	return false
}

// ValidMessageKind reports whether k is a known message kind
func ValidMessageKind(k string) bool {
	switch k {
	case MessageKindText, MessageKindImage, MessageKindLocation, MessageKindVoice, MessageKindFile:
		return true
	}
	return false
}
