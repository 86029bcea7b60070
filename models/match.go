package models

// MatchBreakdown holds the six weighted sub-scores behind a compatibility score
type MatchBreakdown struct {
	DateOverlapScore        int `dynamodbav:"dateOverlapScore" json:"dateOverlapScore"`
	DestinationScore        int `dynamodbav:"destinationScore" json:"destinationScore"`
	InterestScore           int `dynamodbav:"interestScore" json:"interestScore"`
	TravelStyleScore        int `dynamodbav:"travelStyleScore" json:"travelStyleScore"`
	AgeScore                int `dynamodbav:"ageScore" json:"ageScore"`
	LanguageScore           int `dynamodbav:"languageScore" json:"languageScore"`
}

// MatchScore is the scorer's result: weighted total plus the per-factor breakdown
type MatchScore struct {
	Total     int            `json:"total"`
	Breakdown MatchBreakdown `json:"breakdown"`
}

// OverlappingDates captures the shared travel window behind a match
type OverlappingDates struct {
	StartDate   string `dynamodbav:"startDate,omitempty" json:"startDate,omitempty"` // RFC3339 date
	EndDate     string `dynamodbav:"endDate,omitempty" json:"endDate,omitempty"`     // RFC3339 date
	OverlapDays int    `dynamodbav:"overlapDays,omitempty" json:"overlapDays,omitempty"`
}

// Match represents a scored pairing of two user profiles
type Match struct {
	PairKey          string           `dynamodbav:"pairKey" json:"pairKey"`   // ✅ Partition Key: sorted "lo#hi" pair, enforces one match per pair
	MatchID          string           `dynamodbav:"matchId" json:"matchId"`   // Unique matchId, queried via GSI
	User1ID          string           `dynamodbav:"user1Id" json:"user1Id"`
	User2ID          string           `dynamodbav:"user2Id" json:"user2Id"`
	Destination      string           `dynamodbav:"destination,omitempty" json:"destination,omitempty"`
	CompatibilityScore int            `dynamodbav:"compatibilityScore" json:"compatibilityScore"` // 0-100
	MatchDetails     MatchBreakdown   `dynamodbav:"matchDetails" json:"matchDetails"`
	OverlappingDates OverlappingDates `dynamodbav:"overlappingDates,omitempty" json:"overlappingDates,omitempty"`
	Status           string           `dynamodbav:"status" json:"status"` // pending, accepted, rejected, expired
	CreatedAt        string           `dynamodbav:"createdAt" json:"createdAt"`
	LastUpdated      string           `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// Participants returns both user IDs of the match
func (m *Match) Participants() []string {
	return []string{m.User1ID, m.User2ID}
}

// HasParticipant reports whether userID is one of the match's two users
func (m *Match) HasParticipant(userID string) bool {
	return userID == m.User1ID || userID == m.User2ID
}

// MatchSuggestion is a scored candidate returned by the suggestions endpoint
type MatchSuggestion struct {
	UserID             string         `json:"userId"`
	Name               string         `json:"name,omitempty"`
	Age                int            `json:"age,omitempty"`
	Gender             string         `json:"gender,omitempty"`
	TravelStyle        string         `json:"travelStyle,omitempty"`
	Interests          []string       `json:"interests,omitempty"`
	Languages          []string       `json:"languages,omitempty"`
	TravelPlans        []TravelPlan   `json:"travelPlans,omitempty"`
	ProfileImage       string         `json:"profileImage,omitempty"`
	CompatibilityScore int            `json:"compatibilityScore"`
	MatchDetails       MatchBreakdown `json:"matchDetails"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// MatchIDIndex is the GSI used to look a match up by its matchId
const MatchIDIndex = "matchId-index"
