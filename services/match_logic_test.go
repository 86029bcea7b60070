package services

import (
	"fmt"
	"testing"

	"safariconnect_server/models"
)

func suggestionCandidate(id string, start, end string) models.UserProfile {
	return models.UserProfile{
		UserID:      id,
		Age:         30,
		TravelStyle: models.TravelStyleMixed,
		TravelPlans: []models.TravelPlan{planFor("Maasai Mara", start, end)},
	}
}

func TestRankSuggestionsGatesOnDateOverlap(t *testing.T) {
	current := suggestionCandidate("me", "2025-07-01", "2025-07-10")
	candidates := []models.UserProfile{
		suggestionCandidate("overlapping", "2025-07-05", "2025-07-15"),
		suggestionCandidate("elsewhere", "2025-09-01", "2025-09-10"), // same destination, no overlap
	}

	suggestions := RankSuggestions(current, candidates)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].UserID != "overlapping" {
		t.Fatalf("expected overlapping candidate, got %s", suggestions[0].UserID)
	}
}

func TestRankSuggestionsSortedAndCapped(t *testing.T) {
	current := suggestionCandidate("me", "2025-07-01", "2025-07-10")
	current.Interests = []string{"safari", "photography"}

	var candidates []models.UserProfile
	for i := 0; i < MaxSuggestions+5; i++ {
		candidate := suggestionCandidate(fmt.Sprintf("user-%d", i), "2025-07-01", "2025-07-10")
		if i%2 == 0 {
			candidate.Interests = []string{"safari", "photography"} // better interest score
		}
		candidates = append(candidates, candidate)
	}

	suggestions := RankSuggestions(current, candidates)
	if len(suggestions) != MaxSuggestions {
		t.Fatalf("expected cap at %d, got %d", MaxSuggestions, len(suggestions))
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].CompatibilityScore > suggestions[i-1].CompatibilityScore {
			t.Fatalf("suggestions not sorted descending at index %d", i)
		}
	}
}

func TestRankSuggestionsEmptyCandidates(t *testing.T) {
	current := suggestionCandidate("me", "2025-07-01", "2025-07-10")

	suggestions := RankSuggestions(current, nil)
	if len(suggestions) != 0 {
		t.Fatalf("expected empty result, got %d", len(suggestions))
	}
}

func TestRankSuggestionsCandidateWithoutPlansExcluded(t *testing.T) {
	current := suggestionCandidate("me", "2025-07-01", "2025-07-10")
	candidates := []models.UserProfile{{UserID: "no-plans", Age: 30, Interests: []string{"safari"}}}

	if suggestions := RankSuggestions(current, candidates); len(suggestions) != 0 {
		t.Fatalf("candidate without travel plans must be excluded, got %d", len(suggestions))
	}
}

func TestMatchParticipantHelpers(t *testing.T) {
	match := models.Match{User1ID: "alice", User2ID: "bob"}

	if !match.HasParticipant("alice") || !match.HasParticipant("bob") {
		t.Fatal("both users should be participants")
	}
	if match.HasParticipant("carol") {
		t.Fatal("outsider must not be a participant")
	}

	participants := match.Participants()
	if len(participants) != 2 || participants[0] != "alice" || participants[1] != "bob" {
		t.Fatalf("unexpected participants: %v", participants)
	}
}

func TestValidMatchStatus(t *testing.T) {
	for _, status := range []string{
		models.MatchStatusPending, models.MatchStatusAccepted,
		models.MatchStatusRejected, models.MatchStatusExpired,
	} {
		if !models.ValidMatchStatus(status) {
			t.Errorf("%s should be valid", status)
		}
	}
	if models.ValidMatchStatus("ghosted") {
		t.Error("unknown status should be invalid")
	}
}
