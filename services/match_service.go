package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"safariconnect_server/models"
	"safariconnect_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// MaxSuggestions caps a suggestion list to the best-scoring candidates
const MaxSuggestions = 20

// MatchService handles suggestions, match creation and the match lifecycle
type MatchService struct {
	Dynamo *DynamoService
}

// GetUserProfile retrieves a user profile by ID
func (s *MatchService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := s.Dynamo.GetItem(ctx, models.UserProfilesTable, utils.StringKey("userId", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", userID, err)
	}
	if item == nil {
		return nil, ErrUserNotFound
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile for %s: %w", userID, err)
	}
	return &profile, nil
}

// GetSuggestions ranks compatible companions for a user. Candidates without a
// real date overlap are dropped regardless of how the other factors score.
func (s *MatchService) GetSuggestions(ctx context.Context, userID string) ([]models.MatchSuggestion, error) {
	log.Printf("🔍 Building suggestions for user: %s", userID)

	currentUser, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !currentUser.LookingForCompanion {
		log.Printf("ℹ️ User %s is not looking for a companion, returning empty suggestions", userID)
		return []models.MatchSuggestion{}, nil
	}

	// Candidates: everyone else who is single and opted in
	var candidates []models.UserProfile
	err = s.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, func(item map[string]types.AttributeValue) bool {
		if utils.ExtractString(item, "userId") == userID {
			return false
		}
		if !utils.ExtractBool(item, "lookingForCompanion") {
			return false
		}
		return utils.ExtractString(item, "relationshipStatus") == models.RelationshipSingle
	}, nil, &candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate profiles: %w", err)
	}

	suggestions := RankSuggestions(*currentUser, candidates)
	log.Printf("✅ Returning %d suggestions for user %s", len(suggestions), userID)
	return suggestions, nil
}

// RankSuggestions scores candidates against the current user, drops those
// without any date overlap, and returns the top scorers in descending order.
func RankSuggestions(currentUser models.UserProfile, candidates []models.UserProfile) []models.MatchSuggestion {
	suggestions := make([]models.MatchSuggestion, 0, len(candidates))
	for _, candidate := range candidates {
		score := CalculateMatchScore(currentUser, candidate)

		// Date overlap is a hard gate for suggestions
		if score.Breakdown.DateOverlapScore == 0 {
			continue
		}

		suggestions = append(suggestions, models.MatchSuggestion{
			UserID:             candidate.UserID,
			Name:               candidate.Name,
			Age:                candidate.Age,
			Gender:             candidate.Gender,
			TravelStyle:        candidate.TravelStyle,
			Interests:          candidate.Interests,
			Languages:          candidate.Languages,
			TravelPlans:        candidate.TravelPlans,
			ProfileImage:       candidate.ProfileImage,
			CompatibilityScore: score.Total,
			MatchDetails:       score.Breakdown,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].CompatibilityScore > suggestions[j].CompatibilityScore
	})

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

// CreateMatch creates a pending match for an unordered user pair. A second
// match for the same pair, in either order, fails with ErrMatchExists.
func (s *MatchService) CreateMatch(ctx context.Context, user1, user2, destination string, overlap models.OverlappingDates) (*models.Match, error) {
	if user1 == user2 {
		return nil, ErrSameUser
	}

	profile1, err := s.GetUserProfile(ctx, user1)
	if err != nil {
		return nil, err
	}
	profile2, err := s.GetUserProfile(ctx, user2)
	if err != nil {
		return nil, err
	}

	score := CalculateMatchScore(*profile1, *profile2)
	now := time.Now().Format(time.RFC3339)

	match := models.Match{
		PairKey:            utils.PairKey(user1, user2),
		MatchID:            uuid.NewString(),
		User1ID:            user1,
		User2ID:            user2,
		Destination:        destination,
		CompatibilityScore: score.Total,
		MatchDetails:       score.Breakdown,
		OverlappingDates:   overlap,
		Status:             models.MatchStatusPending,
		CreatedAt:          now,
		LastUpdated:        now,
	}

	err = s.Dynamo.PutItemWithCondition(ctx, models.MatchesTable, match, "attribute_not_exists(pairKey)")
	if err != nil {
		if IsConditionalCheckFailed(err) {
			log.Printf("⚠️ Match already exists for pair %s", match.PairKey)
			return nil, ErrMatchExists
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Printf("✅ Created match %s for pair %s (score %d)", match.MatchID, match.PairKey, score.Total)
	return &match, nil
}

// GetMatchByID looks a match up through the matchId GSI
func (s *MatchService) GetMatchByID(ctx context.Context, matchID string) (*models.Match, error) {
	keyCondition := "#matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionNames := map[string]string{
		"#matchId": "matchId",
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.MatchIDIndex, keyCondition, expressionValues, expressionNames, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	if len(items) == 0 {
		return nil, ErrMatchNotFound
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(items[0], &match); err != nil {
		return nil, fmt.Errorf("failed to parse match %s: %w", matchID, err)
	}
	return &match, nil
}

// ListMatchesForUser returns every match the user participates in
func (s *MatchService) ListMatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	err := s.Dynamo.ScanWithFilter(ctx, models.MatchesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "user1Id") == userID || utils.ExtractString(item, "user2Id") == userID
	}, nil, &matches)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", userID, err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt > matches[j].CreatedAt
	})
	return matches, nil
}

// UpdateMatchStatus transitions a match to a new status
func (s *MatchService) UpdateMatchStatus(ctx context.Context, matchID, status string) (*models.Match, error) {
	if !models.ValidMatchStatus(status) {
		return nil, ErrInvalidStatus
	}

	match, err := s.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	updateExpression := "SET #status = :status, lastUpdated = :now"
	expressionValues := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: status},
		":now":    &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
	}
	expressionNames := map[string]string{
		"#status": "status", // status is a DynamoDB reserved word
	}

	attrs, err := s.Dynamo.UpdateItem(ctx, models.MatchesTable, updateExpression, utils.StringKey("pairKey", match.PairKey), expressionValues, expressionNames)
	if err != nil {
		return nil, fmt.Errorf("failed to update match %s: %w", matchID, err)
	}

	var updated models.Match
	if err := attributevalue.UnmarshalMap(attrs, &updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated match %s: %w", matchID, err)
	}

	log.Printf("✅ Match %s moved to status %s", matchID, status)
	return &updated, nil
}

// DeleteMatch removes a match and cascades to its chat thread and messages.
// Ordered leaf-first so a partial failure leaves no orphaned rows behind a
// deleted match: messages, then thread, then match.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID string) error {
	match, err := s.GetMatchByID(ctx, matchID)
	if err != nil {
		return err
	}

	if err := s.deleteThreadCascade(ctx, matchID); err != nil {
		return err
	}

	if err := s.Dynamo.DeleteItem(ctx, models.MatchesTable, utils.StringKey("pairKey", match.PairKey)); err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}

	log.Printf("✅ Deleted match %s and its chat data", matchID)
	return nil
}

// DeleteMatchesForUser is the cleanup routine behind user deletion: every match
// involving the user goes, along with its thread and messages.
func (s *MatchService) DeleteMatchesForUser(ctx context.Context, userID string) error {
	matches, err := s.ListMatchesForUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := s.DeleteMatch(ctx, match.MatchID); err != nil {
			return fmt.Errorf("cascade failed at match %s: %w", match.MatchID, err)
		}
	}

	log.Printf("✅ Removed %d matches for deleted user %s", len(matches), userID)
	return nil
}

// deleteThreadCascade deletes the match's chat thread and all its messages,
// if a thread exists.
func (s *MatchService) deleteThreadCascade(ctx context.Context, matchID string) error {
	threadID := utils.ThreadIDForMatch(matchID)

	item, err := s.Dynamo.GetItem(ctx, models.ChatThreadsTable, utils.StringKey("threadId", threadID))
	if err != nil {
		return fmt.Errorf("failed to look up thread for match %s: %w", matchID, err)
	}
	if item == nil {
		return nil // No thread was ever created for this match
	}

	// Collect and batch-delete the thread's messages
	msgCondition := "#threadId = :threadId"
	msgValues := map[string]types.AttributeValue{
		":threadId": &types.AttributeValueMemberS{Value: threadID},
	}
	msgNames := map[string]string{
		"#threadId": "threadId",
	}

	messages, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, msgCondition, msgValues, msgNames, 1000)
	if err != nil {
		return fmt.Errorf("failed to fetch messages for thread %s: %w", threadID, err)
	}

	var deletes []types.WriteRequest
	for _, msg := range messages {
		deletes = append(deletes, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"threadId":  msg["threadId"],
					"createdAt": msg["createdAt"],
				},
			},
		})
	}
	if len(deletes) > 0 {
		if err := s.Dynamo.BatchWriteItems(ctx, models.MessagesTable, deletes); err != nil {
			return fmt.Errorf("failed to delete messages for thread %s: %w", threadID, err)
		}
	}

	if err := s.Dynamo.DeleteItem(ctx, models.ChatThreadsTable, utils.StringKey("threadId", threadID)); err != nil {
		return fmt.Errorf("failed to delete thread %s: %w", threadID, err)
	}

	return nil
}
