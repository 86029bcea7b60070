package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"safariconnect_server/models"
	"safariconnect_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"
)

// UserProfileService handles user profile CRUD
type UserProfileService struct {
	Dynamo *DynamoService
}

// CreateUserProfile stores a new profile, assigning an ID when absent
func (s *UserProfileService) CreateUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" {
		profile.UserID = uuid.NewString()
	}
	if profile.TravelStyle == "" {
		profile.TravelStyle = models.TravelStyleMixed
	}
	if profile.RelationshipStatus == "" {
		profile.RelationshipStatus = models.RelationshipSingle
	}
	profile.CreatedAt = time.Now().Format(time.RFC3339)

	err := s.Dynamo.PutItemWithCondition(ctx, models.UserProfilesTable, profile, "attribute_not_exists(userId)")
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return nil, fmt.Errorf("profile already exists for user %s", profile.UserID)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	log.Printf("✅ Created profile for user %s", profile.UserID)
	return &profile, nil
}

// GetUserProfile retrieves a profile by user ID
func (s *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
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

// UpdateUserProfile replaces a profile. Only the owner may update it; the
// controller passes the authenticated identity as requesterID.
func (s *UserProfileService) UpdateUserProfile(ctx context.Context, requesterID string, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID != requesterID {
		return nil, ErrNotAuthorized
	}

	existing, err := s.GetUserProfile(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	profile.CreatedAt = existing.CreatedAt

	if err := s.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	log.Printf("✅ Updated profile for user %s", profile.UserID)
	return &profile, nil
}

// DeleteUserProfile removes the profile row itself. Dependent matches and
// chats are cleaned up by MatchService.DeleteMatchesForUser, which the
// controller runs first.
func (s *UserProfileService) DeleteUserProfile(ctx context.Context, userID string) error {
	if _, err := s.GetUserProfile(ctx, userID); err != nil {
		return err
	}

	if err := s.Dynamo.DeleteItem(ctx, models.UserProfilesTable, utils.StringKey("userId", userID)); err != nil {
		return fmt.Errorf("failed to delete profile for %s: %w", userID, err)
	}

	log.Printf("✅ Deleted profile for user %s", userID)
	return nil
}
