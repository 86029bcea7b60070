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

// ChatService owns the chat thread aggregate: the append-only message log,
// per-user unread counters and read receipts. All mutations of thread state
// go through here so the counter invariants hold.
type ChatService struct {
	Dynamo *DynamoService
}

// lookupMatch fetches a match by ID through the matchId GSI
func (s *ChatService) lookupMatch(ctx context.Context, matchID string) (*models.Match, error) {
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

// GetThread fetches a thread by ID
func (s *ChatService) GetThread(ctx context.Context, threadID string) (*models.ChatThread, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ChatThreadsTable, utils.StringKey("threadId", threadID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread %s: %w", threadID, err)
	}
	if item == nil {
		return nil, ErrThreadNotFound
	}

	var thread models.ChatThread
	if err := attributevalue.UnmarshalMap(item, &thread); err != nil {
		return nil, fmt.Errorf("failed to parse thread %s: %w", threadID, err)
	}
	return &thread, nil
}

// GetOrCreateThread returns the match's chat thread, creating it lazily on
// first access. Only the match's two users may open it.
func (s *ChatService) GetOrCreateThread(ctx context.Context, matchID, requesterID string) (*models.ChatThread, error) {
	match, err := s.lookupMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(requesterID) {
		log.Printf("⛔ User %s tried to open chat for match %s without being a participant", requesterID, matchID)
		return nil, ErrNotAuthorized
	}

	threadID := utils.ThreadIDForMatch(matchID)
	existing, err := s.GetThread(ctx, threadID)
	if err == nil {
		return existing, nil
	}
	if err != ErrThreadNotFound {
		return nil, err
	}

	thread := models.ChatThread{
		ThreadID:     threadID,
		MatchID:      matchID,
		Participants: match.Participants(),
		UnreadCount: map[string]int{
			match.User1ID: 0,
			match.User2ID: 0,
		},
		IsActive:  true,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	err = s.Dynamo.PutItemWithCondition(ctx, models.ChatThreadsTable, thread, "attribute_not_exists(threadId)")
	if err != nil {
		if IsConditionalCheckFailed(err) {
			// Lost the create race to the other participant; their row wins
			return s.GetThread(ctx, threadID)
		}
		return nil, fmt.Errorf("failed to create thread for match %s: %w", matchID, err)
	}

	log.Printf("✅ Created chat thread %s for match %s", threadID, matchID)
	return &thread, nil
}

// ValidateMessagePayload checks the kind/payload pairing rules: a location
// payload belongs to location messages only, file metadata to file messages
// only, and text messages need content.
func ValidateMessagePayload(kind, content string, location *models.LocationPayload, file *models.FileMeta) error {
	if !models.ValidMessageKind(kind) {
		return ErrInvalidKind
	}
	if (location != nil) != (kind == models.MessageKindLocation) {
		return ErrInvalidKind
	}
	if (file != nil) != (kind == models.MessageKindFile) {
		return ErrInvalidKind
	}
	if kind == models.MessageKindText && content == "" {
		return ErrInvalidKind
	}
	return nil
}

// AddMessage appends a message to the thread's durable log and bumps the
// unread counter of every other participant. The persisted append is the
// source of truth; live delivery happens separately over the realtime channel.
func (s *ChatService) AddMessage(ctx context.Context, threadID, senderID, content, kind string, location *models.LocationPayload, file *models.FileMeta) (*models.Message, error) {
	thread, err := s.GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(senderID) {
		return nil, ErrNotAuthorized
	}
	if !thread.IsActive {
		return nil, ErrThreadInactive
	}
	if err := ValidateMessagePayload(kind, content, location, file); err != nil {
		return nil, err
	}

	message := models.Message{
		ThreadID:  threadID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		Kind:      kind,
		Location:  location,
		File:      file,
	}

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	// Single atomic update on the thread: bump lastMessageAt and increment
	// every recipient's unread counter server-side. Concurrent sends must not
	// lose increments, so this is never read-modify-write.
	updateExpression := "SET lastMessageAt = :now"
	expressionValues := map[string]types.AttributeValue{
		":now":  &types.AttributeValueMemberS{Value: message.CreatedAt},
		":one":  &types.AttributeValueMemberN{Value: "1"},
		":zero": &types.AttributeValueMemberN{Value: "0"},
	}
	expressionNames := map[string]string{}

	i := 0
	for _, participant := range thread.Participants {
		if participant == senderID {
			continue
		}
		name := fmt.Sprintf("#u%d", i)
		expressionNames[name] = participant
		updateExpression += fmt.Sprintf(", unreadCount.%s = if_not_exists(unreadCount.%s, :zero) + :one", name, name)
		i++
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.ChatThreadsTable, updateExpression, utils.StringKey("threadId", threadID), expressionValues, expressionNames)
	if err != nil {
		return nil, fmt.Errorf("failed to update thread counters: %w", err)
	}

	log.Printf("📩 Stored message %s in thread %s", message.MessageID, threadID)
	return &message, nil
}

// MessagesToMark selects the messages a markRead call should touch: not sent
// by the reader, not already read by them, and within the targeted IDs when
// given. Calling markRead twice with the same IDs therefore selects nothing
// the second time.
func MessagesToMark(messages []models.Message, userID string, messageIDs []string) []models.Message {
	var targeted map[string]struct{}
	if messageIDs != nil {
		targeted = make(map[string]struct{}, len(messageIDs))
		for _, id := range messageIDs {
			targeted[id] = struct{}{}
		}
	}

	var toMark []models.Message
	for _, msg := range messages {
		if msg.SenderID == userID || msg.ReadByUser(userID) {
			continue
		}
		if targeted != nil {
			if _, ok := targeted[msg.MessageID]; !ok {
				continue
			}
		}
		toMark = append(toMark, msg)
	}
	return toMark
}

// MessageReadState derives a message's delivery state from its readBy set:
// sent → delivered-to-some → read-by-all. read-by-all is terminal.
func MessageReadState(msg models.Message, participants []string) string {
	recipients := 0
	for _, p := range participants {
		if p != msg.SenderID {
			recipients++
		}
	}

	read := 0
	for _, p := range participants {
		if p != msg.SenderID && msg.ReadByUser(p) {
			read++
		}
	}

	switch {
	case recipients > 0 && read == recipients:
		return models.MessageStateReadByAll
	case read > 0:
		return models.MessageStateDeliveredToSome
	default:
		return models.MessageStateSent
	}
}

// MarkRead adds the user to the readBy set of the targeted messages (all
// currently-unread ones when messageIDs is nil) and always resets the user's
// unread counter to zero. The counter reflects "messages since the thread was
// last opened", so the reset is unconditional regardless of which messages
// were targeted.
func (s *ChatService) MarkRead(ctx context.Context, threadID, userID string, messageIDs []string) error {
	thread, err := s.GetThread(ctx, threadID)
	if err != nil {
		return err
	}
	if !thread.HasParticipant(userID) {
		return ErrNotAuthorized
	}

	messages, err := s.fetchAllMessages(ctx, threadID)
	if err != nil {
		return err
	}

	for _, msg := range MessagesToMark(messages, userID, messageIDs) {
		key := map[string]types.AttributeValue{
			"threadId":  &types.AttributeValueMemberS{Value: msg.ThreadID},
			"createdAt": &types.AttributeValueMemberS{Value: msg.CreatedAt},
		}

		updateExpression := "SET readBy = list_append(if_not_exists(readBy, :empty), :reader)"
		expressionValues := map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":reader": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: userID},
			}},
		}

		if _, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, key, expressionValues, nil); err != nil {
			log.Printf("❌ Failed to mark message %s as read: %v", msg.MessageID, err)
		}
	}

	// Unconditional counter reset, decoupled from per-message targeting
	updateExpression := "SET unreadCount.#u = :zero"
	expressionValues := map[string]types.AttributeValue{
		":zero": &types.AttributeValueMemberN{Value: "0"},
	}
	expressionNames := map[string]string{
		"#u": userID,
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.ChatThreadsTable, updateExpression, utils.StringKey("threadId", threadID), expressionValues, expressionNames)
	if err != nil {
		return fmt.Errorf("failed to reset unread count for %s: %w", userID, err)
	}

	log.Printf("✅ Marked messages read in thread %s for user %s", threadID, userID)
	return nil
}

// GetMessages returns up to limit messages, oldest first, so the latest
// message lands at the bottom of the conversation view.
func (s *ChatService) GetMessages(ctx context.Context, threadID, requesterID string, limit int) ([]models.Message, error) {
	thread, err := s.GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(requesterID) {
		return nil, ErrNotAuthorized
	}

	keyCondition := "#threadId = :threadId"
	expressionValues := map[string]types.AttributeValue{
		":threadId": &types.AttributeValueMemberS{Value: threadID},
	}
	expressionNames := map[string]string{
		"#threadId": "threadId",
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, int32(limit), true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	// Reverse so the latest message appears last
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// ListThreadsForUser returns the user's active threads, newest activity first
func (s *ChatService) ListThreadsForUser(ctx context.Context, userID string) ([]models.ThreadSummary, error) {
	var threads []models.ChatThread
	err := s.Dynamo.ScanWithFilter(ctx, models.ChatThreadsTable, func(item map[string]types.AttributeValue) bool {
		if !utils.ExtractBool(item, "isActive") {
			return false
		}
		for _, p := range utils.ExtractStringList(item, "participants") {
			if p == userID {
				return true
			}
		}
		return false
	}, nil, &threads)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads for %s: %w", userID, err)
	}

	summaries := make([]models.ThreadSummary, 0, len(threads))
	for _, thread := range threads {
		summary := models.ThreadSummary{
			ThreadID:      thread.ThreadID,
			MatchID:       thread.MatchID,
			Participants:  thread.Participants,
			UnreadCount:   thread.UnreadCount[userID],
			LastMessageAt: thread.LastMessageAt,
		}
		for _, p := range thread.Participants {
			if p != userID {
				summary.OtherUserID = p
			}
		}
		if last, err := s.latestMessage(ctx, thread.ThreadID); err == nil {
			summary.LastMessage = last
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessageAt > summaries[j].LastMessageAt
	})
	return summaries, nil
}

// GetChatStats aggregates thread and unread totals for a user
func (s *ChatService) GetChatStats(ctx context.Context, userID string) (*models.ChatStats, error) {
	summaries, err := s.ListThreadsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.ChatStats{
		TotalChats:  len(summaries),
		ActiveChats: len(summaries),
	}
	for _, summary := range summaries {
		stats.TotalUnread += summary.UnreadCount
	}
	return stats, nil
}

// DeactivateThread soft-closes a thread; messages stay in the log
func (s *ChatService) DeactivateThread(ctx context.Context, threadID, requesterID string) error {
	thread, err := s.GetThread(ctx, threadID)
	if err != nil {
		return err
	}
	if !thread.HasParticipant(requesterID) {
		return ErrNotAuthorized
	}

	updateExpression := "SET isActive = :false"
	expressionValues := map[string]types.AttributeValue{
		":false": &types.AttributeValueMemberBOOL{Value: false},
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.ChatThreadsTable, updateExpression, utils.StringKey("threadId", threadID), expressionValues, nil)
	if err != nil {
		return fmt.Errorf("failed to deactivate thread %s: %w", threadID, err)
	}

	log.Printf("✅ Thread %s deactivated by %s", threadID, requesterID)
	return nil
}

func (s *ChatService) fetchAllMessages(ctx context.Context, threadID string) ([]models.Message, error) {
	keyCondition := "#threadId = :threadId"
	expressionValues := map[string]types.AttributeValue{
		":threadId": &types.AttributeValueMemberS{Value: threadID},
	}
	expressionNames := map[string]string{
		"#threadId": "threadId",
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return messages, nil
}

func (s *ChatService) latestMessage(ctx context.Context, threadID string) (*models.Message, error) {
	keyCondition := "#threadId = :threadId"
	expressionValues := map[string]types.AttributeValue{
		":threadId": &types.AttributeValueMemberS{Value: threadID},
	}
	expressionNames := map[string]string{
		"#threadId": "threadId",
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, 1, true)
	if err != nil || len(items) == 0 {
		return nil, err
	}

	var message models.Message
	if err := attributevalue.UnmarshalMap(items[0], &message); err != nil {
		return nil, err
	}
	return &message, nil
}
