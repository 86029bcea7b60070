package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"safariconnect_server/models"
	"safariconnect_server/services"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleGetOrCreateThread - returns the match's thread, creating it lazily
func (c *ChatController) HandleGetOrCreateThread(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: matchId, userId"}`, http.StatusBadRequest)
		return
	}

	thread, err := c.ChatService.GetOrCreateThread(r.Context(), request.MatchID, request.UserID)
	if err != nil {
		log.Printf("❌ Error opening thread for match %s: %v", request.MatchID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, thread)
}

// HandleGetMessages - fetch messages for a thread, oldest first
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	threadID := r.URL.Query().Get("threadId")
	userID := r.URL.Query().Get("userId")
	limitStr := r.URL.Query().Get("limit")

	if threadID == "" || userID == "" {
		http.Error(w, `{"error": "threadId and userId are required"}`, http.StatusBadRequest)
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50 // Default to 50 messages
	}

	messages, err := c.ChatService.GetMessages(r.Context(), threadID, userID, limit)
	if err != nil {
		log.Printf("❌ Error fetching messages: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// HandleSendMessage - REST path for appending a message to the durable log
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ThreadID string                  `json:"threadId"`
		SenderID string                  `json:"senderId"`
		Content  string                  `json:"content"`
		Kind     string                  `json:"kind"`
		Location *models.LocationPayload `json:"location,omitempty"`
		File     *models.FileMeta        `json:"file,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.ThreadID == "" || request.SenderID == "" {
		http.Error(w, `{"error": "Missing required fields: threadId, senderId"}`, http.StatusBadRequest)
		return
	}
	if request.Kind == "" {
		request.Kind = models.MessageKindText
	}

	message, err := c.ChatService.AddMessage(r.Context(), request.ThreadID, request.SenderID, request.Content, request.Kind, request.Location, request.File)
	if err != nil {
		log.Printf("❌ Failed to send message: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, message)
}

// HandleMarkRead - marks messages read and resets the user's unread counter
func (c *ChatController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ThreadID   string   `json:"threadId"`
		UserID     string   `json:"userId"`
		MessageIDs []string `json:"messageIds,omitempty"` // nil means all unread
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.ThreadID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: threadId, userId"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.MarkRead(r.Context(), request.ThreadID, request.UserID, request.MessageIDs); err != nil {
		log.Printf("❌ Failed to mark messages as read: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Messages marked as read"})
}

// HandleListThreads - active threads for a user, newest activity first
func (c *ChatController) HandleListThreads(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	threads, err := c.ChatService.ListThreadsForUser(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Error listing threads: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, threads)
}

// HandleGetStats - chat totals for a user
func (c *ChatController) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	stats, err := c.ChatService.GetChatStats(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Error fetching chat stats: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleDeactivateThread - soft-closes a thread
func (c *ChatController) HandleDeactivateThread(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ThreadID string `json:"threadId"`
		UserID   string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.DeactivateThread(r.Context(), request.ThreadID, request.UserID); err != nil {
		log.Printf("❌ Failed to deactivate thread %s: %v", request.ThreadID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Thread deactivated"})
}

// HandleAttachmentUploadURL - presigned S3 URL for a chat attachment
func (c *ChatController) HandleAttachmentUploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		http.Error(w, `{"error": "fileName and fileType are required"}`, http.StatusBadRequest)
		return
	}

	uploadURL, key, err := services.GenerateChatUploadURL(fileName, fileType)
	if err != nil {
		log.Printf("❌ Failed to presign attachment upload: %v", err)
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"uploadUrl": uploadURL, "key": key})
}
