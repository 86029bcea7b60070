package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"safariconnect_server/models"
	"safariconnect_server/services"

	"github.com/gorilla/mux"
)

// MatchController struct
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the match controller
func NewMatchController(service *services.MatchService) *MatchController {
	return &MatchController{MatchService: service}
}

// HandleGetSuggestions - ranked companion suggestions for a user
func (c *MatchController) HandleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	suggestions, err := c.MatchService.GetSuggestions(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Error building suggestions: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

// HandleCreateMatch - creates a pending match for a user pair
func (c *MatchController) HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		User1       string                  `json:"user1"`
		User2       string                  `json:"user2"`
		Destination string                  `json:"destination"`
		Overlapping models.OverlappingDates `json:"overlappingDates"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.User1 == "" || request.User2 == "" {
		http.Error(w, `{"error": "Missing required fields: user1, user2"}`, http.StatusBadRequest)
		return
	}

	match, err := c.MatchService.CreateMatch(r.Context(), request.User1, request.User2, request.Destination, request.Overlapping)
	if err != nil {
		log.Printf("❌ Error creating match: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, match)
}

// HandleListMatches - all matches for a user
func (c *MatchController) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	matches, err := c.MatchService.ListMatchesForUser(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Error listing matches: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matches)
}

// HandleUpdateStatus - transitions a match's status
func (c *MatchController) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	var request struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	match, err := c.MatchService.UpdateMatchStatus(r.Context(), matchID, request.Status)
	if err != nil {
		log.Printf("❌ Error updating match %s: %v", matchID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}

// HandleDeleteMatch - deletes a match and cascades to its chat data
func (c *MatchController) HandleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	if err := c.MatchService.DeleteMatch(r.Context(), matchID); err != nil {
		log.Printf("❌ Error deleting match %s: %v", matchID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Match deleted"})
}
