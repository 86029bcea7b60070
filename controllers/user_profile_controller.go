package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"safariconnect_server/models"
	"safariconnect_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController struct
type UserProfileController struct {
	ProfileService *services.UserProfileService
	MatchService   *services.MatchService
}

// NewUserProfileController initializes the user profile controller
func NewUserProfileController(profiles *services.UserProfileService, matches *services.MatchService) *UserProfileController {
	return &UserProfileController{ProfileService: profiles, MatchService: matches}
}

// HandleCreateProfile - creates a profile at signup
func (c *UserProfileController) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	created, err := c.ProfileService.CreateUserProfile(r.Context(), profile)
	if err != nil {
		log.Printf("❌ Failed to create profile: %v", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleGetProfile - fetches a profile by ID
func (c *UserProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.ProfileService.GetUserProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleUpdateProfile - owner-only profile update. The requester identity
// comes from the identity provider header and is trusted as given.
func (c *UserProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	profile.UserID = userID

	requesterID := r.Header.Get("X-User-Id")
	if requesterID == "" {
		requesterID = userID
	}

	updated, err := c.ProfileService.UpdateUserProfile(r.Context(), requesterID, profile)
	if err != nil {
		log.Printf("❌ Failed to update profile %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDeleteProfile - deletes a user and cascades through their matches,
// threads and messages before removing the profile row.
func (c *UserProfileController) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := c.MatchService.DeleteMatchesForUser(r.Context(), userID); err != nil {
		log.Printf("❌ Cascade cleanup failed for user %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	if err := c.ProfileService.DeleteUserProfile(r.Context(), userID); err != nil {
		log.Printf("❌ Failed to delete profile %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "User deleted"})
}

// HandlePhotoUploadURL - presigned S3 URL for a profile photo
func (c *UserProfileController) HandlePhotoUploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		http.Error(w, `{"error": "fileName and fileType are required"}`, http.StatusBadRequest)
		return
	}

	uploadURL, key, err := services.GenerateProfilePhotoUploadURL(fileName, fileType)
	if err != nil {
		log.Printf("❌ Failed to presign photo upload: %v", err)
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"uploadUrl": uploadURL, "key": key})
}
