package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/DivyanshSaharan/ContestTrack/internal/api/middleware"
	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/repository"
)

type PreferenceHandler struct {
	notifPrefsRepo   repository.NotificationPreferenceRepository
	contestPrefsRepo repository.ContestPreferenceRepository
}

func NewPreferenceHandler(
	notifPrefsRepo repository.NotificationPreferenceRepository,
	contestPrefsRepo repository.ContestPreferenceRepository,
) *PreferenceHandler {
	return &PreferenceHandler{
		notifPrefsRepo:   notifPrefsRepo,
		contestPrefsRepo: contestPrefsRepo,
	}
}

// GetNotificationPreferences returns the caller's row, creating it with
// defaults on first access.
func (h *PreferenceHandler) GetNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	prefs, err := h.notifPrefsRepo.GetOrCreate(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

type updateNotificationPrefsRequest struct {
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
	NotificationTiming *string `json:"notification_timing,omitempty"`
	NotifyCodeforces   *bool   `json:"notify_codeforces,omitempty"`
	NotifyCodechef     *bool   `json:"notify_codechef,omitempty"`
	NotifyLeetcode     *bool   `json:"notify_leetcode,omitempty"`
}

// UpdateNotificationPreferences applies a partial update; omitted fields keep
// their current values.
func (h *PreferenceHandler) UpdateNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req updateNotificationPrefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.NotificationTiming != nil {
		switch *req.NotificationTiming {
		case models.NotificationTiming1Hour, models.NotificationTiming3Hours, models.NotificationTiming1Day:
		default:
			respondError(w, http.StatusBadRequest, "notification_timing must be one of 1hour, 3hours, 1day")
			return
		}
	}

	prefs, err := h.notifPrefsRepo.GetOrCreate(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}

	if req.EmailNotifications != nil {
		prefs.EmailNotifications = *req.EmailNotifications
	}
	if req.NotificationTiming != nil {
		prefs.NotificationTiming = *req.NotificationTiming
	}
	if req.NotifyCodeforces != nil {
		prefs.NotifyCodeforces = *req.NotifyCodeforces
	}
	if req.NotifyCodechef != nil {
		prefs.NotifyCodechef = *req.NotifyCodechef
	}
	if req.NotifyLeetcode != nil {
		prefs.NotifyLeetcode = *req.NotifyLeetcode
	}

	if err := h.notifPrefsRepo.Update(prefs); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save preferences")
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}

// GetContestPreferences returns the caller's display filters, or defaults if
// none are stored.
func (h *PreferenceHandler) GetContestPreferences(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	prefs, err := h.contestPrefsRepo.GetByUserID(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}

	if prefs == nil {
		prefs = &models.ContestPreference{
			UserID:    claims.UserID,
			MaxRating: 4000,
		}
	}

	respondJSON(w, http.StatusOK, prefs)
}

type updateContestPrefsRequest struct {
	MinRating          *int                `json:"min_rating,omitempty"`
	MaxRating          *int                `json:"max_rating,omitempty"`
	MinDurationMinutes *int                `json:"min_duration_minutes,omitempty"`
	MaxDurationMinutes *int                `json:"max_duration_minutes,omitempty"`
	PlatformTypes      *models.JSONMap     `json:"platform_types,omitempty"`
	FavoriteContests   *models.StringArray `json:"favorite_contests,omitempty"`
}

func (h *PreferenceHandler) UpdateContestPreferences(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req updateContestPrefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prefs, err := h.contestPrefsRepo.GetByUserID(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}

	created := false
	if prefs == nil {
		prefs = &models.ContestPreference{
			UserID:    claims.UserID,
			MaxRating: 4000,
		}
		created = true
	}

	if req.MinRating != nil {
		prefs.MinRating = *req.MinRating
	}
	if req.MaxRating != nil {
		prefs.MaxRating = *req.MaxRating
	}
	if req.MinDurationMinutes != nil {
		prefs.MinDurationMinutes = *req.MinDurationMinutes
	}
	if req.MaxDurationMinutes != nil {
		prefs.MaxDurationMinutes = *req.MaxDurationMinutes
	}
	if req.PlatformTypes != nil {
		prefs.PlatformTypes = *req.PlatformTypes
	}
	if req.FavoriteContests != nil {
		prefs.FavoriteContests = *req.FavoriteContests
	}

	if prefs.MinRating > prefs.MaxRating {
		respondError(w, http.StatusBadRequest, "min_rating cannot exceed max_rating")
		return
	}

	if created {
		err = h.contestPrefsRepo.Create(prefs)
	} else {
		err = h.contestPrefsRepo.Update(prefs)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save preferences")
		return
	}

	respondJSON(w, http.StatusOK, prefs)
}
