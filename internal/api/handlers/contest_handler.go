package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/DivyanshSaharan/ContestTrack/internal/api/middleware"
	"github.com/DivyanshSaharan/ContestTrack/internal/cache"
	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/repository"

	"github.com/gorilla/mux"
)

const upcomingCacheKey = "contests:upcoming"

type ContestHandler struct {
	contestRepo repository.ContestRepository
	prefsRepo   repository.ContestPreferenceRepository
	cache       *cache.Cache
}

func NewContestHandler(
	contestRepo repository.ContestRepository,
	prefsRepo repository.ContestPreferenceRepository,
	contestCache *cache.Cache,
) *ContestHandler {
	return &ContestHandler{
		contestRepo: contestRepo,
		prefsRepo:   prefsRepo,
		cache:       contestCache,
	}
}

// ListContests returns contests with optional platform/type filters.
func (h *ContestHandler) ListContests(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	limit := parseIntQuery(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	platform := r.URL.Query().Get("platform")
	if platform != "" && !models.IsValidPlatform(platform) {
		respondError(w, http.StatusBadRequest, "Unknown platform")
		return
	}

	contests, err := h.contestRepo.ListByFilters(repository.ContestFilters{
		Platform:    platform,
		ContestType: r.URL.Query().Get("type"),
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch contests")
		return
	}

	total, _ := h.contestRepo.Count()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"contests": contests,
		"pagination": map[string]interface{}{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// UpcomingContests returns contests that have not started yet, soonest
// first. The result is served from the Redis cache when available.
func (h *ContestHandler) UpcomingContests(w http.ResponseWriter, r *http.Request) {
	var cached []*models.Contest
	if h.cache.GetJSON(r.Context(), upcomingCacheKey, &cached) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"contests": cached})
		return
	}

	contests, err := h.contestRepo.GetUpcoming()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch upcoming contests")
		return
	}

	h.cache.SetJSON(r.Context(), upcomingCacheKey, contests)

	respondJSON(w, http.StatusOK, map[string]interface{}{"contests": contests})
}

// PastContests returns finished contests, most recent first.
func (h *ContestHandler) PastContests(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	limit := parseIntQuery(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	contests, err := h.contestRepo.GetPast(limit, (page-1)*limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch past contests")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"contests": contests,
		"page":     page,
		"limit":    limit,
	})
}

// GetContest returns one contest by id.
func (h *ContestHandler) GetContest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid contest ID")
		return
	}

	contest, err := h.contestRepo.GetByID(uint(id))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch contest")
		return
	}

	if contest == nil {
		respondError(w, http.StatusNotFound, "Contest not found")
		return
	}

	respondJSON(w, http.StatusOK, contest)
}

// RecommendedContests returns upcoming contests narrowed by the caller's
// contest preferences. Without a stored preference row it matches Upcoming.
func (h *ContestHandler) RecommendedContests(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	contests, err := h.contestRepo.GetUpcoming()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch upcoming contests")
		return
	}

	prefs, err := h.prefsRepo.GetByUserID(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}

	if prefs != nil {
		filtered := make([]*models.Contest, 0, len(contests))
		for _, contest := range contests {
			if prefs.Matches(contest) {
				filtered = append(filtered, contest)
			}
		}
		contests = filtered
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"contests": contests})
}

// Shared response helpers.

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}

	return parsed
}
