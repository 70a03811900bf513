package handlers

import (
	"net/http"
	"strconv"

	"github.com/DivyanshSaharan/ContestTrack/internal/api/middleware"
	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/repository"

	"github.com/gorilla/mux"
)

type ReminderHandler struct {
	reminderRepo repository.ContestReminderRepository
	contestRepo  repository.ContestRepository
}

func NewReminderHandler(
	reminderRepo repository.ContestReminderRepository,
	contestRepo repository.ContestRepository,
) *ReminderHandler {
	return &ReminderHandler{
		reminderRepo: reminderRepo,
		contestRepo:  contestRepo,
	}
}

// CreateReminder opts the caller in for a contest. The row starts pending
// (reminded=false); the notification scheduler flips it when the email goes
// out. Opting in twice is a no-op.
func (h *ReminderHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	contestID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid contest ID")
		return
	}

	contest, err := h.contestRepo.GetByID(uint(contestID))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch contest")
		return
	}

	if contest == nil {
		respondError(w, http.StatusNotFound, "Contest not found")
		return
	}

	if contest.IsFinished() {
		respondError(w, http.StatusConflict, "Contest has already finished")
		return
	}

	existing, err := h.reminderRepo.GetByUserAndContest(claims.UserID, contest.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check existing reminder")
		return
	}

	if existing != nil {
		respondJSON(w, http.StatusOK, existing)
		return
	}

	reminder := &models.ContestReminder{
		UserID:    claims.UserID,
		ContestID: contest.ID,
		Reminded:  false,
	}

	if err := h.reminderRepo.Create(reminder); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create reminder")
		return
	}

	respondJSON(w, http.StatusCreated, reminder)
}

// ListReminders returns the caller's reminders, newest first.
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	reminders, err := h.reminderRepo.GetByUser(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch reminders")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"reminders": reminders})
}
