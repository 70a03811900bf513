package notification

import (
	"fmt"
	"log"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/repository"
)

// timingWindow is the half-open interval (lower, upper] of minutes before
// contest start in which a reminder fires. The windows are 10 minutes wide so
// a 5-minute tick catches each contest exactly once; re-ticking inside the
// window is a no-op because the reminder row is already marked.
type timingWindow struct {
	lower time.Duration
	upper time.Duration
}

var timingWindows = map[string]timingWindow{
	models.NotificationTiming1Hour:  {lower: 50 * time.Minute, upper: 60 * time.Minute},
	models.NotificationTiming3Hours: {lower: 170 * time.Minute, upper: 180 * time.Minute},
	models.NotificationTiming1Day:   {lower: 1380 * time.Minute, upper: 1440 * time.Minute},
}

func (w timingWindow) contains(untilStart time.Duration) bool {
	return untilStart > w.lower && untilStart <= w.upper
}

// Service scans upcoming contests against every user's preferences on each
// tick and dispatches reminder emails through the injected Mailer.
type Service struct {
	contestRepo  repository.ContestRepository
	userRepo     repository.UserRepository
	prefsRepo    repository.NotificationPreferenceRepository
	reminderRepo repository.ContestReminderRepository
	mailer       Mailer
	now          func() time.Time
}

func NewService(
	contestRepo repository.ContestRepository,
	userRepo repository.UserRepository,
	prefsRepo repository.NotificationPreferenceRepository,
	reminderRepo repository.ContestReminderRepository,
	mailer Mailer,
) *Service {
	return &Service{
		contestRepo:  contestRepo,
		userRepo:     userRepo,
		prefsRepo:    prefsRepo,
		reminderRepo: reminderRepo,
		mailer:       mailer,
		now:          time.Now,
	}
}

// Tick processes one scheduler pass. Per-user failures are logged and do not
// block the remaining users or contests; the worst case of a persistently
// failing pass is "no reminders sent", which self-heals on a later tick.
func (s *Service) Tick() error {
	contests, err := s.contestRepo.GetUpcoming()
	if err != nil {
		return fmt.Errorf("failed to load upcoming contests: %w", err)
	}

	if len(contests) == 0 {
		return nil
	}

	users, err := s.userRepo.List(0, 10000)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	sent := 0
	failed := 0

	for _, contest := range contests {
		untilStart := contest.StartTime.Sub(s.now())
		if untilStart <= 0 {
			continue
		}

		for _, user := range users {
			if !user.IsActive {
				continue
			}

			ok, err := s.notifyUser(user, contest, untilStart)
			if err != nil {
				log.Printf("Failed to notify user %d for contest %d: %v", user.ID, contest.ID, err)
				failed++
				continue
			}
			if ok {
				sent++
			}
		}
	}

	if sent > 0 || failed > 0 {
		log.Printf("Notification tick: sent %d, failed %d", sent, failed)
	}

	return nil
}

// notifyUser decides whether this (user, contest) pair qualifies right now
// and, if so, dispatches the email. The reminder row is advanced to reminded
// only after the mailer confirms delivery, so a transient dispatch failure
// leaves the state eligible for retry on the next qualifying tick.
func (s *Service) notifyUser(user *models.User, contest *models.Contest, untilStart time.Duration) (bool, error) {
	prefs, err := s.prefsRepo.GetByUserID(user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load preferences: %w", err)
	}

	// A user who never touched their settings gets the defaults.
	if prefs == nil {
		prefs = models.DefaultNotificationPreference(user.ID)
	}

	if !s.qualifies(prefs, contest, untilStart) {
		return false, nil
	}

	reminder, err := s.reminderRepo.GetByUserAndContest(user.ID, contest.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load reminder: %w", err)
	}

	if reminder != nil && reminder.Reminded {
		return false, nil
	}

	if err := s.mailer.Send(user, contest, prefs); err != nil {
		return false, fmt.Errorf("dispatch failed: %w", err)
	}

	if reminder == nil {
		created := &models.ContestReminder{
			UserID:    user.ID,
			ContestID: contest.ID,
			Reminded:  true,
		}
		if err := s.reminderRepo.Create(created); err != nil {
			return true, fmt.Errorf("email sent but reminder not recorded: %w", err)
		}
		return true, nil
	}

	if err := s.reminderRepo.SetReminded(reminder.ID, true); err != nil {
		return true, fmt.Errorf("email sent but reminder not updated: %w", err)
	}

	return true, nil
}

func (s *Service) qualifies(prefs *models.NotificationPreference, contest *models.Contest, untilStart time.Duration) bool {
	if !prefs.EmailNotifications {
		return false
	}

	if !prefs.PlatformEnabled(contest.Platform) {
		return false
	}

	window, ok := timingWindows[prefs.Timing()]
	if !ok {
		window = timingWindows[models.NotificationTiming1Hour]
	}

	return window.contains(untilStart)
}
