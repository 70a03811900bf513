package repository

import (
	"errors"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"

	"gorm.io/gorm"
)

type ContestReminderRepository interface {
	Create(reminder *models.ContestReminder) error
	GetByUserAndContest(userID, contestID uint) (*models.ContestReminder, error)
	GetByUser(userID uint) ([]*models.ContestReminder, error)
	SetReminded(id uint, reminded bool) error
}

type contestReminderRepository struct {
	db *gorm.DB
}

func NewContestReminderRepository(db *gorm.DB) ContestReminderRepository {
	return &contestReminderRepository{db: db}
}

func (r *contestReminderRepository) Create(reminder *models.ContestReminder) error {
	return r.db.Create(reminder).Error
}

func (r *contestReminderRepository) GetByUserAndContest(userID, contestID uint) (*models.ContestReminder, error) {
	var reminder models.ContestReminder

	err := r.db.
		Where("user_id = ? AND contest_id = ?", userID, contestID).
		First(&reminder).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &reminder, nil
}

func (r *contestReminderRepository) GetByUser(userID uint) ([]*models.ContestReminder, error) {
	var reminders []*models.ContestReminder

	err := r.db.
		Preload("Contest").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reminders).Error

	return reminders, err
}

func (r *contestReminderRepository) SetReminded(id uint, reminded bool) error {
	return r.db.
		Model(&models.ContestReminder{}).
		Where("id = ?", id).
		Update("reminded", reminded).Error
}
