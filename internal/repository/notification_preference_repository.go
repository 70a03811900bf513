package repository

import (
	"errors"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"

	"gorm.io/gorm"
)

type NotificationPreferenceRepository interface {
	Create(prefs *models.NotificationPreference) error
	GetByUserID(userID uint) (*models.NotificationPreference, error)
	GetOrCreate(userID uint) (*models.NotificationPreference, error)
	Update(prefs *models.NotificationPreference) error
}

type notificationPreferenceRepository struct {
	db *gorm.DB
}

func NewNotificationPreferenceRepository(db *gorm.DB) NotificationPreferenceRepository {
	return &notificationPreferenceRepository{db: db}
}

func (r *notificationPreferenceRepository) Create(prefs *models.NotificationPreference) error {
	return r.db.Create(prefs).Error
}

func (r *notificationPreferenceRepository) GetByUserID(userID uint) (*models.NotificationPreference, error) {
	var prefs models.NotificationPreference
	err := r.db.Where("user_id = ?", userID).First(&prefs).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &prefs, nil
}

// GetOrCreate materializes the default row the first time a user's settings
// are touched. Absence of a row always means "all defaults enabled".
func (r *notificationPreferenceRepository) GetOrCreate(userID uint) (*models.NotificationPreference, error) {
	prefs, err := r.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if prefs != nil {
		return prefs, nil
	}

	prefs = models.DefaultNotificationPreference(userID)
	if err := r.db.Create(prefs).Error; err != nil {
		return nil, err
	}

	return prefs, nil
}

func (r *notificationPreferenceRepository) Update(prefs *models.NotificationPreference) error {
	return r.db.Save(prefs).Error
}
