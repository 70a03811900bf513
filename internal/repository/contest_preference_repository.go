package repository

import (
	"errors"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"

	"gorm.io/gorm"
)

type ContestPreferenceRepository interface {
	Create(prefs *models.ContestPreference) error
	GetByUserID(userID uint) (*models.ContestPreference, error)
	Update(prefs *models.ContestPreference) error
}

type contestPreferenceRepository struct {
	db *gorm.DB
}

func NewContestPreferenceRepository(db *gorm.DB) ContestPreferenceRepository {
	return &contestPreferenceRepository{db: db}
}

func (r *contestPreferenceRepository) Create(prefs *models.ContestPreference) error {
	return r.db.Create(prefs).Error
}

func (r *contestPreferenceRepository) GetByUserID(userID uint) (*models.ContestPreference, error) {
	var prefs models.ContestPreference
	err := r.db.Where("user_id = ?", userID).First(&prefs).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &prefs, nil
}

func (r *contestPreferenceRepository) Update(prefs *models.ContestPreference) error {
	return r.db.Save(prefs).Error
}
