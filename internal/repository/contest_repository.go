package repository

import (
	"errors"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ContestRepository interface {
	Create(contest *models.Contest) error
	GetByID(id uint) (*models.Contest, error)
	GetAll() ([]*models.Contest, error)
	GetUpcoming() ([]*models.Contest, error)
	GetPast(limit, offset int) ([]*models.Contest, error)
	ListByFilters(filters ContestFilters) ([]*models.Contest, error)
	Count() (int64, error)
}

type ContestFilters struct {
	Platform    string
	ContestType string
	Limit       int
	Offset      int
}

type contestRepository struct {
	db *gorm.DB
}

func NewContestRepository(db *gorm.DB) ContestRepository {
	return &contestRepository{db: db}
}

func (r *contestRepository) Create(contest *models.Contest) error {
	return r.db.Create(contest).Error
}

func (r *contestRepository) GetByID(id uint) (*models.Contest, error) {
	var contest models.Contest
	err := r.db.First(&contest, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &contest, nil
}

func (r *contestRepository) GetAll() ([]*models.Contest, error) {
	var contests []*models.Contest
	err := r.db.Find(&contests).Error
	return contests, err
}

func (r *contestRepository) GetUpcoming() ([]*models.Contest, error) {
	var contests []*models.Contest

	err := r.db.
		Where("start_time > ?", time.Now()).
		Order("start_time ASC").
		Find(&contests).Error

	return contests, err
}

func (r *contestRepository) GetPast(limit, offset int) ([]*models.Contest, error) {
	var contests []*models.Contest

	err := r.db.
		Where("end_time <= ?", time.Now()).
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&contests).Error

	return contests, err
}

func (r *contestRepository) ListByFilters(filters ContestFilters) ([]*models.Contest, error) {
	query := r.db.Model(&models.Contest{})

	if filters.Platform != "" {
		query = query.Where("platform = ?", filters.Platform)
	}

	if filters.ContestType != "" {
		query = query.Where("contest_type = ?", filters.ContestType)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var contests []*models.Contest
	err := query.Offset(filters.Offset).Order("start_time DESC").Find(&contests).Error
	return contests, err
}

func (r *contestRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Contest{}).Count(&count).Error
	return count, err
}

// IsDuplicateKeyError reports whether err is a postgres unique_violation.
// Two import runs racing on the same contest resolve through the composite
// index on (platform, name, start_time); the loser sees this error.
func IsDuplicateKeyError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
