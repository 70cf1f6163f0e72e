package repositories

import (
	"collegeskills_backend/internal/models"

	"gorm.io/gorm"
)

// ActivityCriteria filters the activity log feed.
type ActivityCriteria struct {
	UserID string
	Action string
	Limit  int
	Offset int
}

type ActivityRepository interface {
	Create(entry *models.ActivityLog) error
	List(criteria ActivityCriteria) ([]models.ActivityLog, error)
}

type ActivityRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (r *ActivityRepositoryImpl) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *ActivityRepositoryImpl) List(criteria ActivityCriteria) ([]models.ActivityLog, error) {
	query := r.db.Model(&models.ActivityLog{})

	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Action != "" {
		query = query.Where("action = ?", criteria.Action)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}

	var entries []models.ActivityLog
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
