package repositories

import (
	"errors"

	"collegeskills_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVerificationNotFound = errors.New("verification request not found")

type VerificationRepository interface {
	Create(request *models.VerificationRequest) error
	FindByID(id string) (*models.VerificationRequest, error)
	FindPendingByUser(userID string) (*models.VerificationRequest, error)
	FindLatestByUser(userID string) (*models.VerificationRequest, error)
	ListByStatus(status models.VerificationStatus, limit, offset int) ([]models.VerificationRequest, error)
	Update(request *models.VerificationRequest) error
	WithTx(tx *gorm.DB) VerificationRepository
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) WithTx(tx *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: tx}
}

func (r *VerificationRepositoryImpl) Create(request *models.VerificationRequest) error {
	return r.db.Create(request).Error
}

func (r *VerificationRepositoryImpl) FindByID(id string) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *VerificationRepositoryImpl) FindPendingByUser(userID string) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	err := r.db.Where("user_id = ? AND status = ?", userID, string(models.VerificationStatusPending)).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *VerificationRepositoryImpl) FindLatestByUser(userID string) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *VerificationRepositoryImpl) ListByStatus(status models.VerificationStatus, limit, offset int) ([]models.VerificationRequest, error) {
	query := r.db.Model(&models.VerificationRequest{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var requests []models.VerificationRequest
	if err := query.Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *VerificationRepositoryImpl) Update(request *models.VerificationRequest) error {
	return r.db.Save(request).Error
}
