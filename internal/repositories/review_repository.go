package repositories

import (
	"errors"

	"collegeskills_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("order already reviewed")
)

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByOrderID(orderID string) (*models.Review, error)
	ListForUser(revieweeID string, publicOnly bool) ([]models.Review, error)
	AggregateForUser(revieweeID string) (average float64, total int64, err error)
	WithTx(tx *gorm.DB) ReviewRepository
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) WithTx(tx *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: tx}
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	var existing models.Review
	if err := r.db.Where("order_id = ?", review.OrderID).First(&existing).Error; err == nil {
		return ErrReviewAlreadyExists
	}

	return r.db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByOrderID(orderID string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ListForUser(revieweeID string, publicOnly bool) ([]models.Review, error) {
	query := r.db.Where("reviewee_id = ?", revieweeID)
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepositoryImpl) AggregateForUser(revieweeID string) (float64, int64, error) {
	var result struct {
		Average float64
		Total   int64
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("reviewee_id = ?", revieweeID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Average, result.Total, nil
}
