package repositories

import (
	"errors"

	"collegeskills_backend/internal/models"

	"gorm.io/gorm"
)

var ErrGigNotFound = errors.New("gig not found")

// GigCriteria filters the public gig catalogue.
type GigCriteria struct {
	FreelancerID string
	Category     string
	MaxPrice     float64
	ActiveOnly   bool
	Search       string
	Limit        int
	Offset       int
}

type GigRepository interface {
	Create(gig *models.Gig) error
	FindByID(id string) (*models.Gig, error)
	List(criteria GigCriteria) ([]models.Gig, error)
	Update(gig *models.Gig) error
	SetActive(id string, active bool) error
	IncrementTotalOrders(id string) error
	Delete(id string) error
}

type GigRepositoryImpl struct {
	db *gorm.DB
}

func NewGigRepository(db *gorm.DB) GigRepository {
	return &GigRepositoryImpl{db: db}
}

func (r *GigRepositoryImpl) Create(gig *models.Gig) error {
	return r.db.Create(gig).Error
}

func (r *GigRepositoryImpl) FindByID(id string) (*models.Gig, error) {
	var gig models.Gig
	err := r.db.First(&gig, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (r *GigRepositoryImpl) List(criteria GigCriteria) ([]models.Gig, error) {
	query := r.db.Model(&models.Gig{})

	if criteria.FreelancerID != "" {
		query = query.Where("freelancer_id = ?", criteria.FreelancerID)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.MaxPrice > 0 {
		query = query.Where("base_price <= ?", criteria.MaxPrice)
	}
	if criteria.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}

	var gigs []models.Gig
	if err := query.Order("created_at DESC").Find(&gigs).Error; err != nil {
		return nil, err
	}
	return gigs, nil
}

func (r *GigRepositoryImpl) Update(gig *models.Gig) error {
	return r.db.Save(gig).Error
}

func (r *GigRepositoryImpl) SetActive(id string, active bool) error {
	result := r.db.Model(&models.Gig{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGigNotFound
	}
	return nil
}

func (r *GigRepositoryImpl) IncrementTotalOrders(id string) error {
	return r.db.Model(&models.Gig{}).
		Where("id = ?", id).
		Update("total_orders", gorm.Expr("total_orders + ?", 1)).Error
}

func (r *GigRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Gig{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGigNotFound
	}
	return nil
}
