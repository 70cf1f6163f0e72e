package repositories

import (
	"errors"

	"collegeskills_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// FreelancerCriteria narrows the candidate pool for browsing and
// recommendation scoring.
type FreelancerCriteria struct {
	CollegeName  string
	VerifiedOnly bool
	Limit        int
}

type ProfileRepository interface {
	FindByID(id string) (*models.Profile, error)
	FindByUserID(userID string) (*models.Profile, error)
	Create(profile *models.Profile) error
	Update(profile *models.Profile) error
	ListFreelancers(criteria FreelancerCriteria) ([]models.Profile, error)
	SetVerified(profileID string, verified bool) error
	SetPayoutAccount(profileID, accountID string) error
	UpdateRating(profileID string, average float64, total int) error
	WithTx(tx *gorm.DB) ProfileRepository
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) WithTx(tx *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: tx}
}

func (r *ProfileRepositoryImpl) FindByID(id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) ListFreelancers(criteria FreelancerCriteria) ([]models.Profile, error) {
	query := r.db.Where("user_type = ?", string(models.UserRoleFreelancer))

	if criteria.CollegeName != "" {
		query = query.Where("college_name = ?", criteria.CollegeName)
	}
	if criteria.VerifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}

	var profiles []models.Profile
	if err := query.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepositoryImpl) SetVerified(profileID string, verified bool) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("is_verified", verified).Error
}

func (r *ProfileRepositoryImpl) SetPayoutAccount(profileID, accountID string) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("razorpay_account_id", accountID).Error
}

func (r *ProfileRepositoryImpl) UpdateRating(profileID string, average float64, total int) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_reviews":  total,
		}).Error
}
