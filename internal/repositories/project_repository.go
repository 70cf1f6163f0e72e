package repositories

import (
	"errors"
	"time"

	"collegeskills_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project request not found")

// ProjectCriteria filters the open-project feed.
type ProjectCriteria struct {
	Status      models.ProjectStatus
	ClientID    string
	Category    string
	MaxBudget   float64
	SkillSearch string
	Limit       int
	Offset      int
}

type ProjectRepository interface {
	Create(project *models.ProjectRequest) error
	FindByID(id string) (*models.ProjectRequest, error)
	List(criteria ProjectCriteria) ([]models.ProjectRequest, error)
	Update(project *models.ProjectRequest) error
	UpdateStatus(id string, status models.ProjectStatus) error
	IncrementProposalCount(id string) error
	ExpireOpenBefore(deadline time.Time) (int64, error)
	WithTx(tx *gorm.DB) ProjectRepository
}

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) WithTx(tx *gorm.DB) ProjectRepository {
	return &ProjectRepositoryImpl{db: tx}
}

func (r *ProjectRepositoryImpl) Create(project *models.ProjectRequest) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepositoryImpl) FindByID(id string) (*models.ProjectRequest, error) {
	var project models.ProjectRequest
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) List(criteria ProjectCriteria) ([]models.ProjectRequest, error) {
	query := r.db.Model(&models.ProjectRequest{})

	if criteria.Status != "" {
		query = query.Where("status = ?", string(criteria.Status))
	}
	if criteria.ClientID != "" {
		query = query.Where("client_id = ?", criteria.ClientID)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.MaxBudget > 0 {
		query = query.Where("budget_max <= ?", criteria.MaxBudget)
	}
	if criteria.SkillSearch != "" {
		query = query.Where("LOWER(skills) LIKE ?", "%"+criteria.SkillSearch+"%")
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}

	var projects []models.ProjectRequest
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepositoryImpl) Update(project *models.ProjectRequest) error {
	return r.db.Save(project).Error
}

func (r *ProjectRepositoryImpl) UpdateStatus(id string, status models.ProjectStatus) error {
	return r.db.Model(&models.ProjectRequest{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// IncrementProposalCount bumps the counter atomically on the DB side so
// concurrent proposal submits do not lose updates.
func (r *ProjectRepositoryImpl) IncrementProposalCount(id string) error {
	return r.db.Model(&models.ProjectRequest{}).
		Where("id = ?", id).
		Update("proposal_count", gorm.Expr("proposal_count + ?", 1)).Error
}

func (r *ProjectRepositoryImpl) ExpireOpenBefore(deadline time.Time) (int64, error) {
	result := r.db.Model(&models.ProjectRequest{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", string(models.ProjectStatusOpen), deadline).
		Update("status", string(models.ProjectStatusCancelled))
	return result.RowsAffected, result.Error
}
