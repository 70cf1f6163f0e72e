package repositories

import (
	"errors"

	"collegeskills_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProposalNotFound      = errors.New("proposal not found")
	ErrProposalAlreadyExists = errors.New("active proposal already exists for this project")
)

type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	FindByID(id string) (*models.Proposal, error)
	ListByProject(projectID string) ([]models.Proposal, error)
	ListByFreelancer(freelancerID string) ([]models.Proposal, error)
	FindActiveByProjectAndFreelancer(projectID, freelancerID string) (*models.Proposal, error)
	UpdateStatus(id string, status models.ProposalStatus) error
	RejectSiblings(projectID, winnerID string) error
	WithTx(tx *gorm.DB) ProposalRepository
}

type ProposalRepositoryImpl struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &ProposalRepositoryImpl{db: db}
}

func (r *ProposalRepositoryImpl) WithTx(tx *gorm.DB) ProposalRepository {
	return &ProposalRepositoryImpl{db: tx}
}

func (r *ProposalRepositoryImpl) Create(proposal *models.Proposal) error {
	return r.db.Create(proposal).Error
}

func (r *ProposalRepositoryImpl) FindByID(id string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.First(&proposal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) ListByProject(projectID string) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *ProposalRepositoryImpl) ListByFreelancer(freelancerID string) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *ProposalRepositoryImpl) FindActiveByProjectAndFreelancer(projectID, freelancerID string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.Where("project_id = ? AND freelancer_id = ? AND status IN ?",
		projectID, freelancerID,
		[]string{string(models.ProposalStatusPending), string(models.ProposalStatusPaymentPending)}).
		First(&proposal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) UpdateStatus(id string, status models.ProposalStatus) error {
	return r.db.Model(&models.Proposal{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// RejectSiblings closes out every other still-open proposal on the project
// once one of them wins.
func (r *ProposalRepositoryImpl) RejectSiblings(projectID, winnerID string) error {
	return r.db.Model(&models.Proposal{}).
		Where("project_id = ? AND id <> ? AND status IN ?",
			projectID, winnerID,
			[]string{string(models.ProposalStatusPending), string(models.ProposalStatusPaymentPending)}).
		Update("status", string(models.ProposalStatusRejected)).Error
}
