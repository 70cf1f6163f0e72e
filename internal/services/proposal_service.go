package services

import (
	"errors"
	"fmt"
	"time"

	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

type ProposalService struct {
	proposalRepo  repositories.ProposalRepository
	projectRepo   repositories.ProjectRepository
	profileRepo   repositories.ProfileRepository
	orderRepo     repositories.OrderRepository
	paymentRepo   repositories.PaymentRepository
	notifications *NotificationService
	activity      *ActivityService
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	notifications *NotificationService,
	activity *ActivityService,
) *ProposalService {
	return &ProposalService{
		proposalRepo:  proposalRepo,
		projectRepo:   projectRepo,
		profileRepo:   profileRepo,
		orderRepo:     orderRepo,
		paymentRepo:   paymentRepo,
		notifications: notifications,
		activity:      activity,
	}
}

func (s *ProposalService) Create(freelancerID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	profile, err := s.profileRepo.FindByUserID(freelancerID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if profile.UserType != models.UserRoleFreelancer {
		return nil, apperrors.ErrInsufficientPermissions
	}

	project, err := s.projectRepo.FindByID(req.ProjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, apperrors.ErrInvalidStatus("proposal", "project is not accepting proposals")
	}
	if project.ClientID == freelancerID {
		return nil, apperrors.ErrInvalidOperation("proposal", "cannot submit a proposal to your own project")
	}

	// One active proposal per freelancer per project.
	if _, err := s.proposalRepo.FindActiveByProjectAndFreelancer(req.ProjectID, freelancerID); err == nil {
		return nil, apperrors.ErrAlreadyExists(repositories.ErrProposalAlreadyExists)
	} else if !errors.Is(err, repositories.ErrProposalNotFound) {
		return nil, apperrors.InternalError(err)
	}

	proposal := &models.Proposal{
		ProjectID:     req.ProjectID,
		FreelancerID:  freelancerID,
		CoverLetter:   req.CoverLetter,
		ProposedPrice: req.ProposedPrice,
		DeliveryTime:  req.DeliveryTime,
		Status:        models.ProposalStatusPending,
	}
	if err := s.proposalRepo.Create(proposal); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.projectRepo.IncrementProposalCount(req.ProjectID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	link := fmt.Sprintf("/projects/%s/proposals", project.ID)
	s.notifications.Notify(project.ClientID, NotificationNewProposal,
		fmt.Sprintf("%s sent a proposal for \"%s\"", profile.FullName(), project.Title), &link)
	s.activity.Record(freelancerID, "proposal_submitted", project.Title, &proposal.ID)

	resp := toProposalResponse(proposal)
	return &resp, nil
}

func (s *ProposalService) GetByID(id, requesterID string) (*dto.ProposalResponse, error) {
	proposal, err := s.proposalRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if proposal.FreelancerID != requesterID {
		project, err := s.projectRepo.FindByID(proposal.ProjectID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if project.ClientID != requesterID {
			return nil, apperrors.ErrInsufficientPermissions
		}
	}

	resp := toProposalResponse(proposal)
	return &resp, nil
}

// ListByProject is restricted to the project owner.
func (s *ProposalService) ListByProject(projectID, clientID string) ([]dto.ProposalResponse, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if project.ClientID != clientID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	proposals, err := s.proposalRepo.ListByProject(projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toProposalResponses(proposals), nil
}

func (s *ProposalService) ListMine(freelancerID string) ([]dto.ProposalResponse, error) {
	proposals, err := s.proposalRepo.ListByFreelancer(freelancerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toProposalResponses(proposals), nil
}

// Reject lets the client turn down a proposal that has not been
// accepted yet. A payment_pending proposal is an abandoned checkout;
// rejecting it also cancels the order and payment opened for it.
func (s *ProposalService) Reject(id, clientID string) error {
	proposal, err := s.proposalRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	project, err := s.projectRepo.FindByID(proposal.ProjectID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if project.ClientID != clientID {
		return apperrors.ErrInsufficientPermissions
	}
	if proposal.Status != models.ProposalStatusPending &&
		proposal.Status != models.ProposalStatusPaymentPending {
		return apperrors.ErrInvalidStatus("proposal", "proposal has already been decided")
	}

	if proposal.Status == models.ProposalStatusPaymentPending {
		if err := s.cancelAbandonedCheckout(proposal); err != nil {
			return err
		}
	}

	if err := s.proposalRepo.UpdateStatus(id, models.ProposalStatusRejected); err != nil {
		return apperrors.InternalError(err)
	}

	link := fmt.Sprintf("/projects/%s", project.ID)
	s.notifications.Notify(proposal.FreelancerID, NotificationProposalRejected,
		fmt.Sprintf("Your proposal for \"%s\" was declined", project.Title), &link)
	return nil
}

// cancelAbandonedCheckout voids the order and payment left behind by a
// gateway checkout the client walked away from. The payment is marked
// cancelled first so a late capture webhook finds it past pending and
// no-ops.
func (s *ProposalService) cancelAbandonedCheckout(proposal *models.Proposal) error {
	order, err := s.orderRepo.FindByProposalID(proposal.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	payment, err := s.paymentRepo.FindByOrderID(order.ID)
	if err == nil && payment.Status == models.PaymentStatusPending {
		payment.Status = models.PaymentStatusCancelled
		if err := s.paymentRepo.Update(payment); err != nil {
			return apperrors.InternalError(err)
		}
	} else if err != nil && !errors.Is(err, repositories.ErrPaymentNotFound) {
		return apperrors.InternalError(err)
	}

	if order.Status == models.OrderStatusPendingPayment {
		if err := s.orderRepo.UpdateStatus(order.ID, models.OrderStatusCancelled); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func toProposalResponse(p *models.Proposal) dto.ProposalResponse {
	return dto.ProposalResponse{
		ID:            p.ID,
		ProjectID:     p.ProjectID,
		FreelancerID:  p.FreelancerID,
		CoverLetter:   p.CoverLetter,
		ProposedPrice: p.ProposedPrice,
		DeliveryTime:  p.DeliveryTime,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func toProposalResponses(proposals []models.Proposal) []dto.ProposalResponse {
	out := make([]dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		out = append(out, toProposalResponse(&proposals[i]))
	}
	return out
}
