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

type ReviewService struct {
	reviewRepo    repositories.ReviewRepository
	orderRepo     repositories.OrderRepository
	profileRepo   repositories.ProfileRepository
	notifications *NotificationService
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	orderRepo repositories.OrderRepository,
	profileRepo repositories.ProfileRepository,
	notifications *NotificationService,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		orderRepo:     orderRepo,
		profileRepo:   profileRepo,
		notifications: notifications,
	}
}

// Create lets the client review the freelancer once the order is
// completed. One review per order.
func (s *ReviewService) Create(reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	order, err := s.orderRepo.FindByID(req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if order.ClientID != reviewerID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if order.Status != models.OrderStatusCompleted {
		return nil, apperrors.ErrInvalidStatus("review", "order is not completed")
	}

	review := &models.Review{
		OrderID:    req.OrderID,
		ReviewerID: reviewerID,
		RevieweeID: order.FreelancerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsPublic:   true,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.recomputeRating(order.FreelancerID); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("/orders/%s", order.ID)
	s.notifications.Notify(order.FreelancerID, NotificationNewReview,
		fmt.Sprintf("You received a %d-star review for \"%s\"", req.Rating, order.Title), &link)

	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) ListForUser(revieweeID string) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListForUser(revieweeID, true)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return out, nil
}

// recomputeRating refreshes the denormalized aggregate on the profile.
func (s *ReviewService) recomputeRating(revieweeID string) error {
	average, total, err := s.reviewRepo.AggregateForUser(revieweeID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	profile, err := s.profileRepo.FindByUserID(revieweeID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.profileRepo.UpdateRating(profile.ID, average, int(total)); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toReviewResponse(r *models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:         r.ID,
		OrderID:    r.OrderID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}
