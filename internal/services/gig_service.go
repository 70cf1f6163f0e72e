package services

import (
	"errors"
	"time"

	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

type GigService struct {
	gigRepo     repositories.GigRepository
	profileRepo repositories.ProfileRepository
	activity    *ActivityService
}

func NewGigService(
	gigRepo repositories.GigRepository,
	profileRepo repositories.ProfileRepository,
	activity *ActivityService,
) *GigService {
	return &GigService{
		gigRepo:     gigRepo,
		profileRepo: profileRepo,
		activity:    activity,
	}
}

func (s *GigService) Create(freelancerID string, req *dto.CreateGigRequest) (*dto.GigResponse, error) {
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
	if !profile.IsVerified {
		return nil, apperrors.NewForbiddenError("only verified freelancers can create gigs")
	}

	gig := &models.Gig{
		FreelancerID: freelancerID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		BasePrice:    req.BasePrice,
		DeliveryTime: req.DeliveryTime,
		IsActive:     true,
	}
	if err := gig.SetTags(normalizeSkills(req.Tags)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := gig.SetImages(req.ImageIDs); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.gigRepo.Create(gig); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.activity.Record(freelancerID, "gig_created", gig.Title, &gig.ID)

	resp := toGigResponse(gig)
	return &resp, nil
}

func (s *GigService) GetByID(id string) (*dto.GigResponse, error) {
	gig, err := s.gigRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toGigResponse(gig)
	return &resp, nil
}

func (s *GigService) List(filter *dto.GigFilterRequest) ([]dto.GigResponse, error) {
	criteria := repositories.GigCriteria{
		Category:   filter.Category,
		MaxPrice:   filter.MaxPrice,
		Search:     filter.Search,
		ActiveOnly: true,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if criteria.Limit <= 0 || criteria.Limit > 100 {
		criteria.Limit = 50
	}

	gigs, err := s.gigRepo.List(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toGigResponses(gigs), nil
}

func (s *GigService) ListMine(freelancerID string) ([]dto.GigResponse, error) {
	gigs, err := s.gigRepo.List(repositories.GigCriteria{FreelancerID: freelancerID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toGigResponses(gigs), nil
}

func (s *GigService) Update(id, freelancerID string, req *dto.UpdateGigRequest) (*dto.GigResponse, error) {
	gig, err := s.gigRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if gig.FreelancerID != freelancerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Title != nil {
		gig.Title = *req.Title
	}
	if req.Description != nil {
		gig.Description = *req.Description
	}
	if req.Category != nil {
		gig.Category = *req.Category
	}
	if req.BasePrice != nil {
		gig.BasePrice = *req.BasePrice
	}
	if req.DeliveryTime != nil {
		gig.DeliveryTime = *req.DeliveryTime
	}
	if req.IsActive != nil {
		gig.IsActive = *req.IsActive
	}
	if req.Tags != nil {
		if err := gig.SetTags(normalizeSkills(req.Tags)); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.gigRepo.Update(gig); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toGigResponse(gig)
	return &resp, nil
}

func (s *GigService) Delete(id, freelancerID string) error {
	gig, err := s.gigRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrGigNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if gig.FreelancerID != freelancerID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.gigRepo.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toGigResponse(g *models.Gig) dto.GigResponse {
	return dto.GigResponse{
		ID:            g.ID,
		FreelancerID:  g.FreelancerID,
		Title:         g.Title,
		Description:   g.Description,
		Category:      g.Category,
		Subcategory:   g.Subcategory,
		Tags:          g.GetTags(),
		BasePrice:     g.BasePrice,
		DeliveryTime:  g.DeliveryTime,
		IsActive:      g.IsActive,
		TotalOrders:   g.TotalOrders,
		AverageRating: g.AverageRating,
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
	}
}

func toGigResponses(gigs []models.Gig) []dto.GigResponse {
	out := make([]dto.GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, toGigResponse(&gigs[i]))
	}
	return out
}
