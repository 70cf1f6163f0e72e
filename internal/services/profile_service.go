package services

import (
	"errors"
	"time"

	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

type ProfileService struct {
	profileRepo      repositories.ProfileRepository
	userRepo         repositories.UserRepository
	verificationRepo repositories.VerificationRepository
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	verificationRepo repositories.VerificationRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo:      profileRepo,
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
	}
}

func (s *ProfileService) GetByUserID(userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *ProfileService) Update(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.GraduationYear != nil {
		profile.GraduationYear = req.GraduationYear
	}
	if req.Company != nil {
		profile.Company = req.Company
	}
	if req.CollegeName != nil {
		// Changing college invalidates the student verification.
		if profile.CollegeName == nil || *profile.CollegeName != *req.CollegeName {
			profile.IsVerified = false
		}
		profile.CollegeName = req.CollegeName
	}
	if req.CollegeEmail != nil {
		if profile.CollegeEmail == nil || *profile.CollegeEmail != *req.CollegeEmail {
			profile.IsVerified = false
		}
		profile.CollegeEmail = req.CollegeEmail
	}
	if req.Skills != nil {
		if err := profile.SetSkills(normalizeSkills(req.Skills)); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.openVerificationIfEligible(profile); err != nil {
		return nil, err
	}

	resp := toProfileResponse(profile)
	return &resp, nil
}

// openVerificationIfEligible files a pending verification request for a
// freelancer who has supplied both college name and college email but is not
// verified yet and has nothing in review.
func (s *ProfileService) openVerificationIfEligible(profile *models.Profile) error {
	if profile.UserType != models.UserRoleFreelancer || profile.IsVerified {
		return nil
	}
	if profile.CollegeName == nil || profile.CollegeEmail == nil {
		return nil
	}

	_, err := s.verificationRepo.FindPendingByUser(profile.UserID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrVerificationNotFound) {
		return apperrors.InternalError(err)
	}

	request := &models.VerificationRequest{
		UserID:       profile.UserID,
		CollegeEmail: *profile.CollegeEmail,
		CollegeName:  *profile.CollegeName,
		Status:       models.VerificationStatusPending,
	}
	if err := s.verificationRepo.Create(request); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProfileService) ListFreelancers(criteria repositories.FreelancerCriteria) ([]dto.ProfileResponse, error) {
	if criteria.Limit <= 0 || criteria.Limit > 100 {
		criteria.Limit = 50
	}

	profiles, err := s.profileRepo.ListFreelancers(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, toProfileResponse(&profiles[i]))
	}
	return out, nil
}

func toProfileResponse(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		UserType:         string(p.UserType),
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Bio:              p.Bio,
		CollegeName:      p.CollegeName,
		GraduationYear:   p.GraduationYear,
		Skills:           p.GetSkills(),
		IsVerified:       p.IsVerified,
		HasPayoutAccount: p.RazorpayAccountID != nil,
		Company:          p.Company,
		AverageRating:    p.AverageRating,
		TotalReviews:     p.TotalReviews,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}
