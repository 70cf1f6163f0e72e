package services

import (
	"errors"
	"fmt"
	"time"

	"collegeskills_backend/internal/email"
	"collegeskills_backend/internal/logger"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

type VerificationService struct {
	verificationRepo repositories.VerificationRepository
	profileRepo      repositories.ProfileRepository
	userRepo         repositories.UserRepository
	notifications    *NotificationService
	activity         *ActivityService
	mailer           email.Provider
}

func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	notifications *NotificationService,
	activity *ActivityService,
	mailer email.Provider,
) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		profileRepo:      profileRepo,
		userRepo:         userRepo,
		notifications:    notifications,
		activity:         activity,
		mailer:           mailer,
	}
}

// Submit files a student verification request. Only one pending request
// per user at a time; a rejected user may re-apply.
func (s *VerificationService) Submit(userID string, req *dto.SubmitVerificationRequest) (*dto.VerificationResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if profile.UserType != models.UserRoleFreelancer {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if profile.IsVerified {
		return nil, apperrors.ErrInvalidOperation("verification", "profile is already verified")
	}

	if _, err := s.verificationRepo.FindPendingByUser(userID); err == nil {
		return nil, apperrors.ErrConflict(nil, "verification", "a verification request is already pending")
	} else if !errors.Is(err, repositories.ErrVerificationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	request := &models.VerificationRequest{
		UserID:          userID,
		CollegeEmail:    req.CollegeEmail,
		CollegeName:     req.CollegeName,
		Course:          req.Course,
		Department:      req.Department,
		StudentIDUpload: req.StudentIDUpload,
		GovtIDUpload:    req.GovtIDUpload,
		Status:          models.VerificationStatusPending,
	}
	if err := s.verificationRepo.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.activity.Record(userID, "verification_submitted", req.CollegeName, &request.ID)

	resp := toVerificationResponse(request)
	return &resp, nil
}

func (s *VerificationService) GetMine(userID string) (*dto.VerificationResponse, error) {
	request, err := s.verificationRepo.FindLatestByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrVerificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toVerificationResponse(request)
	return &resp, nil
}

// ListPending is the admin review queue, oldest first.
func (s *VerificationService) ListPending(limit, offset int) ([]dto.VerificationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	requests, err := s.verificationRepo.ListByStatus(models.VerificationStatusPending, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.VerificationResponse, 0, len(requests))
	for i := range requests {
		out = append(out, toVerificationResponse(&requests[i]))
	}
	return out, nil
}

// Review records an admin decision. Approval flips the profile's
// verified flag and copies the college identity onto it.
func (s *VerificationService) Review(requestID, adminID string, req *dto.ReviewVerificationRequest) (*dto.VerificationResponse, error) {
	admin, err := s.userRepo.FindByID(adminID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if admin.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	request, err := s.verificationRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrVerificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if request.Status != models.VerificationStatusPending {
		return nil, apperrors.ErrInvalidStatus("verification", "request has already been reviewed")
	}

	now := time.Now()
	approved := req.Decision == "approve"
	if approved {
		request.Status = models.VerificationStatusApproved
	} else {
		request.Status = models.VerificationStatusRejected
	}
	request.AdminNotes = req.AdminNotes
	request.ReviewedBy = &adminID
	request.ReviewedAt = &now

	if err := s.verificationRepo.Update(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if approved {
		profile, err := s.profileRepo.FindByUserID(request.UserID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		profile.IsVerified = true
		profile.CollegeName = &request.CollegeName
		profile.CollegeEmail = &request.CollegeEmail
		if err := s.profileRepo.Update(profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	s.notifyDecision(request, approved)
	s.activity.Record(adminID, "verification_reviewed", string(request.Status), &request.ID)

	resp := toVerificationResponse(request)
	return &resp, nil
}

func (s *VerificationService) notifyDecision(request *models.VerificationRequest, approved bool) {
	message := "Your student verification was approved"
	if !approved {
		message = "Your student verification was rejected"
		if request.AdminNotes != nil {
			message = fmt.Sprintf("%s: %s", message, *request.AdminNotes)
		}
	}

	link := "/verification"
	s.notifications.Notify(request.UserID, NotificationVerificationResult, message, &link)

	user, err := s.userRepo.FindByID(request.UserID)
	if err != nil {
		logger.Warn("failed to load user for verification email", "user_id", request.UserID, "error", err)
		return
	}
	if err := s.mailer.Send(&email.Message{
		To:      user.Email,
		Subject: "Student verification update",
		Body:    message,
	}); err != nil {
		logger.Warn("failed to send verification email", "user_id", request.UserID, "error", err)
	}
}

func toVerificationResponse(r *models.VerificationRequest) dto.VerificationResponse {
	resp := dto.VerificationResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		CollegeEmail: r.CollegeEmail,
		CollegeName:  r.CollegeName,
		Course:       r.Course,
		Department:   r.Department,
		Status:       string(r.Status),
		AdminNotes:   r.AdminNotes,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.ReviewedAt != nil {
		t := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &t
	}
	return resp
}
