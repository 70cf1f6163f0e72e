package services

import (
	"time"

	"collegeskills_backend/internal/logger"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

type ActivityService struct {
	activityRepo repositories.ActivityRepository
}

func NewActivityService(activityRepo repositories.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Record writes a log entry. Failures are logged and swallowed so the
// calling operation never fails because of audit bookkeeping.
func (s *ActivityService) Record(userID, action, details string, relatedID *string) {
	entry := &models.ActivityLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		RelatedID: relatedID,
	}
	if err := s.activityRepo.Create(entry); err != nil {
		logger.Error("failed to record activity", "action", action, "error", err)
	}
}

func (s *ActivityService) List(criteria repositories.ActivityCriteria) ([]dto.ActivityResponse, error) {
	if criteria.Limit <= 0 || criteria.Limit > 100 {
		criteria.Limit = 50
	}

	entries, err := s.activityRepo.List(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ActivityResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.ActivityResponse{
			ID:        entries[i].ID,
			UserID:    entries[i].UserID,
			Action:    entries[i].Action,
			Details:   entries[i].Details,
			RelatedID: entries[i].RelatedID,
			CreatedAt: entries[i].CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
