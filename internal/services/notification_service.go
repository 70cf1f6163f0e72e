package services

import (
	"context"
	"errors"
	"time"

	"collegeskills_backend/internal/logger"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

// Notification types used across the services.
const (
	NotificationNewProposal        = "new_proposal"
	NotificationProposalAccepted   = "proposal_accepted"
	NotificationProposalRejected   = "proposal_rejected"
	NotificationOrderFunded        = "order_funded"
	NotificationOrderDelivered     = "order_delivered"
	NotificationOrderCompleted     = "order_completed"
	NotificationOrderDisputed      = "order_disputed"
	NotificationPaymentReleased    = "payment_released"
	NotificationNewMessage         = "new_message"
	NotificationVerificationResult = "verification_result"
	NotificationNewReview          = "new_review"
)

// NotificationPublisher pushes a freshly created notification to the
// websocket hub so open sessions see it without polling.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, userID string, notification dto.NotificationResponse) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	publisher        NotificationPublisher
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, publisher NotificationPublisher) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, publisher: publisher}
}

// Notify creates a notification. Like activity logging, a failure here
// must not fail the operation that triggered it.
func (s *NotificationService) Notify(userID, notifType, message string, link *string) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
		Link:    link,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("failed to create notification", "type", notifType, "error", err)
		return
	}

	if s.publisher != nil {
		if err := s.publisher.PublishNotification(context.Background(), userID, toNotificationResponse(notification)); err != nil {
			logger.Warn("failed to publish notification", "type", notifType, "error", err)
		}
	}
}

func (s *NotificationService) List(userID string, filter *dto.NotificationFilterRequest) ([]dto.NotificationResponse, error) {
	criteria := repositories.NotificationCriteria{
		UserID:     userID,
		UnreadOnly: filter.UnreadOnly,
		Type:       filter.Type,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if criteria.Limit <= 0 || criteria.Limit > 100 {
		criteria.Limit = 50
	}

	notifications, err := s.notificationRepo.List(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, toNotificationResponse(&notifications[i]))
	}
	return out, nil
}

func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationService) MarkAsRead(id, userID string) error {
	if err := s.notificationRepo.MarkAsRead(id, userID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) Delete(id, userID string) error {
	if err := s.notificationRepo.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func toNotificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
