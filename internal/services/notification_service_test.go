package services

import (
	"context"
	"testing"

	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_ListAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)

	user, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	other, _ := seedUser(t, db, "other@college.edu", models.UserRoleFreelancer)

	link := "/orders/abc"
	svc.Notify(user.ID, NotificationOrderFunded, "Escrow funded", &link)
	svc.Notify(user.ID, NotificationNewMessage, "You have a new message", nil)
	svc.Notify(other.ID, NotificationNewMessage, "Not yours", nil)

	all, err := svc.List(user.ID, &dto.NotificationFilterRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	byType, err := svc.List(user.ID, &dto.NotificationFilterRequest{Type: NotificationOrderFunded})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Escrow funded", byType[0].Message)

	count, err := svc.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkAsRead(all[0].ID, user.ID))

	unread, err := svc.List(user.ID, &dto.NotificationFilterRequest{UnreadOnly: true})
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	require.NoError(t, svc.MarkAllAsRead(user.ID))
	count, err = svc.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

type recordingNotificationPublisher struct {
	userIDs []string
	payload []dto.NotificationResponse
	err     error
}

func (p *recordingNotificationPublisher) PublishNotification(_ context.Context, userID string, notification dto.NotificationResponse) error {
	p.userIDs = append(p.userIDs, userID)
	p.payload = append(p.payload, notification)
	return p.err
}

func TestNotificationService_Notify_PushesToHub(t *testing.T) {
	db := newTestDB(t)
	publisher := &recordingNotificationPublisher{}
	svc := NewNotificationService(repositories.NewNotificationRepository(db), publisher)

	user, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)

	link := "/orders/abc"
	svc.Notify(user.ID, NotificationOrderFunded, "Escrow funded", &link)

	require.Len(t, publisher.payload, 1)
	assert.Equal(t, []string{user.ID}, publisher.userIDs)
	assert.Equal(t, NotificationOrderFunded, publisher.payload[0].Type)
	assert.Equal(t, "Escrow funded", publisher.payload[0].Message)

	// A hub outage never blocks or undoes the stored notification.
	publisher.err = assert.AnError
	svc.Notify(user.ID, NotificationNewMessage, "You have a new message", nil)
	assert.Len(t, notificationsFor(t, db, user.ID), 2)
}

func TestNotificationService_MarkAsRead_WrongUser(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)

	user, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	other, _ := seedUser(t, db, "other@college.edu", models.UserRoleFreelancer)

	svc.Notify(user.ID, NotificationNewMessage, "You have a new message", nil)

	all, err := svc.List(user.ID, &dto.NotificationFilterRequest{})
	require.NoError(t, err)
	require.Len(t, all, 1)

	// Another user cannot touch someone else's notification.
	err = svc.MarkAsRead(all[0].ID, other.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestNotificationRepository_DeleteReadOlderThan(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	svc := NewNotificationService(repo, nil)

	user, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	svc.Notify(user.ID, NotificationNewMessage, "old and read", nil)
	svc.Notify(user.ID, NotificationNewMessage, "old but unread", nil)

	all, err := svc.List(user.ID, &dto.NotificationFilterRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	var read models.Notification
	require.NoError(t, db.First(&read, "message = ?", "old and read").Error)
	require.NoError(t, svc.MarkAsRead(read.ID, user.ID))

	// Backdate both past the retention cutoff.
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", user.ID).
		Update("created_at", mustParseTime(t, "2020-01-01T00:00:00Z")).Error)

	deleted, err := repo.DeleteReadOlderThan(mustParseTime(t, "2025-01-01T00:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// Unread notifications survive cleanup regardless of age.
	remaining, err := svc.List(user.ID, &dto.NotificationFilterRequest{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "old but unread", remaining[0].Message)
}
