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
	"gorm.io/gorm"
)

// recordingPublisher captures published messages in place of the redis hub.
type recordingPublisher struct {
	published []dto.MessageResponse
}

func (p *recordingPublisher) PublishMessage(_ context.Context, _ string, message dto.MessageResponse) error {
	p.published = append(p.published, message)
	return nil
}

func newChatService(db *gorm.DB, publisher RealtimePublisher) *ChatService {
	return NewChatService(
		repositories.NewChatRepository(db),
		repositories.NewProjectRepository(db),
		newNotificationService(db),
		publisher,
	)
}

func TestChatService_OpenConversation(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, nil)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	project := seedProject(t, db, client.ID, nil)

	first, err := svc.OpenConversation(client.ID, &dto.OpenConversationRequest{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, client.ID, first.ClientID)
	assert.Equal(t, freelancer.ID, first.FreelancerID)

	// Opening again returns the same conversation, not a new one.
	second, err := svc.OpenConversation(client.ID, &dto.OpenConversationRequest{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestChatService_OpenConversation_NotProjectOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, nil)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	other, _ := seedUser(t, db, "other@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	project := seedProject(t, db, client.ID, nil)

	_, err := svc.OpenConversation(other.ID, &dto.OpenConversationRequest{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestChatService_SendMessage(t *testing.T) {
	db := newTestDB(t)
	publisher := &recordingPublisher{}
	svc := newChatService(db, publisher)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	project := seedProject(t, db, client.ID, nil)

	conversation, err := svc.OpenConversation(client.ID, &dto.OpenConversationRequest{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
	})
	require.NoError(t, err)

	sent, err := svc.SendMessage(context.Background(), conversation.ID, client.ID, &dto.SendMessageRequest{
		Text: "Can you start on Monday?",
	})
	require.NoError(t, err)
	assert.Equal(t, client.ID, sent.SenderID)
	assert.Equal(t, "Can you start on Monday?", sent.Text)

	// The message went out over the realtime hub.
	require.Len(t, publisher.published, 1)
	assert.Equal(t, sent.ID, publisher.published[0].ID)

	// The conversation preview is refreshed.
	var reloaded models.Conversation
	require.NoError(t, db.First(&reloaded, "id = ?", conversation.ID).Error)
	require.NotNil(t, reloaded.LastMessage)
	assert.Equal(t, "Can you start on Monday?", *reloaded.LastMessage)
	assert.NotNil(t, reloaded.LastMessageAt)

	// The other participant gets a notification.
	notifs := notificationsFor(t, db, freelancer.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, NotificationNewMessage, notifs[0].Type)
}

func TestChatService_SendMessage_Outsider(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, nil)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	outsider, _ := seedUser(t, db, "outsider@example.com", models.UserRoleFreelancer)
	project := seedProject(t, db, client.ID, nil)

	conversation, err := svc.OpenConversation(client.ID, &dto.OpenConversationRequest{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), conversation.ID, outsider.ID, &dto.SendMessageRequest{
		Text: "Let me in",
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestChatService_MarkSeen(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, nil)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	project := seedProject(t, db, client.ID, nil)

	conversation, err := svc.OpenConversation(client.ID, &dto.OpenConversationRequest{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), conversation.ID, client.ID, &dto.SendMessageRequest{Text: "hello"})
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), conversation.ID, client.ID, &dto.SendMessageRequest{Text: "anyone there?"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkSeen(conversation.ID, freelancer.ID))

	var unseen int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("conversation_id = ? AND seen = ?", conversation.ID, false).
		Count(&unseen).Error)
	assert.Equal(t, int64(0), unseen)
}

func TestChatRepository_IsParticipant(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewChatRepository(db)
	svc := newChatService(db, nil)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	outsider, _ := seedUser(t, db, "outsider@example.com", models.UserRoleFreelancer)
	project := seedProject(t, db, client.ID, nil)

	conversation, err := svc.OpenConversation(client.ID, &dto.OpenConversationRequest{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
	})
	require.NoError(t, err)

	for _, userID := range []string{client.ID, freelancer.ID} {
		ok, err := repo.IsParticipant(conversation.ID, userID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := repo.IsParticipant(conversation.ID, outsider.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.IsParticipant("missing-conversation", client.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChatService_ListConversations(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, nil)

	client, _ := seedUser(t, db, "client@example.com", models.UserRoleClient)
	freelancer, _ := seedUser(t, db, "dev@college.edu", models.UserRoleFreelancer)
	project := seedProject(t, db, client.ID, nil)

	conversation, err := svc.OpenConversation(client.ID, &dto.OpenConversationRequest{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), conversation.ID, client.ID, &dto.SendMessageRequest{Text: "hello"})
	require.NoError(t, err)

	// Unread counts are computed from the viewer's side.
	fromFreelancer, err := svc.ListConversations(freelancer.ID)
	require.NoError(t, err)
	require.Len(t, fromFreelancer, 1)
	assert.Equal(t, int64(1), fromFreelancer[0].UnreadCount)

	fromClient, err := svc.ListConversations(client.ID)
	require.NoError(t, err)
	require.Len(t, fromClient, 1)
	assert.Equal(t, int64(0), fromClient[0].UnreadCount)
}
