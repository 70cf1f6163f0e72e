package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"collegeskills_backend/internal/logger"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

// RealtimePublisher fans a new message out to connected websocket
// clients. The redis-backed hub implements it.
type RealtimePublisher interface {
	PublishMessage(ctx context.Context, conversationID string, message dto.MessageResponse) error
}

type ChatService struct {
	chatRepo      repositories.ChatRepository
	projectRepo   repositories.ProjectRepository
	notifications *NotificationService
	publisher     RealtimePublisher
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	projectRepo repositories.ProjectRepository,
	notifications *NotificationService,
	publisher RealtimePublisher,
) *ChatService {
	return &ChatService{
		chatRepo:      chatRepo,
		projectRepo:   projectRepo,
		notifications: notifications,
		publisher:     publisher,
	}
}

// OpenConversation finds or lazily creates the conversation for a
// (project, client, freelancer) triple. Only the project owner opens
// conversations; the freelancer joins through the returned id.
func (s *ChatService) OpenConversation(clientID string, req *dto.OpenConversationRequest) (*dto.ConversationResponse, error) {
	project, err := s.projectRepo.FindByID(req.ProjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if project.ClientID != clientID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	conversation, err := s.chatRepo.FindConversation(req.ProjectID, clientID, req.FreelancerID)
	if err != nil {
		if !errors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.InternalError(err)
		}
		conversation = &models.Conversation{
			ProjectID:    req.ProjectID,
			ClientID:     clientID,
			FreelancerID: req.FreelancerID,
		}
		if err := s.chatRepo.CreateConversation(conversation); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	resp := s.toConversationResponse(conversation, clientID)
	return &resp, nil
}

func (s *ChatService) ListConversations(userID string) ([]dto.ConversationResponse, error) {
	conversations, err := s.chatRepo.ListConversationsForUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		out = append(out, s.toConversationResponse(&conversations[i], userID))
	}
	return out, nil
}

func (s *ChatService) SendMessage(ctx context.Context, conversationID, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	conversation, err := s.participantConversation(conversationID, senderID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           req.Text,
	}
	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.chatRepo.TouchConversation(conversationID, req.Text, message.CreatedAt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toMessageResponse(message)

	if s.publisher != nil {
		// Realtime delivery is best effort, the message is persisted.
		if err := s.publisher.PublishMessage(ctx, conversationID, resp); err != nil {
			logger.Warn("failed to publish chat message", "conversation_id", conversationID, "error", err)
		}
	}

	recipient := conversation.ClientID
	if senderID == conversation.ClientID {
		recipient = conversation.FreelancerID
	}
	link := fmt.Sprintf("/chat/%s", conversationID)
	s.notifications.Notify(recipient, NotificationNewMessage, "You have a new message", &link)

	return &resp, nil
}

func (s *ChatService) ListMessages(conversationID, requesterID string, limit int) ([]dto.MessageResponse, error) {
	if _, err := s.participantConversation(conversationID, requesterID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListMessages(conversationID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, toMessageResponse(&messages[i]))
	}
	return out, nil
}

func (s *ChatService) MarkSeen(conversationID, readerID string) error {
	if _, err := s.participantConversation(conversationID, readerID); err != nil {
		return err
	}
	if err := s.chatRepo.MarkMessagesSeen(conversationID, readerID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// participantConversation loads the conversation and checks membership.
func (s *ChatService) participantConversation(conversationID, userID string) (*models.Conversation, error) {
	conversation, err := s.chatRepo.FindConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if conversation.ClientID != userID && conversation.FreelancerID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return conversation, nil
}

func (s *ChatService) toConversationResponse(c *models.Conversation, viewerID string) dto.ConversationResponse {
	unread, err := s.chatRepo.CountUnread(c.ID, viewerID)
	if err != nil {
		unread = 0
	}

	resp := dto.ConversationResponse{
		ID:           c.ID,
		ProjectID:    c.ProjectID,
		ClientID:     c.ClientID,
		FreelancerID: c.FreelancerID,
		LastMessage:  c.LastMessage,
		UnreadCount:  unread,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
	if c.LastMessageAt != nil {
		t := c.LastMessageAt.Format(time.RFC3339)
		resp.LastMessageAt = &t
	}
	return resp
}

func toMessageResponse(m *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Text:           m.Text,
		Seen:           m.Seen,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}
