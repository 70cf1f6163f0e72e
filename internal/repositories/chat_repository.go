package repositories

import (
	"errors"
	"time"

	"collegeskills_backend/internal/models"

	"gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ChatRepository interface {
	FindConversation(projectID, clientID, freelancerID string) (*models.Conversation, error)
	FindConversationByID(id string) (*models.Conversation, error)
	CreateConversation(conversation *models.Conversation) error
	ListConversationsForUser(userID string) ([]models.Conversation, error)
	TouchConversation(id, lastMessage string, at time.Time) error
	CreateMessage(message *models.Message) error
	ListMessages(conversationID string, limit int) ([]models.Message, error)
	MarkMessagesSeen(conversationID, readerID string) error
	CountUnread(conversationID, readerID string) (int64, error)
	IsParticipant(conversationID, userID string) (bool, error)
}

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

func (r *ChatRepositoryImpl) FindConversation(projectID, clientID, freelancerID string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.Where("project_id = ? AND client_id = ? AND freelancer_id = ?",
		projectID, clientID, freelancerID).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ChatRepositoryImpl) FindConversationByID(id string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ChatRepositoryImpl) CreateConversation(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *ChatRepositoryImpl) ListConversationsForUser(userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Where("client_id = ? OR freelancer_id = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *ChatRepositoryImpl) TouchConversation(id, lastMessage string, at time.Time) error {
	return r.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_message":    lastMessage,
			"last_message_at": at,
		}).Error
}

func (r *ChatRepositoryImpl) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *ChatRepositoryImpl) ListMessages(conversationID string, limit int) ([]models.Message, error) {
	query := r.db.Where("conversation_id = ?", conversationID).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessagesSeen marks everything the other side sent as read.
func (r *ChatRepositoryImpl) MarkMessagesSeen(conversationID, readerID string) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND seen = ?", conversationID, readerID, false).
		Update("seen", true).Error
}

// IsParticipant reports whether the user is the client or freelancer
// side of the conversation.
func (r *ChatRepositoryImpl) IsParticipant(conversationID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Conversation{}).
		Where("id = ? AND (client_id = ? OR freelancer_id = ?)", conversationID, userID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ChatRepositoryImpl) CountUnread(conversationID, readerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND seen = ?", conversationID, readerID, false).
		Count(&count).Error
	return count, err
}
