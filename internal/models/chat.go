package models

import "time"

// Conversation is keyed by the (project, client, freelancer) triple and
// created lazily on first chat open.
type Conversation struct {
	BaseModel
	ProjectID    string `gorm:"not null;uniqueIndex:idx_conversation_triple"`
	ClientID     string `gorm:"not null;uniqueIndex:idx_conversation_triple;index"`
	FreelancerID string `gorm:"not null;uniqueIndex:idx_conversation_triple;index"`

	LastMessage   *string
	LastMessageAt *time.Time
}

type Message struct {
	BaseModel
	ConversationID string `gorm:"not null;index"`
	SenderID       string `gorm:"not null;index"`
	Text           string `gorm:"type:text;not null"`
	Seen           bool   `gorm:"default:false"`
}
