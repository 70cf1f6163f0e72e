package dto

type OpenConversationRequest struct {
	ProjectID    string `json:"project_id" validate:"required,uuid"`
	FreelancerID string `json:"freelancer_id" validate:"required,uuid"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=5000"`
}

type ConversationResponse struct {
	ID            string  `json:"id"`
	ProjectID     string  `json:"project_id"`
	ClientID      string  `json:"client_id"`
	FreelancerID  string  `json:"freelancer_id"`
	LastMessage   *string `json:"last_message,omitempty"`
	LastMessageAt *string `json:"last_message_at,omitempty"`
	UnreadCount   int64   `json:"unread_count"`
	CreatedAt     string  `json:"created_at"`
}

type MessageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Text           string `json:"text"`
	Seen           bool   `json:"seen"`
	CreatedAt      string `json:"created_at"`
}
