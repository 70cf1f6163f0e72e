package dto

type NotificationResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	Link      *string `json:"link,omitempty"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`
}

type NotificationFilterRequest struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

type ActivityResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Action    string  `json:"action"`
	Details   string  `json:"details,omitempty"`
	RelatedID *string `json:"related_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}
