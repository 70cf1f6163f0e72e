package models

import "time"

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index"`
	Type    string `gorm:"not null"` // "new_proposal", "proposal_accepted", "order_update", "new_message"
	Message string
	Link    *string
	IsRead  bool `gorm:"default:false"`
	ReadAt  *time.Time
}
