package models

import "time"

type Order struct {
	BaseModel
	ProjectID    string `gorm:"not null;index"`
	ProposalID   string `gorm:"not null;uniqueIndex"`
	ClientID     string `gorm:"not null;index"`
	FreelancerID string `gorm:"not null;index"`
	Title        string
	Price        float64
	DeliveryTime int         // days
	Status       OrderStatus `gorm:"type:varchar(20);default:'pending_payment';index"`

	DeliveryMessage *string
	DeliveredAt     *time.Time
	CompletedAt     *time.Time
}
