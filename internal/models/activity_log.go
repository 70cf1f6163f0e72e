package models

type ActivityLog struct {
	BaseModel
	UserID    string `gorm:"not null;index"`
	Action    string `gorm:"not null;index"`
	Details   string
	RelatedID *string
}
