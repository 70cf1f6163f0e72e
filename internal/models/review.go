package models

type Review struct {
	BaseModel
	OrderID    string `gorm:"not null;uniqueIndex"`
	ReviewerID string `gorm:"not null;index"`
	RevieweeID string `gorm:"not null;index"`
	Rating     int    `gorm:"not null"` // 1-5
	Comment    string `gorm:"type:text"`
	IsPublic   bool   `gorm:"default:true"`
}
