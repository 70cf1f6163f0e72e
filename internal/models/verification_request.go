package models

import "time"

type VerificationRequest struct {
	BaseModel
	UserID       string `gorm:"not null;index"`
	CollegeEmail string `gorm:"not null"`
	CollegeName  string `gorm:"not null"`
	Course       *string
	Department   *string

	StudentIDUpload *string
	GovtIDUpload    *string

	Status     VerificationStatus `gorm:"type:varchar(20);default:'pending';index"`
	AdminNotes *string
	ReviewedBy *string
	ReviewedAt *time.Time
}
