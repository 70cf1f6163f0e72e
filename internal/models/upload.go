package models

type Upload struct {
	BaseModel
	UserID      string `gorm:"not null;index"`
	FileName    string `gorm:"not null"`
	StoragePath string `gorm:"not null"`
	ContentType string
	Size        int64
	// What the file is attached to: "profile_picture", "gig_image",
	// "student_id", "govt_id", "project_attachment"
	Usage string `gorm:"index"`
}
