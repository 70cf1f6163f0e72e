package models

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

type Profile struct {
	BaseModel
	UserID    string   `gorm:"not null;uniqueIndex"`
	UserType  UserRole `gorm:"type:varchar(20);not null;index"`
	FirstName string   `gorm:"not null"`
	LastName  string   `gorm:"not null"`
	Bio       *string
	ProfilePictureID *string

	// Freelancer fields
	CollegeName      *string `gorm:"index"`
	CollegeEmail     *string
	GraduationYear   *int
	Skills           datatypes.JSON `gorm:"type:jsonb"` // ["react", "golang", ...]
	IsVerified       bool           `gorm:"default:false;index"`
	StudentIDUpload  *string
	RazorpayAccountID *string

	// Client fields
	Company *string

	// Ratings aggregate, recomputed on review creation
	AverageRating *float64
	TotalReviews  int `gorm:"default:0"`
}

func (p *Profile) GetSkills() []string {
	if len(p.Skills) == 0 {
		return nil
	}
	var skills []string
	if err := json.Unmarshal(p.Skills, &skills); err != nil {
		return nil
	}
	return skills
}

func (p *Profile) SetSkills(skills []string) error {
	data, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	p.Skills = datatypes.JSON(data)
	return nil
}

func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
