package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type ProjectRequest struct {
	BaseModel
	ClientID    string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"index"`
	BudgetMin   float64
	BudgetMax   float64
	Deadline    *time.Time
	Skills      datatypes.JSON `gorm:"type:jsonb"`
	Status      ProjectStatus  `gorm:"type:varchar(20);default:'open';index"`

	SelectedFreelancerID *string
	// Best-effort counter, bumped on every proposal insert. May over-count
	// under concurrent inserts, never under-counts.
	ProposalCount int `gorm:"default:0"`
}

func (p *ProjectRequest) GetSkills() []string {
	if len(p.Skills) == 0 {
		return nil
	}
	var skills []string
	if err := json.Unmarshal(p.Skills, &skills); err != nil {
		return nil
	}
	return skills
}

func (p *ProjectRequest) SetSkills(skills []string) error {
	data, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	p.Skills = datatypes.JSON(data)
	return nil
}
