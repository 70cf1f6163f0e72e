package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type Gig struct {
	BaseModel
	FreelancerID string `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string `gorm:"type:text"`
	Category     string `gorm:"index"`
	Subcategory  *string
	Tags         datatypes.JSON `gorm:"type:jsonb"`
	BasePrice    float64
	DeliveryTime int            // days
	Images       datatypes.JSON `gorm:"type:jsonb"` // upload ids
	IsActive     bool           `gorm:"default:true;index"`
	TotalOrders  int            `gorm:"default:0"`
	AverageRating *float64
}

func (g *Gig) GetTags() []string {
	if len(g.Tags) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(g.Tags, &tags); err != nil {
		return nil
	}
	return tags
}

func (g *Gig) SetTags(tags []string) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	g.Tags = datatypes.JSON(data)
	return nil
}

func (g *Gig) SetImages(uploadIDs []string) error {
	data, err := json.Marshal(uploadIDs)
	if err != nil {
		return err
	}
	g.Images = datatypes.JSON(data)
	return nil
}
