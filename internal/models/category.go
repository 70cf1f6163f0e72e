package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type Category struct {
	BaseModel
	Name          string `gorm:"uniqueIndex;not null"`
	Description   string
	Icon          *string
	Subcategories datatypes.JSON `gorm:"type:jsonb"`
	IsActive      bool           `gorm:"default:true;index"`
}

func (c *Category) GetSubcategories() []string {
	if len(c.Subcategories) == 0 {
		return nil
	}
	var subs []string
	if err := json.Unmarshal(c.Subcategories, &subs); err != nil {
		return nil
	}
	return subs
}
