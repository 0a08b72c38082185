package models

import "cems/src/types"

type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Events []Event `gorm:"foreignKey:category_id" json:"events,omitempty"`

	types.Timestamps
}
