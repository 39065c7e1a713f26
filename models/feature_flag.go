package models

import (
	"gorm.io/gorm"
)

// FeatureFlag is a named capability marker. Attaching one to a character
// grants whatever privilege the flag name stands for.
type FeatureFlag struct {
	gorm.Model

	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Description *string `json:"description,omitempty"`

	Characters []Character `gorm:"many2many:character_feature_flags" json:"-"`
}
