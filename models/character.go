package models

import (
	"gorm.io/gorm"
)

// Character belongs to exactly one User and carries a set of feature
// flags that act as capability markers.
type Character struct {
	gorm.Model

	Name           string  `gorm:"not null" json:"name"`
	Level          *int    `json:"level,omitempty"`
	CharacterClass *string `gorm:"column:character_class" json:"characterClass,omitempty"`

	// Ownership; nullable so a character survives deletion of its owner.
	UserID *uint `gorm:"index" json:"userId,omitempty"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	FeatureFlags []FeatureFlag `gorm:"many2many:character_feature_flags" json:"featureFlags,omitempty"`
}
