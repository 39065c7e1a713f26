package models

import (
	"gorm.io/gorm"
)

// User represents a user account in the system
type User struct {
	gorm.Model

	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Account status; blocked accounts keep their data but cannot use
	// token-protected routes.
	IsActive bool `gorm:"default:true" json:"isActive"`

	// Relations
	Characters []Character `gorm:"foreignKey:UserID" json:"characters,omitempty"`
}
