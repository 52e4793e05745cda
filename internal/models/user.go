package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Deletes are permanent everywhere, so the models carry no soft-delete
// column.
type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Username string `gorm:"not null"`
	Email    string `gorm:"not null"`

	// Lowercased shadow columns carry the uniqueness constraint, so a
	// case-variant duplicate is rejected by the store itself even when two
	// registrations race past the handler check.
	UsernameLower string `gorm:"uniqueIndex;not null"`
	EmailLower    string `gorm:"uniqueIndex;not null"`

	Phone        string
	Type         string `gorm:"not null"` // "user" or "admin"
	PasswordHash string `gorm:"not null"`

	// Relationships
	Designs      []Design      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	LibraryItems []LibraryItem `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Orders       []Order       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (u *User) BeforeSave(*gorm.DB) error {
	u.UsernameLower = strings.ToLower(u.Username)
	u.EmailLower = strings.ToLower(u.Email)
	return nil
}
