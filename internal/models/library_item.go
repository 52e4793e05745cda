package models

import (
	"time"

	"gorm.io/datatypes"
)

type LibraryItem struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID    uint   `gorm:"not null;index"`
	Type      string `gorm:"not null"` // "text" or "art"
	SlotIndex int    `gorm:"not null"` // 0..7, validated at the boundary
	Thumbnail string `gorm:"not null"`
	Data      datatypes.JSON

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
