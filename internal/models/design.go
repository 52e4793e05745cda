package models

import (
	"time"

	"gorm.io/datatypes"
)

type Design struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID      uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Thumbnail   string `gorm:"not null"` // opaque, typically a data URI
	DesignState datatypes.JSON

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
