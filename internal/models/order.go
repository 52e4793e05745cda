package models

import (
	"time"

	"gorm.io/datatypes"
)

type Order struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID uint `gorm:"not null;index"`

	// Optional reference to the originating design. The snapshot below is
	// an immutable copy, so deleting the design does not touch past orders.
	DesignID       *uint
	DesignSnapshot datatypes.JSON
	Thumbnail      string `gorm:"not null"`
	Status         string `gorm:"not null"`
	OrderFormData  datatypes.JSON
	OrderNumber    string `gorm:"uniqueIndex;not null;size:64"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
