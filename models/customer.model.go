package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model
	Name    string  `gorm:"index" json:"name"`
	Mobile  string  `gorm:"index" json:"mobile"`
	Aadhar  *string `gorm:"unique" json:"aadhar"` // nullable so uniqueness only applies when present
	Address string  `json:"address"`

	Documents []Document `gorm:"polymorphic:Owner;polymorphicValue:customer" json:"documents,omitempty"`

	// Trash lifecycle. gorm.Model.DeletedAt is left unused so trashed rows
	// stay visible to normal queries.
	IsDeleted bool       `gorm:"default:false;index" json:"isDeleted"`
	TrashedAt *time.Time `json:"trashedAt"`
}
