package models

import (
	"gorm.io/gorm"
)

// Broker is a third-party agent optionally attached to Policy/GST/ITR records.
// A nil broker reference means the record is self-serviced.
type Broker struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Mobile   string `json:"mobile"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}
