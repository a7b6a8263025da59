package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ResourceImage = "image"
	ResourceRaw   = "raw"
)

// Document is an attached file stored in the external object store.
// It belongs to a Customer, Policy, GSTRecord or ITRRecord via the
// polymorphic Owner association.
type Document struct {
	gorm.Model
	OwnerID      uint      `gorm:"index" json:"ownerId"`
	OwnerType    string    `gorm:"index" json:"ownerType"`
	Label        string    `json:"label"`
	URL          string    `json:"url"`
	PublicID     string    `json:"publicId"` // object key in the storage bucket
	ResourceType string    `gorm:"not null" json:"resourceType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// ValidResourceType reports whether t is one of the accepted document kinds.
func ValidResourceType(t string) bool {
	return t == ResourceImage || t == ResourceRaw
}
