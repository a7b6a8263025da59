package models

import (
	"gorm.io/gorm"
)

// ITRRecord holds income-tax portal credentials for a customer. The full PAN
// is encrypted at rest; PANLast4 is a plaintext shadow kept for display so
// list views never need decryption.
type ITRRecord struct {
	gorm.Model
	CustomerID uint     `gorm:"not null;index" json:"customerId"`
	Customer   Customer `json:"customer,omitempty"`
	BrokerID   *uint    `gorm:"index" json:"brokerId"`
	Broker     *Broker  `json:"broker,omitempty"`

	PANEncrypted   string `gorm:"not null" json:"pan"`
	PANLast4       string `gorm:"size:4" json:"panLast4"`
	PortalPassword string `gorm:"not null" json:"portalPassword"`

	Documents []Document `gorm:"polymorphic:Owner;polymorphicValue:itr" json:"documents,omitempty"`
}
