package models

import (
	"gorm.io/gorm"
)

const (
	FilingMonthly   = "MONTHLY"
	FilingQuarterly = "QUARTERLY"
	FilingYearly    = "YEARLY"
)

// GSTRecord holds a customer's GST registration. PortalID and PortalPassword
// are encrypted before persistence and decrypted on read paths.
type GSTRecord struct {
	gorm.Model
	CustomerID uint     `gorm:"not null;index" json:"customerId"`
	Customer   Customer `json:"customer,omitempty"`
	BrokerID   *uint    `gorm:"index" json:"brokerId"`
	Broker     *Broker  `json:"broker,omitempty"`

	GSTNumber       string `gorm:"not null" json:"gstNumber"`
	PortalID        string `gorm:"not null" json:"portalId"`
	PortalPassword  string `gorm:"not null" json:"portalPassword"`
	FilingFrequency string `gorm:"not null" json:"filingFrequency"` // MONTHLY, QUARTERLY, YEARLY

	Documents []Document `gorm:"polymorphic:Owner;polymorphicValue:gst" json:"documents,omitempty"`
}

// ValidFilingFrequency reports whether f is one of the accepted GST filing cycles.
func ValidFilingFrequency(f string) bool {
	return f == FilingMonthly || f == FilingQuarterly || f == FilingYearly
}
