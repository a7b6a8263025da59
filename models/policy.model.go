package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PolicyActive   = "ACTIVE"
	PolicyExpiring = "EXPIRING"
	PolicyExpired  = "EXPIRED"
	PolicyArchived = "ARCHIVED"
)

type Policy struct {
	gorm.Model
	CustomerID uint     `gorm:"not null;index" json:"customerId"`
	Customer   Customer `json:"customer,omitempty"`
	BrokerID   *uint    `gorm:"index" json:"brokerId"`
	Broker     *Broker  `json:"broker,omitempty"`

	PolicyNumber    string         `gorm:"not null" json:"policyNumber"`
	PolicyStartDate datatypes.Date `gorm:"not null" json:"policyStartDate"`
	PolicyEndDate   datatypes.Date `gorm:"not null;index" json:"policyEndDate"`

	Archived bool `gorm:"default:false" json:"archived"`

	// Snooze marker: the expiry reminder is suppressed while this is in the future.
	NotificationAcknowledgedUntil *time.Time `json:"notificationAcknowledgedUntil"`

	Documents []Document `gorm:"polymorphic:Owner;polymorphicValue:policy" json:"documents,omitempty"`
}
