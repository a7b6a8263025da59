package models

import (
	"time"

	"gorm.io/gorm"
)

const RoleOwner = "OWNER"

type User struct {
	gorm.Model
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"default:'OWNER'"` // Single-owner system

	ResetPasswordToken  string     `gorm:"default:''" json:"-"` // sha256 hex of the emailed token
	ResetPasswordExpire *time.Time `json:"-"`

	// Pending email change state. Cleared on successful verification.
	PendingEmail             string     `gorm:"default:''" json:"-"`
	EmailChangeOTP           string     `gorm:"default:''" json:"-"` // sha256 hex of the 6-digit code
	EmailChangeOTPExpiresAt  *time.Time `json:"-"`
	EmailChangeOTPSentCount  int        `gorm:"default:0" json:"-"`
	EmailChangeOTPLastSentAt *time.Time `json:"-"`
}
