package utils

import (
	"adhya/models"
	"time"
)

// ExpiringDays is the reminder window: a policy ending within this many
// calendar days is EXPIRING.
const ExpiringDays = 7

// DateOnly normalizes t to midnight UTC of its calendar day, so day counts
// are exact multiples of 24h regardless of wall-clock time or DST.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysLeft returns whole calendar days from today until end. Zero means the
// policy ends today; negative means it has already ended.
func DaysLeft(end, today time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(today)) / (24 * time.Hour))
}

// PolicyStatus derives the display status of a policy on a given day.
// Archived policies are ARCHIVED regardless of date.
func PolicyStatus(archived bool, end, today time.Time) string {
	if archived {
		return models.PolicyArchived
	}
	daysLeft := DaysLeft(end, today)
	switch {
	case daysLeft < 0:
		return models.PolicyExpired
	case daysLeft <= ExpiringDays:
		return models.PolicyExpiring
	default:
		return models.PolicyActive
	}
}

// IsSnoozed reports whether a reminder is currently acknowledged. The snooze
// holds only while the acknowledgement date is strictly in the future.
func IsSnoozed(until *time.Time, now time.Time) bool {
	return until != nil && until.After(now)
}

// ExpiryWindowEnd returns the last calendar day inside the reminder window
// starting at today.
func ExpiryWindowEnd(today time.Time) time.Time {
	return DateOnly(today).AddDate(0, 0, ExpiringDays)
}
