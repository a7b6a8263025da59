package utils

import (
	"adhya/config"
	"adhya/database"
	"adhya/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartExpiryScheduler runs the daily digest on the configured cron spec.
// Disabled when DIGEST_CRON is empty.
func StartExpiryScheduler() *cron.Cron {
	spec := config.AppConfig.DigestCron
	if spec == "" {
		log.Println("Expiry digest scheduler disabled")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := RunExpiryDigest(time.Now()); err != nil {
			log.Printf("Error running expiry digest: %v", err)
		}
	})
	if err != nil {
		log.Printf("Invalid digest cron spec %q: %v", spec, err)
		return nil
	}

	c.Start()
	log.Printf("Expiry digest scheduler started (%s)", spec)
	return c
}

// RunExpiryDigest emails the owner every unarchived policy that is expired
// or inside the expiry window and not snoozed. Nothing is sent when the
// feed is empty.
func RunExpiryDigest(nowAt time.Time) error {
	db := database.Database.Db

	today := DateOnly(nowAt)
	windowEnd := ExpiryWindowEnd(today)

	var policies []models.Policy
	err := db.Where("archived = ? AND policy_end_date <= ?", false, windowEnd).
		Preload("Customer").
		Order("policy_end_date ASC").
		Find(&policies).Error
	if err != nil {
		return err
	}

	rows := make([]ExpiryDigestRow, 0, len(policies))
	for _, p := range policies {
		if IsSnoozed(p.NotificationAcknowledgedUntil, nowAt) {
			continue
		}
		rows = append(rows, ExpiryDigestRow{
			PolicyNumber: p.PolicyNumber,
			CustomerName: p.Customer.Name,
			DaysLeft:     DaysLeft(time.Time(p.PolicyEndDate), nowAt),
		})
	}

	if len(rows) == 0 {
		return nil
	}

	var owner models.User
	if err := db.Where("role = ?", models.RoleOwner).First(&owner).Error; err != nil {
		return err
	}

	return SendExpiryDigestEmail(owner.Email, rows)
}
