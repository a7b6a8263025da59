package utils

import (
	"adhya/config"
	"adhya/database"
	"adhya/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDigestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func stubSendEmail(t *testing.T) *[]string {
	t.Helper()

	var sent []string
	original := SendEmail
	SendEmail = func(to, subject, html, text string) error {
		sent = append(sent, html)
		return nil
	}
	t.Cleanup(func() { SendEmail = original })
	return &sent
}

func TestRunExpiryDigest(t *testing.T) {
	db := setupDigestDB(t)
	sent := stubSendEmail(t)

	require.NoError(t, db.Create(&models.User{
		Email: "owner@example.com", Password: "x", Role: models.RoleOwner,
	}).Error)

	customer := models.Customer{Name: "Asha Patel", Mobile: "9876543210"}
	require.NoError(t, db.Create(&customer).Error)

	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	endIn := func(days int) datatypes.Date {
		return datatypes.Date(DateOnly(now).AddDate(0, 0, days))
	}
	snoozedUntil := now.Add(48 * time.Hour)

	policies := []models.Policy{
		{CustomerID: customer.ID, PolicyNumber: "POL-EXPIRING", PolicyStartDate: endIn(-300), PolicyEndDate: endIn(3)},
		{CustomerID: customer.ID, PolicyNumber: "POL-EXPIRED", PolicyStartDate: endIn(-400), PolicyEndDate: endIn(-2)},
		{CustomerID: customer.ID, PolicyNumber: "POL-ACTIVE", PolicyStartDate: endIn(-100), PolicyEndDate: endIn(60)},
		{CustomerID: customer.ID, PolicyNumber: "POL-ARCHIVED", PolicyStartDate: endIn(-400), PolicyEndDate: endIn(2), Archived: true},
		{CustomerID: customer.ID, PolicyNumber: "POL-SNOOZED", PolicyStartDate: endIn(-300), PolicyEndDate: endIn(4), NotificationAcknowledgedUntil: &snoozedUntil},
	}
	require.NoError(t, db.Create(&policies).Error)

	require.NoError(t, RunExpiryDigest(now))

	require.Len(t, *sent, 1)
	body := (*sent)[0]
	assert.Contains(t, body, "POL-EXPIRING")
	assert.Contains(t, body, "POL-EXPIRED")
	assert.NotContains(t, body, "POL-ACTIVE")
	assert.NotContains(t, body, "POL-ARCHIVED")
	assert.NotContains(t, body, "POL-SNOOZED")
}

func TestRunExpiryDigestNothingToSend(t *testing.T) {
	db := setupDigestDB(t)
	sent := stubSendEmail(t)

	require.NoError(t, db.Create(&models.User{
		Email: "owner@example.com", Password: "x", Role: models.RoleOwner,
	}).Error)

	customer := models.Customer{Name: "Asha Patel", Mobile: "9876543210"}
	require.NoError(t, db.Create(&customer).Error)

	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Policy{
		CustomerID:      customer.ID,
		PolicyNumber:    "POL-ACTIVE",
		PolicyStartDate: datatypes.Date(DateOnly(now).AddDate(0, 0, -10)),
		PolicyEndDate:   datatypes.Date(DateOnly(now).AddDate(0, 0, 60)),
	}).Error)

	require.NoError(t, RunExpiryDigest(now))
	assert.Empty(t, *sent)
}
