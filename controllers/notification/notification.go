package notificationController

import (
	"adhya/database"
	"adhya/middleware"
	"adhya/models"
	"adhya/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const defaultSnoozeDays = 2

type notificationItem struct {
	models.Policy
	DaysLeft  int    `json:"daysLeft"`
	Status    string `json:"status"`
	IsSnoozed bool   `json:"isSnoozed"`
}

// expiryFeed loads every unarchived policy already expired or inside the
// expiry window, newest deadline first.
func expiryFeed(nowAt time.Time) ([]notificationItem, error) {
	today := utils.DateOnly(nowAt)
	windowEnd := utils.ExpiryWindowEnd(today)

	var policies []models.Policy
	err := database.Database.Db.
		Where("archived = ? AND policy_end_date <= ?", false, windowEnd).
		Preload("Customer").
		Order("policy_end_date ASC").
		Find(&policies).Error
	if err != nil {
		return nil, err
	}

	items := make([]notificationItem, 0, len(policies))
	for _, p := range policies {
		end := time.Time(p.PolicyEndDate)
		items = append(items, notificationItem{
			Policy:    p,
			DaysLeft:  utils.DaysLeft(end, nowAt),
			Status:    utils.PolicyStatus(p.Archived, end, nowAt),
			IsSnoozed: utils.IsSnoozed(p.NotificationAcknowledgedUntil, nowAt),
		})
	}
	return items, nil
}

// GetNotifications returns the full expiry feed, snoozed entries included,
// with urgent/snoozed counts for the dashboard.
func GetNotifications(c *fiber.Ctx) error {
	items, err := expiryFeed(time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	var urgent, snoozed int
	for _, item := range items {
		if item.IsSnoozed {
			snoozed++
		} else {
			urgent++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification list.", fiber.Map{
		"notifications": items,
		"summary": fiber.Map{
			"urgent":  urgent,
			"snoozed": snoozed,
			"total":   len(items),
		},
	})
}

// GetNotificationsWithoutSnoozed is the bell feed: only entries the owner
// has not snoozed.
func GetNotificationsWithoutSnoozed(c *fiber.Ctx) error {
	items, err := expiryFeed(time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	active := make([]notificationItem, 0, len(items))
	for _, item := range items {
		if !item.IsSnoozed {
			active = append(active, item)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification list.", active)
}

// AcknowledgePolicyNotification snoozes a policy's expiry alert until
// midnight after the requested number of days.
func AcknowledgePolicyNotification(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid policy ID!", nil)
	}

	reqData := new(struct {
		Days int `json:"days"`
	})
	if err := c.BodyParser(reqData); err != nil && len(c.Body()) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	days := reqData.Days
	if days <= 0 {
		days = defaultSnoozeDays
	}

	until := utils.DateOnly(time.Now()).AddDate(0, 0, days)

	result := database.Database.Db.Model(&models.Policy{}).Where("id = ?", id).
		Update("notification_acknowledged_until", until)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to acknowledge notification!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Policy not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification snoozed successfully.", fiber.Map{
		"acknowledgedUntil": until,
	})
}
