package brokerController

import (
	"adhya/database"
	"adhya/middleware"
	"adhya/models"
	"adhya/validators"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func AddBroker(c *fiber.Ctx) error {
	reqData := new(struct {
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	newBroker := models.Broker{
		Name:     reqData.Name,
		Mobile:   reqData.Mobile,
		IsActive: true,
	}

	if err := database.Database.Db.Create(&newBroker).Error; err != nil {
		log.Printf("Error saving broker to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create broker!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Broker created successfully.", newBroker)
}

func UpdateBroker(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid broker ID!", nil)
	}

	reqData := new(struct {
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	var broker models.Broker
	if err := db.First(&broker, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Broker not found!", nil)
	}

	if reqData.Name != "" {
		broker.Name = reqData.Name
	}
	if reqData.Mobile != "" {
		broker.Mobile = reqData.Mobile
	}

	if err := db.Save(&broker).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update broker!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Broker updated successfully.", broker)
}

func setActive(c *fiber.Ctx, active bool, doneMsg string) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid broker ID!", nil)
	}

	result := database.Database.Db.Model(&models.Broker{}).Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update broker!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Broker not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, doneMsg, nil)
}

// DisableBroker keeps the broker and its history but removes it from
// assignment lists.
func DisableBroker(c *fiber.Ctx) error {
	return setActive(c, false, "Broker disabled successfully.")
}

func EnableBroker(c *fiber.Ctx) error {
	return setActive(c, true, "Broker enabled successfully.")
}

func GetAllBrokers(c *fiber.Ctx) error {
	var brokers []models.Broker
	err := database.Database.Db.Order("name ASC").Find(&brokers).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch brokers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Broker list.", brokers)
}

func GetActiveBrokers(c *fiber.Ctx) error {
	var brokers []models.Broker
	err := database.Database.Db.Where("is_active = ?", true).Order("name ASC").Find(&brokers).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch brokers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Active broker list.", brokers)
}

// GetBrokerSummary returns per-broker work counts across all record types.
func GetBrokerSummary(c *fiber.Ctx) error {
	db := database.Database.Db

	var brokers []models.Broker
	if err := db.Order("name ASC").Find(&brokers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch broker summary!", nil)
	}

	summary := make([]fiber.Map, 0, len(brokers))
	for _, broker := range brokers {
		var policyCount, itrCount, gstCount int64
		db.Model(&models.Policy{}).Where("broker_id = ?", broker.ID).Count(&policyCount)
		db.Model(&models.ITRRecord{}).Where("broker_id = ?", broker.ID).Count(&itrCount)
		db.Model(&models.GSTRecord{}).Where("broker_id = ?", broker.ID).Count(&gstCount)

		summary = append(summary, fiber.Map{
			"broker":      broker,
			"policyCount": policyCount,
			"itrCount":    itrCount,
			"gstCount":    gstCount,
			"totalWork":   policyCount + itrCount + gstCount,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Broker summary.", summary)
}

// GetBrokerWork lists the records assigned to a broker, filtered by record
// type and an optional creation date window.
func GetBrokerWork(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid broker ID!", nil)
	}

	db := database.Database.Db

	var broker models.Broker
	if err := db.First(&broker, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Broker not found!", nil)
	}

	workType := c.Query("type", "policy")

	base := db.Where("broker_id = ?", broker.ID)

	if from := c.Query("from"); from != "" {
		fromDate, err := validators.ParseDate(from)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid from date!", nil)
		}
		base = base.Where("created_at >= ?", now.New(fromDate).BeginningOfDay())
	}
	if to := c.Query("to"); to != "" {
		toDate, err := validators.ParseDate(to)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid to date!", nil)
		}
		base = base.Where("created_at <= ?", now.New(toDate).EndOfDay())
	}

	switch workType {
	case "itr":
		var records []models.ITRRecord
		if err := base.Preload("Customer").Order("created_at DESC").Find(&records).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch broker work!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Broker work list.", fiber.Map{
			"broker": broker, "type": workType, "records": records,
		})
	case "gst":
		var records []models.GSTRecord
		if err := base.Preload("Customer").Order("created_at DESC").Find(&records).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch broker work!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Broker work list.", fiber.Map{
			"broker": broker, "type": workType, "records": records,
		})
	default:
		var records []models.Policy
		if err := base.Preload("Customer").Order("created_at DESC").Find(&records).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch broker work!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Broker work list.", fiber.Map{
			"broker": broker, "type": workType, "records": records,
		})
	}
}
