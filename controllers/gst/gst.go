package gstController

import (
	"adhya/database"
	"adhya/middleware"
	"adhya/models"
	"adhya/utils"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// decryptRecord replaces the stored ciphertext with plaintext for responses.
func decryptRecord(record *models.GSTRecord) error {
	portalID, err := utils.Decrypt(record.PortalID)
	if err != nil {
		return err
	}
	portalPassword, err := utils.Decrypt(record.PortalPassword)
	if err != nil {
		return err
	}
	record.PortalID = portalID
	record.PortalPassword = portalPassword
	return nil
}

func AddGST(c *fiber.Ctx) error {
	reqData := new(struct {
		CustomerID      uint   `json:"customerId"`
		BrokerID        *uint  `json:"brokerId"`
		GSTNumber       string `json:"gstNumber"`
		PortalID        string `json:"portalId"`
		PortalPassword  string `json:"portalPassword"`
		FilingFrequency string `json:"filingFrequency"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Customer{}, reqData.CustomerID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	portalID, err := utils.Encrypt(reqData.PortalID)
	if err != nil {
		log.Printf("Error encrypting portal ID: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create GST record!", nil)
	}
	portalPassword, err := utils.Encrypt(reqData.PortalPassword)
	if err != nil {
		log.Printf("Error encrypting portal password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create GST record!", nil)
	}

	newRecord := models.GSTRecord{
		CustomerID:      reqData.CustomerID,
		BrokerID:        reqData.BrokerID,
		GSTNumber:       strings.ToUpper(strings.TrimSpace(reqData.GSTNumber)),
		PortalID:        portalID,
		PortalPassword:  portalPassword,
		FilingFrequency: reqData.FilingFrequency,
	}

	if err := db.Create(&newRecord).Error; err != nil {
		log.Printf("Error saving GST record to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create GST record!", nil)
	}

	if err := decryptRecord(&newRecord); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create GST record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "GST record created successfully.", newRecord)
}

func GetGSTByCustomer(c *fiber.Ctx) error {
	customerID, ok := paramID(c, "customerId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
	}

	var records []models.GSTRecord
	err := database.Database.Db.Where("customer_id = ?", customerID).
		Preload("Broker").Preload("Documents").
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch GST records!", nil)
	}

	for i := range records {
		if err := decryptRecord(&records[i]); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch GST records!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "GST record list.", records)
}

func GetSingleGST(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid GST record ID!", nil)
	}

	var record models.GSTRecord
	err := database.Database.Db.Preload("Customer").Preload("Broker").Preload("Documents").
		First(&record, id).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "GST record not found!", nil)
	}

	if err := decryptRecord(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch GST record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "GST record details.", record)
}

// GetAllGST lists GST records with pagination. The optional search query
// matches the GST number or the owning customer's name/mobile, all of which
// are stored in plaintext so the filter runs in the database.
func GetAllGST(c *fiber.Ctx) error {
	page, limit, offset := utils.PageParams(c, 20, 30)

	db := database.Database.Db
	query := db.Model(&models.GSTRecord{}).
		Joins("JOIN customers ON customers.id = gst_records.customer_id")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(gst_records.gst_number) LIKE ? OR LOWER(customers.name) LIKE ? OR customers.mobile LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	var records []models.GSTRecord
	err := query.Preload("Customer").Preload("Broker").
		Order("gst_records.created_at DESC").Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch GST records!", nil)
	}

	for i := range records {
		if err := decryptRecord(&records[i]); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch GST records!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "GST record list.", fiber.Map{
		"gstRecords": records,
		"pagination": utils.Pagination(page, limit, total),
	})
}

func UpdateGST(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid GST record ID!", nil)
	}

	reqData := new(struct {
		GSTNumber       string `json:"gstNumber"`
		PortalID        string `json:"portalId"`
		PortalPassword  string `json:"portalPassword"`
		FilingFrequency string `json:"filingFrequency"`
		BrokerID        *uint  `json:"brokerId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	var record models.GSTRecord
	if err := db.First(&record, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "GST record not found!", nil)
	}

	if reqData.GSTNumber != "" {
		record.GSTNumber = strings.ToUpper(strings.TrimSpace(reqData.GSTNumber))
	}
	if reqData.PortalID != "" {
		encrypted, err := utils.Encrypt(reqData.PortalID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update GST record!", nil)
		}
		record.PortalID = encrypted
	}
	if reqData.PortalPassword != "" {
		encrypted, err := utils.Encrypt(reqData.PortalPassword)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update GST record!", nil)
		}
		record.PortalPassword = encrypted
	}
	if reqData.FilingFrequency != "" {
		if !models.ValidFilingFrequency(reqData.FilingFrequency) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid filing frequency!", nil)
		}
		record.FilingFrequency = reqData.FilingFrequency
	}
	// brokerId 0 clears the assignment, omitted leaves it untouched
	if reqData.BrokerID != nil {
		if *reqData.BrokerID == 0 {
			record.BrokerID = nil
		} else {
			record.BrokerID = reqData.BrokerID
		}
	}

	if err := db.Save(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update GST record!", nil)
	}

	if err := decryptRecord(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update GST record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "GST record updated successfully.", record)
}

func DeleteGST(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid GST record ID!", nil)
	}

	db := database.Database.Db

	var record models.GSTRecord
	if err := db.Preload("Documents").First(&record, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "GST record not found!", nil)
	}

	for _, doc := range record.Documents {
		if doc.PublicID == "" {
			continue
		}
		if err := utils.RemoveObject(doc.PublicID); err != nil {
			log.Printf("Warning: failed to delete stored object %s: %v", doc.PublicID, err)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("owner_type = ? AND owner_id = ?", "gst", record.ID).
			Delete(&models.Document{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&record).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete GST record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "GST record deleted successfully.", nil)
}

/* DOCUMENTS */

func AddDocument(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid GST record ID!", nil)
	}

	reqData := new(struct {
		Label        string `json:"label"`
		URL          string `json:"url"`
		PublicID     string `json:"publicId"`
		ResourceType string `json:"resourceType"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if !models.ValidResourceType(reqData.ResourceType) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid file type!", nil)
	}

	db := database.Database.Db

	var record models.GSTRecord
	if err := db.First(&record, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "GST record not found!", nil)
	}

	document := models.Document{
		OwnerID:      record.ID,
		OwnerType:    "gst",
		Label:        reqData.Label,
		URL:          reqData.URL,
		PublicID:     reqData.PublicID,
		ResourceType: reqData.ResourceType,
		UploadedAt:   time.Now(),
	}
	if err := db.Create(&document).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add document!", nil)
	}

	var documents []models.Document
	db.Where("owner_type = ? AND owner_id = ?", "gst", record.ID).Find(&documents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document added successfully.", documents)
}

func DeleteDocument(c *fiber.Ctx) error {
	gstID, ok := paramID(c, "gstId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid GST record ID!", nil)
	}
	documentID, ok := paramID(c, "documentId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	db := database.Database.Db

	var document models.Document
	err := db.Where("id = ? AND owner_type = ? AND owner_id = ?", documentID, "gst", gstID).
		First(&document).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	if document.PublicID != "" {
		if err := utils.RemoveObject(document.PublicID); err != nil {
			log.Printf("Warning: failed to delete stored object %s: %v", document.PublicID, err)
		}
	}

	if err := db.Unscoped().Delete(&document).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete document!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document deleted successfully.", nil)
}
