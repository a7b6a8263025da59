package itrController

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
func decryptRecord(record *models.ITRRecord) error {
	pan, err := utils.Decrypt(record.PANEncrypted)
	if err != nil {
		return err
	}
	portalPassword, err := utils.Decrypt(record.PortalPassword)
	if err != nil {
		return err
	}
	record.PANEncrypted = pan
	record.PortalPassword = portalPassword
	return nil
}

func panLast4(pan string) string {
	if len(pan) < 4 {
		return pan
	}
	return pan[len(pan)-4:]
}

func AddITR(c *fiber.Ctx) error {
	reqData := new(struct {
		CustomerID     uint   `json:"customerId"`
		BrokerID       *uint  `json:"brokerId"`
		PANNumber      string `json:"panNumber"`
		PortalPassword string `json:"portalPassword"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Customer{}, reqData.CustomerID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	pan := strings.ToUpper(strings.TrimSpace(reqData.PANNumber))

	panEncrypted, err := utils.Encrypt(pan)
	if err != nil {
		log.Printf("Error encrypting PAN: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ITR record!", nil)
	}
	portalPassword, err := utils.Encrypt(reqData.PortalPassword)
	if err != nil {
		log.Printf("Error encrypting portal password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ITR record!", nil)
	}

	newRecord := models.ITRRecord{
		CustomerID:     reqData.CustomerID,
		BrokerID:       reqData.BrokerID,
		PANEncrypted:   panEncrypted,
		PANLast4:       panLast4(pan),
		PortalPassword: portalPassword,
	}

	if err := db.Create(&newRecord).Error; err != nil {
		log.Printf("Error saving ITR record to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ITR record!", nil)
	}

	if err := decryptRecord(&newRecord); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ITR record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "ITR record created successfully.", newRecord)
}

func GetITRByCustomer(c *fiber.Ctx) error {
	customerID, ok := paramID(c, "customerId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
	}

	var records []models.ITRRecord
	err := database.Database.Db.Where("customer_id = ?", customerID).
		Preload("Broker").Preload("Documents").
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ITR records!", nil)
	}

	for i := range records {
		if err := decryptRecord(&records[i]); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ITR records!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "ITR record list.", records)
}

func GetSingleITR(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ITR record ID!", nil)
	}

	var record models.ITRRecord
	err := database.Database.Db.Preload("Customer").Preload("Broker").Preload("Documents").
		First(&record, id).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "ITR record not found!", nil)
	}

	if err := decryptRecord(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ITR record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "ITR record details.", record)
}

// GetAllITR lists ITR records with pagination. The optional search query
// matches the customer's name/mobile or the plaintext PAN suffix; the full
// PAN is ciphertext at rest and is never searched.
func GetAllITR(c *fiber.Ctx) error {
	page, limit, offset := utils.PageParams(c, 20, 30)

	db := database.Database.Db
	query := db.Model(&models.ITRRecord{}).
		Joins("JOIN customers ON customers.id = itr_records.customer_id")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(customers.name) LIKE ? OR customers.mobile LIKE ? OR LOWER(itr_records.pan_last4) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	var records []models.ITRRecord
	err := query.Preload("Customer").Preload("Broker").
		Order("itr_records.created_at DESC").Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ITR records!", nil)
	}

	for i := range records {
		if err := decryptRecord(&records[i]); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ITR records!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "ITR record list.", fiber.Map{
		"itrRecords": records,
		"pagination": utils.Pagination(page, limit, total),
	})
}

func UpdateITR(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ITR record ID!", nil)
	}

	reqData := new(struct {
		PANNumber      string `json:"panNumber"`
		PortalPassword string `json:"portalPassword"`
		BrokerID       *uint  `json:"brokerId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	var record models.ITRRecord
	if err := db.First(&record, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "ITR record not found!", nil)
	}

	if reqData.PANNumber != "" {
		pan := strings.ToUpper(strings.TrimSpace(reqData.PANNumber))
		encrypted, err := utils.Encrypt(pan)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ITR record!", nil)
		}
		record.PANEncrypted = encrypted
		record.PANLast4 = panLast4(pan)
	}
	if reqData.PortalPassword != "" {
		encrypted, err := utils.Encrypt(reqData.PortalPassword)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ITR record!", nil)
		}
		record.PortalPassword = encrypted
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ITR record!", nil)
	}

	if err := decryptRecord(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ITR record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "ITR record updated successfully.", record)
}

func DeleteITR(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ITR record ID!", nil)
	}

	db := database.Database.Db

	var record models.ITRRecord
	if err := db.Preload("Documents").First(&record, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "ITR record not found!", nil)
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
		if err := tx.Unscoped().Where("owner_type = ? AND owner_id = ?", "itr", record.ID).
			Delete(&models.Document{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&record).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete ITR record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "ITR record deleted successfully.", nil)
}

/* DOCUMENTS */

func AddDocument(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ITR record ID!", nil)
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

	var record models.ITRRecord
	if err := db.First(&record, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "ITR record not found!", nil)
	}

	document := models.Document{
		OwnerID:      record.ID,
		OwnerType:    "itr",
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
	db.Where("owner_type = ? AND owner_id = ?", "itr", record.ID).Find(&documents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document added successfully.", documents)
}

func DeleteDocument(c *fiber.Ctx) error {
	itrID, ok := paramID(c, "itrId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ITR record ID!", nil)
	}
	documentID, ok := paramID(c, "documentId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	db := database.Database.Db

	var document models.Document
	err := db.Where("id = ? AND owner_type = ? AND owner_id = ?", documentID, "itr", itrID).
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
