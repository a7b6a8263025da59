package customerController

import (
	"adhya/database"
	"adhya/middleware"
	"adhya/models"
	"adhya/utils"
	"errors"
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

func AddCustomer(c *fiber.Ctx) error {
	reqData := new(struct {
		Name    string `json:"name"`
		Mobile  string `json:"mobile"`
		Aadhar  string `json:"aadhar"`
		Address string `json:"address"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	newCustomer := models.Customer{
		Name:    strings.TrimSpace(reqData.Name),
		Mobile:  reqData.Mobile,
		Address: reqData.Address,
	}

	// Aadhar is optional; uniqueness applies only when present
	if reqData.Aadhar != "" {
		if err := db.Where("aadhar = ?", reqData.Aadhar).First(&models.Customer{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Aadhar is already registered!", nil)
		}
		newCustomer.Aadhar = &reqData.Aadhar
	}

	if err := db.Create(&newCustomer).Error; err != nil {
		log.Printf("Error saving customer to database: %v", err)
		// Normalize duplicate-key races the pre-check missed
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Aadhar is already registered!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create customer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Customer created successfully.", newCustomer)
}

func GetSingleCustomer(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
	}

	var customer models.Customer
	if err := database.Database.Db.Preload("Documents").First(&customer, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customer details.", customer)
}

func UpdateCustomerDetails(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
	}

	reqData := new(struct {
		Name    *string `json:"name"`
		Mobile  *string `json:"mobile"`
		Aadhar  *string `json:"aadhar"`
		Address *string `json:"address"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	if reqData.Name != nil {
		customer.Name = strings.TrimSpace(*reqData.Name)
	}
	if reqData.Mobile != nil {
		customer.Mobile = *reqData.Mobile
	}
	if reqData.Address != nil {
		customer.Address = *reqData.Address
	}
	if reqData.Aadhar != nil {
		if *reqData.Aadhar == "" {
			customer.Aadhar = nil
		} else {
			var other models.Customer
			if err := db.Where("aadhar = ? AND id <> ?", *reqData.Aadhar, id).First(&other).Error; err == nil {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Aadhar is already registered!", nil)
			}
			customer.Aadhar = reqData.Aadhar
		}
	}

	if err := db.Save(&customer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update customer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customer updated successfully.", customer)
}

// listCustomers serves both the active list and the trash view.
func listCustomers(c *fiber.Ctx, trashed bool) error {
	page, limit, offset := utils.PageParams(c, 10, 20)

	db := database.Database.Db

	var customers []models.Customer
	var total int64

	query := db.Model(&models.Customer{}).Where("is_deleted = ?", trashed)
	query.Count(&total)

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&customers).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch customers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customer list.", fiber.Map{
		"customers":  customers,
		"pagination": utils.Pagination(page, limit, total),
	})
}

func GetCustomers(c *fiber.Ctx) error {
	return listCustomers(c, false)
}

func GetTrashCustomers(c *fiber.Ctx) error {
	return listCustomers(c, true)
}

// SearchCustomer searches one field at a time, scoped by the isDeleted flag so
// the same endpoint serves the active list and the trash view.
func SearchCustomer(c *fiber.Ctx) error {
	page, limit, offset := utils.PageParams(c, 10, 50)

	searchType := c.Query("type")
	q := c.Query("q")
	trashed := c.Query("isDeleted") == "true"

	db := database.Database.Db
	query := db.Model(&models.Customer{}).Where("is_deleted = ?", trashed)

	switch searchType {
	case "name":
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	case "mobile":
		query = query.Where("mobile = ?", q)
	case "aadhar":
		query = query.Where("aadhar = ?", q)
	case "address":
		query = query.Where("LOWER(address) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	query.Count(&total)

	var customers []models.Customer
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search customers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search results.", fiber.Map{
		"customers":  customers,
		"pagination": utils.Pagination(page, limit, total),
	})
}

/* TRASH LIFECYCLE */

func SoftDeleteCustomer(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
	}

	now := time.Now()
	result := database.Database.Db.Model(&models.Customer{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "trashed_at": now})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to move customer to trash!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Moved to trash.", nil)
}

func RestoreCustomer(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
	}

	result := database.Database.Db.Model(&models.Customer{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": false, "trashed_at": nil})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to restore customer!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customer restored.", nil)
}

func bulkIDs(c *fiber.Ctx) ([]uint, bool) {
	reqData := new(struct {
		IDs []uint `json:"ids"`
	})
	if err := c.BodyParser(reqData); err != nil || len(reqData.IDs) == 0 {
		return nil, false
	}
	return reqData.IDs, true
}

func BulkSoftDelete(c *fiber.Ctx) error {
	ids, ok := bulkIDs(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No customer IDs provided", nil)
	}

	now := time.Now()
	result := database.Database.Db.Model(&models.Customer{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{"is_deleted": true, "trashed_at": now})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to move customers to trash!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customers moved to trash.", fiber.Map{
		"modifiedCount": result.RowsAffected,
	})
}

func BulkRestore(c *fiber.Ctx) error {
	ids, ok := bulkIDs(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No customer IDs provided", nil)
	}

	result := database.Database.Db.Model(&models.Customer{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{"is_deleted": false, "trashed_at": nil})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to restore customers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customers restored.", fiber.Map{
		"modifiedCount": result.RowsAffected,
	})
}

// PermanentDeleteCustomer removes the customer, every owned Policy/GST/ITR
// record and all attached files in the object store.
func PermanentDeleteCustomer(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
	}

	db := database.Database.Db

	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	if err := utils.PermanentDeleteCustomer(db, customer.ID); err != nil {
		log.Printf("Error permanently deleting customer %d: %v", customer.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete customer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customer permanently deleted.", nil)
}

func BulkPermanentDelete(c *fiber.Ctx) error {
	ids, ok := bulkIDs(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No customer IDs provided", nil)
	}

	db := database.Database.Db

	var customers []models.Customer
	if err := db.Where("id IN ?", ids).Find(&customers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete customers!", nil)
	}

	deleted := 0
	for _, customer := range customers {
		if err := utils.PermanentDeleteCustomer(db, customer.ID); err != nil {
			log.Printf("Error permanently deleting customer %d: %v", customer.ID, err)
			continue
		}
		deleted++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customers permanently deleted.", fiber.Map{
		"deletedCount": deleted,
	})
}

/* DOCUMENTS */

func AddDocument(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
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

	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	document := models.Document{
		OwnerID:      customer.ID,
		OwnerType:    "customer",
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
	db.Where("owner_type = ? AND owner_id = ?", "customer", customer.ID).Find(&documents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document added successfully.", documents)
}

func DeleteDocument(c *fiber.Ctx) error {
	customerID, ok := paramID(c, "customerId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
	}
	documentID, ok := paramID(c, "documentId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	db := database.Database.Db

	var document models.Document
	err := db.Where("id = ? AND owner_type = ? AND owner_id = ?", documentID, "customer", customerID).
		First(&document).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	// Storage delete is best-effort; the DB row goes away regardless
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
