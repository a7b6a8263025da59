package policyController

import (
	"adhya/database"
	"adhya/middleware"
	"adhya/models"
	"adhya/utils"
	"adhya/validators"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// policyView is a policy annotated with its derived expiry state.
type policyView struct {
	models.Policy
	DaysLeft int    `json:"daysLeft"`
	Status   string `json:"status"`
}

func annotate(p models.Policy, today time.Time) policyView {
	end := time.Time(p.PolicyEndDate)
	return policyView{
		Policy:   p,
		DaysLeft: utils.DaysLeft(end, today),
		Status:   utils.PolicyStatus(p.Archived, end, today),
	}
}

func AddPolicy(c *fiber.Ctx) error {
	reqData := new(struct {
		CustomerID      uint   `json:"customerId"`
		BrokerID        *uint  `json:"brokerId"`
		PolicyNumber    string `json:"policyNumber"`
		PolicyStartDate string `json:"policyStartDate"`
		PolicyEndDate   string `json:"policyEndDate"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Customer{}, reqData.CustomerID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	startDate, err := validators.ParseDate(reqData.PolicyStartDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid start date!", nil)
	}
	endDate, err := validators.ParseDate(reqData.PolicyEndDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid end date!", nil)
	}
	if endDate.Before(startDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date cannot be before start date!", nil)
	}

	newPolicy := models.Policy{
		CustomerID:      reqData.CustomerID,
		BrokerID:        reqData.BrokerID,
		PolicyNumber:    reqData.PolicyNumber,
		PolicyStartDate: datatypes.Date(startDate),
		PolicyEndDate:   datatypes.Date(endDate),
	}

	if err := db.Create(&newPolicy).Error; err != nil {
		log.Printf("Error saving policy to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create policy!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Policy created successfully.", newPolicy)
}

func GetPoliciesByCustomer(c *fiber.Ctx) error {
	customerID, ok := paramID(c, "customerId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
	}

	var policies []models.Policy
	err := database.Database.Db.Where("customer_id = ?", customerID).
		Preload("Broker").
		Order("policy_end_date ASC").
		Find(&policies).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch policies!", nil)
	}

	today := time.Now()
	views := make([]policyView, 0, len(policies))
	for _, p := range policies {
		views = append(views, annotate(p, today))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Policy list.", views)
}

func GetSinglePolicy(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid policy ID!", nil)
	}

	var policy models.Policy
	err := database.Database.Db.Preload("Customer").Preload("Broker").Preload("Documents").
		First(&policy, id).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Policy not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Policy details.", annotate(policy, time.Now()))
}

// GetAllPolicies lists policies with archived/status filters and pagination.
// Archived policies are hidden unless explicitly requested.
func GetAllPolicies(c *fiber.Ctx) error {
	page, limit, offset := utils.PageParams(c, 20, 30)

	today := utils.DateOnly(time.Now())
	windowEnd := utils.ExpiryWindowEnd(today)

	db := database.Database.Db
	query := db.Model(&models.Policy{})

	if c.Query("archived") == "true" {
		query = query.Where("archived = ?", true)
	} else {
		query = query.Where("archived = ?", false)
	}

	switch c.Query("status") {
	case "active":
		query = query.Where("policy_end_date > ?", windowEnd)
	case "expiring":
		query = query.Where("policy_end_date >= ? AND policy_end_date <= ?", today, windowEnd)
	case "expired":
		query = query.Where("policy_end_date < ?", today)
	}

	var total int64
	query.Count(&total)

	var policies []models.Policy
	err := query.Preload("Customer").Preload("Broker").
		Order("policy_end_date ASC").Offset(offset).Limit(limit).
		Find(&policies).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch policies!", nil)
	}

	views := make([]policyView, 0, len(policies))
	for _, p := range policies {
		views = append(views, annotate(p, today))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Policy list.", fiber.Map{
		"policies":   views,
		"pagination": utils.Pagination(page, limit, total),
	})
}

func UpdatePolicy(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid policy ID!", nil)
	}

	reqData := new(struct {
		PolicyNumber    string `json:"policyNumber"`
		PolicyStartDate string `json:"policyStartDate"`
		PolicyEndDate   string `json:"policyEndDate"`
		BrokerID        *uint  `json:"brokerId"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db

	var policy models.Policy
	if err := db.First(&policy, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Policy not found!", nil)
	}

	if reqData.PolicyNumber != "" {
		policy.PolicyNumber = reqData.PolicyNumber
	}
	if reqData.PolicyStartDate != "" {
		startDate, err := validators.ParseDate(reqData.PolicyStartDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid start date!", nil)
		}
		policy.PolicyStartDate = datatypes.Date(startDate)
	}
	if reqData.PolicyEndDate != "" {
		endDate, err := validators.ParseDate(reqData.PolicyEndDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid end date!", nil)
		}
		policy.PolicyEndDate = datatypes.Date(endDate)
	}
	// brokerId 0 clears the assignment, omitted leaves it untouched
	if reqData.BrokerID != nil {
		if *reqData.BrokerID == 0 {
			policy.BrokerID = nil
		} else {
			policy.BrokerID = reqData.BrokerID
		}
	}

	// Date order stays a hard invariant after partial updates too
	if time.Time(policy.PolicyEndDate).Before(time.Time(policy.PolicyStartDate)) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date cannot be before start date!", nil)
	}

	if err := db.Save(&policy).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update policy!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Policy updated successfully.", policy)
}

func ArchivePolicy(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid policy ID!", nil)
	}

	result := database.Database.Db.Model(&models.Policy{}).Where("id = ?", id).
		Update("archived", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to archive policy!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Policy not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Policy archived successfully.", nil)
}

// DeletePolicy removes the policy and its attached files from storage.
func DeletePolicy(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid policy ID!", nil)
	}

	db := database.Database.Db

	var policy models.Policy
	if err := db.Preload("Documents").First(&policy, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Policy not found!", nil)
	}

	for _, doc := range policy.Documents {
		if doc.PublicID == "" {
			continue
		}
		if err := utils.RemoveObject(doc.PublicID); err != nil {
			log.Printf("Warning: failed to delete stored object %s: %v", doc.PublicID, err)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("owner_type = ? AND owner_id = ?", "policy", policy.ID).
			Delete(&models.Document{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&policy).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete policy!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Policy deleted successfully.", nil)
}

/* DOCUMENTS */

func AddDocument(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid policy ID!", nil)
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

	var policy models.Policy
	if err := db.First(&policy, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Policy not found!", nil)
	}

	document := models.Document{
		OwnerID:      policy.ID,
		OwnerType:    "policy",
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
	db.Where("owner_type = ? AND owner_id = ?", "policy", policy.ID).Find(&documents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document added successfully.", documents)
}

func DeleteDocument(c *fiber.Ctx) error {
	policyID, ok := paramID(c, "policyId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid policy ID!", nil)
	}
	documentID, ok := paramID(c, "documentId")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	db := database.Database.Db

	var document models.Document
	err := db.Where("id = ? AND owner_type = ? AND owner_id = ?", documentID, "policy", policyID).
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
