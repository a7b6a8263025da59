package customerController_test

import (
	"adhya/config"
	"adhya/database"
	"adhya/middleware"
	"adhya/models"
	"adhya/routers/customerRoutes"
	"adhya/utils"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTest(t *testing.T) (*fiber.App, string) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	customerRoutes.SetupCustomerRoutes(app)

	token, err := middleware.GenerateJWT(1, "owner@example.com", models.RoleOwner)
	require.NoError(t, err)

	return app, token
}

// stubRemoveObject swaps the storage delete for a recorder so cascade tests
// can assert which object keys were cleaned up.
func stubRemoveObject(t *testing.T) *[]string {
	t.Helper()

	var removed []string
	original := utils.RemoveObject
	utils.RemoveObject = func(key string) error {
		removed = append(removed, key)
		return nil
	}
	t.Cleanup(func() { utils.RemoveObject = original })
	return &removed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func createCustomer(t *testing.T, name, mobile, aadhar string) models.Customer {
	t.Helper()

	customer := models.Customer{Name: name, Mobile: mobile}
	if aadhar != "" {
		customer.Aadhar = &aadhar
	}
	require.NoError(t, database.Database.Db.Create(&customer).Error)
	return customer
}

func listedNames(t *testing.T, env envelope) []string {
	t.Helper()

	var data struct {
		Customers []models.Customer `json:"customers"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	names := make([]string, 0, len(data.Customers))
	for _, c := range data.Customers {
		names = append(names, c.Name)
	}
	return names
}

func TestAddCustomer(t *testing.T) {
	app, token := setupTest(t)

	status, env := doRequest(t, app, http.MethodPost, "/api/customers/", token, fiber.Map{
		"name": "Asha Patel", "mobile": "9876543210", "aadhar": "123456789012",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Status)

	// Same aadhar again is a conflict
	status, env = doRequest(t, app, http.MethodPost, "/api/customers/", token, fiber.Map{
		"name": "Someone Else", "mobile": "9123456780", "aadhar": "123456789012",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Aadhar is already registered!", env.Message)

	// Two customers without aadhar can coexist
	for _, name := range []string{"No Aadhar One", "No Aadhar Two"} {
		status, _ = doRequest(t, app, http.MethodPost, "/api/customers/", token, fiber.Map{
			"name": name, "mobile": "9000000001",
		})
		require.Equal(t, http.StatusCreated, status)
	}
}

func TestAddCustomerValidation(t *testing.T) {
	app, token := setupTest(t)

	status, env := doRequest(t, app, http.MethodPost, "/api/customers/", token, fiber.Map{
		"name": "Bad Mobile", "mobile": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed!", env.Message)
}

func TestUpdateCustomer(t *testing.T) {
	app, token := setupTest(t)

	first := createCustomer(t, "Asha Patel", "9876543210", "123456789012")
	second := createCustomer(t, "Ravi Kumar", "9123456780", "")

	// Partial update leaves other fields alone
	path := fmt.Sprintf("/api/customers/%d", second.ID)
	status, _ := doRequest(t, app, http.MethodPut, path, token, fiber.Map{"address": "MG Road, Pune"})
	require.Equal(t, http.StatusOK, status)

	var updated models.Customer
	require.NoError(t, database.Database.Db.First(&updated, second.ID).Error)
	assert.Equal(t, "Ravi Kumar", updated.Name)
	assert.Equal(t, "MG Road, Pune", updated.Address)

	// Claiming another customer's aadhar is a conflict
	status, env := doRequest(t, app, http.MethodPut, path, token, fiber.Map{"aadhar": "123456789012"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Aadhar is already registered!", env.Message)

	// Re-submitting your own aadhar is fine
	path = fmt.Sprintf("/api/customers/%d", first.ID)
	status, _ = doRequest(t, app, http.MethodPut, path, token, fiber.Map{"aadhar": "123456789012"})
	assert.Equal(t, http.StatusOK, status)
}

func TestTrashLifecycle(t *testing.T) {
	app, token := setupTest(t)

	customer := createCustomer(t, "Asha Patel", "9876543210", "")
	keep := createCustomer(t, "Ravi Kumar", "9123456780", "")

	status, _ := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/customers/%d/trash", customer.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	// Gone from the active list, present in trash
	_, env := doRequest(t, app, http.MethodGet, "/api/customers/", token, nil)
	assert.Equal(t, []string{keep.Name}, listedNames(t, env))

	_, env = doRequest(t, app, http.MethodGet, "/api/customers/trash", token, nil)
	assert.Equal(t, []string{customer.Name}, listedNames(t, env))

	var trashed models.Customer
	require.NoError(t, database.Database.Db.First(&trashed, customer.ID).Error)
	assert.True(t, trashed.IsDeleted)
	assert.NotNil(t, trashed.TrashedAt)

	status, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/customers/%d/restore", customer.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	// Re-fetch into a fresh struct: First does not reset pointer fields
	// from NULL columns when the destination is already populated.
	trashed = models.Customer{}
	require.NoError(t, database.Database.Db.First(&trashed, customer.ID).Error)
	assert.False(t, trashed.IsDeleted)
	assert.Nil(t, trashed.TrashedAt)

	status, _ = doRequest(t, app, http.MethodPut, "/api/customers/9999/trash", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBulkTrashAndRestore(t *testing.T) {
	app, token := setupTest(t)

	first := createCustomer(t, "Asha Patel", "9876543210", "")
	second := createCustomer(t, "Ravi Kumar", "9123456780", "")
	createCustomer(t, "Meena Shah", "9000000001", "")

	status, env := doRequest(t, app, http.MethodPut, "/api/customers/bulk-trash", token, fiber.Map{
		"ids": []uint{first.ID, second.ID, 9999},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"modifiedCount":2`)

	_, env = doRequest(t, app, http.MethodGet, "/api/customers/trash", token, nil)
	assert.Len(t, listedNames(t, env), 2)

	status, _ = doRequest(t, app, http.MethodPut, "/api/customers/bulk-restore", token, fiber.Map{
		"ids": []uint{first.ID, second.ID},
	})
	require.Equal(t, http.StatusOK, status)

	_, env = doRequest(t, app, http.MethodGet, "/api/customers/trash", token, nil)
	assert.Empty(t, listedNames(t, env))

	// Empty selection is rejected
	status, _ = doRequest(t, app, http.MethodPut, "/api/customers/bulk-trash", token, fiber.Map{
		"ids": []uint{},
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSearchCustomer(t *testing.T) {
	app, token := setupTest(t)

	createCustomer(t, "Asha Patel", "9876543210", "123456789012")
	trashed := createCustomer(t, "Asha Verma", "9123456780", "")
	createCustomer(t, "Ravi Kumar", "9000000001", "")

	require.NoError(t, database.Database.Db.Model(&models.Customer{}).
		Where("id = ?", trashed.ID).
		Updates(map[string]interface{}{"is_deleted": true, "trashed_at": time.Now()}).Error)

	// Name search is case-insensitive and scoped to the active list
	_, env := doRequest(t, app, http.MethodGet, "/api/customers/search?type=name&q=asha", token, nil)
	assert.Equal(t, []string{"Asha Patel"}, listedNames(t, env))

	// The same query against the trash finds the trashed customer
	_, env = doRequest(t, app, http.MethodGet, "/api/customers/search?type=name&q=asha&isDeleted=true", token, nil)
	assert.Equal(t, []string{"Asha Verma"}, listedNames(t, env))

	// Mobile and aadhar are exact matches
	_, env = doRequest(t, app, http.MethodGet, "/api/customers/search?type=mobile&q=9000000001", token, nil)
	assert.Equal(t, []string{"Ravi Kumar"}, listedNames(t, env))

	_, env = doRequest(t, app, http.MethodGet, "/api/customers/search?type=aadhar&q=123456789012", token, nil)
	assert.Equal(t, []string{"Asha Patel"}, listedNames(t, env))

	_, env = doRequest(t, app, http.MethodGet, "/api/customers/search?type=mobile&q=987654", token, nil)
	assert.Empty(t, listedNames(t, env))
}

func TestPermanentDeleteCascades(t *testing.T) {
	app, token := setupTest(t)
	removed := stubRemoveObject(t)

	db := database.Database.Db
	customer := createCustomer(t, "Asha Patel", "9876543210", "")

	policy := models.Policy{
		CustomerID:      customer.ID,
		PolicyNumber:    "POL-1",
		PolicyStartDate: datatypes.Date(time.Now().AddDate(-1, 0, 0)),
		PolicyEndDate:   datatypes.Date(time.Now().AddDate(0, 1, 0)),
	}
	require.NoError(t, db.Create(&policy).Error)

	gst := models.GSTRecord{
		CustomerID: customer.ID, GSTNumber: "27ABCDE1234F1Z5",
		PortalID: "enc", PortalPassword: "enc", FilingFrequency: models.FilingMonthly,
	}
	require.NoError(t, db.Create(&gst).Error)

	docs := []models.Document{
		{OwnerID: customer.ID, OwnerType: "customer", Label: "Aadhar Card", PublicID: "key-customer", ResourceType: models.ResourceImage},
		{OwnerID: policy.ID, OwnerType: "policy", Label: "Policy PDF", PublicID: "key-policy", ResourceType: models.ResourceRaw},
		{OwnerID: gst.ID, OwnerType: "gst", Label: "GST Cert", PublicID: "key-gst", ResourceType: models.ResourceRaw},
	}
	require.NoError(t, db.Create(&docs).Error)

	status, _ := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/customers/%d/permanent", customer.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	assert.ElementsMatch(t, []string{"key-customer", "key-policy", "key-gst"}, *removed)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Policy{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.GSTRecord{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Document{}).Count(&count)
	assert.Zero(t, count)
}

func TestBulkPermanentDelete(t *testing.T) {
	app, token := setupTest(t)
	stubRemoveObject(t)

	first := createCustomer(t, "Asha Patel", "9876543210", "")
	second := createCustomer(t, "Ravi Kumar", "9123456780", "")
	keep := createCustomer(t, "Meena Shah", "9000000001", "")

	status, env := doRequest(t, app, http.MethodPost, "/api/customers/bulk-permanent", token, fiber.Map{
		"ids": []uint{first.ID, second.ID},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"deletedCount":2`)

	var remaining []models.Customer
	require.NoError(t, database.Database.Db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.Name, remaining[0].Name)
}

func TestCustomerDocuments(t *testing.T) {
	app, token := setupTest(t)
	removed := stubRemoveObject(t)

	customer := createCustomer(t, "Asha Patel", "9876543210", "")

	status, env := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/customers/%d/documents", customer.ID), token, fiber.Map{
		"label": "Aadhar Card", "url": "https://cdn.example.com/a.png",
		"publicId": "key-1", "resourceType": "image",
	})
	require.Equal(t, http.StatusOK, status)

	var documents []models.Document
	require.NoError(t, json.Unmarshal(env.Data, &documents))
	require.Len(t, documents, 1)

	status, env = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/customers/%d/documents", customer.ID), token, fiber.Map{
		"label": "Weird", "url": "https://cdn.example.com/w.bin",
		"publicId": "key-2", "resourceType": "video",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed!", env.Message)

	status, _ = doRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/api/customers/%d/documents/%d", customer.ID, documents[0].ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"key-1"}, *removed)

	var count int64
	database.Database.Db.Model(&models.Document{}).Count(&count)
	assert.Zero(t, count)
}
