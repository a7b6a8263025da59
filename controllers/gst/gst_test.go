package gstController_test

import (
	"adhya/config"
	"adhya/database"
	"adhya/middleware"
	"adhya/models"
	"adhya/routers/gstRoutes"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTest(t *testing.T) (*fiber.App, string, models.Customer) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:        "test-secret",
		SaltRound:     4,
		EncryptionKey: strings.Repeat("ab", 32),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	customer := models.Customer{Name: "Asha Patel", Mobile: "9876543210"}
	require.NoError(t, db.Create(&customer).Error)

	app := fiber.New()
	gstRoutes.SetupGSTRoutes(app)

	token, err := middleware.GenerateJWT(1, "owner@example.com", models.RoleOwner)
	require.NoError(t, err)

	return app, token, customer
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

func TestAddGSTEncryptsCredentialsAtRest(t *testing.T) {
	app, token, customer := setupTest(t)

	status, env := doRequest(t, app, http.MethodPost, "/api/gst/", token, fiber.Map{
		"customerId":      customer.ID,
		"gstNumber":       "27abcde1234f1z5",
		"portalId":        "asha.gst",
		"portalPassword":  "portal-secret",
		"filingFrequency": "MONTHLY",
	})
	require.Equal(t, http.StatusCreated, status)

	// The response carries plaintext and the uppercased GSTIN
	var created models.GSTRecord
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "27ABCDE1234F1Z5", created.GSTNumber)
	assert.Equal(t, "asha.gst", created.PortalID)
	assert.Equal(t, "portal-secret", created.PortalPassword)

	// The stored row carries ciphertext
	var stored models.GSTRecord
	require.NoError(t, database.Database.Db.First(&stored, created.ID).Error)
	assert.NotEqual(t, "asha.gst", stored.PortalID)
	assert.NotEqual(t, "portal-secret", stored.PortalPassword)
	assert.Contains(t, stored.PortalID, ":")
	assert.Contains(t, stored.PortalPassword, ":")
}

func TestGSTValidation(t *testing.T) {
	app, token, customer := setupTest(t)

	status, env := doRequest(t, app, http.MethodPost, "/api/gst/", token, fiber.Map{
		"customerId":      customer.ID,
		"gstNumber":       "NOT-A-GSTIN",
		"portalId":        "asha.gst",
		"portalPassword":  "portal-secret",
		"filingFrequency": "MONTHLY",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed!", env.Message)

	status, _ = doRequest(t, app, http.MethodPost, "/api/gst/", token, fiber.Map{
		"customerId":      customer.ID,
		"gstNumber":       "27ABCDE1234F1Z5",
		"portalId":        "asha.gst",
		"portalPassword":  "portal-secret",
		"filingFrequency": "WEEKLY",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetGSTDecryptsOnRead(t *testing.T) {
	app, token, customer := setupTest(t)

	status, env := doRequest(t, app, http.MethodPost, "/api/gst/", token, fiber.Map{
		"customerId":      customer.ID,
		"gstNumber":       "27ABCDE1234F1Z5",
		"portalId":        "asha.gst",
		"portalPassword":  "portal-secret",
		"filingFrequency": "QUARTERLY",
	})
	require.Equal(t, http.StatusCreated, status)

	var created models.GSTRecord
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/gst/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var fetched models.GSTRecord
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "asha.gst", fetched.PortalID)
	assert.Equal(t, "portal-secret", fetched.PortalPassword)

	status, env = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/gst/customer/%d", customer.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var records []models.GSTRecord
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "portal-secret", records[0].PortalPassword)
}

func TestUpdateGSTReEncrypts(t *testing.T) {
	app, token, customer := setupTest(t)

	status, env := doRequest(t, app, http.MethodPost, "/api/gst/", token, fiber.Map{
		"customerId":      customer.ID,
		"gstNumber":       "27ABCDE1234F1Z5",
		"portalId":        "asha.gst",
		"portalPassword":  "old-secret",
		"filingFrequency": "MONTHLY",
	})
	require.Equal(t, http.StatusCreated, status)

	var created models.GSTRecord
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/gst/%d", created.ID), token, fiber.Map{
		"portalPassword":  "new-secret",
		"filingFrequency": "YEARLY",
	})
	require.Equal(t, http.StatusOK, status)

	var updated models.GSTRecord
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "new-secret", updated.PortalPassword)
	assert.Equal(t, models.FilingYearly, updated.FilingFrequency)
	assert.Equal(t, "asha.gst", updated.PortalID) // untouched field survives

	var stored models.GSTRecord
	require.NoError(t, database.Database.Db.First(&stored, created.ID).Error)
	assert.NotEqual(t, "new-secret", stored.PortalPassword)
}

func TestGetAllGSTSearch(t *testing.T) {
	app, token, customer := setupTest(t)

	other := models.Customer{Name: "Ravi Kumar", Mobile: "9123456780"}
	require.NoError(t, database.Database.Db.Create(&other).Error)

	for _, seed := range []struct {
		customerID uint
		gstin      string
	}{
		{customer.ID, "27ABCDE1234F1Z5"},
		{other.ID, "07FGHIJ5678K1Z9"},
	} {
		status, _ := doRequest(t, app, http.MethodPost, "/api/gst/", token, fiber.Map{
			"customerId":      seed.customerID,
			"gstNumber":       seed.gstin,
			"portalId":        "login",
			"portalPassword":  "secret",
			"filingFrequency": "MONTHLY",
		})
		require.Equal(t, http.StatusCreated, status)
	}

	gstins := func(env envelope) []string {
		var data struct {
			GSTRecords []models.GSTRecord `json:"gstRecords"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		out := make([]string, 0, len(data.GSTRecords))
		for _, r := range data.GSTRecords {
			out = append(out, r.GSTNumber)
		}
		return out
	}

	_, env := doRequest(t, app, http.MethodGet, "/api/gst/allGST", token, nil)
	assert.Len(t, gstins(env), 2)

	// Search by customer name
	_, env = doRequest(t, app, http.MethodGet, "/api/gst/allGST?search=asha", token, nil)
	assert.Equal(t, []string{"27ABCDE1234F1Z5"}, gstins(env))

	// Search by GST number fragment
	_, env = doRequest(t, app, http.MethodGet, "/api/gst/allGST?search=fghij", token, nil)
	assert.Equal(t, []string{"07FGHIJ5678K1Z9"}, gstins(env))

	// Search by mobile
	_, env = doRequest(t, app, http.MethodGet, "/api/gst/allGST?search=9123456780", token, nil)
	assert.Equal(t, []string{"07FGHIJ5678K1Z9"}, gstins(env))

	_, env = doRequest(t, app, http.MethodGet, "/api/gst/allGST?search=nomatch", token, nil)
	assert.Empty(t, gstins(env))
}
