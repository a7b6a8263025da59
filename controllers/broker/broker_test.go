package brokerController_test

import (
	"adhya/config"
	"adhya/database"
	"adhya/middleware"
	"adhya/models"
	"adhya/routers/brokerRoutes"
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
	brokerRoutes.SetupBrokerRoutes(app)

	token, err := middleware.GenerateJWT(1, "owner@example.com", models.RoleOwner)
	require.NoError(t, err)

	return app, token
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

func createBroker(t *testing.T, name string) models.Broker {
	t.Helper()

	broker := models.Broker{Name: name, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&broker).Error)
	return broker
}

func TestAddBroker(t *testing.T) {
	app, token := setupTest(t)

	status, env := doRequest(t, app, http.MethodPost, "/api/brokers/", token, fiber.Map{
		"name": "Sunil Joshi", "mobile": "9876543210",
	})
	require.Equal(t, http.StatusCreated, status)

	var created models.Broker
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.IsActive)

	status, _ = doRequest(t, app, http.MethodPost, "/api/brokers/", token, fiber.Map{
		"name": "X",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDisableAndEnableBroker(t *testing.T) {
	app, token := setupTest(t)

	broker := createBroker(t, "Sunil Joshi")
	createBroker(t, "Priya Nair")

	status, _ := doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/brokers/%d/disable", broker.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	names := func(env envelope) []string {
		var brokers []models.Broker
		require.NoError(t, json.Unmarshal(env.Data, &brokers))
		out := make([]string, 0, len(brokers))
		for _, b := range brokers {
			out = append(out, b.Name)
		}
		return out
	}

	// Disabled brokers leave the active list but stay in the full list
	_, env := doRequest(t, app, http.MethodGet, "/api/brokers/active", token, nil)
	assert.Equal(t, []string{"Priya Nair"}, names(env))

	_, env = doRequest(t, app, http.MethodGet, "/api/brokers/", token, nil)
	assert.Len(t, names(env), 2)

	status, _ = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/brokers/%d/enable", broker.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	_, env = doRequest(t, app, http.MethodGet, "/api/brokers/active", token, nil)
	assert.Len(t, names(env), 2)

	status, _ = doRequest(t, app, http.MethodPatch, "/api/brokers/9999/disable", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBrokerSummary(t *testing.T) {
	app, token := setupTest(t)

	db := database.Database.Db
	customer := models.Customer{Name: "Asha Patel", Mobile: "9876543210"}
	require.NoError(t, db.Create(&customer).Error)

	busy := createBroker(t, "Sunil Joshi")
	idle := createBroker(t, "Priya Nair")

	today := datatypes.Date(time.Now())
	require.NoError(t, db.Create(&models.Policy{
		CustomerID: customer.ID, BrokerID: &busy.ID, PolicyNumber: "POL-1",
		PolicyStartDate: today, PolicyEndDate: today,
	}).Error)
	require.NoError(t, db.Create(&models.GSTRecord{
		CustomerID: customer.ID, BrokerID: &busy.ID, GSTNumber: "27ABCDE1234F1Z5",
		PortalID: "enc", PortalPassword: "enc", FilingFrequency: models.FilingMonthly,
	}).Error)
	require.NoError(t, db.Create(&models.ITRRecord{
		CustomerID: customer.ID, BrokerID: &busy.ID,
		PANEncrypted: "enc", PANLast4: "234E", PortalPassword: "enc",
	}).Error)

	status, env := doRequest(t, app, http.MethodGet, "/api/brokers/summary", token, nil)
	require.Equal(t, http.StatusOK, status)

	var summary []struct {
		Broker      models.Broker `json:"broker"`
		PolicyCount int64         `json:"policyCount"`
		ITRCount    int64         `json:"itrCount"`
		GSTCount    int64         `json:"gstCount"`
		TotalWork   int64         `json:"totalWork"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	require.Len(t, summary, 2)

	byName := map[string]int64{}
	for _, row := range summary {
		byName[row.Broker.Name] = row.TotalWork
	}
	assert.Equal(t, int64(3), byName[busy.Name])
	assert.Equal(t, int64(0), byName[idle.Name])
}

func TestBrokerWork(t *testing.T) {
	app, token := setupTest(t)

	db := database.Database.Db
	customer := models.Customer{Name: "Asha Patel", Mobile: "9876543210"}
	require.NoError(t, db.Create(&customer).Error)

	broker := createBroker(t, "Sunil Joshi")

	today := datatypes.Date(time.Now())
	require.NoError(t, db.Create(&models.Policy{
		CustomerID: customer.ID, BrokerID: &broker.ID, PolicyNumber: "POL-1",
		PolicyStartDate: today, PolicyEndDate: today,
	}).Error)
	require.NoError(t, db.Create(&models.GSTRecord{
		CustomerID: customer.ID, BrokerID: &broker.ID, GSTNumber: "27ABCDE1234F1Z5",
		PortalID: "enc", PortalPassword: "enc", FilingFrequency: models.FilingMonthly,
	}).Error)

	type workData struct {
		Type    string            `json:"type"`
		Records []json.RawMessage `json:"records"`
	}

	// Default type is policy
	status, env := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/brokers/%d/work", broker.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var data workData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "policy", data.Type)
	assert.Len(t, data.Records, 1)

	status, env = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/brokers/%d/work?type=gst", broker.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Records, 1)

	status, env = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/brokers/%d/work?type=itr", broker.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Records)

	// A window in the past excludes today's records
	past := time.Now().AddDate(0, 0, -10).Format("2006-01-02")
	pastEnd := time.Now().AddDate(0, 0, -5).Format("2006-01-02")
	status, env = doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/api/brokers/%d/work?from=%s&to=%s", broker.ID, past, pastEnd), token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Records)

	status, _ = doRequest(t, app, http.MethodGet, "/api/brokers/9999/work", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/brokers/%d/work?type=bogus", broker.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
