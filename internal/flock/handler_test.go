package flock_test

import (
	"fmt"
	"net/http"
	"testing"

	"poultry-backend/internal/database"
	"poultry-backend/internal/models"
	"poultry-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlockCRUDRoundTrip(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	token := testutil.TokenFor(t, cfg, manager)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/flocks/", token, map[string]interface{}{
		"breed":         "ISA Brown",
		"quantity":      500,
		"age":           12,
		"date_acquired": "2026-05-01",
		"housing_unit":  "Coop A",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := testutil.Decode(t, resp)["data"].(map[string]interface{})
	id := uint(created["batch_id"].(float64))
	assert.Equal(t, "Active", created["status"], "status defaults to Active")
	assert.Equal(t, "2026-05-01", created["date_acquired"])

	resp = testutil.DoJSON(t, app, http.MethodGet, fmt.Sprintf("/api/flocks/%d", id), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := testutil.Decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "ISA Brown", fetched["breed"])
	assert.Equal(t, float64(500), fetched["quantity"])

	// Partial update touches only the supplied fields.
	resp = testutil.DoJSON(t, app, http.MethodPut, fmt.Sprintf("/api/flocks/%d", id), token, map[string]interface{}{
		"quantity": 480,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var batch models.PoultryBatch
	require.NoError(t, database.DB.First(&batch, id).Error)
	assert.Equal(t, 480, batch.Quantity)
	assert.Equal(t, "ISA Brown", batch.Breed)
	assert.Equal(t, "Coop A", batch.HousingUnit)
}

func TestCreateFlockValidation(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	token := testutil.TokenFor(t, cfg, manager)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/flocks/", token, map[string]interface{}{
		"breed": "Leghorn",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	msg := testutil.Decode(t, resp)["message"].(string)
	assert.Contains(t, msg, "quantity")
	assert.Contains(t, msg, "age")
	assert.Contains(t, msg, "date_acquired")

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/flocks/", token, map[string]interface{}{
		"breed":         "Leghorn",
		"quantity":      100,
		"age":           4,
		"date_acquired": "05/01/2026",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListFlocksFilters(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	token := testutil.TokenFor(t, cfg, manager)

	seed := []models.PoultryBatch{
		{Breed: "ISA Brown", Quantity: 500, Age: 12, DateAcquired: mustDate(t, "2026-05-01"), HousingUnit: "Coop A", Status: models.BatchActive},
		{Breed: "Leghorn", Quantity: 300, Age: 30, DateAcquired: mustDate(t, "2026-01-10"), HousingUnit: "Coop B", Status: models.BatchActive},
		{Breed: "Sussex", Quantity: 0, Age: 70, DateAcquired: mustDate(t, "2025-03-15"), HousingUnit: "Coop B", Status: models.BatchSold},
	}
	for i := range seed {
		require.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/flocks/?status=Active", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), testutil.Decode(t, resp)["count"])

	// Breed matching is a case-insensitive substring.
	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/flocks/?breed=leg", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.Decode(t, resp)
	require.Equal(t, float64(1), body["count"])
	first := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Leghorn", first["breed"])

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/flocks/?housing_unit=Coop%20B", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), testutil.Decode(t, resp)["count"])
}

func TestFlockRoleEnforcement(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	vet := testutil.SeedUser(t, "vet", models.RoleVeterinarian)
	token := testutil.TokenFor(t, cfg, vet)

	// Veterinarians may view flocks but not create them.
	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/flocks/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/flocks/", token, map[string]interface{}{
		"breed":         "Leghorn",
		"quantity":      100,
		"age":           4,
		"date_acquired": "2026-05-01",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var count int64
	database.DB.Model(&models.PoultryBatch{}).Count(&count)
	assert.Equal(t, int64(0), count, "a denied create leaves no row behind")
}

func TestGetFlockNotFound(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	token := testutil.TokenFor(t, cfg, manager)

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/flocks/9999", token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func mustDate(t *testing.T, s string) models.DateOnly {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}
