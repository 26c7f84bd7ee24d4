package health_test

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

func seedBatch(t *testing.T) models.PoultryBatch {
	t.Helper()
	d, err := models.ParseDate("2026-01-01")
	require.NoError(t, err)
	batch := models.PoultryBatch{Breed: "ISA Brown", Quantity: 100, Age: 20, DateAcquired: d, Status: models.BatchActive}
	require.NoError(t, database.DB.Create(&batch).Error)
	return batch
}

func TestCreateStampsVetFromToken(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	vet := testutil.SeedUser(t, "vet", models.RoleVeterinarian)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	batch := seedBatch(t)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/health/", testutil.TokenFor(t, cfg, vet), map[string]interface{}{
		"batch_id": batch.ID,
		"disease":  "Coccidiosis",
		"status":   "Under Treatment",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := testutil.Decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(vet.ID), data["vet_id"], "recording vet is attached automatically")

	// A manager recording a vaccination is the vet on the record too; a
	// body-supplied vet_id is ignored, like recorded_by elsewhere.
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/health/", testutil.TokenFor(t, cfg, manager), map[string]interface{}{
		"batch_id": batch.ID,
		"vet_id":   9999,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data = testutil.Decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(manager.ID), data["vet_id"])

	var rec models.HealthRecord
	require.NoError(t, database.DB.Order("id DESC").First(&rec).Error)
	require.NotNil(t, rec.VetID)
	assert.Equal(t, manager.ID, *rec.VetID)
}

func TestUpdateReassignsVet(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	vet := testutil.SeedUser(t, "vet", models.RoleVeterinarian)
	token := testutil.TokenFor(t, cfg, manager)
	batch := seedBatch(t)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/health/", token, map[string]interface{}{
		"batch_id": batch.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := testutil.Decode(t, resp)["data"].(map[string]interface{})
	id := int(created["health_id"].(float64))

	resp = testutil.DoJSON(t, app, http.MethodPut, fmt.Sprintf("/api/health/%d", id), token, map[string]interface{}{
		"vet_id": 9999,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, "reassignment must reference an existing user")

	resp = testutil.DoJSON(t, app, http.MethodPut, fmt.Sprintf("/api/health/%d", id), token, map[string]interface{}{
		"vet_id": vet.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := testutil.Decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(vet.ID), data["vet_id"])
}

func TestActiveHealthAlerts(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	vet := testutil.SeedUser(t, "vet", models.RoleVeterinarian)
	token := testutil.TokenFor(t, cfg, vet)
	batch := seedBatch(t)

	seed := []models.HealthRecord{
		{BatchID: batch.ID, Status: models.HealthHealthy},
		{BatchID: batch.ID, Status: models.HealthUnderTreatment, Disease: "Coccidiosis"},
		{BatchID: batch.ID, Status: models.HealthQuarantined, Disease: "Newcastle"},
		{BatchID: batch.ID, Status: models.HealthRecovered, Disease: "Coccidiosis"},
	}
	for i := range seed {
		require.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/health/alerts/active", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutil.Decode(t, resp)
	require.Equal(t, float64(2), body["count"], "only Under Treatment and Quarantined are active alerts")
	for _, raw := range body["data"].([]interface{}) {
		status := raw.(map[string]interface{})["status"].(string)
		assert.Contains(t, []string{"Under Treatment", "Quarantined"}, status)
	}
}

func TestHealthListDiseaseFilter(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	vet := testutil.SeedUser(t, "vet", models.RoleVeterinarian)
	token := testutil.TokenFor(t, cfg, vet)
	batch := seedBatch(t)

	seed := []models.HealthRecord{
		{BatchID: batch.ID, Status: models.HealthUnderTreatment, Disease: "Coccidiosis"},
		{BatchID: batch.ID, Status: models.HealthQuarantined, Disease: "Newcastle Disease"},
	}
	for i := range seed {
		require.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/health/?disease=newcastle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.Decode(t, resp)
	require.Equal(t, float64(1), body["count"])
	rec := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Newcastle Disease", rec["disease"])
}

func TestHealthRoleEnforcement(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)
	batch := seedBatch(t)

	// Workers have no access to health records at all.
	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/health/", testutil.TokenFor(t, cfg, worker), map[string]interface{}{
		"batch_id": batch.ID,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
