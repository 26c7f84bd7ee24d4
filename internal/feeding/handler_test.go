package feeding_test

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

func TestCreateFeedRecord(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)
	token := testutil.TokenFor(t, cfg, worker)
	batch := seedBatch(t)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/feeding/", token, map[string]interface{}{
		"batch_id":  batch.ID,
		"feed_type": "Layer Mash",
		"quantity":  25.5,
		"date":      "2026-08-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := testutil.Decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "kg", data["unit"], "unit defaults to kg")
	assert.Equal(t, float64(worker.ID), data["recorded_by"])

	batchData := data["batch"].(map[string]interface{})
	assert.Equal(t, "ISA Brown", batchData["breed"], "response carries the expanded batch")
}

func TestCreateFeedRecordUnknownBatch(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)
	token := testutil.TokenFor(t, cfg, worker)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/feeding/", token, map[string]interface{}{
		"batch_id":  9999,
		"feed_type": "Layer Mash",
		"quantity":  25,
		"date":      "2026-08-01",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListFeedRecordsForBatch(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)
	token := testutil.TokenFor(t, cfg, worker)
	batch := seedBatch(t)
	other := seedBatch(t)

	d, err := models.ParseDate("2026-08-01")
	require.NoError(t, err)
	for _, b := range []models.PoultryBatch{batch, batch, other} {
		require.NoError(t, database.DB.Create(&models.FeedRecord{
			BatchID: b.ID, FeedType: "Layer Mash", Quantity: 10, Unit: "kg",
			Date: d, RecordedBy: worker.ID,
		}).Error)
	}

	resp := testutil.DoJSON(t, app, http.MethodGet, fmt.Sprintf("/api/feeding/batch/%d", batch.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), testutil.Decode(t, resp)["count"])
}

func TestFeedRecordUpdateDeleteRoles(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	batch := seedBatch(t)

	d, err := models.ParseDate("2026-08-01")
	require.NoError(t, err)
	rec := models.FeedRecord{BatchID: batch.ID, FeedType: "Layer Mash", Quantity: 10, Unit: "kg", Date: d, RecordedBy: worker.ID}
	require.NoError(t, database.DB.Create(&rec).Error)
	url := fmt.Sprintf("/api/feeding/%d", rec.ID)

	// Workers record feedings but cannot revise or remove them.
	resp := testutil.DoJSON(t, app, http.MethodPut, url, testutil.TokenFor(t, cfg, worker), map[string]interface{}{
		"quantity": 12,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	managerToken := testutil.TokenFor(t, cfg, manager)
	resp = testutil.DoJSON(t, app, http.MethodPut, url, managerToken, map[string]interface{}{
		"quantity": 12,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodDelete, url, managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.FeedRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
