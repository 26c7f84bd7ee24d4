package user_test

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

func TestListUsersAdminOnly(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	admin := testutil.SeedUser(t, "admin", models.RoleAdmin)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/users/", testutil.TokenFor(t, cfg, manager), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/users/", testutil.TokenFor(t, cfg, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), testutil.Decode(t, resp)["count"])
}

func TestGetUserSelfOrAdmin(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	admin := testutil.SeedUser(t, "admin", models.RoleAdmin)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)
	other := testutil.SeedUser(t, "other", models.RoleWorker)

	url := fmt.Sprintf("/api/users/%d", worker.ID)

	resp := testutil.DoJSON(t, app, http.MethodGet, url, testutil.TokenFor(t, cfg, worker), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodGet, url, testutil.TokenFor(t, cfg, other), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodGet, url, testutil.TokenFor(t, cfg, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateUserRoleChangeAdminOnly(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	admin := testutil.SeedUser(t, "admin", models.RoleAdmin)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)

	url := fmt.Sprintf("/api/users/%d", worker.ID)

	// A user may update their own profile but not promote themselves.
	resp := testutil.DoJSON(t, app, http.MethodPut, url, testutil.TokenFor(t, cfg, worker), map[string]interface{}{
		"name": "Renamed Worker",
		"role": "Admin",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPut, url, testutil.TokenFor(t, cfg, worker), map[string]interface{}{
		"name": "Renamed Worker",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPut, url, testutil.TokenFor(t, cfg, admin), map[string]interface{}{
		"role": "Manager",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, database.DB.First(&updated, worker.ID).Error)
	assert.Equal(t, "Renamed Worker", updated.Name)
	assert.Equal(t, models.RoleManager, updated.Role)
}

func TestUpdateUserEmailUniqueness(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	testutil.SeedUser(t, "taken", models.RoleWorker)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)

	resp := testutil.DoJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d", worker.ID),
		testutil.TokenFor(t, cfg, worker), map[string]interface{}{
			"email": "taken@farm.test",
		})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email is already registered", testutil.Decode(t, resp)["message"])
}

func TestDeleteUser(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	admin := testutil.SeedUser(t, "admin", models.RoleAdmin)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)
	adminToken := testutil.TokenFor(t, cfg, admin)

	// Admins cannot delete themselves.
	resp := testutil.DoJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", admin.ID), adminToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", worker.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
