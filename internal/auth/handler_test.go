package auth_test

import (
	"net/http"
	"testing"

	"poultry-backend/internal/models"
	"poultry-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMe(t *testing.T) {
	app, _ := testutil.NewApp(t)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Kofi",
		"email":    "Kofi@Farm.Test",
		"password": "secret123",
		"role":     "Worker",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := testutil.Decode(t, resp)
	data := body["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "kofi@farm.test", user["email"], "email is normalized to lower case")
	assert.NotContains(t, user, "password_hash")

	// Same credentials log in, with the email in its original casing.
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "KOFI@farm.test",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loginData := testutil.Decode(t, resp)["data"].(map[string]interface{})
	loginToken, _ := loginData["token"].(string)
	require.NotEmpty(t, loginToken)

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/auth/me", loginToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := testutil.Decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "Kofi", me["name"])
	assert.Equal(t, "Worker", me["role"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := testutil.NewApp(t)
	testutil.SeedUser(t, "existing", models.RoleWorker)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Existing Again",
		"email":    "existing@farm.test",
		"password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email is already registered", testutil.Decode(t, resp)["message"])
}

func TestRegisterValidation(t *testing.T) {
	app, _ := testutil.NewApp(t)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "",
		"email":    "nobody@farm.test",
		"password": "123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Bad Role",
		"email":    "badrole@farm.test",
		"password": "secret123",
		"role":     "Overlord",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid role", testutil.Decode(t, resp)["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := testutil.NewApp(t)
	testutil.SeedUser(t, "worker", models.RoleWorker)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "worker@farm.test",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", testutil.Decode(t, resp)["message"])

	// Unknown email produces the same message so the two cases are
	// indistinguishable to a caller.
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "ghost@farm.test",
		"password": "password123",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", testutil.Decode(t, resp)["message"])
}

func TestPermissionsEndpoint(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	worker := testutil.SeedUser(t, "worker", models.RoleWorker)
	token := testutil.TokenFor(t, cfg, worker)

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/auth/permissions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := testutil.Decode(t, resp)["data"].(map[string]interface{})
	routes := data["routes"].(map[string]interface{})
	assert.Contains(t, routes, "dashboard")
	assert.Contains(t, routes, "users")

	actions := data["actions"].(map[string]interface{})
	flocks := actions["flocks"].(map[string]interface{})
	create := flocks["create"].([]interface{})
	assert.Contains(t, create, "Admin")
	assert.Contains(t, create, "Manager")
	assert.NotContains(t, create, "Worker")
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _ := testutil.NewApp(t)

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/flocks/", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
