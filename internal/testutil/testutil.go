// Package testutil wires an in-memory database and a fully routed app for
// handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"poultry-backend/internal/auth"
	"poultry-backend/internal/config"
	"poultry-backend/internal/database"
	"poultry-backend/internal/models"
	"poultry-backend/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

// TestConfig returns a config suitable for tests; no environment access.
func TestConfig() *config.Config {
	return &config.Config{
		HTTPPort:    "0",
		JWTSecret:   "test-secret-key-0123456789abcdefghij",
		JWTTTL:      time.Hour,
		CORSOrigins: "http://localhost",
		AlertCron:   "@hourly",
		Environment: "development",
	}
}

// SetupDB opens a fresh in-memory sqlite database, migrates the schema and
// installs it as the shared handle.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
	return db
}

// NewApp builds the full app against a fresh test database.
func NewApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()

	cfg := TestConfig()
	SetupDB(t)
	return server.New(cfg, nil), cfg
}

// SeedUser stores a user with the password "password123".
func SeedUser(t *testing.T, name string, role models.UserRole) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@farm.test", name),
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

// TokenFor issues a valid token for the user.
func TokenFor(t *testing.T, cfg *config.Config, u models.User) string {
	t.Helper()

	token, err := auth.GenerateToken(cfg.JWTSecret, &u, cfg.JWTTTL)
	require.NoError(t, err)
	return token
}

// DoJSON runs a request through the app. A nil body sends no payload; an
// empty token sends no Authorization header.
func DoJSON(t *testing.T, app *fiber.App, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Decode unmarshals a response body into a generic envelope.
func Decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
