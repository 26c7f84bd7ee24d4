package expense_test

import (
	"net/http"
	"testing"

	"poultry-backend/internal/database"
	"poultry-backend/internal/models"
	"poultry-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) models.DateOnly {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestCreateExpense(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	token := testutil.TokenFor(t, cfg, manager)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/expenses/", token, map[string]interface{}{
		"category":    "Feed",
		"description": "Monthly feed order",
		"amount":      320.5,
		"date":        "2026-08-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := testutil.Decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(320.5), data["amount"])
	assert.Equal(t, float64(manager.ID), data["recorded_by"])
}

func TestExpenseCategoryFilter(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	token := testutil.TokenFor(t, cfg, manager)

	seed := []models.Expense{
		{Category: models.ExpenseFeed, Description: "feed", Amount: 100, Date: mustDate(t, "2026-08-01"), RecordedBy: manager.ID},
		{Category: models.ExpenseLabor, Description: "wages", Amount: 400, Date: mustDate(t, "2026-08-01"), RecordedBy: manager.ID},
	}
	for i := range seed {
		require.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/expenses/?category=Labor", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.Decode(t, resp)
	require.Equal(t, float64(1), body["count"])
	exp := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "wages", exp["description"])
}

func TestExpenseStatsSummary(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	token := testutil.TokenFor(t, cfg, manager)

	seed := []models.Expense{
		{Category: models.ExpenseFeed, Description: "feed", Amount: 100, Date: mustDate(t, "2026-08-01"), RecordedBy: manager.ID},
		{Category: models.ExpenseFeed, Description: "more feed", Amount: 50, Date: mustDate(t, "2026-08-10"), RecordedBy: manager.ID},
		{Category: models.ExpenseLabor, Description: "wages", Amount: 400, Date: mustDate(t, "2026-08-15"), RecordedBy: manager.ID},
	}
	for i := range seed {
		require.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/expenses/stats/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := testutil.Decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(550), data["totalExpenses"])
	assert.Equal(t, float64(3), data["expenseCount"])

	byCategory := data["expensesByCategory"].([]interface{})
	assert.Len(t, byCategory, 2)
}

func TestExpenseDateRangeFilter(t *testing.T) {
	app, cfg := testutil.NewApp(t)
	manager := testutil.SeedUser(t, "manager", models.RoleManager)
	token := testutil.TokenFor(t, cfg, manager)

	seed := []models.Expense{
		{Category: models.ExpenseFeed, Description: "july", Amount: 100, Date: mustDate(t, "2026-07-15"), RecordedBy: manager.ID},
		{Category: models.ExpenseFeed, Description: "august", Amount: 50, Date: mustDate(t, "2026-08-10"), RecordedBy: manager.ID},
	}
	for i := range seed {
		require.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/expenses/?start_date=2026-08-01&end_date=2026-08-31", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.Decode(t, resp)
	require.Equal(t, float64(1), body["count"])
	exp := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "august", exp["description"])
}
