package expense

import (
	"strings"

	"poultry-backend/internal/auth"
	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateExpenseRequest struct {
	Category    models.ExpenseCategory `json:"category"`
	Description string                 `json:"description"`
	Amount      *float64               `json:"amount"`
	Date        string                 `json:"date"`
	Notes       string                 `json:"notes"`
}

type UpdateExpenseRequest struct {
	Category    *models.ExpenseCategory `json:"category"`
	Description *string                 `json:"description"`
	Amount      *float64                `json:"amount"`
	Date        *string                 `json:"date"`
	Notes       *string                 `json:"notes"`
}

func loadExpanded(id uint) (models.Expense, error) {
	var exp models.Expense
	err := database.DB.Preload("Recorder").First(&exp, id).Error
	return exp, err
}

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Description = strings.TrimSpace(body.Description)

		var missing []string
		if body.Category == "" {
			missing = append(missing, "category")
		}
		if body.Description == "" {
			missing = append(missing, "description")
		}
		if body.Amount == nil || *body.Amount < 0 {
			missing = append(missing, "amount")
		}
		if body.Date == "" {
			missing = append(missing, "date")
		}
		if len(missing) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Missing or invalid fields: "+strings.Join(missing, ", "))
		}

		if !models.ValidExpenseCategory(body.Category) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid category")
		}

		date, err := models.ParseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be in YYYY-MM-DD format")
		}

		exp := models.Expense{
			Category:    body.Category,
			Description: body.Description,
			Amount:      *body.Amount,
			Date:        date,
			Notes:       body.Notes,
			RecordedBy:  principal.ID,
		}
		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create expense")
		}

		expanded, err := loadExpanded(exp.ID)
		if err != nil {
			expanded = exp
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Expense created successfully",
			"data":    expanded,
		})
	}
}

// GET /api/expenses
//
// Filters: category (exact), inclusive date range.
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Expense{}).Preload("Recorder")

		if cat := c.Query("category"); cat != "" {
			q = q.Where("category = ?", cat)
		}
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}
		q = httpx.ApplyDateRange(q, "date", start, end)

		var expenses []models.Expense
		if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch expenses")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(expenses),
			"data":    expenses,
		})
	}
}

// GET /api/expenses/stats/summary
func ExpenseStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}

		var summary struct {
			TotalExpenses float64
			ExpenseCount  int64
		}
		q := httpx.ApplyDateRange(database.DB.Model(&models.Expense{}), "date", start, end)
		if err := q.Select("COALESCE(SUM(amount), 0) AS total_expenses, COUNT(*) AS expense_count").
			Scan(&summary).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch expense statistics")
		}

		type categoryAmount struct {
			Category models.ExpenseCategory `json:"category"`
			Amount   float64                `json:"amount"`
		}
		var byCategory []categoryAmount
		httpx.ApplyDateRange(database.DB.Model(&models.Expense{}), "date", start, end).
			Select("category, COALESCE(SUM(amount), 0) AS amount").
			Group("category").
			Scan(&byCategory)

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"totalExpenses":      summary.TotalExpenses,
				"expenseCount":       summary.ExpenseCount,
				"expensesByCategory": byCategory,
			},
		})
	}
}

// GET /api/expenses/:id
func GetExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		exp, err := loadExpanded(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    exp,
		})
	}
}

// PUT /api/expenses/:id
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var exp models.Expense
		if err := database.DB.First(&exp, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Category != nil {
			if !models.ValidExpenseCategory(*body.Category) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid category")
			}
			exp.Category = *body.Category
		}
		if body.Description != nil {
			desc := strings.TrimSpace(*body.Description)
			if desc == "" {
				return fiber.NewError(fiber.StatusBadRequest, "description cannot be empty")
			}
			exp.Description = desc
		}
		if body.Amount != nil {
			if *body.Amount < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "amount cannot be negative")
			}
			exp.Amount = *body.Amount
		}
		if body.Date != nil {
			date, err := models.ParseDate(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be in YYYY-MM-DD format")
			}
			exp.Date = date
		}
		if body.Notes != nil {
			exp.Notes = *body.Notes
		}

		if err := database.DB.Save(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update expense")
		}

		expanded, err := loadExpanded(exp.ID)
		if err != nil {
			expanded = exp
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Expense updated successfully",
			"data":    expanded,
		})
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var exp models.Expense
		if err := database.DB.First(&exp, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}

		if err := database.DB.Delete(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete expense")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Expense deleted successfully",
		})
	}
}
