// Package report implements the read-only aggregate reports. Every SUM is
// wrapped in COALESCE so empty ranges report zeros, and every derived ratio
// guards its divisor, so no report can return NULL or NaN.
package report

import (
	"math"

	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/reports/production
func ProductionReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}
		batchID := c.QueryInt("batch_id")

		scoped := func() *gorm.DB {
			q := httpx.ApplyDateRange(database.DB.Model(&models.ProductionRecord{}), "date", start, end)
			if batchID > 0 {
				q = q.Where("batch_id = ?", batchID)
			}
			return q
		}

		var summary struct {
			TotalEggs      int64
			TotalMortality int64
			RecordCount    int64
		}
		if err := scoped().Select(
			"COALESCE(SUM(eggs_collected), 0) AS total_eggs, " +
				"COALESCE(SUM(mortality_count), 0) AS total_mortality, " +
				"COUNT(*) AS record_count").
			Scan(&summary).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate production report")
		}

		avg := 0.0
		if summary.RecordCount > 0 {
			avg = round2(float64(summary.TotalEggs) / float64(summary.RecordCount))
		}

		type trendPoint struct {
			Date           models.DateOnly `json:"date"`
			TotalEggs      int64           `json:"total_eggs"`
			TotalMortality int64           `json:"total_mortality"`
		}
		var trend []trendPoint
		if err := scoped().Select(
			"date, COALESCE(SUM(eggs_collected), 0) AS total_eggs, COALESCE(SUM(mortality_count), 0) AS total_mortality").
			Group("date").
			Order("date ASC").
			Scan(&trend).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate production report")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"summary": fiber.Map{
					"totalEggs":      summary.TotalEggs,
					"totalMortality": summary.TotalMortality,
					"recordCount":    summary.RecordCount,
					"avgEggsPerDay":  avg,
				},
				"trend": trend,
			},
		})
	}
}

// GET /api/reports/financial  (Admin/Manager only, enforced by the route)
func FinancialReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}

		var sales struct {
			TotalRevenue float64
			SalesCount   int64
		}
		if err := httpx.ApplyDateRange(database.DB.Model(&models.SalesRecord{}), "date", start, end).
			Select("COALESCE(SUM(total_amount), 0) AS total_revenue, COUNT(*) AS sales_count").
			Scan(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate financial report")
		}

		var expenses struct {
			TotalExpenses float64
			ExpenseCount  int64
		}
		if err := httpx.ApplyDateRange(database.DB.Model(&models.Expense{}), "date", start, end).
			Select("COALESCE(SUM(amount), 0) AS total_expenses, COUNT(*) AS expense_count").
			Scan(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate financial report")
		}

		type productRevenue struct {
			ProductType models.ProductType `json:"product_type"`
			Revenue     float64            `json:"revenue"`
		}
		var revenueByProduct []productRevenue
		httpx.ApplyDateRange(database.DB.Model(&models.SalesRecord{}), "date", start, end).
			Select("product_type, COALESCE(SUM(total_amount), 0) AS revenue").
			Group("product_type").
			Scan(&revenueByProduct)

		type categoryAmount struct {
			Category models.ExpenseCategory `json:"category"`
			Amount   float64                `json:"amount"`
		}
		var expensesByCategory []categoryAmount
		httpx.ApplyDateRange(database.DB.Model(&models.Expense{}), "date", start, end).
			Select("category, COALESCE(SUM(amount), 0) AS amount").
			Group("category").
			Scan(&expensesByCategory)

		profit := sales.TotalRevenue - expenses.TotalExpenses
		margin := 0.0
		if sales.TotalRevenue > 0 {
			margin = round2(profit / sales.TotalRevenue * 100)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"summary": fiber.Map{
					"totalRevenue":  sales.TotalRevenue,
					"totalExpenses": expenses.TotalExpenses,
					"profit":        profit,
					"profitMargin":  margin,
					"salesCount":    sales.SalesCount,
					"expenseCount":  expenses.ExpenseCount,
				},
				"revenueByProduct":   revenueByProduct,
				"expensesByCategory": expensesByCategory,
			},
		})
	}
}

// GET /api/reports/performance
func PerformanceMetricsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}

		var totalFlocks, activeFlocks int64
		if err := database.DB.Model(&models.PoultryBatch{}).Count(&totalFlocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate performance metrics")
		}
		database.DB.Model(&models.PoultryBatch{}).
			Where("status = ?", models.BatchActive).
			Count(&activeFlocks)

		var totalBirds int64
		database.DB.Model(&models.PoultryBatch{}).
			Where("status = ?", models.BatchActive).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&totalBirds)

		var production struct {
			TotalEggs      int64
			ProductionDays int64
		}
		httpx.ApplyDateRange(database.DB.Model(&models.ProductionRecord{}), "date", start, end).
			Select("COALESCE(SUM(eggs_collected), 0) AS total_eggs, COUNT(*) AS production_days").
			Scan(&production)

		var totalFeed float64
		httpx.ApplyDateRange(database.DB.Model(&models.FeedRecord{}), "date", start, end).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&totalFeed)

		type statusBatches struct {
			Status  models.HealthStatus `json:"status"`
			Batches int64               `json:"batches"`
		}
		var batchesByHealth []statusBatches
		database.DB.Model(&models.HealthRecord{}).
			Select("status, COUNT(DISTINCT batch_id) AS batches").
			Group("status").
			Scan(&batchesByHealth)

		var lowStock int64
		database.DB.Model(&models.InventoryItem{}).
			Where("quantity <= minimum_stock").
			Count(&lowStock)

		avgEggs := 0.0
		if production.ProductionDays > 0 {
			avgEggs = round2(float64(production.TotalEggs) / float64(production.ProductionDays))
		}
		feedToEgg := 0.0
		if production.TotalEggs > 0 {
			feedToEgg = round2(totalFeed / float64(production.TotalEggs))
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"flockMetrics": fiber.Map{
					"totalFlocks":  totalFlocks,
					"activeFlocks": activeFlocks,
					"totalBirds":   totalBirds,
				},
				"productionMetrics": fiber.Map{
					"totalEggs":      production.TotalEggs,
					"productionDays": production.ProductionDays,
					"avgEggsPerDay":  avgEggs,
				},
				"feedMetrics": fiber.Map{
					"totalFeed":      totalFeed,
					"feedToEggRatio": feedToEgg,
				},
				"healthMetrics": fiber.Map{
					"batchesByStatus": batchesByHealth,
				},
				"inventoryMetrics": fiber.Map{
					"lowStockItems": lowStock,
				},
			},
		})
	}
}

// GET /api/reports/inventory
func InventoryReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var totals struct {
			TotalItems int64
			TotalValue float64
		}
		if err := database.DB.Model(&models.InventoryItem{}).
			Select("COUNT(*) AS total_items, COALESCE(SUM(quantity * unit_price), 0) AS total_value").
			Scan(&totals).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate inventory report")
		}

		var lowStockItems []models.InventoryItem
		database.DB.Where("quantity <= minimum_stock").
			Order("item_name ASC").
			Find(&lowStockItems)

		type typeGroup struct {
			ItemType models.ItemType `json:"item_type"`
			Count    int64           `json:"count"`
			Quantity float64         `json:"quantity"`
			Value    float64         `json:"value"`
		}
		var byType []typeGroup
		database.DB.Model(&models.InventoryItem{}).
			Select("item_type, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(quantity * unit_price), 0) AS value").
			Group("item_type").
			Scan(&byType)

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"totalItems":    totals.TotalItems,
				"totalValue":    round2(totals.TotalValue),
				"lowStockCount": len(lowStockItems),
				"lowStockItems": lowStockItems,
				"byType":        byType,
			},
		})
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
