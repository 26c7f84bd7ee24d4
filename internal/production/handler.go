package production

import (
	"math"
	"strings"

	"poultry-backend/internal/auth"
	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateProductionRecordRequest struct {
	BatchID        uint   `json:"batch_id"`
	EggsCollected  *int   `json:"eggs_collected"`
	MortalityCount *int   `json:"mortality_count"`
	Date           string `json:"date"`
	Notes          string `json:"notes"`
}

type UpdateProductionRecordRequest struct {
	EggsCollected  *int    `json:"eggs_collected"`
	MortalityCount *int    `json:"mortality_count"`
	Date           *string `json:"date"`
	Notes          *string `json:"notes"`
}

func loadExpanded(id uint) (models.ProductionRecord, error) {
	var rec models.ProductionRecord
	err := database.DB.Preload("Batch").Preload("Recorder").First(&rec, id).Error
	return rec, err
}

// POST /api/production
//
// A positive mortality_count decrements the batch quantity (floored at
// zero) in the same transaction as the insert; either both writes happen
// or neither does.
func CreateProductionRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateProductionRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var missing []string
		if body.BatchID == 0 {
			missing = append(missing, "batch_id")
		}
		if body.EggsCollected == nil || *body.EggsCollected < 0 {
			missing = append(missing, "eggs_collected")
		}
		if body.MortalityCount != nil && *body.MortalityCount < 0 {
			missing = append(missing, "mortality_count")
		}
		if body.Date == "" {
			missing = append(missing, "date")
		}
		if len(missing) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Missing or invalid fields: "+strings.Join(missing, ", "))
		}

		date, err := models.ParseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be in YYYY-MM-DD format")
		}

		var batch models.PoultryBatch
		if err := database.DB.First(&batch, body.BatchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Poultry batch not found")
		}

		mortality := 0
		if body.MortalityCount != nil {
			mortality = *body.MortalityCount
		}

		rec := models.ProductionRecord{
			BatchID:        body.BatchID,
			EggsCollected:  *body.EggsCollected,
			MortalityCount: mortality,
			Date:           date,
			Notes:          body.Notes,
			RecordedBy:     principal.ID,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if mortality > 0 {
				// Single conditional UPDATE so concurrent submissions
				// cannot lose a decrement or drive quantity negative.
				res := tx.Model(&models.PoultryBatch{}).
					Where("id = ?", body.BatchID).
					Update("quantity", gorm.Expr(
						"CASE WHEN quantity > ? THEN quantity - ? ELSE 0 END",
						mortality, mortality))
				if res.Error != nil {
					return res.Error
				}
			}
			return tx.Create(&rec).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create production record")
		}

		expanded, err := loadExpanded(rec.ID)
		if err != nil {
			expanded = rec
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Production record created successfully",
			"data":    expanded,
		})
	}
}

// GET /api/production
//
// Filters: batch_id, inclusive date range.
func ListProductionRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.ProductionRecord{}).Preload("Batch").Preload("Recorder")

		if batchID := c.QueryInt("batch_id"); batchID > 0 {
			q = q.Where("batch_id = ?", batchID)
		}
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}
		q = httpx.ApplyDateRange(q, "date", start, end)

		var records []models.ProductionRecord
		if err := q.Order("date DESC").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch production records")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(records),
			"data":    records,
		})
	}
}

// GET /api/production/batch/:batchId
func ListBatchProductionRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		batchID, err := httpx.ParseIDParam(c, "batchId")
		if err != nil {
			return err
		}

		var records []models.ProductionRecord
		if err := database.DB.Preload("Batch").Preload("Recorder").
			Where("batch_id = ?", batchID).
			Order("date DESC").
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch production records")
		}

		var totals struct {
			TotalEggs      int64 `json:"totalEggs"`
			TotalMortality int64 `json:"totalMortality"`
		}
		database.DB.Model(&models.ProductionRecord{}).
			Where("batch_id = ?", batchID).
			Select("COALESCE(SUM(eggs_collected), 0) AS total_eggs, COALESCE(SUM(mortality_count), 0) AS total_mortality").
			Scan(&totals)

		return c.JSON(fiber.Map{
			"success":        true,
			"count":          len(records),
			"totalEggs":      totals.TotalEggs,
			"totalMortality": totals.TotalMortality,
			"data":           records,
		})
	}
}

// GET /api/production/stats/summary
func ProductionStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}

		var summary struct {
			TotalEggs      int64
			TotalMortality int64
			RecordCount    int64
		}
		q := httpx.ApplyDateRange(database.DB.Model(&models.ProductionRecord{}), "date", start, end)
		if err := q.Select(
			"COALESCE(SUM(eggs_collected), 0) AS total_eggs, " +
				"COALESCE(SUM(mortality_count), 0) AS total_mortality, " +
				"COUNT(*) AS record_count").
			Scan(&summary).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch production statistics")
		}

		avg := 0.0
		if summary.RecordCount > 0 {
			avg = round2(float64(summary.TotalEggs) / float64(summary.RecordCount))
		}

		type batchTotals struct {
			BatchID        uint  `json:"batch_id"`
			TotalEggs      int64 `json:"total_eggs"`
			TotalMortality int64 `json:"total_mortality"`
			RecordCount    int64 `json:"record_count"`
		}
		var byBatch []batchTotals
		httpx.ApplyDateRange(database.DB.Model(&models.ProductionRecord{}), "date", start, end).
			Select("batch_id, COALESCE(SUM(eggs_collected), 0) AS total_eggs, COALESCE(SUM(mortality_count), 0) AS total_mortality, COUNT(*) AS record_count").
			Group("batch_id").
			Scan(&byBatch)

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"totalEggs":         summary.TotalEggs,
				"totalMortality":    summary.TotalMortality,
				"recordCount":       summary.RecordCount,
				"avgEggsPerDay":     avg,
				"productionByBatch": byBatch,
			},
		})
	}
}

// GET /api/production/:id
func GetProductionRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		rec, err := loadExpanded(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Production record not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    rec,
		})
	}
}

// PUT /api/production/:id
func UpdateProductionRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var rec models.ProductionRecord
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Production record not found")
		}

		var body UpdateProductionRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.EggsCollected != nil {
			if *body.EggsCollected < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "eggs_collected cannot be negative")
			}
			rec.EggsCollected = *body.EggsCollected
		}
		if body.MortalityCount != nil {
			if *body.MortalityCount < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "mortality_count cannot be negative")
			}
			rec.MortalityCount = *body.MortalityCount
		}
		if body.Date != nil {
			date, err := models.ParseDate(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be in YYYY-MM-DD format")
			}
			rec.Date = date
		}
		if body.Notes != nil {
			rec.Notes = *body.Notes
		}

		if err := database.DB.Save(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update production record")
		}

		expanded, err := loadExpanded(rec.ID)
		if err != nil {
			expanded = rec
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Production record updated successfully",
			"data":    expanded,
		})
	}
}

// DELETE /api/production/:id
func DeleteProductionRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var rec models.ProductionRecord
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Production record not found")
		}

		if err := database.DB.Delete(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete production record")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Production record deleted successfully",
		})
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
