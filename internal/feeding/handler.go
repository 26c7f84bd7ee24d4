package feeding

import (
	"strings"

	"poultry-backend/internal/auth"
	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateFeedRecordRequest struct {
	BatchID  uint     `json:"batch_id"`
	FeedType string   `json:"feed_type"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Date     string   `json:"date"`
}

type UpdateFeedRecordRequest struct {
	FeedType *string  `json:"feed_type"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Date     *string  `json:"date"`
}

func loadExpanded(id uint) (models.FeedRecord, error) {
	var rec models.FeedRecord
	err := database.DB.Preload("Batch").Preload("Recorder").First(&rec, id).Error
	return rec, err
}

// POST /api/feeding
func CreateFeedRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateFeedRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.FeedType = strings.TrimSpace(body.FeedType)

		var missing []string
		if body.BatchID == 0 {
			missing = append(missing, "batch_id")
		}
		if body.FeedType == "" {
			missing = append(missing, "feed_type")
		}
		if body.Quantity == nil || *body.Quantity < 0 {
			missing = append(missing, "quantity")
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

		if body.Unit == "" {
			body.Unit = "kg"
		}

		rec := models.FeedRecord{
			BatchID:    body.BatchID,
			FeedType:   body.FeedType,
			Quantity:   *body.Quantity,
			Unit:       body.Unit,
			Date:       date,
			RecordedBy: principal.ID,
		}
		if err := database.DB.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create feed record")
		}

		expanded, err := loadExpanded(rec.ID)
		if err != nil {
			expanded = rec
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Feed record created successfully",
			"data":    expanded,
		})
	}
}

// GET /api/feeding
//
// Filters: batch_id, feed_type (case-insensitive substring), inclusive
// date range.
func ListFeedRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.FeedRecord{}).Preload("Batch").Preload("Recorder")

		if batchID := c.QueryInt("batch_id"); batchID > 0 {
			q = q.Where("batch_id = ?", batchID)
		}
		if ft := c.Query("feed_type"); ft != "" {
			q = q.Where("lower(feed_type) LIKE ?", "%"+strings.ToLower(ft)+"%")
		}
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}
		q = httpx.ApplyDateRange(q, "date", start, end)

		var records []models.FeedRecord
		if err := q.Order("date DESC").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch feed records")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(records),
			"data":    records,
		})
	}
}

// GET /api/feeding/batch/:batchId
func ListBatchFeedRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		batchID, err := httpx.ParseIDParam(c, "batchId")
		if err != nil {
			return err
		}

		var records []models.FeedRecord
		if err := database.DB.Preload("Batch").Preload("Recorder").
			Where("batch_id = ?", batchID).
			Order("date DESC").
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch feed records")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(records),
			"data":    records,
		})
	}
}

// GET /api/feeding/:id
func GetFeedRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		rec, err := loadExpanded(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Feed record not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    rec,
		})
	}
}

// PUT /api/feeding/:id
func UpdateFeedRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var rec models.FeedRecord
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Feed record not found")
		}

		var body UpdateFeedRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.FeedType != nil {
			ft := strings.TrimSpace(*body.FeedType)
			if ft == "" {
				return fiber.NewError(fiber.StatusBadRequest, "feed_type cannot be empty")
			}
			rec.FeedType = ft
		}
		if body.Quantity != nil {
			if *body.Quantity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity cannot be negative")
			}
			rec.Quantity = *body.Quantity
		}
		if body.Unit != nil {
			rec.Unit = *body.Unit
		}
		if body.Date != nil {
			date, err := models.ParseDate(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be in YYYY-MM-DD format")
			}
			rec.Date = date
		}

		if err := database.DB.Save(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update feed record")
		}

		expanded, err := loadExpanded(rec.ID)
		if err != nil {
			expanded = rec
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Feed record updated successfully",
			"data":    expanded,
		})
	}
}

// DELETE /api/feeding/:id
func DeleteFeedRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var rec models.FeedRecord
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Feed record not found")
		}

		if err := database.DB.Delete(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete feed record")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Feed record deleted successfully",
		})
	}
}
