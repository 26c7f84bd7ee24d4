package health

import (
	"strings"

	"poultry-backend/internal/auth"
	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateHealthRecordRequest struct {
	BatchID         uint                `json:"batch_id"`
	VaccinationDate *string             `json:"vaccination_date"`
	VaccineName     string              `json:"vaccine_name"`
	Disease         string              `json:"disease"`
	Treatment       string              `json:"treatment"`
	Status          models.HealthStatus `json:"status"`
	Notes           string              `json:"notes"`
}

type UpdateHealthRecordRequest struct {
	VaccinationDate *string              `json:"vaccination_date"`
	VaccineName     *string              `json:"vaccine_name"`
	Disease         *string              `json:"disease"`
	Treatment       *string              `json:"treatment"`
	VetID           *uint                `json:"vet_id"`
	Status          *models.HealthStatus `json:"status"`
	Notes           *string              `json:"notes"`
}

func loadExpanded(id uint) (models.HealthRecord, error) {
	var rec models.HealthRecord
	err := database.DB.Preload("Batch").Preload("Vet").First(&rec, id).Error
	return rec, err
}

// POST /api/health
func CreateHealthRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateHealthRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.BatchID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Missing or invalid fields: batch_id")
		}

		var batch models.PoultryBatch
		if err := database.DB.First(&batch, body.BatchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Poultry batch not found")
		}

		if body.Status == "" {
			body.Status = models.HealthHealthy
		}
		if !models.ValidHealthStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
		}

		var vaccDate *models.DateOnly
		if body.VaccinationDate != nil && *body.VaccinationDate != "" {
			d, err := models.ParseDate(*body.VaccinationDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "vaccination_date must be in YYYY-MM-DD format")
			}
			vaccDate = &d
		}

		// The authenticated recorder is the vet on the record, whatever
		// their role. Reassignment goes through update.
		vetID := principal.ID

		rec := models.HealthRecord{
			BatchID:         body.BatchID,
			VaccinationDate: vaccDate,
			VaccineName:     body.VaccineName,
			Disease:         body.Disease,
			Treatment:       body.Treatment,
			VetID:           &vetID,
			Status:          body.Status,
			Notes:           body.Notes,
		}
		if err := database.DB.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create health record")
		}

		expanded, err := loadExpanded(rec.ID)
		if err != nil {
			expanded = rec
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Health record created successfully",
			"data":    expanded,
		})
	}
}

// GET /api/health
//
// Filters: batch_id, status (exact), disease (case-insensitive substring).
func ListHealthRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.HealthRecord{}).Preload("Batch").Preload("Vet")

		if batchID := c.QueryInt("batch_id"); batchID > 0 {
			q = q.Where("batch_id = ?", batchID)
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if disease := c.Query("disease"); disease != "" {
			q = q.Where("lower(disease) LIKE ?", "%"+strings.ToLower(disease)+"%")
		}

		// Health records have no mandatory domain date (vaccination_date
		// is optional), so newest-first means creation order here.
		var records []models.HealthRecord
		if err := q.Order("created_at DESC").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch health records")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(records),
			"data":    records,
		})
	}
}

// GET /api/health/batch/:batchId
func ListBatchHealthRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		batchID, err := httpx.ParseIDParam(c, "batchId")
		if err != nil {
			return err
		}

		var records []models.HealthRecord
		if err := database.DB.Preload("Batch").Preload("Vet").
			Where("batch_id = ?", batchID).
			Order("created_at DESC").
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch health records")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(records),
			"data":    records,
		})
	}
}

// GET /api/health/alerts/active
//
// Records whose status marks an active health alert (Under Treatment or
// Quarantined), evaluated at query time.
func HealthAlertsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []models.HealthRecord
		if err := database.DB.Preload("Batch").Preload("Vet").
			Where("status IN ?", models.AlertHealthStatuses).
			Order("created_at DESC").
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch health alerts")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(records),
			"data":    records,
		})
	}
}

// GET /api/health/:id
func GetHealthRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		rec, err := loadExpanded(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Health record not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    rec,
		})
	}
}

// PUT /api/health/:id
func UpdateHealthRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var rec models.HealthRecord
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Health record not found")
		}

		var body UpdateHealthRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.VaccinationDate != nil {
			if *body.VaccinationDate == "" {
				rec.VaccinationDate = nil
			} else {
				d, err := models.ParseDate(*body.VaccinationDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "vaccination_date must be in YYYY-MM-DD format")
				}
				rec.VaccinationDate = &d
			}
		}
		if body.VaccineName != nil {
			rec.VaccineName = *body.VaccineName
		}
		if body.Disease != nil {
			rec.Disease = *body.Disease
		}
		if body.Treatment != nil {
			rec.Treatment = *body.Treatment
		}
		if body.VetID != nil {
			var vet models.User
			if err := database.DB.First(&vet, *body.VetID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Referenced vet not found")
			}
			rec.VetID = body.VetID
		}
		if body.Status != nil {
			if !models.ValidHealthStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
			}
			rec.Status = *body.Status
		}
		if body.Notes != nil {
			rec.Notes = *body.Notes
		}

		if err := database.DB.Save(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update health record")
		}

		expanded, err := loadExpanded(rec.ID)
		if err != nil {
			expanded = rec
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Health record updated successfully",
			"data":    expanded,
		})
	}
}

// DELETE /api/health/:id
func DeleteHealthRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var rec models.HealthRecord
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Health record not found")
		}

		if err := database.DB.Delete(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete health record")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Health record deleted successfully",
		})
	}
}
