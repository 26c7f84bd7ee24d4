package flock

import (
	"strings"

	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateFlockRequest struct {
	Breed        string             `json:"breed"`
	Quantity     *int               `json:"quantity"`
	Age          *int               `json:"age"`
	DateAcquired string             `json:"date_acquired"`
	HousingUnit  string             `json:"housing_unit"`
	Status       models.BatchStatus `json:"status"`
}

type UpdateFlockRequest struct {
	Breed        *string             `json:"breed"`
	Quantity     *int                `json:"quantity"`
	Age          *int                `json:"age"`
	DateAcquired *string             `json:"date_acquired"`
	HousingUnit  *string             `json:"housing_unit"`
	Status       *models.BatchStatus `json:"status"`
}

// POST /api/flocks
func CreateFlockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateFlockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Breed = strings.TrimSpace(body.Breed)

		var missing []string
		if body.Breed == "" {
			missing = append(missing, "breed")
		}
		if body.Quantity == nil || *body.Quantity < 0 {
			missing = append(missing, "quantity")
		}
		if body.Age == nil || *body.Age < 0 {
			missing = append(missing, "age")
		}
		if body.DateAcquired == "" {
			missing = append(missing, "date_acquired")
		}
		if len(missing) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Missing or invalid fields: "+strings.Join(missing, ", "))
		}

		date, err := models.ParseDate(body.DateAcquired)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_acquired must be in YYYY-MM-DD format")
		}

		if body.Status == "" {
			body.Status = models.BatchActive
		}
		if !models.ValidBatchStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
		}

		batch := models.PoultryBatch{
			Breed:        body.Breed,
			Quantity:     *body.Quantity,
			Age:          *body.Age,
			DateAcquired: date,
			HousingUnit:  body.HousingUnit,
			Status:       body.Status,
		}
		if err := database.DB.Create(&batch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create flock")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Flock created successfully",
			"data":    batch,
		})
	}
}

// GET /api/flocks
//
// Filters: status (exact), breed (case-insensitive substring),
// housing_unit (exact).
func ListFlocksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.PoultryBatch{})

		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if breed := c.Query("breed"); breed != "" {
			q = q.Where("lower(breed) LIKE ?", "%"+strings.ToLower(breed)+"%")
		}
		if hu := c.Query("housing_unit"); hu != "" {
			q = q.Where("housing_unit = ?", hu)
		}

		var flocks []models.PoultryBatch
		if err := q.Order("date_acquired DESC").Find(&flocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch flocks")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(flocks),
			"data":    flocks,
		})
	}
}

// GET /api/flocks/:id
func GetFlockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var batch models.PoultryBatch
		if err := database.DB.First(&batch, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Flock not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    batch,
		})
	}
}

// PUT /api/flocks/:id
func UpdateFlockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var batch models.PoultryBatch
		if err := database.DB.First(&batch, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Flock not found")
		}

		var body UpdateFlockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Breed != nil {
			breed := strings.TrimSpace(*body.Breed)
			if breed == "" {
				return fiber.NewError(fiber.StatusBadRequest, "breed cannot be empty")
			}
			batch.Breed = breed
		}
		if body.Quantity != nil {
			if *body.Quantity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity cannot be negative")
			}
			batch.Quantity = *body.Quantity
		}
		if body.Age != nil {
			if *body.Age < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "age cannot be negative")
			}
			batch.Age = *body.Age
		}
		if body.DateAcquired != nil {
			date, err := models.ParseDate(*body.DateAcquired)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date_acquired must be in YYYY-MM-DD format")
			}
			batch.DateAcquired = date
		}
		if body.HousingUnit != nil {
			batch.HousingUnit = *body.HousingUnit
		}
		if body.Status != nil {
			if !models.ValidBatchStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
			}
			batch.Status = *body.Status
		}

		if err := database.DB.Save(&batch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update flock")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Flock updated successfully",
			"data":    batch,
		})
	}
}

// DELETE /api/flocks/:id
func DeleteFlockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var batch models.PoultryBatch
		if err := database.DB.First(&batch, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Flock not found")
		}

		if err := database.DB.Delete(&batch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete flock")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Flock deleted successfully",
		})
	}
}

// GET /api/flocks/stats/summary
func FlockStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var total, active int64
		if err := database.DB.Model(&models.PoultryBatch{}).Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch flock statistics")
		}
		database.DB.Model(&models.PoultryBatch{}).Where("status = ?", models.BatchActive).Count(&active)

		var totalBirds int64
		database.DB.Model(&models.PoultryBatch{}).
			Where("status = ?", models.BatchActive).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&totalBirds)

		type statusCount struct {
			Status models.BatchStatus `json:"status"`
			Count  int64              `json:"count"`
		}
		var byStatus []statusCount
		database.DB.Model(&models.PoultryBatch{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&byStatus)

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"totalFlocks":  total,
				"activeFlocks": active,
				"totalBirds":   totalBirds,
				"byStatus":     byStatus,
			},
		})
	}
}
