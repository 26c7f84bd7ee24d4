package sales

import (
	"strings"

	"poultry-backend/internal/auth"
	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSalesRecordRequest struct {
	ProductType   models.ProductType `json:"product_type"`
	Quantity      *float64           `json:"quantity"`
	UnitPrice     *float64           `json:"unit_price"`
	TotalAmount   *float64           `json:"total_amount"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Date          string             `json:"date"`
	Notes         string             `json:"notes"`
}

type UpdateSalesRecordRequest struct {
	ProductType   *models.ProductType `json:"product_type"`
	Quantity      *float64            `json:"quantity"`
	UnitPrice     *float64            `json:"unit_price"`
	TotalAmount   *float64            `json:"total_amount"`
	CustomerName  *string             `json:"customer_name"`
	CustomerPhone *string             `json:"customer_phone"`
	Date          *string             `json:"date"`
	Notes         *string             `json:"notes"`
}

func loadExpanded(id uint) (models.SalesRecord, error) {
	var rec models.SalesRecord
	err := database.DB.Preload("Recorder").First(&rec, id).Error
	return rec, err
}

// POST /api/sales
func CreateSalesRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateSalesRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var missing []string
		if body.ProductType == "" {
			missing = append(missing, "product_type")
		}
		if body.Quantity == nil || *body.Quantity < 0 {
			missing = append(missing, "quantity")
		}
		if body.UnitPrice == nil || *body.UnitPrice < 0 {
			missing = append(missing, "unit_price")
		}
		if body.Date == "" {
			missing = append(missing, "date")
		}
		if len(missing) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Missing or invalid fields: "+strings.Join(missing, ", "))
		}

		if !models.ValidProductType(body.ProductType) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product_type")
		}

		date, err := models.ParseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be in YYYY-MM-DD format")
		}

		total := *body.Quantity * *body.UnitPrice
		if body.TotalAmount != nil {
			if *body.TotalAmount < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "total_amount cannot be negative")
			}
			total = *body.TotalAmount
		}

		rec := models.SalesRecord{
			ProductType:   body.ProductType,
			Quantity:      *body.Quantity,
			UnitPrice:     *body.UnitPrice,
			TotalAmount:   total,
			CustomerName:  body.CustomerName,
			CustomerPhone: body.CustomerPhone,
			Date:          date,
			Notes:         body.Notes,
			RecordedBy:    principal.ID,
		}
		if err := database.DB.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create sales record")
		}

		expanded, err := loadExpanded(rec.ID)
		if err != nil {
			expanded = rec
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Sales record created successfully",
			"data":    expanded,
		})
	}
}

// GET /api/sales
//
// Filters: product_type (exact), customer_name (case-insensitive
// substring), inclusive date range.
func ListSalesRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.SalesRecord{}).Preload("Recorder")

		if pt := c.Query("product_type"); pt != "" {
			q = q.Where("product_type = ?", pt)
		}
		if name := c.Query("customer_name"); name != "" {
			q = q.Where("lower(customer_name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}
		q = httpx.ApplyDateRange(q, "date", start, end)

		var records []models.SalesRecord
		if err := q.Order("date DESC").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch sales records")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(records),
			"data":    records,
		})
	}
}

// GET /api/sales/stats/summary
func SalesStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := httpx.DateRangeQuery(c)
		if err != nil {
			return err
		}

		var summary struct {
			TotalRevenue float64
			SalesCount   int64
		}
		q := httpx.ApplyDateRange(database.DB.Model(&models.SalesRecord{}), "date", start, end)
		if err := q.Select("COALESCE(SUM(total_amount), 0) AS total_revenue, COUNT(*) AS sales_count").
			Scan(&summary).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch sales statistics")
		}

		type productRevenue struct {
			ProductType models.ProductType `json:"product_type"`
			Revenue     float64            `json:"revenue"`
		}
		var byProduct []productRevenue
		httpx.ApplyDateRange(database.DB.Model(&models.SalesRecord{}), "date", start, end).
			Select("product_type, COALESCE(SUM(total_amount), 0) AS revenue").
			Group("product_type").
			Scan(&byProduct)

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"totalRevenue":     summary.TotalRevenue,
				"salesCount":       summary.SalesCount,
				"revenueByProduct": byProduct,
			},
		})
	}
}

// GET /api/sales/:id
func GetSalesRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		rec, err := loadExpanded(id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sales record not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    rec,
		})
	}
}

// PUT /api/sales/:id
func UpdateSalesRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var rec models.SalesRecord
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sales record not found")
		}

		var body UpdateSalesRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductType != nil {
			if !models.ValidProductType(*body.ProductType) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid product_type")
			}
			rec.ProductType = *body.ProductType
		}
		if body.Quantity != nil {
			if *body.Quantity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity cannot be negative")
			}
			rec.Quantity = *body.Quantity
		}
		if body.UnitPrice != nil {
			if *body.UnitPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "unit_price cannot be negative")
			}
			rec.UnitPrice = *body.UnitPrice
		}
		if body.TotalAmount != nil {
			if *body.TotalAmount < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "total_amount cannot be negative")
			}
			rec.TotalAmount = *body.TotalAmount
		}
		if body.CustomerName != nil {
			rec.CustomerName = *body.CustomerName
		}
		if body.CustomerPhone != nil {
			rec.CustomerPhone = *body.CustomerPhone
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
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update sales record")
		}

		expanded, err := loadExpanded(rec.ID)
		if err != nil {
			expanded = rec
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Sales record updated successfully",
			"data":    expanded,
		})
	}
}

// DELETE /api/sales/:id
func DeleteSalesRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var rec models.SalesRecord
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sales record not found")
		}

		if err := database.DB.Delete(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete sales record")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Sales record deleted successfully",
		})
	}
}
