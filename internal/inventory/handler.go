package inventory

import (
	"strings"

	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateInventoryItemRequest struct {
	ItemName     string          `json:"item_name"`
	ItemType     models.ItemType `json:"item_type"`
	Quantity     *float64        `json:"quantity"`
	Unit         string          `json:"unit"`
	MinimumStock *float64        `json:"minimum_stock"`
	UnitPrice    *float64        `json:"unit_price"`
	Supplier     string          `json:"supplier"`
}

type UpdateInventoryItemRequest struct {
	ItemName     *string          `json:"item_name"`
	ItemType     *models.ItemType `json:"item_type"`
	Quantity     *float64         `json:"quantity"`
	Unit         *string          `json:"unit"`
	MinimumStock *float64         `json:"minimum_stock"`
	UnitPrice    *float64         `json:"unit_price"`
	Supplier     *string          `json:"supplier"`
}

// POST /api/inventory
func CreateInventoryItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInventoryItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.ItemName = strings.TrimSpace(body.ItemName)

		var missing []string
		if body.ItemName == "" {
			missing = append(missing, "item_name")
		}
		if body.ItemType == "" {
			missing = append(missing, "item_type")
		}
		if body.Quantity == nil || *body.Quantity < 0 {
			missing = append(missing, "quantity")
		}
		if body.MinimumStock != nil && *body.MinimumStock < 0 {
			missing = append(missing, "minimum_stock")
		}
		if body.UnitPrice != nil && *body.UnitPrice < 0 {
			missing = append(missing, "unit_price")
		}
		if len(missing) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Missing or invalid fields: "+strings.Join(missing, ", "))
		}

		if !models.ValidItemType(body.ItemType) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item_type")
		}

		item := models.InventoryItem{
			ItemName:     body.ItemName,
			ItemType:     body.ItemType,
			Quantity:     *body.Quantity,
			Unit:         body.Unit,
			MinimumStock: 10,
			Supplier:     body.Supplier,
		}
		if item.Unit == "" {
			item.Unit = "kg"
		}
		if body.MinimumStock != nil {
			item.MinimumStock = *body.MinimumStock
		}
		if body.UnitPrice != nil {
			item.UnitPrice = *body.UnitPrice
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create inventory item")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Inventory item created successfully",
			"data":    item,
		})
	}
}

// GET /api/inventory
//
// Filters: item_type (exact), search (case-insensitive substring on
// item_name).
func ListInventoryItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.InventoryItem{})

		if it := c.Query("item_type"); it != "" {
			q = q.Where("item_type = ?", it)
		}
		if search := c.Query("search"); search != "" {
			q = q.Where("lower(item_name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}

		var items []models.InventoryItem
		if err := q.Order("updated_at DESC").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch inventory")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(items),
			"data":    items,
		})
	}
}

// GET /api/inventory/alerts/low-stock
//
// The predicate (quantity <= minimum_stock, boundary inclusive) runs at
// query time; results are never cached or materialized.
func LowStockAlertsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.InventoryItem
		if err := database.DB.
			Where("quantity <= minimum_stock").
			Order("updated_at DESC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch low-stock alerts")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(items),
			"data":    items,
		})
	}
}

// GET /api/inventory/:id
func GetInventoryItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var item models.InventoryItem
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Inventory item not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    item,
		})
	}
}

// PUT /api/inventory/:id
func UpdateInventoryItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var item models.InventoryItem
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Inventory item not found")
		}

		var body UpdateInventoryItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ItemName != nil {
			name := strings.TrimSpace(*body.ItemName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "item_name cannot be empty")
			}
			item.ItemName = name
		}
		if body.ItemType != nil {
			if !models.ValidItemType(*body.ItemType) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid item_type")
			}
			item.ItemType = *body.ItemType
		}
		if body.Quantity != nil {
			if *body.Quantity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity cannot be negative")
			}
			item.Quantity = *body.Quantity
		}
		if body.Unit != nil {
			item.Unit = *body.Unit
		}
		if body.MinimumStock != nil {
			if *body.MinimumStock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "minimum_stock cannot be negative")
			}
			item.MinimumStock = *body.MinimumStock
		}
		if body.UnitPrice != nil {
			if *body.UnitPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "unit_price cannot be negative")
			}
			item.UnitPrice = *body.UnitPrice
		}
		if body.Supplier != nil {
			item.Supplier = *body.Supplier
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update inventory item")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Inventory item updated successfully",
			"data":    item,
		})
	}
}

// DELETE /api/inventory/:id
func DeleteInventoryItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var item models.InventoryItem
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Inventory item not found")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete inventory item")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Inventory item deleted successfully",
		})
	}
}
