package notification

import (
	"strings"

	"poultry-backend/internal/auth"
	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateNotificationRequest struct {
	UserID  uint                    `json:"user_id"`
	Message string                  `json:"message"`
	Type    models.NotificationType `json:"type"`
}

// ownNotificationsOrAdmin enforces the one record-level scope rule:
// a user touches only their own notifications unless they are Admin.
func ownNotificationsOrAdmin(principal auth.Principal, ownerID uint) error {
	if principal.ID != ownerID && principal.Role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "Not authorized to access these notifications")
	}
	return nil
}

// POST /api/notifications
func CreateNotificationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateNotificationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var missing []string
		if body.UserID == 0 {
			missing = append(missing, "user_id")
		}
		if strings.TrimSpace(body.Message) == "" {
			missing = append(missing, "message")
		}
		if len(missing) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Missing or invalid fields: "+strings.Join(missing, ", "))
		}

		if body.Type == "" {
			body.Type = models.NotifyInfo
		}
		if !models.ValidNotificationType(body.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid type")
		}

		var user models.User
		if err := database.DB.First(&user, body.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		n := models.Notification{
			UserID:  body.UserID,
			Message: body.Message,
			Type:    body.Type,
		}
		if err := database.DB.Create(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create notification")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Notification created successfully",
			"data":    n,
		})
	}
}

// GET /api/notifications/user/:userId
func ListUserNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		userID, err := httpx.ParseIDParam(c, "userId")
		if err != nil {
			return err
		}
		if err := ownNotificationsOrAdmin(principal, userID); err != nil {
			return err
		}

		var notifications []models.Notification
		if err := database.DB.
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(50).
			Find(&notifications).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch notifications")
		}

		var unread int64
		database.DB.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Count(&unread)

		return c.JSON(fiber.Map{
			"success":     true,
			"count":       len(notifications),
			"unreadCount": unread,
			"data":        notifications,
		})
	}
}

// PUT /api/notifications/:id/read
func MarkAsReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var n models.Notification
		if err := database.DB.First(&n, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Notification not found")
		}
		if err := ownNotificationsOrAdmin(principal, n.UserID); err != nil {
			return err
		}

		n.IsRead = true
		if err := database.DB.Save(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update notification")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Notification marked as read",
			"data":    n,
		})
	}
}

// PUT /api/notifications/user/:userId/read-all
func MarkAllAsReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		userID, err := httpx.ParseIDParam(c, "userId")
		if err != nil {
			return err
		}
		if err := ownNotificationsOrAdmin(principal, userID); err != nil {
			return err
		}

		if err := database.DB.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Update("is_read", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update notifications")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "All notifications marked as read",
		})
	}
}

// DELETE /api/notifications/:id
func DeleteNotificationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}

		var n models.Notification
		if err := database.DB.First(&n, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Notification not found")
		}
		if err := ownNotificationsOrAdmin(principal, n.UserID); err != nil {
			return err
		}

		if err := database.DB.Delete(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete notification")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Notification deleted successfully",
		})
	}
}
