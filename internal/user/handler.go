package user

import (
	"strings"

	"poultry-backend/internal/auth"
	"poultry-backend/internal/database"
	"poultry-backend/internal/httpx"
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Email    *string          `json:"email"`
	Password *string          `json:"password"`
	Role     *models.UserRole `json:"role"`
	Phone    *string          `json:"phone"`
}

// GET /api/users  (Admin only, enforced by the route group)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("name ASC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch users")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(users),
			"data":    users,
		})
	}
}

// GET /api/users/:id  (self or Admin)
func GetUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}
		if principal.ID != id && principal.Role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Not authorized to view this user")
		}

		var u models.User
		if err := database.DB.First(&u, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    u,
		})
	}
}

// PUT /api/users/:id  (self or Admin; role changes are Admin only)
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}
		if principal.ID != id && principal.Role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Not authorized to update this user")
		}

		var u models.User
		if err := database.DB.First(&u, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			u.Name = name
		}
		if body.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "email cannot be empty")
			}
			var count int64
			database.DB.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, u.ID).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Email is already registered")
			}
			u.Email = email
		}
		if body.Password != nil {
			if len(*body.Password) < 6 {
				return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
			}
			u.PasswordHash = string(hash)
		}
		if body.Role != nil {
			if principal.Role != models.RoleAdmin {
				return fiber.NewError(fiber.StatusForbidden, "Only an Admin can change roles")
			}
			if !models.ValidRole(*body.Role) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid role")
			}
			u.Role = *body.Role
		}
		if body.Phone != nil {
			u.Phone = *body.Phone
		}

		if err := database.DB.Save(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update user")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "User updated successfully",
			"data":    u,
		})
	}
}

// DELETE /api/users/:id  (Admin only, enforced by the route group)
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParseIDParam(c, "id")
		if err != nil {
			return err
		}
		if principal.ID == id {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot delete your own account")
		}

		var u models.User
		if err := database.DB.First(&u, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		if err := database.DB.Delete(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "User deleted successfully",
		})
	}
}
