package models

import "time"

type UserRole string

const (
	RoleAdmin        UserRole = "Admin"
	RoleManager      UserRole = "Manager"
	RoleWorker       UserRole = "Worker"
	RoleVeterinarian UserRole = "Veterinarian"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleWorker, RoleVeterinarian:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"user_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;not null;default:Worker" json:"role"`
	Phone        string    `gorm:"size:20" json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
