package models

import "time"

type ProductType string

const (
	ProductEggs   ProductType = "Eggs"
	ProductBirds  ProductType = "Birds"
	ProductManure ProductType = "Manure"
	ProductOther  ProductType = "Other"
)

func ValidProductType(t ProductType) bool {
	switch t {
	case ProductEggs, ProductBirds, ProductManure, ProductOther:
		return true
	}
	return false
}

type SalesRecord struct {
	ID            uint        `gorm:"primaryKey" json:"sale_id"`
	ProductType   ProductType `gorm:"size:20;not null" json:"product_type"`
	Quantity      float64     `gorm:"not null" json:"quantity"`
	UnitPrice     float64     `gorm:"not null" json:"unit_price"`
	TotalAmount   float64     `gorm:"not null" json:"total_amount"`
	CustomerName  string      `gorm:"size:100" json:"customer_name"`
	CustomerPhone string      `gorm:"size:20" json:"customer_phone"`
	Date          DateOnly    `gorm:"index;not null" json:"date"`
	Notes         string      `gorm:"type:text" json:"notes"`
	RecordedBy    uint        `gorm:"index;not null" json:"recorded_by"`
	Recorder      *User       `gorm:"foreignKey:RecordedBy" json:"recorder,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
