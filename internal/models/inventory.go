package models

import "time"

type ItemType string

const (
	ItemFeed      ItemType = "Feed"
	ItemMedicine  ItemType = "Medicine"
	ItemEquipment ItemType = "Equipment"
	ItemOther     ItemType = "Other"
)

func ValidItemType(t ItemType) bool {
	switch t {
	case ItemFeed, ItemMedicine, ItemEquipment, ItemOther:
		return true
	}
	return false
}

type InventoryItem struct {
	ID           uint      `gorm:"primaryKey" json:"inventory_id"`
	ItemName     string    `gorm:"size:100;not null" json:"item_name"`
	ItemType     ItemType  `gorm:"size:20;not null" json:"item_type"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	Unit         string    `gorm:"size:20;not null;default:kg" json:"unit"`
	MinimumStock float64   `gorm:"not null;default:10" json:"minimum_stock"`
	UnitPrice    float64   `json:"unit_price"`
	Supplier     string    `gorm:"size:100" json:"supplier"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"last_updated"`
}

func (InventoryItem) TableName() string { return "inventory" }

// LowStock reports whether the item is at or below its minimum stock
// threshold. The boundary is inclusive.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinimumStock
}
