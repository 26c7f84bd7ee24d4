package models

import "time"

type BatchStatus string

const (
	BatchActive   BatchStatus = "Active"
	BatchSold     BatchStatus = "Sold"
	BatchDeceased BatchStatus = "Deceased"
	BatchInactive BatchStatus = "Inactive"
)

func ValidBatchStatus(s BatchStatus) bool {
	switch s {
	case BatchActive, BatchSold, BatchDeceased, BatchInactive:
		return true
	}
	return false
}

// PoultryBatch is a cohort of birds tracked as one unit. Quantity is
// decremented by recorded mortality and never goes below zero.
type PoultryBatch struct {
	ID           uint        `gorm:"primaryKey" json:"batch_id"`
	Breed        string      `gorm:"size:100;not null" json:"breed"`
	Quantity     int         `gorm:"not null" json:"quantity"`
	Age          int         `gorm:"not null" json:"age"` // age in weeks
	DateAcquired DateOnly    `gorm:"not null" json:"date_acquired"`
	HousingUnit  string      `gorm:"size:50" json:"housing_unit"`
	Status       BatchStatus `gorm:"size:20;not null;default:Active" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (PoultryBatch) TableName() string { return "poultry_batches" }
