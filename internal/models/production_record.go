package models

import "time"

type ProductionRecord struct {
	ID             uint          `gorm:"primaryKey" json:"production_id"`
	BatchID        uint          `gorm:"index;not null" json:"batch_id"`
	Batch          *PoultryBatch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
	EggsCollected  int           `gorm:"not null" json:"eggs_collected"`
	MortalityCount int           `gorm:"not null;default:0" json:"mortality_count"`
	Date           DateOnly      `gorm:"index;not null" json:"date"`
	Notes          string        `gorm:"type:text" json:"notes"`
	RecordedBy     uint          `gorm:"index;not null" json:"recorded_by"`
	Recorder       *User         `gorm:"foreignKey:RecordedBy" json:"recorder,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
