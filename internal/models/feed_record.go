package models

import "time"

type FeedRecord struct {
	ID         uint          `gorm:"primaryKey" json:"feed_id"`
	BatchID    uint          `gorm:"index;not null" json:"batch_id"`
	Batch      *PoultryBatch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
	FeedType   string        `gorm:"size:100;not null" json:"feed_type"`
	Quantity   float64       `gorm:"not null" json:"quantity"`
	Unit       string        `gorm:"size:20;not null;default:kg" json:"unit"`
	Date       DateOnly      `gorm:"index;not null" json:"date"`
	RecordedBy uint          `gorm:"index;not null" json:"recorded_by"`
	Recorder   *User         `gorm:"foreignKey:RecordedBy" json:"recorder,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
