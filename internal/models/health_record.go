package models

import "time"

type HealthStatus string

const (
	HealthHealthy        HealthStatus = "Healthy"
	HealthUnderTreatment HealthStatus = "Under Treatment"
	HealthQuarantined    HealthStatus = "Quarantined"
	HealthRecovered      HealthStatus = "Recovered"
)

func ValidHealthStatus(s HealthStatus) bool {
	switch s {
	case HealthHealthy, HealthUnderTreatment, HealthQuarantined, HealthRecovered:
		return true
	}
	return false
}

// AlertHealthStatuses are the states that count as active health alerts.
var AlertHealthStatuses = []HealthStatus{HealthUnderTreatment, HealthQuarantined}

type HealthRecord struct {
	ID              uint          `gorm:"primaryKey" json:"health_id"`
	BatchID         uint          `gorm:"index;not null" json:"batch_id"`
	Batch           *PoultryBatch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
	VaccinationDate *DateOnly     `json:"vaccination_date,omitempty"`
	VaccineName     string        `gorm:"size:100" json:"vaccine_name"`
	Disease         string        `gorm:"size:100" json:"disease"`
	Treatment       string        `gorm:"type:text" json:"treatment"`
	VetID           *uint         `gorm:"index" json:"vet_id"`
	Vet             *User         `gorm:"foreignKey:VetID" json:"vet,omitempty"`
	Status          HealthStatus  `gorm:"size:20;not null;default:Healthy" json:"status"`
	Notes           string        `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
