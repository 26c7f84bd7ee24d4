package models

import "time"

type ExpenseCategory string

const (
	ExpenseFeed        ExpenseCategory = "Feed"
	ExpenseMedicine    ExpenseCategory = "Medicine"
	ExpenseLabor       ExpenseCategory = "Labor"
	ExpenseEquipment   ExpenseCategory = "Equipment"
	ExpenseUtilities   ExpenseCategory = "Utilities"
	ExpenseMaintenance ExpenseCategory = "Maintenance"
	ExpenseOther       ExpenseCategory = "Other"
)

func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case ExpenseFeed, ExpenseMedicine, ExpenseLabor, ExpenseEquipment,
		ExpenseUtilities, ExpenseMaintenance, ExpenseOther:
		return true
	}
	return false
}

type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"expense_id"`
	Category    ExpenseCategory `gorm:"size:20;not null" json:"category"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Date        DateOnly        `gorm:"index;not null" json:"date"`
	Notes       string          `gorm:"type:text" json:"notes"`
	RecordedBy  uint            `gorm:"index;not null" json:"recorded_by"`
	Recorder    *User           `gorm:"foreignKey:RecordedBy" json:"recorder,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
