package expense

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single outgoing entry: which expense head it hits, and
// which asset head (cash, bank) it was paid from.
type Expense struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	FiscalYearID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpenseHeadID uuid.UUID `gorm:"type:uuid;not null"`
	PaymentModeGL uuid.UUID `gorm:"type:uuid;not null;column:payment_mode_gl_id"`
	// Amount is in minor currency units (paisa).
	Amount      int64     `gorm:"not null"`
	ExpenseDate time.Time `gorm:"not null"`
	Description string    `gorm:"size:250"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Expense) TableName() string {
	return "expenses"
}
