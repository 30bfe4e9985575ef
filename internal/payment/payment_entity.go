package payment

import (
	"time"

	"github.com/google/uuid"
)

// Payment is an immutable ledger entry. InvoiceID is nil for direct
// income postings (donations, miscellaneous receipts).
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	InvoiceID     *uuid.UUID `gorm:"type:uuid;index"`
	FiscalYearID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	// Amount is in minor currency units (paisa).
	Amount        int64     `gorm:"not null"`
	PaymentDate   time.Time `gorm:"not null"`
	PaymentModeGL uuid.UUID `gorm:"type:uuid;not null;column:payment_mode_gl_id"`
	TransactionReference string `gorm:"size:100"`
	Remarks              string `gorm:"size:250"`
	CreatedAt            time.Time
}

func (Payment) TableName() string {
	return "payments"
}
