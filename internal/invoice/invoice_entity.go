package invoice

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusUnpaid  = "Unpaid"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
)

type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	StudentID     uuid.UUID `gorm:"type:uuid;not null;index"`
	StudentName   string    `gorm:"size:150;not null"`
	FiscalYearID  uuid.UUID `gorm:"type:uuid;not null;index"`
	InvoiceNumber string    `gorm:"size:30;not null;uniqueIndex"`
	// TotalAmount is in minor currency units (paisa).
	TotalAmount int64     `gorm:"not null"`
	DueDate     time.Time `gorm:"not null"`
	// Month labels the billing period, e.g. "Baisakh" or "2026-04".
	// Ad-hoc invoices may leave it unset.
	Month     *string `gorm:"size:20"`
	Status    string  `gorm:"size:20;not null;default:'Unpaid'"`
	Items     []InvoiceItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index"`
	GLHeadID    uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"size:200"`
	Amount      int64     `gorm:"not null"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

func (i Invoice) IsPaid() bool {
	return i.Status == StatusPaid
}
