package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	PayslipStatusDraft = "Draft"
	PayslipStatusPaid  = "Paid"
)

// PayrollRun is one payroll cycle for a (fiscal year, month) pair. A run
// starts as a draft and becomes terminal once posted.
type PayrollRun struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FiscalYearID uuid.UUID `gorm:"type:uuid;not null;index"`
	Month        string    `gorm:"size:20;not null"`
	IsPosted     bool      `gorm:"not null;default:false"`
	PostedAt     *time.Time
	Payslips     []Payslip `gorm:"foreignKey:RunID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Payslip carries a frozen copy of the employee's salary structure at
// generation time. Later edits to the structure do not touch it.
type Payslip struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID           uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null"`
	EmployeeName    string    `gorm:"size:150;not null"`
	TotalEarnings   int64     `gorm:"not null"`
	TotalDeductions int64     `gorm:"not null"`
	NetSalary       int64     `gorm:"not null"`
	Status          string    `gorm:"size:20;not null;default:'Draft'"`
	Items           []PayslipItem `gorm:"foreignKey:PayslipID"`
	CreatedAt       time.Time
}

type PayslipItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayslipID uuid.UUID `gorm:"type:uuid;not null;index"`
	GLHeadID  uuid.UUID `gorm:"type:uuid;not null"`
	Amount    int64     `gorm:"not null"`
	Type      string    `gorm:"size:20;not null"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

func (Payslip) TableName() string {
	return "payslips"
}

func (PayslipItem) TableName() string {
	return "payslip_items"
}
