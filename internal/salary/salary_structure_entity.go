package salary

import (
	"time"

	"github.com/google/uuid"
)

const (
	ItemTypeEarning   = "Earning"
	ItemTypeDeduction = "Deduction"
)

// SalaryStructure is a per-employee, per-fiscal-year template. It is not
// itself a transaction: payroll generation copies its items into payslip
// items, so later edits never change payslips already produced.
type SalaryStructure struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_structure_employee_year,unique"`
	FiscalYearID uuid.UUID `gorm:"type:uuid;not null;index:idx_structure_employee_year,unique"`

	EmployeeName string `gorm:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []SalaryStructureItem `gorm:"foreignKey:StructureID"`
}

type SalaryStructureItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StructureID uuid.UUID `gorm:"type:uuid;not null;index"`
	GLHeadID    uuid.UUID `gorm:"type:uuid;not null"`
	Amount      int64     `gorm:"type:bigint;not null;default:0"`
	Type        string    `gorm:"type:varchar(20);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Totals sums the typed items. Net salary is always earnings minus
// deductions, computed at payslip creation time.
func Totals(items []SalaryStructureItem) (earnings, deductions int64) {
	for _, item := range items {
		switch item.Type {
		case ItemTypeEarning:
			earnings += item.Amount
		case ItemTypeDeduction:
			deductions += item.Amount
		}
	}
	return earnings, deductions
}
