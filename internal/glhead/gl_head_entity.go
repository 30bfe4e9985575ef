package glhead

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeIncome    = "Income"
	TypeExpense   = "Expense"
	TypeAsset     = "Asset"
	TypeLiability = "Liability"
)

// GLHead is a node in the chart-of-accounts tree. Every monetary posting
// (invoice item, payment mode, expense) targets one of these.
type GLHead struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string     `gorm:"type:varchar(120);not null;index"`
	Type     string     `gorm:"type:varchar(20);not null;index"`
	Code     *string    `gorm:"type:varchar(30)"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`

	Description *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidType(t string) bool {
	switch t {
	case TypeIncome, TypeExpense, TypeAsset, TypeLiability:
		return true
	}
	return false
}
