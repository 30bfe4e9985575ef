package fiscalyear

import (
	"time"

	"github.com/google/uuid"
)

type FiscalYear struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`

	// Exactly one fiscal year is active system-wide; SetActive enforces
	// this inside a single transaction.
	IsActive bool `gorm:"not null;default:false;index"`
	IsClosed bool `gorm:"not null;default:false"`

	// Amounts are stored in the smallest currency unit (paisa) to avoid
	// floating point drift.
	OpeningBalance int64 `gorm:"type:bigint;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
