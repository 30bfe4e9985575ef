package counter

import (
	"context"

	"gorm.io/gorm"
)

// Repository hands out monotonic sequence values scoped to a fiscal year,
// used for invoice numbering.
type Repository interface {
	GetNextValue(ctx context.Context, fiscalYearID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, fiscalYearID string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT so concurrent requests never hand out the same number.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO fiscal_year_counters (fiscal_year_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (fiscal_year_id, counter_type) DO UPDATE
		SET last_value = fiscal_year_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, fiscalYearID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
