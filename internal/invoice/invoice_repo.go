package invoice

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, inv *Invoice) error
	FindByID(ctx context.Context, id string) (*Invoice, error)
	FindAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]Invoice, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	// FindUnpaidByStudentBefore returns the student's unpaid invoices
	// created strictly before the cutoff, oldest first.
	FindUnpaidByStudentBefore(ctx context.Context, studentID string, before time.Time) ([]Invoice, error)
	MarkPaid(ctx context.Context, ids []string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *repository) FindAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]Invoice, error) {
	var invoices []Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("fiscal_year_id = ?", fiscalYearID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&Invoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) FindUnpaidByStudentBefore(
	ctx context.Context,
	studentID string,
	before time.Time,
) ([]Invoice, error) {
	var invoices []Invoice
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND status = ? AND created_at < ?", studentID, StatusUnpaid, before).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *repository) MarkPaid(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&Invoice{}).
		Where("id IN ?", ids).
		Update("status", StatusPaid).Error
}
