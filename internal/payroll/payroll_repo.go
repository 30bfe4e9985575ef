package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRun(ctx context.Context, run *PayrollRun) error
	CreatePayslip(ctx context.Context, slip *Payslip) error
	FindRunByID(ctx context.Context, id string) (*PayrollRun, error)
	FindRunByFiscalYearAndMonth(ctx context.Context, fiscalYearID, month string) (*PayrollRun, error)
	FindAllRuns(ctx context.Context, fiscalYearID string) ([]PayrollRun, error)
	MarkPosted(ctx context.Context, runID string, postedAt time.Time) error
	MarkPayslipsPaid(ctx context.Context, runID string) error
	DeleteRun(ctx context.Context, id string) error
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

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) CreatePayslip(ctx context.Context, slip *Payslip) error {
	return r.db.WithContext(ctx).Create(slip).Error
}

func (r *repository) FindRunByID(ctx context.Context, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Preload("Payslips.Items").
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) FindRunByFiscalYearAndMonth(
	ctx context.Context,
	fiscalYearID, month string,
) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		First(&run, "fiscal_year_id = ? AND month = ?", fiscalYearID, month).Error
	return &run, err
}

func (r *repository) FindAllRuns(ctx context.Context, fiscalYearID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Preload("Payslips").
		Where("fiscal_year_id = ?", fiscalYearID).
		Order("created_at DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) MarkPosted(ctx context.Context, runID string, postedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Where("id = ?", runID).
		Updates(map[string]any{
			"is_posted": true,
			"posted_at": postedAt,
		}).Error
}

func (r *repository) MarkPayslipsPaid(ctx context.Context, runID string) error {
	return r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("run_id = ?", runID).
		Update("status", PayslipStatusPaid).Error
}

func (r *repository) DeleteRun(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Delete(&PayslipItem{}, "payslip_id IN (SELECT id FROM payslips WHERE run_id = ?)", id).Error
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&Payslip{}, "run_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&PayrollRun{}, "id = ?", id).Error
}
