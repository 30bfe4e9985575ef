package expense

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, exp *Expense) error
	FindAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]Expense, error)
	FindByID(ctx context.Context, id string) (*Expense, error)
	Update(ctx context.Context, exp *Expense) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, exp *Expense) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

func (r *repository) FindAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]Expense, error) {
	var expenses []Expense
	err := r.db.WithContext(ctx).
		Where("fiscal_year_id = ?", fiscalYearID).
		Order("expense_date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Expense, error) {
	var exp Expense
	err := r.db.WithContext(ctx).First(&exp, "id = ?", id).Error
	return &exp, err
}

func (r *repository) Update(ctx context.Context, exp *Expense) error {
	return r.db.WithContext(ctx).Save(exp).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Expense{}, "id = ?", id).Error
}
