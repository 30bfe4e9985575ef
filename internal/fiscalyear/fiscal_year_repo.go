package fiscalyear

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, fy *FiscalYear) error
	FindAll(ctx context.Context) ([]FiscalYear, error)
	FindByID(ctx context.Context, id string) (*FiscalYear, error)
	FindActive(ctx context.Context) (*FiscalYear, error)
	Update(ctx context.Context, fy *FiscalYear) error
	DeactivateAll(ctx context.Context) error
	Activate(ctx context.Context, id string) error
	Close(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, fy *FiscalYear) error {
	return r.db.WithContext(ctx).Create(fy).Error
}

func (r *repository) FindAll(ctx context.Context) ([]FiscalYear, error) {
	var years []FiscalYear
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&years).Error
	return years, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*FiscalYear, error) {
	var fy FiscalYear
	err := r.db.WithContext(ctx).
		First(&fy, "id = ?", id).Error
	return &fy, err
}

func (r *repository) FindActive(ctx context.Context) (*FiscalYear, error) {
	var fy FiscalYear
	err := r.db.WithContext(ctx).
		First(&fy, "is_active = ?", true).Error
	return &fy, err
}

func (r *repository) Update(ctx context.Context, fy *FiscalYear) error {
	return r.db.WithContext(ctx).Save(fy).Error
}

func (r *repository) DeactivateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&FiscalYear{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *repository) Activate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&FiscalYear{}).
		Where("id = ?", id).
		Update("is_active", true).Error
}

func (r *repository) Close(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&FiscalYear{}).
		Where("id = ?", id).
		Update("is_closed", true).Error
}
