package salary

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, structure *SalaryStructure) error
	FindAllWithItems(ctx context.Context) ([]SalaryStructure, error)
	FindByID(ctx context.Context, id string) (*SalaryStructure, error)
	ReplaceItems(ctx context.Context, structureID string, items []SalaryStructureItem) error
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

func (r *repository) Create(ctx context.Context, structure *SalaryStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

// FindAllWithItems returns every structure defined, joined with the
// employee name. Payroll generation deliberately does not filter by
// employee status: all structures are in scope.
func (r *repository) FindAllWithItems(ctx context.Context) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	err := r.db.WithContext(ctx).
		Preload("Items").
		Select("salary_structures.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = salary_structures.employee_id").
		Order("employees.full_name ASC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&structure, "id = ?", id).Error
	return &structure, err
}

func (r *repository) ReplaceItems(ctx context.Context, structureID string, items []SalaryStructureItem) error {
	if err := r.db.WithContext(ctx).
		Delete(&SalaryStructureItem{}, "structure_id = ?", structureID).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Delete(&SalaryStructureItem{}, "structure_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&SalaryStructure{}, "id = ?", id).Error
}
