package salary

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	salaryerrors "eduledger/internal/salary/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateSalaryStructureRequest) (SalaryStructureResponse, error)
	GetAll(ctx context.Context) ([]SalaryStructureResponse, error)
	GetByID(ctx context.Context, id string) (SalaryStructureResponse, error)
	Update(ctx context.Context, id string, req UpdateSalaryStructureRequest) (SalaryStructureResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryStructureResponse{}, salaryerrors.ErrInvalidStructureID
	}
	fiscalYearID, err := uuid.Parse(req.FiscalYearID)
	if err != nil {
		return SalaryStructureResponse{}, salaryerrors.ErrInvalidStructureID
	}

	items, err := buildItems(req.Items)
	if err != nil {
		return SalaryStructureResponse{}, err
	}

	structure := &SalaryStructure{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		FiscalYearID: fiscalYearID,
		Items:        items,
	}

	if err := qtx.Create(ctx, structure); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapToResponse(*structure), nil
}

func (s *service) GetAll(ctx context.Context) ([]SalaryStructureResponse, error) {
	structures, err := s.repo.FindAllWithItems(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]SalaryStructureResponse, len(structures))
	for i, structure := range structures {
		resp[i] = mapToResponse(structure)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryStructureResponse, error) {
	structure, err := s.findStructure(ctx, id)
	if err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapToResponse(*structure), nil
}

// Update replaces the structure's items wholesale. Payslips generated
// from the old items keep their snapshot copies.
func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	structure, err := s.findStructure(ctx, id)
	if err != nil {
		return SalaryStructureResponse{}, err
	}

	items, err := buildItems(req.Items)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	for i := range items {
		items[i].StructureID = structure.ID
	}

	if err := qtx.ReplaceItems(ctx, id, items); err != nil {
		return SalaryStructureResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	structure.Items = items
	return mapToResponse(*structure), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := s.findStructure(ctx, id); err != nil {
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) findStructure(ctx context.Context, id string) (*SalaryStructure, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, salaryerrors.ErrInvalidStructureID
	}

	structure, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salaryerrors.ErrStructureNotFound
		}
		return nil, err
	}
	return structure, nil
}

func buildItems(inputs []StructureItemInput) ([]SalaryStructureItem, error) {
	items := make([]SalaryStructureItem, len(inputs))
	for i, input := range inputs {
		if input.Amount < 0 {
			return nil, salaryerrors.ErrNegativeItemAmount
		}
		glHeadID, err := uuid.Parse(input.GLHeadID)
		if err != nil {
			return nil, salaryerrors.ErrInvalidStructureID
		}
		items[i] = SalaryStructureItem{
			ID:       uuid.New(),
			GLHeadID: glHeadID,
			Amount:   input.Amount,
			Type:     input.Type,
		}
	}
	return items, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_structure_employee_year" {
			return salaryerrors.ErrStructureAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_structure_employee_year") {
		return salaryerrors.ErrStructureAlreadyExists
	}

	return err
}

func mapToResponse(structure SalaryStructure) SalaryStructureResponse {
	earnings, deductions := Totals(structure.Items)

	items := make([]StructureItemResponse, len(structure.Items))
	for i, item := range structure.Items {
		items[i] = StructureItemResponse{
			ID:       item.ID.String(),
			GLHeadID: item.GLHeadID.String(),
			Amount:   item.Amount,
			Type:     item.Type,
		}
	}

	return SalaryStructureResponse{
		ID:              structure.ID.String(),
		EmployeeID:      structure.EmployeeID.String(),
		EmployeeName:    structure.EmployeeName,
		FiscalYearID:    structure.FiscalYearID.String(),
		TotalEarnings:   earnings,
		TotalDeductions: deductions,
		NetSalary:       earnings - deductions,
		Items:           items,
	}
}
