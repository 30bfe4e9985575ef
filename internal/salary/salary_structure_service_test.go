package salary

import (
	"context"
	"database/sql"
	"testing"

	salaryerrors "eduledger/internal/salary/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn           func(tx *sql.Tx) Repository
	createFn           func(ctx context.Context, structure *SalaryStructure) error
	findAllWithItemsFn func(ctx context.Context) ([]SalaryStructure, error)
	findByIDFn         func(ctx context.Context, id string) (*SalaryStructure, error)
	replaceItemsFn     func(ctx context.Context, structureID string, items []SalaryStructureItem) error
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, structure *SalaryStructure) error {
	return f.createFn(ctx, structure)
}
func (f *fakeRepo) FindAllWithItems(ctx context.Context) ([]SalaryStructure, error) {
	return f.findAllWithItemsFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*SalaryStructure, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) ReplaceItems(ctx context.Context, structureID string, items []SalaryStructureItem) error {
	return f.replaceItemsFn(ctx, structureID, items)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func TestService_Create_ComputesTotals(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, structure *SalaryStructure) error { return nil }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), CreateSalaryStructureRequest{
		EmployeeID:   uuid.NewString(),
		FiscalYearID: uuid.NewString(),
		Items: []StructureItemInput{
			{GLHeadID: uuid.NewString(), Amount: 5000000, Type: ItemTypeEarning},
			{GLHeadID: uuid.NewString(), Amount: 300000, Type: ItemTypeEarning},
			{GLHeadID: uuid.NewString(), Amount: 500000, Type: ItemTypeDeduction},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5300000), resp.TotalEarnings)
	assert.Equal(t, int64(500000), resp.TotalDeductions)
	assert.Equal(t, int64(4800000), resp.NetSalary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsNegativeAmounts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, structure *SalaryStructure) error {
		t.Fatal("negative amounts must not reach the repository")
		return nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateSalaryStructureRequest{
		EmployeeID:   uuid.NewString(),
		FiscalYearID: uuid.NewString(),
		Items: []StructureItemInput{
			{GLHeadID: uuid.NewString(), Amount: -100, Type: ItemTypeEarning},
		},
	})

	assert.ErrorIs(t, err, salaryerrors.ErrNegativeItemAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_MapsUniqueViolation(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, structure *SalaryStructure) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_structure_employee_year"}
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateSalaryStructureRequest{
		EmployeeID:   uuid.NewString(),
		FiscalYearID: uuid.NewString(),
		Items: []StructureItemInput{
			{GLHeadID: uuid.NewString(), Amount: 100000, Type: ItemTypeEarning},
		},
	})

	assert.ErrorIs(t, err, salaryerrors.ErrStructureAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
