package fiscalyear

import (
	"context"
	"database/sql"
	"testing"

	fiscalyearerrors "eduledger/internal/fiscalyear/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) Repository
	createFn        func(ctx context.Context, fy *FiscalYear) error
	findAllFn       func(ctx context.Context) ([]FiscalYear, error)
	findByIDFn      func(ctx context.Context, id string) (*FiscalYear, error)
	findActiveFn    func(ctx context.Context) (*FiscalYear, error)
	updateFn        func(ctx context.Context, fy *FiscalYear) error
	deactivateAllFn func(ctx context.Context) error
	activateFn      func(ctx context.Context, id string) error
	closeFn         func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, fy *FiscalYear) error {
	return f.createFn(ctx, fy)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]FiscalYear, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*FiscalYear, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindActive(ctx context.Context) (*FiscalYear, error) {
	return f.findActiveFn(ctx)
}
func (f *fakeRepo) Update(ctx context.Context, fy *FiscalYear) error {
	return f.updateFn(ctx, fy)
}
func (f *fakeRepo) DeactivateAll(ctx context.Context) error { return f.deactivateAllFn(ctx) }
func (f *fakeRepo) Activate(ctx context.Context, id string) error {
	return f.activateFn(ctx, id)
}
func (f *fakeRepo) Close(ctx context.Context, id string) error { return f.closeFn(ctx, id) }

// Activation must deactivate every year and activate the target inside
// one transaction, in that order.
func TestService_SetActive_SingleTransactionFlip(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	target := FiscalYear{ID: uuid.New(), Name: "FY 2082/83"}

	var calls []string
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*FiscalYear, error) {
		calls = append(calls, "find")
		return &target, nil
	}
	repo.deactivateAllFn = func(ctx context.Context) error {
		calls = append(calls, "deactivate_all")
		return nil
	}
	repo.activateFn = func(ctx context.Context, id string) error {
		calls = append(calls, "activate:"+id)
		return nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.SetActive(context.Background(), target.ID.String())

	assert.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Equal(t, []string{"find", "deactivate_all", "activate:" + target.ID.String()}, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SetActive_ClosedYearRejected(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	closed := FiscalYear{ID: uuid.New(), Name: "FY 2080/81", IsClosed: true}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*FiscalYear, error) {
		return &closed, nil
	}
	repo.deactivateAllFn = func(ctx context.Context) error {
		t.Fatal("closed years must not trigger deactivation")
		return nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.SetActive(context.Background(), closed.ID.String())

	assert.ErrorIs(t, err, fiscalyearerrors.ErrFiscalYearClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsInvertedPeriod(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, fy *FiscalYear) error {
		t.Fatal("invalid periods must not reach the repository")
		return nil
	}

	svc := NewService(db, repo)

	_, err := svc.Create(context.Background(), CreateFiscalYearRequest{
		Name:      "FY backwards",
		StartDate: "2026-12-31",
		EndDate:   "2026-01-01",
	})

	assert.ErrorIs(t, err, fiscalyearerrors.ErrInvalidDateRange)
}
