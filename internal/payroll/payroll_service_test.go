package payroll

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eduledger/internal/employee"
	"eduledger/internal/expense"
	"eduledger/internal/glhead"
	glheaderrors "eduledger/internal/glhead/errors"
	payrollerrors "eduledger/internal/payroll/errors"
	"eduledger/internal/salary"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn          func(tx *sql.Tx) Repository
	createRunFn       func(ctx context.Context, run *PayrollRun) error
	createPayslipFn   func(ctx context.Context, slip *Payslip) error
	findRunByIDFn     func(ctx context.Context, id string) (*PayrollRun, error)
	findRunByFYMFn    func(ctx context.Context, fiscalYearID, month string) (*PayrollRun, error)
	findAllRunsFn     func(ctx context.Context, fiscalYearID string) ([]PayrollRun, error)
	markPostedFn      func(ctx context.Context, runID string, postedAt time.Time) error
	markPayslipsFn    func(ctx context.Context, runID string) error
	deleteRunFn       func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) CreateRun(ctx context.Context, run *PayrollRun) error {
	return f.createRunFn(ctx, run)
}
func (f *fakeRepo) CreatePayslip(ctx context.Context, slip *Payslip) error {
	return f.createPayslipFn(ctx, slip)
}
func (f *fakeRepo) FindRunByID(ctx context.Context, id string) (*PayrollRun, error) {
	return f.findRunByIDFn(ctx, id)
}
func (f *fakeRepo) FindRunByFiscalYearAndMonth(ctx context.Context, fiscalYearID, month string) (*PayrollRun, error) {
	return f.findRunByFYMFn(ctx, fiscalYearID, month)
}
func (f *fakeRepo) FindAllRuns(ctx context.Context, fiscalYearID string) ([]PayrollRun, error) {
	return f.findAllRunsFn(ctx, fiscalYearID)
}
func (f *fakeRepo) MarkPosted(ctx context.Context, runID string, postedAt time.Time) error {
	return f.markPostedFn(ctx, runID, postedAt)
}
func (f *fakeRepo) MarkPayslipsPaid(ctx context.Context, runID string) error {
	return f.markPayslipsFn(ctx, runID)
}
func (f *fakeRepo) DeleteRun(ctx context.Context, id string) error {
	return f.deleteRunFn(ctx, id)
}

type fakeSalaryRepo struct {
	findAllWithItemsFn func(ctx context.Context) ([]salary.SalaryStructure, error)
}

func (f *fakeSalaryRepo) WithTx(tx *sql.Tx) salary.Repository { return f }
func (f *fakeSalaryRepo) Create(ctx context.Context, structure *salary.SalaryStructure) error {
	return nil
}
func (f *fakeSalaryRepo) FindAllWithItems(ctx context.Context) ([]salary.SalaryStructure, error) {
	return f.findAllWithItemsFn(ctx)
}
func (f *fakeSalaryRepo) FindByID(ctx context.Context, id string) (*salary.SalaryStructure, error) {
	return nil, nil
}
func (f *fakeSalaryRepo) ReplaceItems(ctx context.Context, structureID string, items []salary.SalaryStructureItem) error {
	return nil
}
func (f *fakeSalaryRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeEmployeeRepo struct {
	findStaffIDsFn func(ctx context.Context) ([]uuid.UUID, error)
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindStaffIDs(ctx context.Context) ([]uuid.UUID, error) {
	return f.findStaffIDsFn(ctx)
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error            { return nil }

type fakeExpenseRepo struct {
	createFn func(ctx context.Context, exp *expense.Expense) error
}

func (f *fakeExpenseRepo) WithTx(tx *sql.Tx) expense.Repository { return f }
func (f *fakeExpenseRepo) Create(ctx context.Context, exp *expense.Expense) error {
	return f.createFn(ctx, exp)
}
func (f *fakeExpenseRepo) FindAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]expense.Expense, error) {
	return nil, nil
}
func (f *fakeExpenseRepo) FindByID(ctx context.Context, id string) (*expense.Expense, error) {
	return nil, nil
}
func (f *fakeExpenseRepo) Update(ctx context.Context, exp *expense.Expense) error { return nil }
func (f *fakeExpenseRepo) Delete(ctx context.Context, id string) error            { return nil }

type fakeHeadRepo struct {
	findByTypeFn func(ctx context.Context, headType string) ([]glhead.GLHead, error)
}

func (f *fakeHeadRepo) Create(ctx context.Context, head *glhead.GLHead) error { return nil }
func (f *fakeHeadRepo) FindAll(ctx context.Context) ([]glhead.GLHead, error)  { return nil, nil }
func (f *fakeHeadRepo) FindByID(ctx context.Context, id string) (*glhead.GLHead, error) {
	return nil, nil
}
func (f *fakeHeadRepo) FindByType(ctx context.Context, headType string) ([]glhead.GLHead, error) {
	return f.findByTypeFn(ctx, headType)
}
func (f *fakeHeadRepo) Update(ctx context.Context, head *glhead.GLHead) error { return nil }
func (f *fakeHeadRepo) Delete(ctx context.Context, id string) error           { return nil }
func (f *fakeHeadRepo) CountChildren(ctx context.Context, id string) (int64, error) {
	return 0, nil
}

func structureFor(name string, employeeID uuid.UUID, earning, deduction int64) salary.SalaryStructure {
	items := []salary.SalaryStructureItem{
		{ID: uuid.New(), GLHeadID: uuid.New(), Amount: earning, Type: salary.ItemTypeEarning},
	}
	if deduction > 0 {
		items = append(items, salary.SalaryStructureItem{
			ID: uuid.New(), GLHeadID: uuid.New(), Amount: deduction, Type: salary.ItemTypeDeduction,
		})
	}
	return salary.SalaryStructure{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		FiscalYearID: uuid.New(),
		EmployeeName: name,
		Items:        items,
	}
}

func headsByType(assetHeads, expenseHeads []glhead.GLHead) *fakeHeadRepo {
	return &fakeHeadRepo{
		findByTypeFn: func(ctx context.Context, headType string) ([]glhead.GLHead, error) {
			if headType == glhead.TypeAsset {
				return assetHeads, nil
			}
			return expenseHeads, nil
		},
	}
}

func TestService_Generate_SnapshotsStructuresIntoDraftPayslips(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	structure := structureFor("Gita Sharma", employeeID, 5000000, 500000)

	var slips []Payslip
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createRunFn = func(ctx context.Context, run *PayrollRun) error { return nil }
	repo.createPayslipFn = func(ctx context.Context, slip *Payslip) error {
		slips = append(slips, *slip)
		return nil
	}

	salaryRepo := &fakeSalaryRepo{
		findAllWithItemsFn: func(ctx context.Context) ([]salary.SalaryStructure, error) {
			return []salary.SalaryStructure{structure}, nil
		},
	}

	resolver := glhead.NewResolver(headsByType(nil, nil))
	svc := NewService(db, repo, salaryRepo, &fakeEmployeeRepo{}, &fakeExpenseRepo{}, resolver)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Generate(context.Background(), GeneratePayrollRunRequest{
		FiscalYearID: uuid.NewString(),
		Month:        "Baisakh",
	})

	assert.NoError(t, err)
	assert.False(t, resp.IsPosted)
	assert.Equal(t, 1, resp.PayslipCount)
	assert.Equal(t, int64(4500000), resp.TotalNet)

	if assert.Len(t, slips, 1) {
		slip := slips[0]
		assert.Equal(t, employeeID, slip.EmployeeID)
		assert.Equal(t, "Gita Sharma", slip.EmployeeName)
		assert.Equal(t, int64(5000000), slip.TotalEarnings)
		assert.Equal(t, int64(500000), slip.TotalDeductions)
		assert.Equal(t, int64(4500000), slip.NetSalary)
		assert.Equal(t, PayslipStatusDraft, slip.Status)
		// Item copies must be new rows pointing at the payslip, not the
		// structure, so later structure edits cannot reach them.
		assert.Len(t, slip.Items, 2)
		for i, item := range slip.Items {
			assert.Equal(t, slip.ID, item.PayslipID)
			assert.Equal(t, structure.Items[i].GLHeadID, item.GLHeadID)
			assert.Equal(t, structure.Items[i].Amount, item.Amount)
			assert.NotEqual(t, structure.Items[i].ID, item.ID)
		}
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Generate_ContinuesPastFailedPayslip(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	good := structureFor("Gita Sharma", uuid.New(), 4000000, 0)
	bad := structureFor("Broken Row", uuid.New(), 3000000, 0)

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createRunFn = func(ctx context.Context, run *PayrollRun) error { return nil }
	repo.createPayslipFn = func(ctx context.Context, slip *Payslip) error {
		if slip.EmployeeName == "Broken Row" {
			return errors.New("insert failed")
		}
		return nil
	}

	salaryRepo := &fakeSalaryRepo{
		findAllWithItemsFn: func(ctx context.Context) ([]salary.SalaryStructure, error) {
			return []salary.SalaryStructure{bad, good}, nil
		},
	}

	svc := NewService(db, repo, salaryRepo, &fakeEmployeeRepo{}, &fakeExpenseRepo{},
		glhead.NewResolver(headsByType(nil, nil)))

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Generate(context.Background(), GeneratePayrollRunRequest{
		FiscalYearID: uuid.NewString(),
		Month:        "Jestha",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.PayslipCount)
	assert.Equal(t, "Gita Sharma", resp.Payslips[0].EmployeeName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_PostsRunAndCreatesExpensePerPayslip(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	teacherID := uuid.New()
	staffID := uuid.New()
	run := PayrollRun{
		ID:           uuid.New(),
		FiscalYearID: uuid.New(),
		Month:        "Baisakh",
		Payslips: []Payslip{
			{ID: uuid.New(), EmployeeID: teacherID, EmployeeName: "Gita Sharma", NetSalary: 4500000},
			{ID: uuid.New(), EmployeeID: staffID, EmployeeName: "Hari Thapa", NetSalary: 2500000},
		},
	}

	cash := glhead.GLHead{ID: uuid.New(), Name: "Cash in Hand"}
	teacherHead := glhead.GLHead{ID: uuid.New(), Name: "Teacher Salary"}
	staffHead := glhead.GLHead{ID: uuid.New(), Name: "Staff Salary"}

	posted := false
	slipsPaid := false
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findRunByIDFn = func(ctx context.Context, id string) (*PayrollRun, error) {
		runCopy := run
		return &runCopy, nil
	}
	repo.markPostedFn = func(ctx context.Context, runID string, postedAt time.Time) error {
		posted = true
		return nil
	}
	repo.markPayslipsFn = func(ctx context.Context, runID string) error {
		slipsPaid = true
		return nil
	}

	var expenses []expense.Expense
	expenseRepo := &fakeExpenseRepo{
		createFn: func(ctx context.Context, exp *expense.Expense) error {
			expenses = append(expenses, *exp)
			return nil
		},
	}

	employeeRepo := &fakeEmployeeRepo{
		findStaffIDsFn: func(ctx context.Context) ([]uuid.UUID, error) {
			return []uuid.UUID{staffID}, nil
		},
	}

	resolver := glhead.NewResolver(headsByType(
		[]glhead.GLHead{cash},
		[]glhead.GLHead{teacherHead, staffHead},
	))

	svc := NewService(db, repo, &fakeSalaryRepo{}, employeeRepo, expenseRepo, resolver)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Approve(context.Background(), run.ID.String(), ApprovePayrollRunRequest{})

	assert.NoError(t, err)
	assert.True(t, posted)
	assert.True(t, slipsPaid)
	assert.True(t, resp.Run.IsPosted)
	assert.Equal(t, 2, resp.ExpensesCreated)
	assert.Equal(t, 0, resp.Skipped)

	if assert.Len(t, expenses, 2) {
		assert.Equal(t, teacherHead.ID, expenses[0].ExpenseHeadID)
		assert.Equal(t, int64(4500000), expenses[0].Amount)
		assert.Contains(t, expenses[0].Description, "Gita Sharma")
		assert.Contains(t, expenses[0].Description, "Baisakh")

		assert.Equal(t, staffHead.ID, expenses[1].ExpenseHeadID)
		assert.Equal(t, int64(2500000), expenses[1].Amount)

		for _, exp := range expenses {
			assert.Equal(t, cash.ID, exp.PaymentModeGL)
			assert.Equal(t, run.FiscalYearID, exp.FiscalYearID)
		}
	}

	for _, slip := range resp.Run.Payslips {
		assert.Equal(t, PayslipStatusPaid, slip.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_AlreadyPostedIsFatal(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	run := PayrollRun{ID: uuid.New(), IsPosted: true}

	repo := &fakeRepo{}
	repo.findRunByIDFn = func(ctx context.Context, id string) (*PayrollRun, error) {
		return &run, nil
	}

	expenseRepo := &fakeExpenseRepo{
		createFn: func(ctx context.Context, exp *expense.Expense) error {
			t.Fatal("a posted run must not create more expenses")
			return nil
		},
	}

	svc := NewService(db, repo, &fakeSalaryRepo{}, &fakeEmployeeRepo{}, expenseRepo,
		glhead.NewResolver(headsByType(nil, nil)))

	_, err := svc.Approve(context.Background(), run.ID.String(), ApprovePayrollRunRequest{})

	assert.ErrorIs(t, err, payrollerrors.ErrRunAlreadyPosted)
}

func TestService_Approve_NoCashHeadIsFatal(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	run := PayrollRun{
		ID:       uuid.New(),
		Payslips: []Payslip{{ID: uuid.New(), NetSalary: 100000}},
	}

	repo := &fakeRepo{}
	repo.findRunByIDFn = func(ctx context.Context, id string) (*PayrollRun, error) {
		return &run, nil
	}

	// Assets exist but none is named like cash, and no override came in.
	resolver := glhead.NewResolver(headsByType(
		[]glhead.GLHead{{ID: uuid.New(), Name: "NIC Asia Bank"}},
		[]glhead.GLHead{{ID: uuid.New(), Name: "Teacher Salary"}},
	))

	svc := NewService(db, repo, &fakeSalaryRepo{}, &fakeEmployeeRepo{}, &fakeExpenseRepo{}, resolver)

	_, err := svc.Approve(context.Background(), run.ID.String(), ApprovePayrollRunRequest{})

	assert.ErrorIs(t, err, glheaderrors.ErrNoCashHead)
}

func TestService_Approve_ExpenseFailureSkipsPayslipButStillPosts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	run := PayrollRun{
		ID:           uuid.New(),
		FiscalYearID: uuid.New(),
		Month:        "Jestha",
		Payslips: []Payslip{
			{ID: uuid.New(), EmployeeID: uuid.New(), EmployeeName: "Gita Sharma", NetSalary: 4500000},
			{ID: uuid.New(), EmployeeID: uuid.New(), EmployeeName: "Broken Row", NetSalary: 2000000},
		},
	}

	posted := false
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findRunByIDFn = func(ctx context.Context, id string) (*PayrollRun, error) {
		runCopy := run
		return &runCopy, nil
	}
	repo.markPostedFn = func(ctx context.Context, runID string, postedAt time.Time) error {
		posted = true
		return nil
	}
	repo.markPayslipsFn = func(ctx context.Context, runID string) error { return nil }

	expenseRepo := &fakeExpenseRepo{
		createFn: func(ctx context.Context, exp *expense.Expense) error {
			if exp.Description == "Salary for Broken Row (Jestha)" {
				return errors.New("insert failed")
			}
			return nil
		},
	}

	employeeRepo := &fakeEmployeeRepo{
		findStaffIDsFn: func(ctx context.Context) ([]uuid.UUID, error) { return nil, nil },
	}

	resolver := glhead.NewResolver(headsByType(
		[]glhead.GLHead{{ID: uuid.New(), Name: "Cash in Hand"}},
		[]glhead.GLHead{{ID: uuid.New(), Name: "Teacher Salary"}},
	))

	svc := NewService(db, repo, &fakeSalaryRepo{}, employeeRepo, expenseRepo, resolver)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Approve(context.Background(), run.ID.String(), ApprovePayrollRunRequest{})

	assert.NoError(t, err)
	assert.True(t, posted)
	assert.Equal(t, 1, resp.ExpensesCreated)
	assert.Equal(t, 1, resp.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_ExplicitPaymentModeOverride(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	override := uuid.New()
	run := PayrollRun{
		ID:           uuid.New(),
		FiscalYearID: uuid.New(),
		Month:        "Ashadh",
		Payslips: []Payslip{
			{ID: uuid.New(), EmployeeID: uuid.New(), EmployeeName: "Gita Sharma", NetSalary: 4500000},
		},
	}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findRunByIDFn = func(ctx context.Context, id string) (*PayrollRun, error) {
		runCopy := run
		return &runCopy, nil
	}
	repo.markPostedFn = func(ctx context.Context, runID string, postedAt time.Time) error { return nil }
	repo.markPayslipsFn = func(ctx context.Context, runID string) error { return nil }

	var created expense.Expense
	expenseRepo := &fakeExpenseRepo{
		createFn: func(ctx context.Context, exp *expense.Expense) error {
			created = *exp
			return nil
		},
	}

	headRepo := &fakeHeadRepo{
		findByTypeFn: func(ctx context.Context, headType string) ([]glhead.GLHead, error) {
			if headType == glhead.TypeAsset {
				t.Fatal("explicit override must skip the cash-head lookup")
			}
			return []glhead.GLHead{{ID: uuid.New(), Name: "Teacher Salary"}}, nil
		},
	}

	employeeRepo := &fakeEmployeeRepo{
		findStaffIDsFn: func(ctx context.Context) ([]uuid.UUID, error) { return nil, nil },
	}

	svc := NewService(db, repo, &fakeSalaryRepo{}, employeeRepo, expenseRepo,
		glhead.NewResolver(headRepo))

	mock.ExpectBegin()
	mock.ExpectCommit()

	overrideStr := override.String()
	_, err := svc.Approve(context.Background(), run.ID.String(), ApprovePayrollRunRequest{
		PaymentModeGLHeadID: &overrideStr,
	})

	assert.NoError(t, err)
	assert.Equal(t, override, created.PaymentModeGL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_OnlyDraftRuns(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	draft := PayrollRun{ID: uuid.New()}
	postedRun := PayrollRun{ID: uuid.New(), IsPosted: true}

	deleted := ""
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findRunByIDFn = func(ctx context.Context, id string) (*PayrollRun, error) {
		if id == draft.ID.String() {
			return &draft, nil
		}
		return &postedRun, nil
	}
	repo.deleteRunFn = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}

	svc := NewService(db, repo, &fakeSalaryRepo{}, &fakeEmployeeRepo{}, &fakeExpenseRepo{},
		glhead.NewResolver(headsByType(nil, nil)))

	err := svc.Delete(context.Background(), postedRun.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrDeletePostedRun)
	assert.Empty(t, deleted)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err = svc.Delete(context.Background(), draft.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, draft.ID.String(), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The engine itself allows repeated (fiscal year, month) pairs; the
// uniqueness precondition lives at the HTTP boundary.
func TestService_Generate_SameMonthTwiceProducesIndependentRuns(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var runIDs []uuid.UUID
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createRunFn = func(ctx context.Context, run *PayrollRun) error {
		runIDs = append(runIDs, run.ID)
		return nil
	}
	repo.createPayslipFn = func(ctx context.Context, slip *Payslip) error { return nil }

	salaryRepo := &fakeSalaryRepo{
		findAllWithItemsFn: func(ctx context.Context) ([]salary.SalaryStructure, error) {
			return nil, nil
		},
	}

	svc := NewService(db, repo, salaryRepo, &fakeEmployeeRepo{}, &fakeExpenseRepo{},
		glhead.NewResolver(headsByType(nil, nil)))

	req := GeneratePayrollRunRequest{FiscalYearID: uuid.NewString(), Month: "Baisakh"}

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Generate(context.Background(), req)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Generate(context.Background(), req)
	assert.NoError(t, err)

	assert.Len(t, runIDs, 2)
	assert.NotEqual(t, runIDs[0], runIDs[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}
