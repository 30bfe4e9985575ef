package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eduledger/internal/employee"
	"eduledger/internal/events"
	"eduledger/internal/expense"
	"eduledger/internal/glhead"
	"eduledger/internal/messaging/kafka"
	payrollerrors "eduledger/internal/payroll/errors"
	"eduledger/internal/salary"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// Generate drafts a run for the month: one payslip per salary
	// structure, each a frozen copy of the structure's items.
	Generate(ctx context.Context, req GeneratePayrollRunRequest) (PayrollRunResponse, error)
	// Approve posts a draft run: one expense per payslip against the
	// resolved salary head, then the run and its payslips flip to Paid.
	// Posting is terminal.
	Approve(ctx context.Context, runID string, req ApprovePayrollRunRequest) (ApprovePayrollRunResponse, error)
	GetAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]PayrollRunResponse, error)
	GetByID(ctx context.Context, id string) (PayrollRunResponse, error)
	Delete(ctx context.Context, id string) error
	RunExists(ctx context.Context, fiscalYearID, month string) (bool, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	salaryRepo   salary.Repository
	employeeRepo employee.Repository
	expenseRepo  expense.Repository
	resolver     *glhead.Resolver
	outboxRepo   kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	salaryRepo salary.Repository,
	employeeRepo employee.Repository,
	expenseRepo expense.Repository,
	resolver *glhead.Resolver,
) Service {
	return NewServiceWithOutbox(db, repo, salaryRepo, employeeRepo, expenseRepo, resolver, nil)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	salaryRepo salary.Repository,
	employeeRepo employee.Repository,
	expenseRepo expense.Repository,
	resolver *glhead.Resolver,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:           db,
		repo:         repo,
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		expenseRepo:  expenseRepo,
		resolver:     resolver,
		outboxRepo:   outboxRepo,
		logger:       zap.L().Named("payroll_service"),
	}
}

func (s *service) Generate(ctx context.Context, req GeneratePayrollRunRequest) (PayrollRunResponse, error) {
	fiscalYearID, err := uuid.Parse(req.FiscalYearID)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidRunID
	}

	structures, err := s.salaryRepo.FindAllWithItems(ctx)
	if err != nil {
		return PayrollRunResponse{}, err
	}

	run := &PayrollRun{
		ID:           uuid.New(),
		FiscalYearID: fiscalYearID,
		Month:        req.Month,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.CreateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, err
	}

	for _, structure := range structures {
		slip := buildPayslip(run.ID, structure)
		if err := qtx.CreatePayslip(ctx, slip); err != nil {
			s.logger.Warn("payslip generation skipped an employee",
				zap.String("run_id", run.ID.String()),
				zap.String("employee_id", structure.EmployeeID.String()),
				zap.Error(err),
			)
			continue
		}
		run.Payslips = append(run.Payslips, *slip)
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	return mapRunToResponse(*run, true), nil
}

func (s *service) Approve(
	ctx context.Context,
	runID string,
	req ApprovePayrollRunRequest,
) (ApprovePayrollRunResponse, error) {
	run, err := s.findRun(ctx, runID)
	if err != nil {
		return ApprovePayrollRunResponse{}, err
	}
	if run.IsPosted {
		return ApprovePayrollRunResponse{}, payrollerrors.ErrRunAlreadyPosted
	}

	modeHeadID, err := s.resolvePaymentMode(ctx, req.PaymentModeGLHeadID)
	if err != nil {
		return ApprovePayrollRunResponse{}, err
	}

	teacherHead, staffHead, fallbackHead, err := s.resolver.SalaryExpenseHeads(ctx)
	if err != nil {
		return ApprovePayrollRunResponse{}, err
	}

	staffIDs, err := s.employeeRepo.FindStaffIDs(ctx)
	if err != nil {
		return ApprovePayrollRunResponse{}, err
	}
	isStaff := make(map[uuid.UUID]bool, len(staffIDs))
	for _, id := range staffIDs {
		isStaff[id] = true
	}

	now := time.Now()
	created, skipped := 0, 0
	for _, slip := range run.Payslips {
		head := teacherHead
		if isStaff[slip.EmployeeID] {
			head = staffHead
		}
		if head == nil {
			head = fallbackHead
		}
		if head == nil {
			s.logger.Warn("no salary head resolved for payslip, expense skipped",
				zap.String("run_id", run.ID.String()),
				zap.String("employee", slip.EmployeeName),
			)
			skipped++
			continue
		}

		exp := &expense.Expense{
			ID:            uuid.New(),
			FiscalYearID:  run.FiscalYearID,
			ExpenseHeadID: head.ID,
			PaymentModeGL: modeHeadID,
			Amount:        slip.NetSalary,
			ExpenseDate:   now,
			Description:   fmt.Sprintf("Salary for %s (%s)", slip.EmployeeName, run.Month),
		}
		if err := s.expenseRepo.Create(ctx, exp); err != nil {
			s.logger.Warn("salary expense insert failed",
				zap.String("run_id", run.ID.String()),
				zap.String("employee", slip.EmployeeName),
				zap.Error(err),
			)
			skipped++
			continue
		}
		created++
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ApprovePayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.MarkPosted(ctx, runID, now); err != nil {
		return ApprovePayrollRunResponse{}, err
	}
	if err := qtx.MarkPayslipsPaid(ctx, runID); err != nil {
		return ApprovePayrollRunResponse{}, err
	}
	if err := s.enqueuePostedEvent(ctx, tx, run, req.PostedBy, now); err != nil {
		return ApprovePayrollRunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ApprovePayrollRunResponse{}, err
	}

	run.IsPosted = true
	run.PostedAt = &now
	for i := range run.Payslips {
		run.Payslips[i].Status = PayslipStatusPaid
	}

	return ApprovePayrollRunResponse{
		Run:             mapRunToResponse(*run, true),
		ExpensesCreated: created,
		Skipped:         skipped,
	}, nil
}

func (s *service) resolvePaymentMode(ctx context.Context, override *string) (uuid.UUID, error) {
	if override != nil && *override != "" {
		id, err := uuid.Parse(*override)
		if err != nil {
			return uuid.Nil, payrollerrors.ErrInvalidRunID
		}
		return id, nil
	}

	head, err := s.resolver.CashHead(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return head.ID, nil
}

func (s *service) enqueuePostedEvent(
	ctx context.Context,
	tx *sql.Tx,
	run *PayrollRun,
	postedBy string,
	postedAt time.Time,
) error {
	if s.outboxRepo == nil {
		return nil
	}

	event := events.PayrollPostedEvent{
		EventType:    "payroll.posted",
		RunID:        run.ID.String(),
		FiscalYearID: run.FiscalYearID.String(),
		Month:        run.Month,
		PayslipCount: len(run.Payslips),
		PostedBy:     postedBy,
		OccurredAt:   postedAt.UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "payroll_run",
		AggregateID:   run.ID.String(),
		EventType:     "payroll.posted",
		Topic:         events.PayrollPostedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]PayrollRunResponse, error) {
	if _, err := uuid.Parse(fiscalYearID); err != nil {
		return nil, payrollerrors.ErrInvalidRunID
	}

	runs, err := s.repo.FindAllRuns(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}

	resp := make([]PayrollRunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapRunToResponse(run, false)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollRunResponse, error) {
	run, err := s.findRun(ctx, id)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	return mapRunToResponse(*run, true), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	run, err := s.findRun(ctx, id)
	if err != nil {
		return err
	}
	if run.IsPosted {
		return payrollerrors.ErrDeletePostedRun
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeleteRun(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) RunExists(ctx context.Context, fiscalYearID, month string) (bool, error) {
	if _, err := uuid.Parse(fiscalYearID); err != nil {
		return false, payrollerrors.ErrInvalidRunID
	}

	_, err := s.repo.FindRunByFiscalYearAndMonth(ctx, fiscalYearID, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) findRun(ctx context.Context, id string) (*PayrollRun, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidRunID
	}

	run, err := s.repo.FindRunByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func buildPayslip(runID uuid.UUID, structure salary.SalaryStructure) *Payslip {
	earnings, deductions := salary.Totals(structure.Items)

	slipID := uuid.New()
	items := make([]PayslipItem, len(structure.Items))
	for i, item := range structure.Items {
		items[i] = PayslipItem{
			ID:        uuid.New(),
			PayslipID: slipID,
			GLHeadID:  item.GLHeadID,
			Amount:    item.Amount,
			Type:      item.Type,
		}
	}

	return &Payslip{
		ID:              slipID,
		RunID:           runID,
		EmployeeID:      structure.EmployeeID,
		EmployeeName:    structure.EmployeeName,
		TotalEarnings:   earnings,
		TotalDeductions: deductions,
		NetSalary:       earnings - deductions,
		Status:          PayslipStatusDraft,
		Items:           items,
	}
}

func mapRunToResponse(run PayrollRun, withSlips bool) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:           run.ID.String(),
		FiscalYearID: run.FiscalYearID.String(),
		Month:        run.Month,
		IsPosted:     run.IsPosted,
		PayslipCount: len(run.Payslips),
		CreatedAt:    run.CreatedAt.Format(time.RFC3339),
	}
	if run.PostedAt != nil {
		formatted := run.PostedAt.Format(time.RFC3339)
		resp.PostedAt = &formatted
	}

	for _, slip := range run.Payslips {
		resp.TotalNet += slip.NetSalary
	}

	if !withSlips {
		return resp
	}

	resp.Payslips = make([]PayslipResponse, len(run.Payslips))
	for i, slip := range run.Payslips {
		items := make([]PayslipItemResponse, len(slip.Items))
		for j, item := range slip.Items {
			items[j] = PayslipItemResponse{
				ID:       item.ID.String(),
				GLHeadID: item.GLHeadID.String(),
				Amount:   item.Amount,
				Type:     item.Type,
			}
		}
		resp.Payslips[i] = PayslipResponse{
			ID:              slip.ID.String(),
			EmployeeID:      slip.EmployeeID.String(),
			EmployeeName:    slip.EmployeeName,
			TotalEarnings:   slip.TotalEarnings,
			TotalDeductions: slip.TotalDeductions,
			NetSalary:       slip.NetSalary,
			Status:          slip.Status,
			Items:           items,
		}
	}

	return resp
}
