package expense

import (
	"context"
	"database/sql"
	"errors"
	"time"

	expenseerrors "eduledger/internal/expense/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	GetAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]ExpenseResponse, error)
	GetByID(ctx context.Context, id string) (ExpenseResponse, error)
	Update(ctx context.Context, id string, req UpdateExpenseRequest) (ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	fiscalYearID, err := uuid.Parse(req.FiscalYearID)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	expenseHeadID, err := uuid.Parse(req.ExpenseHeadID)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	paymentModeGL, err := uuid.Parse(req.PaymentModeGLID)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidDateFormat
	}

	exp := &Expense{
		ID:            uuid.New(),
		FiscalYearID:  fiscalYearID,
		ExpenseHeadID: expenseHeadID,
		PaymentModeGL: paymentModeGL,
		Amount:        req.Amount,
		ExpenseDate:   expenseDate,
		Description:   req.Description,
	}

	if err := qtx.Create(ctx, exp); err != nil {
		return ExpenseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ExpenseResponse{}, err
	}

	return mapToResponse(*exp), nil
}

func (s *service) GetAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]ExpenseResponse, error) {
	if _, err := uuid.Parse(fiscalYearID); err != nil {
		return nil, expenseerrors.ErrInvalidExpenseID
	}

	expenses, err := s.repo.FindAllByFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}

	resp := make([]ExpenseResponse, len(expenses))
	for i, exp := range expenses {
		resp[i] = mapToResponse(exp)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ExpenseResponse, error) {
	exp, err := s.findExpense(ctx, id)
	if err != nil {
		return ExpenseResponse{}, err
	}
	return mapToResponse(*exp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateExpenseRequest) (ExpenseResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exp, err := s.findExpense(ctx, id)
	if err != nil {
		return ExpenseResponse{}, err
	}

	expenseHeadID, err := uuid.Parse(req.ExpenseHeadID)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	paymentModeGL, err := uuid.Parse(req.PaymentModeGLID)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidDateFormat
	}

	exp.ExpenseHeadID = expenseHeadID
	exp.PaymentModeGL = paymentModeGL
	exp.Amount = req.Amount
	exp.ExpenseDate = expenseDate
	exp.Description = req.Description

	if err := qtx.Update(ctx, exp); err != nil {
		return ExpenseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ExpenseResponse{}, err
	}

	return mapToResponse(*exp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := s.findExpense(ctx, id); err != nil {
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) findExpense(ctx context.Context, id string) (*Expense, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, expenseerrors.ErrInvalidExpenseID
	}

	exp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expenseerrors.ErrExpenseNotFound
		}
		return nil, err
	}
	return exp, nil
}

func mapToResponse(exp Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:              exp.ID.String(),
		FiscalYearID:    exp.FiscalYearID.String(),
		ExpenseHeadID:   exp.ExpenseHeadID.String(),
		PaymentModeGLID: exp.PaymentModeGL.String(),
		Amount:          exp.Amount,
		ExpenseDate:     exp.ExpenseDate.Format("2006-01-02"),
		Description:     exp.Description,
		CreatedAt:       exp.CreatedAt.Format(time.RFC3339),
	}
}
