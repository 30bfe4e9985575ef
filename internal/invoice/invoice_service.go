package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	invoiceerrors "eduledger/internal/invoice/errors"
	"eduledger/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const invoiceCounterType = "invoice"

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	CreateBatch(ctx context.Context, req BatchCreateInvoicesRequest) (BatchCreateInvoicesResponse, error)
	GetAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]InvoiceResponse, error)
	GetByID(ctx context.Context, id string) (InvoiceDetailResponse, error)
	// GetUnpaidStats sums a student's unpaid invoices created before the
	// cutoff and lists the months they cover.
	GetUnpaidStats(ctx context.Context, studentID string, before time.Time) (UnpaidStats, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	counterRepo counter.Repository
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository) Service {
	return &service{
		db:          db,
		repo:        repo,
		counterRepo: counterRepo,
		logger:      zap.L().Named("invoice_service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := s.buildInvoice(ctx, req)
	if err != nil {
		return InvoiceResponse{}, err
	}

	if err := qtx.Create(ctx, inv); err != nil {
		return InvoiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	return mapToResponse(*inv), nil
}

// CreateBatch invoices many students in one call, typically the whole
// roll for a billing month. Each invoice is committed independently so
// one bad row does not abort the run.
func (s *service) CreateBatch(
	ctx context.Context,
	req BatchCreateInvoicesRequest,
) (BatchCreateInvoicesResponse, error) {
	resp := BatchCreateInvoicesResponse{
		Created: make([]InvoiceResponse, 0, len(req.Invoices)),
	}

	for _, item := range req.Invoices {
		created, err := s.Create(ctx, item)
		if err != nil {
			s.logger.Warn("batch invoice creation skipped a student",
				zap.String("student_id", item.StudentID),
				zap.Error(err),
			)
			resp.Failed++
			resp.Messages = append(resp.Messages,
				fmt.Sprintf("student %s: %v", item.StudentID, err))
			continue
		}
		resp.Created = append(resp.Created, created)
	}

	return resp, nil
}

func (s *service) GetAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]InvoiceResponse, error) {
	if _, err := uuid.Parse(fiscalYearID); err != nil {
		return nil, invoiceerrors.ErrInvalidInvoiceID
	}

	invoices, err := s.repo.FindAllByFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}

	resp := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = mapToResponse(inv)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (InvoiceDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return InvoiceDetailResponse{}, invoiceerrors.ErrInvalidInvoiceID
	}

	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceDetailResponse{}, invoiceerrors.ErrInvoiceNotFound
		}
		return InvoiceDetailResponse{}, err
	}

	stats, err := s.GetUnpaidStats(ctx, inv.StudentID.String(), inv.CreatedAt)
	if err != nil {
		return InvoiceDetailResponse{}, err
	}

	return InvoiceDetailResponse{
		InvoiceResponse:    mapToResponse(*inv),
		PreviousDues:       stats.Amount,
		PreviousDuesMonths: stats.Months,
	}, nil
}

func (s *service) GetUnpaidStats(
	ctx context.Context,
	studentID string,
	before time.Time,
) (UnpaidStats, error) {
	if _, err := uuid.Parse(studentID); err != nil {
		return UnpaidStats{}, invoiceerrors.ErrInvalidInvoiceID
	}

	unpaid, err := s.repo.FindUnpaidByStudentBefore(ctx, studentID, before)
	if err != nil {
		return UnpaidStats{}, err
	}

	stats := UnpaidStats{Months: []string{}}
	seen := make(map[string]bool)
	for _, inv := range unpaid {
		stats.Amount += inv.TotalAmount
		if inv.Month == nil || *inv.Month == "" {
			continue
		}
		if seen[*inv.Month] {
			continue
		}
		seen[*inv.Month] = true
		stats.Months = append(stats.Months, *inv.Month)
	}

	return stats, nil
}

func (s *service) buildInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, invoiceerrors.ErrInvalidInvoiceID
	}
	fiscalYearID, err := uuid.Parse(req.FiscalYearID)
	if err != nil {
		return nil, invoiceerrors.ErrInvalidInvoiceID
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, invoiceerrors.ErrInvalidDateFormat
	}

	invoiceID := uuid.New()
	var total int64
	items := make([]InvoiceItem, len(req.Items))
	for i, input := range req.Items {
		glHeadID, err := uuid.Parse(input.GLHeadID)
		if err != nil {
			return nil, invoiceerrors.ErrInvalidInvoiceID
		}
		items[i] = InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   invoiceID,
			GLHeadID:    glHeadID,
			Description: input.Description,
			Amount:      input.Amount,
		}
		total += input.Amount
	}

	seq, err := s.counterRepo.GetNextValue(ctx, req.FiscalYearID, invoiceCounterType)
	if err != nil {
		return nil, err
	}

	return &Invoice{
		ID:            invoiceID,
		StudentID:     studentID,
		StudentName:   req.StudentName,
		FiscalYearID:  fiscalYearID,
		InvoiceNumber: fmt.Sprintf("INV-%06d", seq),
		TotalAmount:   total,
		DueDate:       dueDate,
		Month:         req.Month,
		Status:        StatusUnpaid,
		Items:         items,
	}, nil
}

func mapToResponse(inv Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID.String(),
			GLHeadID:    item.GLHeadID.String(),
			Description: item.Description,
			Amount:      item.Amount,
		}
	}

	return InvoiceResponse{
		ID:            inv.ID.String(),
		StudentID:     inv.StudentID.String(),
		StudentName:   inv.StudentName,
		FiscalYearID:  inv.FiscalYearID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		TotalAmount:   inv.TotalAmount,
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Month:         inv.Month,
		Status:        inv.Status,
		Items:         items,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}
}
