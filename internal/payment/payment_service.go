package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eduledger/internal/events"
	"eduledger/internal/invoice"
	invoiceerrors "eduledger/internal/invoice/errors"
	"eduledger/internal/messaging/kafka"
	paymenterrors "eduledger/internal/payment/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// Record inserts the payment and flips its invoice to Paid in one
	// transaction, then clears the student's older unpaid invoices as a
	// best-effort follow-up.
	Record(ctx context.Context, req RecordPaymentRequest) (RecordPaymentResponse, error)
	GetAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]PaymentResponse, error)
	GetByID(ctx context.Context, id string) (PaymentResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	invoiceRepo invoice.Repository
	outboxRepo  kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, invoiceRepo invoice.Repository) Service {
	return NewServiceWithOutbox(db, repo, invoiceRepo, nil)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	invoiceRepo invoice.Repository,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		invoiceRepo: invoiceRepo,
		outboxRepo:  outboxRepo,
		logger:      zap.L().Named("payment_service"),
	}
}

func (s *service) Record(ctx context.Context, req RecordPaymentRequest) (RecordPaymentResponse, error) {
	p, err := buildPayment(req)
	if err != nil {
		return RecordPaymentResponse{}, err
	}

	var target *invoice.Invoice
	if p.InvoiceID != nil {
		target, err = s.invoiceRepo.FindByID(ctx, p.InvoiceID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RecordPaymentResponse{}, invoiceerrors.ErrInvoiceNotFound
			}
			return RecordPaymentResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordPaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qInv := s.invoiceRepo.WithTx(tx)

	if err := qtx.Create(ctx, p); err != nil {
		return RecordPaymentResponse{}, err
	}

	// Any payment amount settles the invoice in full. Partial-payment
	// accounting is a product decision that has not been taken.
	if target != nil {
		if err := qInv.UpdateStatus(ctx, target.ID.String(), invoice.StatusPaid); err != nil {
			return RecordPaymentResponse{}, err
		}
	}

	if err := s.enqueueRecordedEvent(ctx, tx, *p); err != nil {
		return RecordPaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordPaymentResponse{}, err
	}

	resp := RecordPaymentResponse{Payment: mapToResponse(*p)}
	if target != nil {
		resp.InvoiceStatus = invoice.StatusPaid
		cleared, total := s.clearBacklog(ctx, target, *p)
		resp.BacklogCleared = cleared
		resp.BacklogClearedTotal = total
	}

	return resp, nil
}

// clearBacklog settles every older unpaid invoice of the same student by
// inserting a synthetic payment for each and flipping it to Paid. The
// primary payment is already committed; failures here are logged, never
// propagated.
func (s *service) clearBacklog(
	ctx context.Context,
	target *invoice.Invoice,
	trigger Payment,
) (int, int64) {
	backlog, err := s.invoiceRepo.FindUnpaidByStudentBefore(
		ctx, target.StudentID.String(), target.CreatedAt)
	if err != nil {
		s.logger.Warn("backlog lookup failed after payment commit",
			zap.String("invoice_number", target.InvoiceNumber),
			zap.String("student_id", target.StudentID.String()),
			zap.Error(err),
		)
		return 0, 0
	}
	if len(backlog) == 0 {
		return 0, 0
	}

	reference := target.InvoiceNumber
	if target.Month != nil && *target.Month != "" {
		reference = fmt.Sprintf("%s (%s)", target.InvoiceNumber, *target.Month)
	}

	var total int64
	ids := make([]string, len(backlog))
	payments := make([]Payment, len(backlog))
	for i, old := range backlog {
		oldID := old.ID
		ids[i] = oldID.String()
		total += old.TotalAmount
		payments[i] = Payment{
			ID:            uuid.New(),
			InvoiceID:     &oldID,
			FiscalYearID:  old.FiscalYearID,
			Amount:        old.TotalAmount,
			PaymentDate:   trigger.PaymentDate,
			PaymentModeGL: trigger.PaymentModeGL,
			Remarks:       fmt.Sprintf("Backlog cleared by payment against %s", reference),
		}
	}

	if err := s.repo.CreateBatch(ctx, payments); err != nil {
		s.logger.Warn("backlog payment insert failed",
			zap.String("invoice_number", target.InvoiceNumber),
			zap.Int("backlog_count", len(backlog)),
			zap.Error(err),
		)
		return 0, 0
	}

	if err := s.invoiceRepo.MarkPaid(ctx, ids); err != nil {
		s.logger.Warn("backlog status update failed",
			zap.String("invoice_number", target.InvoiceNumber),
			zap.Strings("invoice_ids", ids),
			zap.Error(err),
		)
	}

	return len(backlog), total
}

func (s *service) enqueueRecordedEvent(ctx context.Context, tx *sql.Tx, p Payment) error {
	if s.outboxRepo == nil {
		return nil
	}

	event := events.PaymentRecordedEvent{
		EventType:     "payment.recorded",
		PaymentID:     p.ID.String(),
		FiscalYearID:  p.FiscalYearID.String(),
		Amount:        p.Amount,
		PaymentModeGL: p.PaymentModeGL.String(),
		OccurredAt:    time.Now().UTC(),
	}
	if p.InvoiceID != nil {
		id := p.InvoiceID.String()
		event.InvoiceID = &id
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "payment",
		AggregateID:   p.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PaymentRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAllByFiscalYear(ctx context.Context, fiscalYearID string) ([]PaymentResponse, error) {
	if _, err := uuid.Parse(fiscalYearID); err != nil {
		return nil, paymenterrors.ErrInvalidPaymentID
	}

	payments, err := s.repo.FindAllByFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}

	resp := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PaymentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PaymentResponse{}, paymenterrors.ErrInvalidPaymentID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, paymenterrors.ErrPaymentNotFound
		}
		return PaymentResponse{}, err
	}

	return mapToResponse(*p), nil
}

func buildPayment(req RecordPaymentRequest) (*Payment, error) {
	fiscalYearID, err := uuid.Parse(req.FiscalYearID)
	if err != nil {
		return nil, paymenterrors.ErrInvalidPaymentID
	}
	paymentModeGL, err := uuid.Parse(req.PaymentModeGLID)
	if err != nil {
		return nil, paymenterrors.ErrInvalidPaymentID
	}
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return nil, paymenterrors.ErrInvalidDateFormat
	}

	p := &Payment{
		ID:                   uuid.New(),
		FiscalYearID:         fiscalYearID,
		Amount:               req.Amount,
		PaymentDate:          paymentDate,
		PaymentModeGL:        paymentModeGL,
		TransactionReference: req.TransactionReference,
		Remarks:              req.Remarks,
	}

	if req.InvoiceID != nil && *req.InvoiceID != "" {
		invoiceID, err := uuid.Parse(*req.InvoiceID)
		if err != nil {
			return nil, paymenterrors.ErrInvalidPaymentID
		}
		p.InvoiceID = &invoiceID
	}

	return p, nil
}

func mapToResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:                   p.ID.String(),
		FiscalYearID:         p.FiscalYearID.String(),
		Amount:               p.Amount,
		PaymentDate:          p.PaymentDate.Format("2006-01-02"),
		PaymentModeGLID:      p.PaymentModeGL.String(),
		TransactionReference: p.TransactionReference,
		Remarks:              p.Remarks,
		CreatedAt:            p.CreatedAt.Format(time.RFC3339),
	}
	if p.InvoiceID != nil {
		id := p.InvoiceID.String()
		resp.InvoiceID = &id
	}
	return resp
}
