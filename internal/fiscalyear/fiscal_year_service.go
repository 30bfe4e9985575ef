package fiscalyear

import (
	"context"
	"database/sql"
	"errors"
	"time"

	fiscalyearerrors "eduledger/internal/fiscalyear/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateFiscalYearRequest) (FiscalYearResponse, error)
	GetAll(ctx context.Context) ([]FiscalYearResponse, error)
	GetByID(ctx context.Context, id string) (FiscalYearResponse, error)
	GetActive(ctx context.Context) (FiscalYearResponse, error)
	Update(ctx context.Context, id string, req UpdateFiscalYearRequest) (FiscalYearResponse, error)
	SetActive(ctx context.Context, id string) (FiscalYearResponse, error)
	Close(ctx context.Context, id string) (FiscalYearResponse, error)
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
	req CreateFiscalYearRequest,
) (FiscalYearResponse, error) {
	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return FiscalYearResponse{}, err
	}

	fy := &FiscalYear{
		ID:             uuid.New(),
		Name:           req.Name,
		StartDate:      startDate,
		EndDate:        endDate,
		OpeningBalance: req.OpeningBalance,
	}

	if err := s.repo.Create(ctx, fy); err != nil {
		return FiscalYearResponse{}, err
	}

	return mapToResponse(*fy), nil
}

func (s *service) GetAll(ctx context.Context) ([]FiscalYearResponse, error) {
	years, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]FiscalYearResponse, len(years))
	for i, fy := range years {
		resp[i] = mapToResponse(fy)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (FiscalYearResponse, error) {
	fy, err := s.findYear(ctx, id)
	if err != nil {
		return FiscalYearResponse{}, err
	}

	return mapToResponse(*fy), nil
}

func (s *service) GetActive(ctx context.Context) (FiscalYearResponse, error) {
	fy, err := s.repo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FiscalYearResponse{}, fiscalyearerrors.ErrFiscalYearNotFound
		}
		return FiscalYearResponse{}, err
	}

	return mapToResponse(*fy), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateFiscalYearRequest,
) (FiscalYearResponse, error) {
	fy, err := s.findYear(ctx, id)
	if err != nil {
		return FiscalYearResponse{}, err
	}
	if fy.IsClosed {
		return FiscalYearResponse{}, fiscalyearerrors.ErrFiscalYearClosed
	}

	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return FiscalYearResponse{}, err
	}

	fy.Name = req.Name
	fy.StartDate = startDate
	fy.EndDate = endDate
	fy.OpeningBalance = req.OpeningBalance

	if err := s.repo.Update(ctx, fy); err != nil {
		return FiscalYearResponse{}, err
	}

	return mapToResponse(*fy), nil
}

// SetActive flips the single system-wide active flag: every year is
// deactivated and the target activated inside one transaction, so no
// reader ever observes zero or two active years.
func (s *service) SetActive(ctx context.Context, id string) (FiscalYearResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FiscalYearResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	fy, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FiscalYearResponse{}, fiscalyearerrors.ErrFiscalYearNotFound
		}
		return FiscalYearResponse{}, err
	}
	if fy.IsClosed {
		return FiscalYearResponse{}, fiscalyearerrors.ErrFiscalYearClosed
	}

	if err := qtx.DeactivateAll(ctx); err != nil {
		return FiscalYearResponse{}, err
	}
	if err := qtx.Activate(ctx, id); err != nil {
		return FiscalYearResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return FiscalYearResponse{}, err
	}

	fy.IsActive = true
	return mapToResponse(*fy), nil
}

func (s *service) Close(ctx context.Context, id string) (FiscalYearResponse, error) {
	fy, err := s.findYear(ctx, id)
	if err != nil {
		return FiscalYearResponse{}, err
	}

	if err := s.repo.Close(ctx, id); err != nil {
		return FiscalYearResponse{}, err
	}

	fy.IsClosed = true
	return mapToResponse(*fy), nil
}

func (s *service) findYear(ctx context.Context, id string) (*FiscalYear, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fiscalyearerrors.ErrInvalidFiscalYearID
	}

	fy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiscalyearerrors.ErrFiscalYearNotFound
		}
		return nil, err
	}
	return fy, nil
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, fiscalyearerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, fiscalyearerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, fiscalyearerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func mapToResponse(fy FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		ID:             fy.ID.String(),
		Name:           fy.Name,
		StartDate:      fy.StartDate.Format("2006-01-02"),
		EndDate:        fy.EndDate.Format("2006-01-02"),
		IsActive:       fy.IsActive,
		IsClosed:       fy.IsClosed,
		OpeningBalance: fy.OpeningBalance,
	}
}
