package fiscalyearerrors

import (
	"net/http"

	"eduledger/internal/shared/apperror"
)

var (
	ErrFiscalYearNotFound = apperror.New(
		apperror.CodeNotFound,
		"fiscal year not found",
		http.StatusNotFound,
	)
	ErrInvalidFiscalYearID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid fiscal year id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrFiscalYearClosed = apperror.New(
		apperror.CodeInvalidState,
		"fiscal year is closed",
		http.StatusBadRequest,
	)
)
