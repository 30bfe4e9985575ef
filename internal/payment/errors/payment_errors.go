package paymenterrors

import (
	"net/http"

	"eduledger/internal/shared/apperror"
)

var (
	ErrPaymentNotFound = apperror.New(
		apperror.CodeNotFound,
		"payment not found",
		http.StatusNotFound,
	)
	ErrInvalidPaymentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payment id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"payment_date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)
