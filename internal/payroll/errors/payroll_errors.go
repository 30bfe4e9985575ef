package payrollerrors

import (
	"net/http"

	"eduledger/internal/shared/apperror"
)

var (
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrInvalidRunID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run id",
		http.StatusBadRequest,
	)
	ErrRunAlreadyPosted = apperror.New(
		apperror.CodeConflict,
		"payroll run is already posted",
		http.StatusConflict,
	)
	ErrDeletePostedRun = apperror.New(
		apperror.CodeConflict,
		"a posted payroll run cannot be deleted",
		http.StatusConflict,
	)
	ErrDuplicateRun = apperror.New(
		apperror.CodeConflict,
		"a payroll run already exists for this fiscal year and month",
		http.StatusConflict,
	)
)
