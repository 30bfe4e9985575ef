package salaryerrors

import (
	"net/http"

	"eduledger/internal/shared/apperror"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary structure not found",
		http.StatusNotFound,
	)
	ErrInvalidStructureID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary structure id",
		http.StatusBadRequest,
	)
	ErrStructureAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a salary structure already exists for this employee and fiscal year",
		http.StatusConflict,
	)
	ErrNegativeItemAmount = apperror.New(
		apperror.CodeInvalidInput,
		"salary item amounts cannot be negative",
		http.StatusBadRequest,
	)
)
