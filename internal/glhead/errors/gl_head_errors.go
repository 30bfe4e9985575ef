package glheaderrors

import (
	"net/http"

	"eduledger/internal/shared/apperror"
)

var (
	ErrGLHeadNotFound = apperror.New(
		apperror.CodeNotFound,
		"GL head not found",
		http.StatusNotFound,
	)
	ErrInvalidGLHeadID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid GL head id",
		http.StatusBadRequest,
	)
	ErrInvalidParentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid parent GL head id",
		http.StatusBadRequest,
	)
	ErrNoAssetHead = apperror.New(
		apperror.CodeInvalidState,
		"no Asset-type GL head is configured",
		http.StatusUnprocessableEntity,
	)
	ErrNoCashHead = apperror.New(
		apperror.CodeInvalidState,
		"no cash GL head found to post against",
		http.StatusUnprocessableEntity,
	)
	ErrNoSalaryExpenseHead = apperror.New(
		apperror.CodeInvalidState,
		"no salary expense GL head is configured",
		http.StatusUnprocessableEntity,
	)
	ErrGLHeadInUse = apperror.New(
		apperror.CodeConflict,
		"GL head has ledger entries or children and cannot be deleted",
		http.StatusConflict,
	)
)
