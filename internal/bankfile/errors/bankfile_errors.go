package bankfileerrors

import (
	"net/http"

	"tl-payroll/internal/shared/apperror"
)

var (
	ErrRunNotPayable = apperror.New(
		apperror.CodeInvalidState,
		"Payroll run must be processed before bank files can be generated",
		http.StatusConflict,
	)
	ErrUnsupportedBank = apperror.New(
		apperror.CodeInvalidInput,
		"Unsupported bank code",
		http.StatusBadRequest,
	)
	ErrNoRecordsForBank = apperror.New(
		apperror.CodeNotFound,
		"No payroll records are routed to this bank",
		http.StatusNotFound,
	)
	ErrFileGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Bank file generation failed",
		http.StatusInternalServerError,
	)
)
