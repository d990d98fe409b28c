package payrollerrors

import (
	"net/http"

	"tl-payroll/internal/shared/apperror"
)

var (
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll run not found",
		http.StatusNotFound,
	)
	ErrRunOverlap = apperror.New(
		apperror.CodeConflict,
		"A payroll run already covers part of this period",
		http.StatusConflict,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_end must not be before period_start",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Payroll run status does not allow this operation",
		http.StatusConflict,
	)
	ErrNoActiveEmployees = apperror.New(
		apperror.CodeInvalidState,
		"Company has no active employees to process",
		http.StatusUnprocessableEntity,
	)
	ErrNegativeNetPay = apperror.New(
		apperror.CodeInvalidState,
		"One or more employees have negative net pay; review the run records before processing again",
		http.StatusUnprocessableEntity,
	)
)
