package paysliperrors

import (
	"net/http"

	"tl-payroll/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payslip not found",
		http.StatusNotFound,
	)
	ErrRunNotPaid = apperror.New(
		apperror.CodeInvalidState,
		"Payslips are only issued for paid runs",
		http.StatusConflict,
	)
	ErrRenderFailed = apperror.New(
		apperror.CodeInternalError,
		"Payslip rendering failed",
		http.StatusInternalServerError,
	)
)
