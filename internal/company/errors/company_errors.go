package companyerrors

import (
	"net/http"

	"tl-payroll/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)
	ErrPayrollAccountIncomplete = apperror.New(
		apperror.CodeInvalidState,
		"Company payroll account details are incomplete",
		http.StatusUnprocessableEntity,
	)
)
