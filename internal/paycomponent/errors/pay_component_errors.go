package paycomponenterrors

import (
	"net/http"

	"tl-payroll/internal/shared/apperror"
)

var (
	ErrComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pay component not found",
		http.StatusNotFound,
	)
	ErrUnknownComponentCode = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown pay component code",
		http.StatusBadRequest,
	)
	ErrComponentSlotTaken = apperror.New(
		apperror.CodeConflict,
		"A component with this code and effective date already exists for the employee",
		http.StatusConflict,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
)
