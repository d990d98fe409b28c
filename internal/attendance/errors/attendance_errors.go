package attendanceerrors

import (
	"net/http"

	"tl-payroll/internal/shared/apperror"
)

var (
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Timesheet entry not found",
		http.StatusNotFound,
	)
	ErrHoursExceedDay = apperror.New(
		apperror.CodeInvalidInput,
		"Recorded hours exceed 24 for a single day",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Period end date must not be before start date",
		http.StatusBadRequest,
	)
)
