package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "tl-payroll/internal/attendance/errors"
	"tl-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	RecordEntry(ctx context.Context, companyID string, req RecordEntryRequest) (EntryResponse, error)
	GetEmployeePeriod(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]EntryResponse, error)
	SummarizePeriod(ctx context.Context, companyID string, from, to time.Time) ([]PeriodSummary, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) RecordEntry(
	ctx context.Context,
	companyID string,
	req RecordEntryRequest,
) (EntryResponse, error) {
	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return EntryResponse{}, apperror.InvalidField("work_date")
	}

	totalHours := req.RegularHours + req.OvertimeHours + req.NightHours +
		req.HolidayHours + req.RestDayHours
	if totalHours > 24 {
		return EntryResponse{}, attendanceerrors.ErrHoursExceedDay
	}

	source := req.Source
	if source == "" {
		source = "MANUAL"
	}

	entry := &TimesheetEntry{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(companyID),
		EmployeeID: uuid.MustParse(req.EmployeeID),
		WorkDate:   workDate,

		RegularHours:  req.RegularHours,
		OvertimeHours: req.OvertimeHours,
		NightHours:    req.NightHours,
		HolidayHours:  req.HolidayHours,
		RestDayHours:  req.RestDayHours,
		AbsenceHours:  req.AbsenceHours,
		LateMinutes:   req.LateMinutes,

		Source: source,
		Notes:  req.Notes,
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return EntryResponse{}, err
	}

	// The upsert may have kept the original row id. Re-read so the
	// response carries the persisted identity.
	saved, err := s.repo.FindByEmployeeAndDate(ctx, companyID, req.EmployeeID, workDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EntryResponse{}, attendanceerrors.ErrEntryNotFound
		}
		return EntryResponse{}, err
	}

	return mapToResponse(*saved), nil
}

func (s *service) GetEmployeePeriod(
	ctx context.Context,
	companyID, employeeID string,
	from, to time.Time,
) ([]EntryResponse, error) {
	if to.Before(from) {
		return nil, attendanceerrors.ErrInvalidPeriod
	}

	entries, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) SummarizePeriod(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]PeriodSummary, error) {
	if to.Before(from) {
		return nil, attendanceerrors.ErrInvalidPeriod
	}
	return s.repo.SummarizePeriod(ctx, companyID, from, to)
}

func mapToResponse(e TimesheetEntry) EntryResponse {
	return EntryResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		WorkDate:   e.WorkDate.Format("2006-01-02"),

		RegularHours:  e.RegularHours,
		OvertimeHours: e.OvertimeHours,
		NightHours:    e.NightHours,
		HolidayHours:  e.HolidayHours,
		RestDayHours:  e.RestDayHours,
		AbsenceHours:  e.AbsenceHours,
		LateMinutes:   e.LateMinutes,

		Source: e.Source,
		Notes:  e.Notes,
	}
}
