package attendance_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"tl-payroll/internal/attendance"
	attendanceerrors "tl-payroll/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeTimesheetRepository struct {
	withTxFn                  func(tx *sql.Tx) attendance.Repository
	upsertFn                  func(ctx context.Context, entry *attendance.TimesheetEntry) error
	findByEmployeeAndDateFn   func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.TimesheetEntry, error)
	findByEmployeeAndPeriodFn func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.TimesheetEntry, error)
	summarizePeriodFn         func(ctx context.Context, companyID string, from, to time.Time) ([]attendance.PeriodSummary, error)
}

func (f *fakeTimesheetRepository) WithTx(tx *sql.Tx) attendance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTimesheetRepository) Upsert(ctx context.Context, entry *attendance.TimesheetEntry) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, entry)
	}
	return nil
}

func (f *fakeTimesheetRepository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.TimesheetEntry, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.TimesheetEntry, error) {
	if f.findByEmployeeAndPeriodFn != nil {
		return f.findByEmployeeAndPeriodFn(ctx, companyID, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) SummarizePeriod(ctx context.Context, companyID string, from, to time.Time) ([]attendance.PeriodSummary, error) {
	if f.summarizePeriodFn != nil {
		return f.summarizePeriodFn(ctx, companyID, from, to)
	}
	return nil, nil
}

func TestRecordEntry_UpsertsAndReturnsSavedRow(t *testing.T) {
	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	savedID := uuid.New()

	var upserted *attendance.TimesheetEntry
	repo := &fakeTimesheetRepository{
		upsertFn: func(ctx context.Context, entry *attendance.TimesheetEntry) error {
			upserted = entry
			return nil
		},
		findByEmployeeAndDateFn: func(ctx context.Context, gotCompany, gotEmployee string, date time.Time) (*attendance.TimesheetEntry, error) {
			assert.Equal(t, companyID, gotCompany)
			assert.Equal(t, employeeID, gotEmployee)
			return &attendance.TimesheetEntry{
				ID:            savedID,
				CompanyID:     uuid.MustParse(companyID),
				EmployeeID:    uuid.MustParse(employeeID),
				WorkDate:      date,
				RegularHours:  8,
				OvertimeHours: 1.5,
				Source:        "MANUAL",
			}, nil
		},
	}

	svc := attendance.NewService(nil, repo)
	resp, err := svc.RecordEntry(context.Background(), companyID, attendance.RecordEntryRequest{
		EmployeeID:    employeeID,
		WorkDate:      "2026-08-03",
		RegularHours:  8,
		OvertimeHours: 1.5,
	})

	assert.NoError(t, err)
	assert.Equal(t, savedID.String(), resp.ID)
	assert.Equal(t, "2026-08-03", resp.WorkDate)
	assert.Equal(t, 8.0, resp.RegularHours)
	assert.Equal(t, 1.5, resp.OvertimeHours)

	if assert.NotNil(t, upserted) {
		assert.Equal(t, "MANUAL", upserted.Source)
		assert.Equal(t, "2026-08-03", upserted.WorkDate.Format("2006-01-02"))
	}
}

func TestRecordEntry_RejectsMoreThanTwentyFourHours(t *testing.T) {
	repo := &fakeTimesheetRepository{
		upsertFn: func(ctx context.Context, entry *attendance.TimesheetEntry) error {
			t.Fatal("upsert should not be called")
			return nil
		},
	}

	svc := attendance.NewService(nil, repo)
	_, err := svc.RecordEntry(context.Background(), uuid.NewString(), attendance.RecordEntryRequest{
		EmployeeID:   uuid.NewString(),
		WorkDate:     "2026-08-03",
		RegularHours: 20,
		HolidayHours: 5,
	})

	assert.ErrorIs(t, err, attendanceerrors.ErrHoursExceedDay)
}

func TestGetEmployeePeriod_RejectsInvertedPeriod(t *testing.T) {
	svc := attendance.NewService(nil, &fakeTimesheetRepository{})

	from := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetEmployeePeriod(context.Background(), uuid.NewString(), uuid.NewString(), from, to)

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriod)
}

func TestSummarizePeriod_PassesThroughRepositoryRows(t *testing.T) {
	employeeID := uuid.NewString()
	repo := &fakeTimesheetRepository{
		summarizePeriodFn: func(ctx context.Context, companyID string, from, to time.Time) ([]attendance.PeriodSummary, error) {
			return []attendance.PeriodSummary{{
				EmployeeID:    employeeID,
				RegularHours:  168,
				OvertimeHours: 12,
				LateMinutes:   30,
			}}, nil
		},
	}

	svc := attendance.NewService(nil, repo)
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	summaries, err := svc.SummarizePeriod(context.Background(), uuid.NewString(), from, to)
	assert.NoError(t, err)
	if assert.Len(t, summaries, 1) {
		assert.Equal(t, employeeID, summaries[0].EmployeeID)
		assert.Equal(t, 168.0, summaries[0].RegularHours)
		assert.Equal(t, 30, summaries[0].LateMinutes)
	}
}

func TestSummarizePeriod_PropagatesRepositoryError(t *testing.T) {
	dbErr := errors.New("connection reset")
	repo := &fakeTimesheetRepository{
		summarizePeriodFn: func(ctx context.Context, companyID string, from, to time.Time) ([]attendance.PeriodSummary, error) {
			return nil, dbErr
		},
	}

	svc := attendance.NewService(nil, repo)
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := svc.SummarizePeriod(context.Background(), uuid.NewString(), from, to)
	assert.ErrorIs(t, err, dbErr)
}
