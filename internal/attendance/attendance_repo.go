package attendance

import (
	"context"
	"database/sql"
	"time"

	"tl-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, entry *TimesheetEntry) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*TimesheetEntry, error)
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]TimesheetEntry, error)
	SummarizePeriod(ctx context.Context, companyID string, from, to time.Time) ([]PeriodSummary, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Upsert replaces the bucket values for the employee-day so corrected
// timesheets can simply be re-submitted.
func (r *repository) Upsert(ctx context.Context, entry *TimesheetEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "company_id"},
			{Name: "employee_id"},
			{Name: "work_date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"regular_hours", "overtime_hours", "night_hours", "holiday_hours",
			"rest_day_hours", "absence_hours", "late_minutes",
			"source", "notes", "updated_at",
		}),
	}).Create(entry).Error
}

func (r *repository) FindByEmployeeAndDate(
	ctx context.Context,
	companyID, employeeID string,
	date time.Time,
) (*TimesheetEntry, error) {
	var entry TimesheetEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND work_date = ?", employeeID, date.Format("2006-01-02")).
		First(&entry).Error
	return &entry, err
}

func (r *repository) FindByEmployeeAndPeriod(
	ctx context.Context,
	companyID, employeeID string,
	from, to time.Time,
) ([]TimesheetEntry, error) {
	var entries []TimesheetEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND work_date BETWEEN ? AND ?",
			employeeID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("work_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) SummarizePeriod(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]PeriodSummary, error) {
	var summaries []PeriodSummary
	err := r.db.WithContext(ctx).
		Model(&TimesheetEntry{}).
		Select(`employee_id,
			COALESCE(SUM(regular_hours), 0)  AS regular_hours,
			COALESCE(SUM(overtime_hours), 0) AS overtime_hours,
			COALESCE(SUM(night_hours), 0)    AS night_hours,
			COALESCE(SUM(holiday_hours), 0)  AS holiday_hours,
			COALESCE(SUM(rest_day_hours), 0) AS rest_day_hours,
			COALESCE(SUM(absence_hours), 0)  AS absence_hours,
			COALESCE(SUM(late_minutes), 0)   AS late_minutes`).
		Scopes(tenant.Scope(companyID)).
		Where("work_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Group("employee_id").
		Scan(&summaries).Error
	return summaries, err
}
