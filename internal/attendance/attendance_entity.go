package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimesheetEntry is one employee-day of worked time, split into the hour
// buckets payroll prices at different rates. Hours are stored as numeric
// values of hours, not minutes, because timesheets commonly carry halves
// and quarters (7.5, 0.25).
type TimesheetEntry struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index:idx_timesheet_day,unique"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_timesheet_day,unique"`
	WorkDate   time.Time `gorm:"column:work_date;type:date;not null;index:idx_timesheet_day,unique"`

	RegularHours  float64 `gorm:"column:regular_hours;type:numeric(5,2);not null;default:0"`
	OvertimeHours float64 `gorm:"column:overtime_hours;type:numeric(5,2);not null;default:0"`
	NightHours    float64 `gorm:"column:night_hours;type:numeric(5,2);not null;default:0"`
	HolidayHours  float64 `gorm:"column:holiday_hours;type:numeric(5,2);not null;default:0"`
	RestDayHours  float64 `gorm:"column:rest_day_hours;type:numeric(5,2);not null;default:0"`
	AbsenceHours  float64 `gorm:"column:absence_hours;type:numeric(5,2);not null;default:0"`
	LateMinutes   int     `gorm:"column:late_minutes;not null;default:0"`

	Source string  `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	Notes  *string `gorm:"column:notes;type:text"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (TimesheetEntry) TableName() string {
	return "timesheet_entries"
}

// PeriodSummary is the aggregate of an employee's entries over a pay
// period, consumed by the payroll run as the hour inputs of the
// calculation.
type PeriodSummary struct {
	EmployeeID    string
	RegularHours  float64
	OvertimeHours float64
	NightHours    float64
	HolidayHours  float64
	RestDayHours  float64
	AbsenceHours  float64
	LateMinutes   int
}
