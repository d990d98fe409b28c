package attendance

type RecordEntryRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	WorkDate   string `json:"work_date" binding:"required,datetime=2006-01-02"`

	RegularHours  float64 `json:"regular_hours" binding:"min=0,max=24"`
	OvertimeHours float64 `json:"overtime_hours" binding:"min=0,max=24"`
	NightHours    float64 `json:"night_hours" binding:"min=0,max=24"`
	HolidayHours  float64 `json:"holiday_hours" binding:"min=0,max=24"`
	RestDayHours  float64 `json:"rest_day_hours" binding:"min=0,max=24"`
	AbsenceHours  float64 `json:"absence_hours" binding:"min=0,max=24"`
	LateMinutes   int     `json:"late_minutes" binding:"min=0,max=1440"`

	Source string  `json:"source" binding:"omitempty,oneof=MANUAL IMPORT DEVICE"`
	Notes  *string `json:"notes"`
}

type EntryResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"`

	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	NightHours    float64 `json:"night_hours"`
	HolidayHours  float64 `json:"holiday_hours"`
	RestDayHours  float64 `json:"rest_day_hours"`
	AbsenceHours  float64 `json:"absence_hours"`
	LateMinutes   int     `json:"late_minutes"`

	Source string  `json:"source"`
	Notes  *string `json:"notes,omitempty"`
}

type PeriodSummaryResponse struct {
	EmployeeID    string  `json:"employee_id"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	NightHours    float64 `json:"night_hours"`
	HolidayHours  float64 `json:"holiday_hours"`
	RestDayHours  float64 `json:"rest_day_hours"`
	AbsenceHours  float64 `json:"absence_hours"`
	LateMinutes   int     `json:"late_minutes"`
}
