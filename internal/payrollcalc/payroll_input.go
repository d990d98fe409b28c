package payrollcalc

import (
	"time"

	"github.com/shopspring/decimal"
)

// HourBuckets are the worked hours for one period, already bucketed by the
// attendance layer. Absence hours and late minutes are carried for reporting;
// the regular bucket is expected to exclude them.
type HourBuckets struct {
	Regular     decimal.Decimal
	Overtime    decimal.Decimal
	NightShift  decimal.Decimal
	Holiday     decimal.Decimal
	RestDay     decimal.Decimal
	Absence     decimal.Decimal
	LateMinutes int64
}

// SupplementalPay are earnings added verbatim, never scaled by hours.
type SupplementalPay struct {
	Bonus              decimal.Decimal
	Commission         decimal.Decimal
	PerDiem            decimal.Decimal
	FoodAllowance      decimal.Decimal
	TransportAllowance decimal.Decimal
	Other              decimal.Decimal
}

// DeductionInputs are employee-specific deductions outside tax and INSS.
type DeductionInputs struct {
	LoanRepayment    decimal.Decimal
	AdvanceRepayment decimal.Decimal
	CourtOrdered     decimal.Decimal
	Other            decimal.Decimal
}

// TaxProfile flags how the income tax rules apply to this employee.
type TaxProfile struct {
	Resident bool
	Exempt   bool
}

// LeaveUsage is sick-leave consumption for the period and year to date.
type LeaveUsage struct {
	SickDaysUsed    int
	SickDaysUsedYTD int
}

// YearToDate are the running accumulators for the calendar year, as of the
// period before this one.
type YearToDate struct {
	GrossPay     decimal.Decimal
	IncomeTax    decimal.Decimal
	INSSEmployee decimal.Decimal
}

// PayrollInput is the finished snapshot for one employee and one period.
// The engine never sees presentation state; callers assemble this from the
// employee record, attendance summary and leave ledger before calling it.
type PayrollInput struct {
	EmployeeID string

	MonthlySalary decimal.Decimal
	HourlyRate    decimal.Decimal
	IsHourly      bool
	Frequency     PayFrequency

	Hours        HourBuckets
	Leave        LeaveUsage
	Supplemental SupplementalPay
	Tax          TaxProfile
	Deductions   DeductionInputs
	YTD          YearToDate

	MonthsWorkedThisYear int
	HireDate             time.Time
}

// PayrollResult is the full breakdown for one employee and one period.
// Every monetary field is rounded to the cent, and the identities
// NetPay = GrossPay - TotalDeductions and
// TotalEmployerCost = GrossPay + INSSEmployer hold exactly.
type PayrollResult struct {
	EmployeeID string

	HourlyRate decimal.Decimal

	RegularPay    decimal.Decimal
	OvertimePay   decimal.Decimal
	NightShiftPay decimal.Decimal
	HolidayPay    decimal.Decimal
	RestDayPay    decimal.Decimal
	OtherEarnings decimal.Decimal

	GrossPay      decimal.Decimal
	TaxableIncome decimal.Decimal
	IncomeTax     decimal.Decimal

	INSSBase     decimal.Decimal
	INSSEmployee decimal.Decimal
	INSSEmployer decimal.Decimal

	OtherDeductions   decimal.Decimal
	TotalDeductions   decimal.Decimal
	NetPay            decimal.Decimal
	TotalEmployerCost decimal.Decimal
}
