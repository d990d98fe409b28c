package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusProcessed = "PROCESSED"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

// PayrollRun is one pay period for one company. Processing fills its
// records from the calculation engine; a run only advances to PROCESSED
// when no record has a negative net pay.
type PayrollRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_runs_company_period"`
	RunNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_runs_number"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_runs_company_period"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	Frequency   string    `gorm:"type:varchar(10);not null;default:'monthly'"`

	Status string `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	EmployeeCount    int `gorm:"not null;default:0"`
	NegativeNetCount int `gorm:"not null;default:0"`

	// Totals disimpan dalam satuan terkecil (sen).
	TotalGrossCents        int64 `gorm:"type:bigint;not null;default:0"`
	TotalNetCents          int64 `gorm:"type:bigint;not null;default:0"`
	TotalEmployerCostCents int64 `gorm:"type:bigint;not null;default:0"`

	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	ProcessedAt *time.Time
	PaidBy      *uuid.UUID `gorm:"type:uuid"`
	PaidAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// PayrollRecord is the frozen calculation result for one employee in one
// run. Employee name, bank and compensation details are snapshotted at
// processing time so later employee edits never change a paid run.
type PayrollRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID      uuid.UUID `gorm:"type:uuid;not null;index:idx_records_run_employee,unique"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_records_run_employee,unique"`

	EmployeeNumber   string `gorm:"type:varchar(20);not null"`
	EmployeeName     string `gorm:"type:varchar(120);not null"`
	PaymentReference string `gorm:"type:varchar(50);not null"`

	BankCode          string `gorm:"type:varchar(10)"`
	BankAccountNumber string `gorm:"type:varchar(34)"`

	HourlyRateCents int64 `gorm:"type:bigint;not null;default:0"`

	RegularPayCents   int64 `gorm:"type:bigint;not null;default:0"`
	OvertimePayCents  int64 `gorm:"type:bigint;not null;default:0"`
	NightShiftCents   int64 `gorm:"type:bigint;not null;default:0"`
	HolidayPayCents   int64 `gorm:"type:bigint;not null;default:0"`
	RestDayPayCents   int64 `gorm:"type:bigint;not null;default:0"`
	OtherEarningCents int64 `gorm:"type:bigint;not null;default:0"`

	GrossPayCents      int64 `gorm:"type:bigint;not null;default:0"`
	TaxableIncomeCents int64 `gorm:"type:bigint;not null;default:0"`
	IncomeTaxCents     int64 `gorm:"type:bigint;not null;default:0"`

	INSSBaseCents     int64 `gorm:"type:bigint;not null;default:0"`
	INSSEmployeeCents int64 `gorm:"type:bigint;not null;default:0"`
	INSSEmployerCents int64 `gorm:"type:bigint;not null;default:0"`

	OtherDeductionCents    int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductionCents    int64 `gorm:"type:bigint;not null;default:0"`
	NetPayCents            int64 `gorm:"type:bigint;not null;default:0"`
	TotalEmployerCostCents int64 `gorm:"type:bigint;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

// YTDTotals are the paid accumulators for one employee within a calendar
// year, read back from earlier paid runs.
type YTDTotals struct {
	EmployeeID        string
	GrossPayCents     int64
	IncomeTaxCents    int64
	INSSEmployeeCents int64
}
