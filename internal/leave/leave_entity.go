package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeAnnual    = "ANNUAL"
	TypeSick      = "SICK"
	TypeMaternity = "MATERNITY"
	TypeUnpaid    = "UNPAID"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_employee_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_company_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	DecidedBy       *uuid.UUID `gorm:"type:uuid"`
	DecidedAt       *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Paid reports whether days of this leave type keep their salary. Unpaid
// leave reduces the priced regular hours of the period instead.
func Paid(leaveType string) bool {
	return leaveType != TypeUnpaid
}

// UsageSummary aggregates an employee's approved leave days, used by
// payroll to fill the leave inputs of a calculation.
type UsageSummary struct {
	EmployeeID      string
	PaidLeaveDays   int
	SickLeaveDays   int
	UnpaidLeaveDays int
}
