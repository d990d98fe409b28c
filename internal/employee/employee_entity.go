package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Employee is the HR master record. Compensation and bank details live here
// because payroll calculation and bank-file generation both read them; money
// disimpan dalam satuan terkecil (sen) untuk hindari floating error.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index:idx_company_empno,unique"`
	EmployeeNumber string    `gorm:"type:varchar(20);not null;index:idx_company_empno,unique"`
	FullName       string    `gorm:"type:varchar(120);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex"`
	HireDate       time.Time `gorm:"type:date;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`

	// Compensation: either a monthly salary or an hourly rate, never both.
	MonthlySalaryCents int64  `gorm:"type:bigint;not null;default:0"`
	HourlyRateCents    int64  `gorm:"type:bigint;not null;default:0"`
	IsHourly           bool   `gorm:"not null;default:false"`
	PayFrequency       string `gorm:"type:varchar(10);not null;default:'monthly'"`

	// Tax profile.
	Resident  bool `gorm:"not null;default:true"`
	TaxExempt bool `gorm:"not null;default:false"`

	// Salary transfer destination. BankCode is one of the supported bank
	// codes or empty; empty routes the employee to the unassigned bucket.
	BankCode          string `gorm:"type:varchar(10)"`
	BankAccountNumber string `gorm:"type:varchar(34)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}
