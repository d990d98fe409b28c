package payslip

import (
	"time"

	"github.com/google/uuid"
)

// Payslip is the rendered PDF for one employee in one paid run. Content is
// stored alongside the metadata so a reprint years later shows exactly what
// was issued, independent of later template changes.
type Payslip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	RunID      uuid.UUID `gorm:"type:uuid;not null;index:idx_payslips_run_employee,unique"`
	RecordID   uuid.UUID `gorm:"type:uuid;not null"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_payslips_run_employee,unique"`

	EmployeeName string `gorm:"type:varchar(120);not null"`
	Filename     string `gorm:"type:varchar(120);not null"`
	Content      []byte `gorm:"type:bytea;not null"`
	NetPayCents  int64  `gorm:"type:bigint;not null"`

	IssuedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}
