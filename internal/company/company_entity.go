package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant master record. The payroll account fields identify
// the account each bank transfer batch debits; bank-file generation refuses
// to run while they are blank.
type Company struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(150);not null"`
	Email    string    `gorm:"type:varchar(255);index"`
	IsActive bool      `gorm:"not null;default:true"`

	PayrollBankCode      string `gorm:"type:varchar(10)"`
	PayrollAccountNumber string `gorm:"type:varchar(34)"`
	PayrollAccountName   string `gorm:"type:varchar(150)"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
