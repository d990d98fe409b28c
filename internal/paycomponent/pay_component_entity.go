package paycomponent

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	KindEarning   = "EARNING"
	KindDeduction = "DEDUCTION"
)

// Component codes, matching the earning and deduction slots of the
// calculation engine.
const (
	CodeBonus              = "BONUS"
	CodeCommission         = "COMMISSION"
	CodePerDiem            = "PER_DIEM"
	CodeFoodAllowance      = "FOOD_ALLOWANCE"
	CodeTransportAllowance = "TRANSPORT_ALLOWANCE"
	CodeOtherEarning       = "OTHER_EARNING"

	CodeLoanRepayment    = "LOAN_REPAYMENT"
	CodeAdvanceRepayment = "ADVANCE_REPAYMENT"
	CodeCourtOrdered     = "COURT_ORDERED"
	CodeOtherDeduction   = "OTHER_DEDUCTION"
)

// PayComponent is one recurring earning or deduction attached to an
// employee. Amounts disimpan dalam satuan terkecil (sen). A component is
// applied to every run whose period end falls inside its effective window.
type PayComponent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_pay_component_slot"`

	Kind        string `gorm:"type:varchar(10);not null"`
	Code        string `gorm:"type:varchar(30);not null;uniqueIndex:uq_pay_component_slot"`
	AmountCents int64  `gorm:"type:bigint;not null;default:0"`

	EffectiveFrom time.Time  `gorm:"type:date;not null;uniqueIndex:uq_pay_component_slot"`
	EffectiveTo   *time.Time `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayComponent) TableName() string {
	return "pay_components"
}

// KindForCode maps a component code to its kind, or "" for unknown codes.
func KindForCode(code string) string {
	switch code {
	case CodeBonus, CodeCommission, CodePerDiem, CodeFoodAllowance,
		CodeTransportAllowance, CodeOtherEarning:
		return KindEarning
	case CodeLoanRepayment, CodeAdvanceRepayment, CodeCourtOrdered,
		CodeOtherDeduction:
		return KindDeduction
	default:
		return ""
	}
}

// Totals are an employee's active component amounts bucketed per engine
// slot, produced by ActiveTotals for a given as-of date.
type Totals struct {
	EmployeeID string

	BonusCents              int64
	CommissionCents         int64
	PerDiemCents            int64
	FoodAllowanceCents      int64
	TransportAllowanceCents int64
	OtherEarningCents       int64

	LoanRepaymentCents    int64
	AdvanceRepaymentCents int64
	CourtOrderedCents     int64
	OtherDeductionCents   int64
}
