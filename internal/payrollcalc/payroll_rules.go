package payrollcalc

import "github.com/shopspring/decimal"

type PayFrequency string

const (
	FrequencyWeekly   PayFrequency = "weekly"
	FrequencyBiweekly PayFrequency = "biweekly"
	FrequencyMonthly  PayFrequency = "monthly"
)

// FrequencyRule menentukan berapa kali periode gajian terjadi dalam satu bulan.
// Threshold pajak dan jam standar bersifat bulanan, jadi keduanya dibagi
// dengan PeriodsPerMonth sebelum dipakai per periode.
type FrequencyRule struct {
	PeriodsPerMonth decimal.Decimal
}

// TaxRules holds the income tax parameters for one jurisdiction.
// Residents pay a flat rate only on the portion of taxable income above the
// monthly threshold. Non-residents pay a flat rate on the whole amount.
type TaxRules struct {
	ResidentRate             decimal.Decimal
	ResidentMonthlyThreshold decimal.Decimal
	NonResidentRate          decimal.Decimal
}

// INSSRules holds the social security contribution parameters. Employee and
// employer rates are independent percentages of the same base. A zero
// MonthlyBaseCeiling means the base is uncapped.
type INSSRules struct {
	EmployeeRate       decimal.Decimal
	EmployerRate       decimal.Decimal
	MonthlyBaseCeiling decimal.Decimal
}

// Rules is the full rule table the engine needs for one jurisdiction.
// The arithmetic pipeline never hard-codes a rate; swapping this table is
// how another jurisdiction gets supported.
type Rules struct {
	StandardWeeklyHours  decimal.Decimal
	OvertimeMultiplier   decimal.Decimal
	NightShiftMultiplier decimal.Decimal
	HolidayMultiplier    decimal.Decimal
	RestDayMultiplier    decimal.Decimal

	// Per-diem paid up to this monthly ceiling is excluded from taxable
	// income. Zero means per-diem is fully taxable.
	PerDiemExemptMonthlyCeiling decimal.Decimal

	Tax         TaxRules
	INSS        INSSRules
	Frequencies map[PayFrequency]FrequencyRule
}

// TimorLesteRules returns the rule table in force for Timor-Leste:
// 10% resident income tax above $500/month, 10% flat for non-residents,
// INSS 4% employee / 6% employer, 44-hour standard work week.
func TimorLesteRules() Rules {
	return Rules{
		StandardWeeklyHours:  decimal.NewFromInt(44),
		OvertimeMultiplier:   decimal.NewFromFloat(1.5),
		NightShiftMultiplier: decimal.NewFromFloat(1.25),
		HolidayMultiplier:    decimal.NewFromInt(2),
		RestDayMultiplier:    decimal.NewFromInt(2),

		PerDiemExemptMonthlyCeiling: decimal.Zero,

		Tax: TaxRules{
			ResidentRate:             decimal.NewFromFloat(0.10),
			ResidentMonthlyThreshold: decimal.NewFromInt(500),
			NonResidentRate:          decimal.NewFromFloat(0.10),
		},
		INSS: INSSRules{
			EmployeeRate:       decimal.NewFromFloat(0.04),
			EmployerRate:       decimal.NewFromFloat(0.06),
			MonthlyBaseCeiling: decimal.Zero,
		},
		Frequencies: DefaultFrequencies(),
	}
}

// DefaultFrequencies maps each supported pay frequency to its monthly factor.
func DefaultFrequencies() map[PayFrequency]FrequencyRule {
	return map[PayFrequency]FrequencyRule{
		FrequencyWeekly:   {PeriodsPerMonth: decimal.NewFromInt(52).Div(decimal.NewFromInt(12))},
		FrequencyBiweekly: {PeriodsPerMonth: decimal.NewFromInt(26).Div(decimal.NewFromInt(12))},
		FrequencyMonthly:  {PeriodsPerMonth: decimal.NewFromInt(1)},
	}
}

// StandardMonthlyHours derives the monthly divisor used to turn a monthly
// salary into an hourly rate: weekly hours * 52 weeks / 12 months.
func (r Rules) StandardMonthlyHours() decimal.Decimal {
	return r.StandardWeeklyHours.Mul(decimal.NewFromInt(52)).Div(decimal.NewFromInt(12))
}
