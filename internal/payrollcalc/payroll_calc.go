package payrollcalc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Calculate maps one employee's period snapshot to a full payroll breakdown
// under the given rule table. It is a pure function: identical input and
// rules always produce an identical result, which is what makes payroll
// runs auditable and reproducible at year end.
//
// The engine reports facts, it does not enforce business gates. A negative
// net pay comes back as a negative net pay; blocking submission on it is the
// caller's job. Errors are reserved for structural problems that make the
// computation itself impossible.
func Calculate(input PayrollInput, rules Rules) (PayrollResult, error) {
	freq, ok := rules.Frequencies[input.Frequency]
	if !ok {
		return PayrollResult{}, fmt.Errorf("unrecognized pay frequency %q", input.Frequency)
	}
	if freq.PeriodsPerMonth.Sign() <= 0 {
		return PayrollResult{}, fmt.Errorf("frequency %q has non-positive periods per month", input.Frequency)
	}

	// 1. Rate derivation.
	hourlyRate := input.HourlyRate
	if !input.IsHourly {
		stdHours := rules.StandardMonthlyHours()
		if stdHours.Sign() <= 0 {
			return PayrollResult{}, fmt.Errorf("standard weekly hours must be positive, got %s", rules.StandardWeeklyHours)
		}
		hourlyRate = input.MonthlySalary.Div(stdHours)
	}

	// 2. Earnings. Each component is rounded to the cent independently so
	// the published breakdown sums exactly to the gross.
	regularPay := cents(hourlyRate.Mul(input.Hours.Regular))
	overtimePay := cents(hourlyRate.Mul(rules.OvertimeMultiplier).Mul(input.Hours.Overtime))
	nightShiftPay := cents(hourlyRate.Mul(rules.NightShiftMultiplier).Mul(input.Hours.NightShift))
	holidayPay := cents(hourlyRate.Mul(rules.HolidayMultiplier).Mul(input.Hours.Holiday))
	restDayPay := cents(hourlyRate.Mul(rules.RestDayMultiplier).Mul(input.Hours.RestDay))

	otherEarnings := cents(input.Supplemental.Bonus.
		Add(input.Supplemental.Commission).
		Add(input.Supplemental.PerDiem).
		Add(input.Supplemental.FoodAllowance).
		Add(input.Supplemental.TransportAllowance).
		Add(input.Supplemental.Other))

	grossPay := regularPay.
		Add(overtimePay).
		Add(nightShiftPay).
		Add(holidayPay).
		Add(restDayPay).
		Add(otherEarnings)

	// 3. Taxable income. Per-diem up to the (prorated) exemption ceiling is
	// excluded; everything else is taxable. Rounded here, once, so the tax
	// and INSS below derive from the same figure the result publishes.
	taxableIncome := cents(grossPay.Sub(perDiemExclusion(input.Supplemental.PerDiem, rules, freq)))

	// 4. Income tax.
	incomeTax := incomeTaxFor(taxableIncome, input.Tax, rules.Tax, freq)

	// 5. INSS, both sides of the same base.
	inssBase := taxableIncome
	if rules.INSS.MonthlyBaseCeiling.Sign() > 0 {
		ceiling := rules.INSS.MonthlyBaseCeiling.Div(freq.PeriodsPerMonth)
		if inssBase.GreaterThan(ceiling) {
			inssBase = ceiling
		}
	}
	inssBase = cents(inssBase)
	inssEmployee := cents(inssBase.Mul(rules.INSS.EmployeeRate))
	inssEmployer := cents(inssBase.Mul(rules.INSS.EmployerRate))

	// 6-7. Deductions, net pay, employer cost.
	otherDeductions := cents(input.Deductions.LoanRepayment.
		Add(input.Deductions.AdvanceRepayment).
		Add(input.Deductions.CourtOrdered).
		Add(input.Deductions.Other))

	totalDeductions := incomeTax.Add(inssEmployee).Add(otherDeductions)

	return PayrollResult{
		EmployeeID: input.EmployeeID,
		HourlyRate: hourlyRate,

		RegularPay:    regularPay,
		OvertimePay:   overtimePay,
		NightShiftPay: nightShiftPay,
		HolidayPay:    holidayPay,
		RestDayPay:    restDayPay,
		OtherEarnings: otherEarnings,

		GrossPay:      grossPay,
		TaxableIncome: taxableIncome,
		IncomeTax:     incomeTax,

		INSSBase:     inssBase,
		INSSEmployee: inssEmployee,
		INSSEmployer: inssEmployer,

		OtherDeductions:   otherDeductions,
		TotalDeductions:   totalDeductions,
		NetPay:            grossPay.Sub(totalDeductions),
		TotalEmployerCost: grossPay.Add(inssEmployer),
	}, nil
}

// perDiemExclusion returns the tax-exempt slice of the per-diem. The ceiling
// in the rule table is monthly, so it is prorated to the pay frequency.
func perDiemExclusion(perDiem decimal.Decimal, rules Rules, freq FrequencyRule) decimal.Decimal {
	if rules.PerDiemExemptMonthlyCeiling.Sign() <= 0 || perDiem.Sign() <= 0 {
		return decimal.Zero
	}
	ceiling := rules.PerDiemExemptMonthlyCeiling.Div(freq.PeriodsPerMonth)
	if perDiem.LessThanOrEqual(ceiling) {
		return perDiem
	}
	return ceiling
}

func incomeTaxFor(taxableIncome decimal.Decimal, profile TaxProfile, tax TaxRules, freq FrequencyRule) decimal.Decimal {
	if profile.Exempt {
		return decimal.Zero
	}

	if !profile.Resident {
		if taxableIncome.Sign() <= 0 {
			return decimal.Zero
		}
		return taxableIncome.Mul(tax.NonResidentRate).RoundCeil(2)
	}

	threshold := tax.ResidentMonthlyThreshold.Div(freq.PeriodsPerMonth)
	over := taxableIncome.Sub(threshold)
	if over.Sign() <= 0 {
		return decimal.Zero
	}
	// Tax due is rounded up to the next cent, so any income over the
	// threshold owes at least one cent.
	return over.Mul(tax.ResidentRate).RoundCeil(2)
}

// cents rounds to the currency's minimum unit (USD cents).
func cents(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
