package payrollcalc_test

import (
	"testing"

	"tl-payroll/internal/payrollcalc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func assertDec(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.RequireFromString(expected)),
		"expected %s, got %s %v", expected, actual, msgAndArgs)
}

func monthlySalariedInput(salary string) payrollcalc.PayrollInput {
	rules := payrollcalc.TimorLesteRules()
	return payrollcalc.PayrollInput{
		EmployeeID:    "emp-1",
		MonthlySalary: decimal.RequireFromString(salary),
		Frequency:     payrollcalc.FrequencyMonthly,
		Hours: payrollcalc.HourBuckets{
			Regular: rules.StandardMonthlyHours(),
		},
		Tax: payrollcalc.TaxProfile{Resident: true},
	}
}

func TestCalculate_ResidentAboveThreshold(t *testing.T) {
	// Salary $800, full standard month, no overtime, no supplements.
	// Tax = (800-500)*10% = 30, INSS = 32 / 48.
	result, err := payrollcalc.Calculate(monthlySalariedInput("800"), payrollcalc.TimorLesteRules())
	assert.NoError(t, err)

	assertDec(t, "800", result.GrossPay)
	assertDec(t, "800", result.TaxableIncome)
	assertDec(t, "30", result.IncomeTax)
	assertDec(t, "32", result.INSSEmployee)
	assertDec(t, "48", result.INSSEmployer)
	assertDec(t, "62", result.TotalDeductions)
	assertDec(t, "738", result.NetPay)
	assertDec(t, "848", result.TotalEmployerCost)
}

func TestCalculate_ResidentBelowThreshold(t *testing.T) {
	result, err := payrollcalc.Calculate(monthlySalariedInput("450"), payrollcalc.TimorLesteRules())
	assert.NoError(t, err)

	assertDec(t, "450", result.GrossPay)
	assertDec(t, "0", result.IncomeTax)
	assertDec(t, "18", result.INSSEmployee)
	assertDec(t, "432", result.NetPay)
}

func TestCalculate_ThresholdBoundary(t *testing.T) {
	rules := payrollcalc.TimorLesteRules()
	base := payrollcalc.PayrollInput{
		EmployeeID: "emp-1",
		IsHourly:   true,
		HourlyRate: decimal.NewFromInt(1),
		Frequency:  payrollcalc.FrequencyMonthly,
		Tax:        payrollcalc.TaxProfile{Resident: true},
	}

	t.Run("exactly at threshold owes nothing", func(t *testing.T) {
		input := base
		input.Hours.Regular = decimal.NewFromInt(500)
		result, err := payrollcalc.Calculate(input, rules)
		assert.NoError(t, err)
		assertDec(t, "0", result.IncomeTax)
	})

	t.Run("one cent above owes at least one cent", func(t *testing.T) {
		input := base
		input.Hours.Regular = decimal.RequireFromString("500.01")
		result, err := payrollcalc.Calculate(input, rules)
		assert.NoError(t, err)
		assert.True(t, result.IncomeTax.IsPositive(), "got %s", result.IncomeTax)
	})
}

func TestCalculate_NonResidentFlatRate(t *testing.T) {
	input := monthlySalariedInput("450")
	input.Tax.Resident = false

	result, err := payrollcalc.Calculate(input, payrollcalc.TimorLesteRules())
	assert.NoError(t, err)

	// No threshold for non-residents: 450 * 10%.
	assertDec(t, "45", result.IncomeTax)
}

func TestCalculate_ExemptEmployee(t *testing.T) {
	input := monthlySalariedInput("800")
	input.Tax.Exempt = true

	result, err := payrollcalc.Calculate(input, payrollcalc.TimorLesteRules())
	assert.NoError(t, err)

	assertDec(t, "0", result.IncomeTax)
	assertDec(t, "32", result.INSSEmployee)
}

func TestCalculate_PremiumHourBuckets(t *testing.T) {
	rules := payrollcalc.TimorLesteRules()
	input := payrollcalc.PayrollInput{
		EmployeeID: "emp-1",
		IsHourly:   true,
		HourlyRate: decimal.NewFromInt(2),
		Frequency:  payrollcalc.FrequencyMonthly,
		Hours: payrollcalc.HourBuckets{
			Regular:    decimal.NewFromInt(100),
			Overtime:   decimal.NewFromInt(10),
			NightShift: decimal.NewFromInt(8),
			Holiday:    decimal.NewFromInt(4),
			RestDay:    decimal.NewFromInt(2),
		},
		Tax: payrollcalc.TaxProfile{Resident: true},
	}

	result, err := payrollcalc.Calculate(input, rules)
	assert.NoError(t, err)

	assertDec(t, "200", result.RegularPay)
	assertDec(t, "30", result.OvertimePay)   // 2 * 1.5 * 10
	assertDec(t, "20", result.NightShiftPay) // 2 * 1.25 * 8
	assertDec(t, "16", result.HolidayPay)    // 2 * 2.0 * 4
	assertDec(t, "8", result.RestDayPay)     // 2 * 2.0 * 2
	assertDec(t, "274", result.GrossPay)
}

func TestCalculate_ZeroHoursStillPaysSupplements(t *testing.T) {
	input := payrollcalc.PayrollInput{
		EmployeeID: "emp-1",
		IsHourly:   true,
		HourlyRate: decimal.NewFromInt(3),
		Frequency:  payrollcalc.FrequencyMonthly,
		Supplemental: payrollcalc.SupplementalPay{
			Bonus:         decimal.NewFromInt(100),
			FoodAllowance: decimal.NewFromInt(50),
		},
		Tax: payrollcalc.TaxProfile{Resident: true},
	}

	result, err := payrollcalc.Calculate(input, payrollcalc.TimorLesteRules())
	assert.NoError(t, err)

	assertDec(t, "0", result.RegularPay)
	assertDec(t, "150", result.GrossPay)
}

func TestCalculate_NegativeNetPayIsReported(t *testing.T) {
	input := monthlySalariedInput("450")
	input.Deductions.LoanRepayment = decimal.NewFromInt(500)

	result, err := payrollcalc.Calculate(input, payrollcalc.TimorLesteRules())
	assert.NoError(t, err)

	// Deductions exceed gross: the engine must surface the true negative
	// number, never clamp it.
	assert.True(t, result.NetPay.IsNegative(), "got %s", result.NetPay)
	assertDec(t, "450", result.GrossPay)
	assert.True(t, result.GrossPay.Sub(result.TotalDeductions).Equal(result.NetPay))
}

func TestCalculate_AccountingIdentities(t *testing.T) {
	rules := payrollcalc.TimorLesteRules()

	inputs := []payrollcalc.PayrollInput{
		monthlySalariedInput("800"),
		monthlySalariedInput("450"),
		monthlySalariedInput("1234.56"),
		{
			EmployeeID: "emp-h",
			IsHourly:   true,
			HourlyRate: decimal.RequireFromString("3.75"),
			Frequency:  payrollcalc.FrequencyBiweekly,
			Hours: payrollcalc.HourBuckets{
				Regular:  decimal.RequireFromString("80.5"),
				Overtime: decimal.RequireFromString("7.25"),
			},
			Supplemental: payrollcalc.SupplementalPay{
				Commission: decimal.RequireFromString("33.33"),
				PerDiem:    decimal.RequireFromString("12.5"),
			},
			Deductions: payrollcalc.DeductionInputs{
				AdvanceRepayment: decimal.RequireFromString("20"),
				CourtOrdered:     decimal.RequireFromString("15.01"),
			},
			Tax: payrollcalc.TaxProfile{Resident: true},
		},
	}

	for _, input := range inputs {
		result, err := payrollcalc.Calculate(input, rules)
		assert.NoError(t, err)

		assert.True(t, result.NetPay.Add(result.TotalDeductions).Equal(result.GrossPay),
			"net %s + deductions %s != gross %s", result.NetPay, result.TotalDeductions, result.GrossPay)
		assert.True(t, result.TotalEmployerCost.Equal(result.GrossPay.Add(result.INSSEmployer)))

		sumEarnings := result.RegularPay.
			Add(result.OvertimePay).
			Add(result.NightShiftPay).
			Add(result.HolidayPay).
			Add(result.RestDayPay).
			Add(result.OtherEarnings)
		assert.True(t, sumEarnings.Equal(result.GrossPay))
	}
}

func TestCalculate_Monotonicity(t *testing.T) {
	rules := payrollcalc.TimorLesteRules()
	input := payrollcalc.PayrollInput{
		EmployeeID: "emp-1",
		IsHourly:   true,
		HourlyRate: decimal.NewFromInt(4),
		Frequency:  payrollcalc.FrequencyMonthly,
		Tax:        payrollcalc.TaxProfile{Resident: true},
	}

	prevGross := decimal.NewFromInt(-1)
	prevNet := decimal.NewFromInt(-1)
	for hours := 50; hours <= 250; hours += 50 {
		input.Hours.Regular = decimal.NewFromInt(int64(hours))
		result, err := payrollcalc.Calculate(input, rules)
		assert.NoError(t, err)

		assert.True(t, result.GrossPay.GreaterThan(prevGross), "gross not increasing at %d hours", hours)
		assert.True(t, result.NetPay.GreaterThan(prevNet), "net not increasing at %d hours", hours)
		prevGross = result.GrossPay
		prevNet = result.NetPay
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	rules := payrollcalc.TimorLesteRules()
	input := monthlySalariedInput("973.41")
	input.Hours.Overtime = decimal.RequireFromString("6.5")
	input.Supplemental.Bonus = decimal.NewFromInt(25)

	first, err := payrollcalc.Calculate(input, rules)
	assert.NoError(t, err)
	second, err := payrollcalc.Calculate(input, rules)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_BiweeklyThresholdProration(t *testing.T) {
	// 500/month over 26/12 periods per month = 230.769... per period.
	rules := payrollcalc.TimorLesteRules()
	input := payrollcalc.PayrollInput{
		EmployeeID: "emp-1",
		IsHourly:   true,
		HourlyRate: decimal.NewFromInt(3),
		Frequency:  payrollcalc.FrequencyBiweekly,
		Hours:      payrollcalc.HourBuckets{Regular: decimal.NewFromInt(100)},
		Tax:        payrollcalc.TaxProfile{Resident: true},
	}

	result, err := payrollcalc.Calculate(input, rules)
	assert.NoError(t, err)

	// (300 - 230.7692...) * 10% = 6.9230..., rounded up to 6.93.
	assertDec(t, "6.93", result.IncomeTax)
}

func TestCalculate_PerDiemExclusion(t *testing.T) {
	rules := payrollcalc.TimorLesteRules()
	rules.PerDiemExemptMonthlyCeiling = decimal.NewFromInt(100)

	input := monthlySalariedInput("800")
	input.Supplemental.PerDiem = decimal.NewFromInt(150)

	result, err := payrollcalc.Calculate(input, rules)
	assert.NoError(t, err)

	// 150 per-diem, 100 exempt: gross 950, taxable 850.
	assertDec(t, "950", result.GrossPay)
	assertDec(t, "850", result.TaxableIncome)
	assertDec(t, "35", result.IncomeTax)
}

func TestCalculate_TaxDerivesFromPublishedTaxableIncome(t *testing.T) {
	rules := payrollcalc.TimorLesteRules()
	rules.PerDiemExemptMonthlyCeiling = decimal.RequireFromString("100.599")

	input := monthlySalariedInput("700")
	input.Supplemental.PerDiem = decimal.NewFromInt(120)

	result, err := payrollcalc.Calculate(input, rules)
	assert.NoError(t, err)

	// Raw taxable income is 820 - 100.599 = 719.401. The published figure is
	// 719.40 and the tax must come from that same rounded number: 21.94, not
	// the 21.95 that 719.401 would round-ceil to.
	assertDec(t, "820", result.GrossPay)
	assertDec(t, "719.40", result.TaxableIncome)
	assertDec(t, "21.94", result.IncomeTax)
	assert.True(t, result.NetPay.Equal(result.GrossPay.Sub(result.TotalDeductions)))
}

func TestCalculate_INSSCeiling(t *testing.T) {
	rules := payrollcalc.TimorLesteRules()
	rules.INSS.MonthlyBaseCeiling = decimal.NewFromInt(600)

	result, err := payrollcalc.Calculate(monthlySalariedInput("800"), rules)
	assert.NoError(t, err)

	assertDec(t, "600", result.INSSBase)
	assertDec(t, "24", result.INSSEmployee) // 600 * 4%
	assertDec(t, "36", result.INSSEmployer) // 600 * 6%
}

func TestCalculate_UnknownFrequency(t *testing.T) {
	input := monthlySalariedInput("800")
	input.Frequency = "quarterly"

	_, err := payrollcalc.Calculate(input, payrollcalc.TimorLesteRules())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pay frequency")
}

func TestCalculate_InputsAreNotMutated(t *testing.T) {
	rules := payrollcalc.TimorLesteRules()
	input := monthlySalariedInput("800")
	snapshot := input

	_, err := payrollcalc.Calculate(input, rules)
	assert.NoError(t, err)
	assert.Equal(t, snapshot, input)
}
