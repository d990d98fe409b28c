package payslip

import (
	"bytes"
	"fmt"
	"time"

	"tl-payroll/internal/payroll"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderInput is everything one payslip page needs. All amounts come from
// the frozen payroll record, never from live employee data.
type RenderInput struct {
	CompanyName string
	RunNumber   string
	PeriodStart time.Time
	PeriodEnd   time.Time
	PaidAt      time.Time
	Record      payroll.PayrollRecord
}

func money(cents int64) string {
	return "$" + decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}

// Render produces a single-page A4 payslip PDF.
func Render(in RenderInput) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", in.RunNumber, in.Record.EmployeeNumber), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, in.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Payslip / Recibo de Salario", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	left := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}
	left("Employee", fmt.Sprintf("%s (%s)", in.Record.EmployeeName, in.Record.EmployeeNumber))
	left("Pay period", fmt.Sprintf("%s to %s",
		in.PeriodStart.Format("02 Jan 2006"), in.PeriodEnd.Format("02 Jan 2006")))
	left("Run", in.RunNumber)
	left("Payment date", in.PaidAt.Format("02 Jan 2006"))
	left("Reference", in.Record.PaymentReference)
	pdf.Ln(4)

	row := func(label string, cents int64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(120, 6, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, money(cents), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Earnings", "", 1, "L", false, 0, "")
	row("Base pay", in.Record.RegularPayCents, false)
	if in.Record.OvertimePayCents != 0 {
		row("Overtime", in.Record.OvertimePayCents, false)
	}
	if in.Record.NightShiftCents != 0 {
		row("Night shift differential", in.Record.NightShiftCents, false)
	}
	if in.Record.HolidayPayCents != 0 {
		row("Public holiday work", in.Record.HolidayPayCents, false)
	}
	if in.Record.RestDayPayCents != 0 {
		row("Rest day work", in.Record.RestDayPayCents, false)
	}
	if in.Record.OtherEarningCents != 0 {
		row("Allowances and other earnings", in.Record.OtherEarningCents, false)
	}
	row("Gross pay", in.Record.GrossPayCents, true)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Deductions", "", 1, "L", false, 0, "")
	row("Income tax (WIT)", in.Record.IncomeTaxCents, false)
	row("Social security (INSS 4%)", in.Record.INSSEmployeeCents, false)
	if in.Record.OtherDeductionCents != 0 {
		row("Other deductions", in.Record.OtherDeductionCents, false)
	}
	row("Total deductions", in.Record.TotalDeductionCents, true)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, "NET PAY", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, money(in.Record.NetPayCents), "1", 1, "R", true, 0, "")

	if in.Record.BankAccountNumber != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("Paid by transfer to %s account %s",
			in.Record.BankCode, in.Record.BankAccountNumber), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Employer INSS contribution (6%%): %s  |  Total employer cost: %s",
		money(in.Record.INSSEmployerCents), money(in.Record.TotalEmployerCostCents)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
