package payroll

type CreateRunRequest struct {
	PeriodStart string `json:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" binding:"required,datetime=2006-01-02"`
	Frequency   string `json:"frequency" binding:"required,oneof=weekly biweekly monthly"`
}

type RunResponse struct {
	ID          string `json:"id"`
	RunNumber   string `json:"run_number"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Frequency   string `json:"frequency"`
	Status      string `json:"status"`

	EmployeeCount    int `json:"employee_count"`
	NegativeNetCount int `json:"negative_net_count"`

	TotalGrossCents        int64 `json:"total_gross_cents"`
	TotalNetCents          int64 `json:"total_net_cents"`
	TotalEmployerCostCents int64 `json:"total_employer_cost_cents"`

	ProcessedAt *string `json:"processed_at,omitempty"`
	PaidAt      *string `json:"paid_at,omitempty"`
}

type RecordResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	EmployeeNumber   string `json:"employee_number"`
	EmployeeName     string `json:"employee_name"`
	PaymentReference string `json:"payment_reference"`

	BankCode          string `json:"bank_code,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`

	RegularPayCents   int64 `json:"regular_pay_cents"`
	OvertimePayCents  int64 `json:"overtime_pay_cents"`
	NightShiftCents   int64 `json:"night_shift_pay_cents"`
	HolidayPayCents   int64 `json:"holiday_pay_cents"`
	RestDayPayCents   int64 `json:"rest_day_pay_cents"`
	OtherEarningCents int64 `json:"other_earnings_cents"`

	GrossPayCents      int64 `json:"gross_pay_cents"`
	TaxableIncomeCents int64 `json:"taxable_income_cents"`
	IncomeTaxCents     int64 `json:"income_tax_cents"`

	INSSBaseCents     int64 `json:"inss_base_cents"`
	INSSEmployeeCents int64 `json:"inss_employee_cents"`
	INSSEmployerCents int64 `json:"inss_employer_cents"`

	OtherDeductionCents    int64 `json:"other_deductions_cents"`
	TotalDeductionCents    int64 `json:"total_deductions_cents"`
	NetPayCents            int64 `json:"net_pay_cents"`
	TotalEmployerCostCents int64 `json:"total_employer_cost_cents"`
}

type RunDetailResponse struct {
	RunResponse
	Records []RecordResponse `json:"records"`
}
