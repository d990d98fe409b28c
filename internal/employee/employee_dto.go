package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	EmployeeNumber string `json:"employee_number"`
	HireDate       string `json:"hire_date" binding:"required"`

	MonthlySalaryCents int64  `json:"monthly_salary_cents" binding:"min=0"`
	HourlyRateCents    int64  `json:"hourly_rate_cents" binding:"min=0"`
	IsHourly           bool   `json:"is_hourly"`
	PayFrequency       string `json:"pay_frequency" binding:"required,oneof=weekly biweekly monthly"`

	Resident  bool `json:"resident"`
	TaxExempt bool `json:"tax_exempt"`

	BankCode          string `json:"bank_code" binding:"omitempty,oneof=BNU BNCTL MANDIRI BRI"`
	BankAccountNumber string `json:"bank_account_number"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Status   string `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`

	MonthlySalaryCents int64  `json:"monthly_salary_cents" binding:"min=0"`
	HourlyRateCents    int64  `json:"hourly_rate_cents" binding:"min=0"`
	IsHourly           bool   `json:"is_hourly"`
	PayFrequency       string `json:"pay_frequency" binding:"required,oneof=weekly biweekly monthly"`

	Resident  bool `json:"resident"`
	TaxExempt bool `json:"tax_exempt"`

	BankCode          string `json:"bank_code" binding:"omitempty,oneof=BNU BNCTL MANDIRI BRI"`
	BankAccountNumber string `json:"bank_account_number"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	HireDate       string `json:"hire_date"`
	Status         string `json:"status"`

	MonthlySalaryCents int64  `json:"monthly_salary_cents"`
	HourlyRateCents    int64  `json:"hourly_rate_cents"`
	IsHourly           bool   `json:"is_hourly"`
	PayFrequency       string `json:"pay_frequency"`

	Resident  bool `json:"resident"`
	TaxExempt bool `json:"tax_exempt"`

	BankCode          string `json:"bank_code,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
}

// EmployeeOption is the slim shape the payroll and bank-transfer screens use
// to populate pickers.
type EmployeeOption struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	BankCode       string `json:"bank_code,omitempty"`
}
