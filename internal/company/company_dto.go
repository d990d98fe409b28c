package company

type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`

	PayrollBankCode      string `json:"payroll_bank_code,omitempty"`
	PayrollAccountNumber string `json:"payroll_account_number,omitempty"`
	PayrollAccountName   string `json:"payroll_account_name,omitempty"`
}

type UpdateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	IsActive *bool  `json:"is_active"`

	PayrollBankCode      string `json:"payroll_bank_code" binding:"omitempty,oneof=BNU BNCTL MANDIRI BRI"`
	PayrollAccountNumber string `json:"payroll_account_number"`
	PayrollAccountName   string `json:"payroll_account_name"`
}
