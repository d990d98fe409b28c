package payslip

import "time"

type PayslipResponse struct {
	ID           string    `json:"id"`
	RunID        string    `json:"run_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Filename     string    `json:"filename"`
	NetPay       string    `json:"net_pay"`
	IssuedAt     time.Time `json:"issued_at"`
}
