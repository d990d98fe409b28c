package bankfile

type GenerateFileRequest struct {
	ValueDate string `json:"value_date" binding:"required,datetime=2006-01-02"`
}

type BankSummaryResponse struct {
	Bank        string `json:"bank"`
	RecordCount int    `json:"record_count"`
	TotalAmount string `json:"total_amount"`
}

type UnassignedResponse struct {
	RecordID     string `json:"record_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	NetPay       string `json:"net_pay"`
	Reason       string `json:"reason"`
}

// RunSummaryResponse previews one run's routing before any file is
// produced: which banks will receive a file, and which records cannot be
// routed anywhere.
type RunSummaryResponse struct {
	RunID      string                `json:"run_id"`
	RunNumber  string                `json:"run_number"`
	Status     string                `json:"status"`
	Banks      []BankSummaryResponse `json:"banks"`
	Unassigned []UnassignedResponse  `json:"unassigned"`
}
