package events

import "time"

const PayrollRunPaidTopic = "hr.payroll.run.paid.v1"

// PayrollRunPaidEvent fires when a run is marked paid. The payslip consumer
// picks it up and renders one PDF per record in the run.
type PayrollRunPaidEvent struct {
	EventType  string    `json:"event_type"`
	RunID      string    `json:"run_id"`
	CompanyID  string    `json:"company_id"`
	PaidBy     string    `json:"paid_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
