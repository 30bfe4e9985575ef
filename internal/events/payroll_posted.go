package events

import "time"

const PayrollPostedTopic = "ledger.payroll.posted.v1"

type PayrollPostedEvent struct {
	EventType    string    `json:"event_type"`
	RunID        string    `json:"run_id"`
	FiscalYearID string    `json:"fiscal_year_id"`
	Month        string    `json:"month"`
	PayslipCount int       `json:"payslip_count"`
	PostedBy     string    `json:"posted_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
