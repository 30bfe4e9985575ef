package events

import "time"

const PaymentRecordedTopic = "ledger.payment.recorded.v1"

type PaymentRecordedEvent struct {
	EventType     string    `json:"event_type"`
	PaymentID     string    `json:"payment_id"`
	InvoiceID     *string   `json:"invoice_id,omitempty"`
	FiscalYearID  string    `json:"fiscal_year_id"`
	Amount        int64     `json:"amount"`
	PaymentModeGL string    `json:"payment_mode_gl_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}
