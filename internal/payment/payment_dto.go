package payment

type RecordPaymentRequest struct {
	InvoiceID            *string `json:"invoice_id" binding:"omitempty,uuid"`
	FiscalYearID         string  `json:"fiscal_year_id" binding:"required,uuid"`
	Amount               int64   `json:"amount" binding:"required,gt=0"`
	PaymentDate          string  `json:"payment_date" binding:"required"`
	PaymentModeGLID      string  `json:"payment_mode_gl_id" binding:"required,uuid"`
	TransactionReference string  `json:"transaction_reference" binding:"max=100"`
	Remarks              string  `json:"remarks" binding:"max=250"`
}

type PaymentResponse struct {
	ID                   string  `json:"id"`
	InvoiceID            *string `json:"invoice_id,omitempty"`
	FiscalYearID         string  `json:"fiscal_year_id"`
	Amount               int64   `json:"amount"`
	PaymentDate          string  `json:"payment_date"`
	PaymentModeGLID      string  `json:"payment_mode_gl_id"`
	TransactionReference string  `json:"transaction_reference,omitempty"`
	Remarks              string  `json:"remarks,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

// RecordPaymentResponse reports the primary payment plus what the
// backlog-clearing pass managed to settle.
type RecordPaymentResponse struct {
	Payment             PaymentResponse `json:"payment"`
	InvoiceStatus       string          `json:"invoice_status,omitempty"`
	BacklogCleared      int             `json:"backlog_cleared"`
	BacklogClearedTotal int64           `json:"backlog_cleared_total"`
}
