package invoice

type InvoiceItemInput struct {
	GLHeadID    string `json:"gl_head_id" binding:"required,uuid"`
	Description string `json:"description" binding:"max=200"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
}

type CreateInvoiceRequest struct {
	StudentID    string             `json:"student_id" binding:"required,uuid"`
	StudentName  string             `json:"student_name" binding:"required,max=150"`
	FiscalYearID string             `json:"fiscal_year_id" binding:"required,uuid"`
	DueDate      string             `json:"due_date" binding:"required"`
	Month        *string            `json:"month" binding:"omitempty,max=20"`
	Items        []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
}

type BatchCreateInvoicesRequest struct {
	Invoices []CreateInvoiceRequest `json:"invoices" binding:"required,min=1,dive"`
}

type InvoiceItemResponse struct {
	ID          string `json:"id"`
	GLHeadID    string `json:"gl_head_id"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

type InvoiceResponse struct {
	ID            string                `json:"id"`
	StudentID     string                `json:"student_id"`
	StudentName   string                `json:"student_name"`
	FiscalYearID  string                `json:"fiscal_year_id"`
	InvoiceNumber string                `json:"invoice_number"`
	TotalAmount   int64                 `json:"total_amount"`
	DueDate       string                `json:"due_date"`
	Month         *string               `json:"month,omitempty"`
	Status        string                `json:"status"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     string                `json:"created_at"`
}

// InvoiceDetailResponse extends the invoice with the student's standing
// backlog at the time the invoice is viewed.
type InvoiceDetailResponse struct {
	InvoiceResponse
	PreviousDues       int64    `json:"previous_dues"`
	PreviousDuesMonths []string `json:"previous_dues_months"`
}

type BatchCreateInvoicesResponse struct {
	Created  []InvoiceResponse `json:"created"`
	Failed   int               `json:"failed"`
	Messages []string          `json:"messages,omitempty"`
}

// UnpaidStats summarizes a student's outstanding invoices before a
// cutoff date: the total owed and the distinct months it spans, in
// oldest-first order.
type UnpaidStats struct {
	Amount int64    `json:"amount"`
	Months []string `json:"months"`
}
