package expense

type CreateExpenseRequest struct {
	FiscalYearID    string `json:"fiscal_year_id" binding:"required,uuid"`
	ExpenseHeadID   string `json:"expense_head_id" binding:"required,uuid"`
	PaymentModeGLID string `json:"payment_mode_gl_id" binding:"required,uuid"`
	Amount          int64  `json:"amount" binding:"required,gt=0"`
	ExpenseDate     string `json:"expense_date" binding:"required"`
	Description     string `json:"description" binding:"max=250"`
}

type UpdateExpenseRequest struct {
	ExpenseHeadID   string `json:"expense_head_id" binding:"required,uuid"`
	PaymentModeGLID string `json:"payment_mode_gl_id" binding:"required,uuid"`
	Amount          int64  `json:"amount" binding:"required,gt=0"`
	ExpenseDate     string `json:"expense_date" binding:"required"`
	Description     string `json:"description" binding:"max=250"`
}

type ExpenseResponse struct {
	ID              string `json:"id"`
	FiscalYearID    string `json:"fiscal_year_id"`
	ExpenseHeadID   string `json:"expense_head_id"`
	PaymentModeGLID string `json:"payment_mode_gl_id"`
	Amount          int64  `json:"amount"`
	ExpenseDate     string `json:"expense_date"`
	Description     string `json:"description"`
	CreatedAt       string `json:"created_at"`
}
