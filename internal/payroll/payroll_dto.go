package payroll

type GeneratePayrollRunRequest struct {
	FiscalYearID string `json:"fiscal_year_id" binding:"required,uuid"`
	Month        string `json:"month" binding:"required,max=20"`
}

type ApprovePayrollRunRequest struct {
	// PaymentModeGLHeadID overrides the cash-head lookup when set.
	PaymentModeGLHeadID *string `json:"payment_mode_gl_head_id" binding:"omitempty,uuid"`
	// PostedBy is filled from the authenticated user, not the body.
	PostedBy string `json:"-"`
}

type PayslipItemResponse struct {
	ID       string `json:"id"`
	GLHeadID string `json:"gl_head_id"`
	Amount   int64  `json:"amount"`
	Type     string `json:"type"`
}

type PayslipResponse struct {
	ID              string                `json:"id"`
	EmployeeID      string                `json:"employee_id"`
	EmployeeName    string                `json:"employee_name"`
	TotalEarnings   int64                 `json:"total_earnings"`
	TotalDeductions int64                 `json:"total_deductions"`
	NetSalary       int64                 `json:"net_salary"`
	Status          string                `json:"status"`
	Items           []PayslipItemResponse `json:"items"`
}

type PayrollRunResponse struct {
	ID           string            `json:"id"`
	FiscalYearID string            `json:"fiscal_year_id"`
	Month        string            `json:"month"`
	IsPosted     bool              `json:"is_posted"`
	PostedAt     *string           `json:"posted_at,omitempty"`
	PayslipCount int               `json:"payslip_count"`
	TotalNet     int64             `json:"total_net"`
	Payslips     []PayslipResponse `json:"payslips,omitempty"`
	CreatedAt    string            `json:"created_at"`
}

// ApprovePayrollRunResponse reports how many payslips posted an expense
// and how many were skipped because no salary head resolved for them.
type ApprovePayrollRunResponse struct {
	Run             PayrollRunResponse `json:"run"`
	ExpensesCreated int                `json:"expenses_created"`
	Skipped         int                `json:"skipped"`
}
