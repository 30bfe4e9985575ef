package salary

type StructureItemInput struct {
	GLHeadID string `json:"gl_head_id" binding:"required,uuid"`
	Amount   int64  `json:"amount" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=Earning Deduction"`
}

type CreateSalaryStructureRequest struct {
	EmployeeID   string               `json:"employee_id" binding:"required,uuid"`
	FiscalYearID string               `json:"fiscal_year_id" binding:"required,uuid"`
	Items        []StructureItemInput `json:"items" binding:"required,min=1,dive"`
}

type UpdateSalaryStructureRequest struct {
	Items []StructureItemInput `json:"items" binding:"required,min=1,dive"`
}

type StructureItemResponse struct {
	ID       string `json:"id"`
	GLHeadID string `json:"gl_head_id"`
	Amount   int64  `json:"amount"`
	Type     string `json:"type"`
}

type SalaryStructureResponse struct {
	ID              string                  `json:"id"`
	EmployeeID      string                  `json:"employee_id"`
	EmployeeName    string                  `json:"employee_name,omitempty"`
	FiscalYearID    string                  `json:"fiscal_year_id"`
	TotalEarnings   int64                   `json:"total_earnings"`
	TotalDeductions int64                   `json:"total_deductions"`
	NetSalary       int64                   `json:"net_salary"`
	Items           []StructureItemResponse `json:"items"`
}
