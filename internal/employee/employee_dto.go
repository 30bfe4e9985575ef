package employee

type CreateEmployeeRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Role        string  `json:"role" binding:"required,oneof=TEACHER STAFF"`
	Designation *string `json:"designation"`
	Phone       *string `json:"phone"`
}

type UpdateEmployeeRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Role        string  `json:"role" binding:"required,oneof=TEACHER STAFF"`
	Designation *string `json:"designation"`
	Phone       *string `json:"phone"`
	IsActive    *bool   `json:"is_active"`
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	Designation *string `json:"designation,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	IsActive    bool    `json:"is_active"`
}
