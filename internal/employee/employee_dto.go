package employee

import "time"

type CreateEmployeeRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Department   string `json:"department" binding:"required"`
	CompanyRegNo string `json:"company_reg_no" binding:"required"`
}

type BulkCreateRequest struct {
	Employees []CreateEmployeeRequest `json:"employees" binding:"required,min=1,dive"`
}

// BulkCreateSummary is the per-batch accounting: Errors holds one
// human-readable entry per skipped row, in row order.
type BulkCreateSummary struct {
	Inserted int
	Skipped  int
	Errors   []string
}

type BulkCreateResponse struct {
	Message  string   `json:"message"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

type EmployeeResponse struct {
	EmployeeID   string    `json:"employee_id"`
	Name         string    `json:"name"`
	Department   string    `json:"department"`
	CompanyRegNo string    `json:"company_reg_no"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateEmployeeResponse struct {
	Message      string `json:"message"`
	EmployeeID   string `json:"employee_id"`
	CompanyRegNo string `json:"company_reg_no"`
}
