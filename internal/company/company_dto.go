package company

import "time"

type RegisterCompanyRequest struct {
	CompanyName  string `json:"company_name" binding:"required"`
	IndustryType string `json:"industry_type" binding:"required"`
	CompanyEmail string `json:"company_email" binding:"required,email"`
	RegNo        string `json:"reg_no" binding:"required"`
	AdminName    string `json:"admin_name" binding:"required"`
	AdminEmail   string `json:"admin_email" binding:"required,email"`
	Contact      string `json:"contact" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
}

// ApplicationResponse is a pending application over the wire. The stored
// credential is deliberately not part of it.
type ApplicationResponse struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"company_name"`
	IndustryType string    `json:"industry_type"`
	CompanyEmail string    `json:"company_email"`
	RegNo        string    `json:"reg_no"`
	AdminName    string    `json:"admin_name"`
	AdminEmail   string    `json:"admin_email"`
	Contact      string    `json:"contact"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}

type CompanyListItem struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"company_name"`
	RegNo        string    `json:"reg_no"`
	IndustryType string    `json:"industry_type"`
	AdminEmail   string    `json:"admin_email"`
	CreatedAt    time.Time `json:"created_at"`
}
