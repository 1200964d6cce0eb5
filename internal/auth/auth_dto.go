package auth

// The login identifier is the company admin's email; the field is named
// username on the wire because the frontend form posts it that way.
type LoginRequest struct {
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CompanyProfile is the subset of company fields a successful login returns.
// No credential, no internal identifier.
type CompanyProfile struct {
	CompanyName  string `json:"company_name"`
	RegNo        string `json:"reg_no"`
	AdminName    string `json:"admin_name"`
	AdminEmail   string `json:"admin_email"`
	IndustryType string `json:"industry_type"`
}

type LoginResponse struct {
	Message string         `json:"message"`
	Company CompanyProfile `json:"company"`
}
