package company

import (
	"time"

	"github.com/google/uuid"
)

// CompanyApplication is a self-registration waiting for an admin decision.
// Approval and rejection both delete the row, so everything stored here is
// pending; Verified survives for wire compatibility and is never set.
type CompanyApplication struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyName  string    `gorm:"type:varchar(255);not null"`
	IndustryType string    `gorm:"type:varchar(100);not null"`
	CompanyEmail string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_company_application_email"`
	RegNo        string    `gorm:"type:varchar(100);not null"`
	AdminName    string    `gorm:"type:varchar(255);not null"`
	AdminEmail   string    `gorm:"type:varchar(255);not null"`
	Contact      string    `gorm:"type:varchar(50);not null"`
	Password     string    `gorm:"type:varchar(255);not null"`
	Verified     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CompanyApplication) TableName() string { return "company_applications" }

// Company is an approved record. Both candidate keys are unique at the
// storage layer: company_email (duplicate-application checks key off it) and
// reg_no (employees key off it).
type Company struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyName  string    `gorm:"type:varchar(255);not null"`
	IndustryType string    `gorm:"type:varchar(100);not null"`
	CompanyEmail string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_company_email"`
	RegNo        string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_company_reg_no"`
	AdminName    string    `gorm:"type:varchar(255);not null"`
	AdminEmail   string    `gorm:"type:varchar(255);not null;index"`
	Contact      string    `gorm:"type:varchar(50);not null"`
	Password     string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

func (Company) TableName() string { return "companies" }

// newCompanyFromApplication is the approval transform: the internal id and
// the verified flag stay behind, created_at is stamped by the caller.
func newCompanyFromApplication(app *CompanyApplication, approvedAt time.Time) *Company {
	return &Company{
		CompanyName:  app.CompanyName,
		IndustryType: app.IndustryType,
		CompanyEmail: app.CompanyEmail,
		RegNo:        app.RegNo,
		AdminName:    app.AdminName,
		AdminEmail:   app.AdminEmail,
		Contact:      app.Contact,
		Password:     app.Password,
		CreatedAt:    approvedAt,
	}
}
