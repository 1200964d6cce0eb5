package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee belongs to an approved company through company_reg_no, the
// administrator-supplied registration number. The composite unique index is
// the storage-level guarantee behind the per-row duplicate check.
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_employee_company"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Department   string    `gorm:"type:varchar(100);not null"`
	CompanyRegNo string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_employee_company;index"`
	CreatedAt    time.Time
}
