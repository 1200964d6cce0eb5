package employee

import (
	"errors"
	"strings"

	employeeerrors "go-compliance/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrCompanyNotFound
	}

	if isUniqueEmployeeViolation(err) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}

// isUniqueEmployeeViolation catches the (employee_id, company_reg_no) index:
// a concurrent batch won the insert race, which is the same business
// condition the pre-check covers.
func isUniqueEmployeeViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_company"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_company")
}
