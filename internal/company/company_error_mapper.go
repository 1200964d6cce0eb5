package company

import (
	"errors"
	"strings"

	companyerrors "go-compliance/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_company_application_email":
				return companyerrors.ErrCompanyAlreadyApplied
			case "uq_company_email", "uq_company_reg_no":
				return companyerrors.ErrCompanyAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_company_application_email") {
			return companyerrors.ErrCompanyAlreadyApplied
		}
		if strings.Contains(errMsg, "uq_company_email") || strings.Contains(errMsg, "uq_company_reg_no") {
			return companyerrors.ErrCompanyAlreadyExists
		}
	}

	return err
}
