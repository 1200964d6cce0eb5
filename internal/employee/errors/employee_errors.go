package employeeerrors

import (
	"net/http"

	"go-compliance/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company with given registration number does not exist",
		http.StatusNotFound,
	)

	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee already exists for this company",
		http.StatusBadRequest,
	)
)
