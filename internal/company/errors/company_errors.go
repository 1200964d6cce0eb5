package companyerrors

import (
	"net/http"

	"go-compliance/internal/shared/apperror"
)

var (
	// 400 rather than 409: the public registration form shows this verbatim.
	ErrCompanyAlreadyApplied = apperror.New(
		apperror.CodeConflict,
		"Company already exists or applied",
		http.StatusBadRequest,
	)

	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Request not found",
		http.StatusNotFound,
	)

	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid request ID",
		http.StatusBadRequest,
	)

	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Company already exists",
		http.StatusConflict,
	)
)
