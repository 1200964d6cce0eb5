package autherrors

import (
	"net/http"

	"go-compliance/internal/shared/apperror"
)

// One error for both unknown user and wrong password, so the response never
// reveals which half of the credential failed.
var ErrInvalidCredentials = apperror.New(
	apperror.CodeUnauthorized,
	"Invalid username or password",
	http.StatusUnauthorized,
)
