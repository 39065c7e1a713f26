package utils

import "errors"

// Outcome sentinels shared between the repositories, the permission
// service and the controllers. Controllers map them onto HTTP statuses
// in exactly one way: ErrConflict and validation problems answer 400,
// ErrInvalidCredentials 401, ErrForbidden 403, ErrNotFound 404.
// Anything else is logged and answered as a generic 500.
var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("record already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("permission denied")
)
