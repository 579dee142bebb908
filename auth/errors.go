package auth

import "errors"

// Sentinel errors for authentication and authorization.
var (
	// Authentication errors
	ErrMissingCredentials = errors.New("auth: missing credentials")
	ErrBadCredentials     = errors.New("auth: bad credentials")
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrTokenMalformed     = errors.New("auth: token malformed")
	ErrSignatureInvalid   = errors.New("auth: token signature invalid")
	ErrSubjectMismatch    = errors.New("auth: token subject does not match principal")
	ErrPrincipalNotFound  = errors.New("auth: principal not found")
	ErrPrincipalInactive  = errors.New("auth: principal inactive")

	// Authorization errors
	ErrResourceNotFound = errors.New("auth: resource not found")
	ErrForbidden        = errors.New("auth: access denied")
)
