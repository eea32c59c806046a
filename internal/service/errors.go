package service

import "errors"

var (
	// ErrValidation covers empty or malformed input fields.
	ErrValidation = errors.New("invalid input")

	// ErrConflict is returned when registering an email that already exists.
	ErrConflict = errors.New("email already registered")

	// ErrRoleNotConfigured means the USER role is missing from the reference
	// data. Bootstrap seeds it, so hitting this is a deployment fault.
	ErrRoleNotConfigured = errors.New("default role USER is not configured")

	// ErrInvalidCredentials is returned for a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAuthFailure marks an internal inconsistency: the user passed
	// credential verification but vanished before the re-fetch.
	ErrAuthFailure = errors.New("authenticated user no longer exists")

	// ErrInvalidRefreshToken is returned for an unknown refresh token value.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrTokenExpiredOrRevoked is returned when a refresh token is presented
	// after expiry, revocation, or a prior use.
	ErrTokenExpiredOrRevoked = errors.New("refresh token is expired or revoked")
)
