package domain

import "errors"

// Domain errors - used across all layers. Callers match with errors.Is;
// every value here is a recoverable-by-caller outcome, never process-fatal.
var (
	// ErrNotFound indicates the requested identity was not found.
	// Internal only: the gate collapses it into ErrBadCredentials
	// before anything leaves the core (enumeration resistance).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an identity with that identifier exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrBadCredentials is the uniform login denial. Unknown identifier
	// and wrong password both surface as this value.
	ErrBadCredentials = errors.New("invalid credentials")

	// ErrIdentityDisabled indicates the identity is no longer active
	ErrIdentityDisabled = errors.New("identity disabled")

	// ErrInvalidSignature indicates the token is malformed, tampered
	// with, or signed with an unrecognized key or algorithm
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpired indicates the token's expiry has passed
	ErrExpired = errors.New("token expired")

	// ErrRevoked indicates the token was explicitly revoked before expiry
	ErrRevoked = errors.New("token revoked")

	// ErrInsufficientScope indicates the token does not carry the scope
	// required for the attempted operation
	ErrInsufficientScope = errors.New("insufficient scope")

	// ErrPermissionDenied indicates an issuance request for scopes the
	// identity was never granted
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTransient indicates a storage timeout or similar retryable
	// failure. Never treated as a denial.
	ErrTransient = errors.New("transient failure")
)
