package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a uniqueness constraint is violated
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when credentials are missing or wrong.
	// Deliberately generic: unknown user, wrong password and deactivated
	// account all surface as this one error.
	ErrUnauthorized = errors.New("invalid username or password")

	// ErrCloseReasonRequired is returned when a deal is moved to a closed
	// stage without a close reason
	ErrCloseReasonRequired = errors.New("close reason is required when closing a deal")

	// ErrInvalidStage is returned when an unknown pipeline stage is given
	ErrInvalidStage = errors.New("invalid pipeline stage")

	// ErrInvalidStatus is returned when an unknown quote status is given
	ErrInvalidStatus = errors.New("invalid quote status")

	// ErrSetupComplete is returned when the first-run setup is attempted
	// after a user account already exists
	ErrSetupComplete = errors.New("setup already completed")

	// ErrSelfDeactivation is returned when a user tries to deactivate
	// their own account
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")

	// ErrExternalUnavailable is returned when a shipping estimate fails
	// because an external lookup failed. Never silently becomes a zero
	// cost estimate.
	ErrExternalUnavailable = errors.New("external dependency unavailable")

	// ErrMailNotConnected is returned when a mailbox provider has no
	// stored token for the user
	ErrMailNotConnected = errors.New("mailbox not connected")
)
