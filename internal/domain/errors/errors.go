package errors

import (
	"net/http"

	"portal/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Registration and sign-in errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Some fields are missing or invalid",
		"",
	)

	ErrDuplicateEmail = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"This email is already registered. Please sign in instead.",
		"",
	)

	ErrAttemptInFlight = NewBaseError(
		http.StatusConflict,
		"ATTEMPT_IN_FLIGHT",
		"Another attempt is still being processed. Please wait.",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect password. Please try again.",
		"",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusUnauthorized,
		"ACCOUNT_NOT_FOUND",
		"No account found for this email. Please sign up first.",
		"",
	)

	ErrRoleRecordNotFound = NewBaseError(
		http.StatusUnauthorized,
		"ROLE_RECORD_NOT_FOUND",
		"No account found for the selected role.",
		"",
	)

	ErrUnverified = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_UNVERIFIED",
		"Your account is not verified yet. Please enter the code we sent to your email.",
		"",
	)

	// Passcode verification errors
	ErrInvalidOtp = NewBaseError(
		http.StatusBadRequest,
		"INVALID_OTP",
		"The verification code is incorrect. Please try again.",
		"",
	)

	ErrOtpExpired = NewBaseError(
		http.StatusBadRequest,
		"OTP_EXPIRED",
		"The verification code has expired. Please request a new one.",
		"",
	)

	// Identity-provider errors
	ErrProvider = NewBaseError(
		http.StatusBadGateway,
		"PROVIDER_ERROR",
		"The sign-in service is unavailable right now. Please try again later.",
		"",
	)

	// Registration-session errors
	ErrRegistrationSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"REGISTRATION_SESSION_NOT_FOUND",
		"Your registration session has expired. Please start over.",
		"",
	)

	ErrCSRF = NewBaseError(
		http.StatusForbidden,
		"CSRF_TOKEN_INVALID",
		"The request could not be verified. Please reload the page.",
		"",
	)

	ErrSessionNotFound = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_NOT_FOUND",
		"Your session has expired. Please sign in again.",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"Invalid or expired access token",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong on our side. Please try again.",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "A database error occurred"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
