package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDeactivated = errors.New("user account is deactivated")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")

	// Storage errors
	ErrUnavailable = errors.New("storage unavailable")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrEmailDomainInvalid = errors.New("email domain not valid for role")
	ErrRoleNotAssignable  = errors.New("role cannot be self-assigned")
)

// Academic errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseCodeExists    = errors.New("course code already exists")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrResourceTypeInvalid = errors.New("invalid resource type")
)

// Grievance errors
var (
	ErrGrievanceNotFound      = errors.New("grievance not found")
	ErrGrievanceStatusInvalid = errors.New("invalid grievance status")
	ErrGrievanceEnumInvalid   = errors.New("invalid category or priority")
)

// Opportunity errors
var (
	ErrOpportunityNotFound      = errors.New("opportunity not found")
	ErrOpportunityClosed        = errors.New("this opportunity is closed")
	ErrDeadlinePassed           = errors.New("application deadline has passed")
	ErrAlreadyApplied           = errors.New("already applied to this opportunity")
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationStatusInvalid = errors.New("invalid application status")
	ErrOpportunityTypeInvalid   = errors.New("invalid opportunity type")
)

// Task errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskStatusInvalid = errors.New("invalid task status")
)

// File errors
var (
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge       = errors.New("file too large")
	ErrFileNotFound       = errors.New("file not found")
	ErrInvalidFilePath    = errors.New("invalid file path")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewNotFoundError creates a new custom error wrapping ErrResourceNotFound
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a new custom error wrapping ErrConflict
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a new custom error wrapping ErrPermissionDenied
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a new custom error wrapping ErrValidationFailed
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
