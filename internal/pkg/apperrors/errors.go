package apperrors

import "errors"

// Precondition failures: fatal before any validation runs.
var (
	ErrSourceUnreadable = errors.New("source unreadable")
	ErrEmptyRelation    = errors.New("required relation is empty")
)

// Post-clean failures: fatal before anything reaches the output path.
var (
	ErrResidualViolations = errors.New("defects remain after cleaning")
	ErrEmptyReport        = errors.New("report contains no rows")
)

// Configuration errors
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnknownSnapshot  = errors.New("unknown snapshot driver")
	ErrMissingInputFile = errors.New("required input file not found")
)

// Warehouse errors
var (
	ErrWarehouseNotFound = errors.New("warehouse database not found")
	ErrVerifyFailed      = errors.New("warehouse verification failed")
)

// NewSourceError wraps ErrSourceUnreadable with the failing source name.
func NewSourceError(message string) error {
	return &CustomError{
		Err:     ErrSourceUnreadable,
		Message: message,
	}
}

// NewPreconditionError wraps ErrEmptyRelation with the empty relation's name.
func NewPreconditionError(message string) error {
	return &CustomError{
		Err:     ErrEmptyRelation,
		Message: message,
	}
}

// NewResidualError wraps ErrResidualViolations with the surviving classes.
func NewResidualError(message string) error {
	return &CustomError{
		Err:     ErrResidualViolations,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError carries a sentinel plus a specific, human-readable cause.
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
