package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Stream lifecycle errors
const (
	// ErrCodeSourceFailed indicates the request source failed before it was exhausted.
	ErrCodeSourceFailed ErrorCode = "SOURCE_FAILED"
	// ErrCodeStreamClosed indicates the result stream was already closed.
	ErrCodeStreamClosed ErrorCode = "STREAM_CLOSED"
	// ErrCodeEmptyInput indicates the request source produced no requests.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
	// ErrCodeRequestFailed indicates a dispatched request completed with a failure.
	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"
)

// Connection/Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates a failed connection to a service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the client is rate limited.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodeRequestFailed:      false,
	ErrCodeSourceFailed:       false,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
