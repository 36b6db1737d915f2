package errors

import "fmt"

type ErrorCode string

// Generic codes
const (
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrValidation         ErrorCode = "VALIDATION_ERROR"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCreateFailed       ErrorCode = "CREATE_FAILED"
	ErrGetFailed          ErrorCode = "GET_FAILED"
	ErrUpdateFailed       ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed       ErrorCode = "DELETE_FAILED"
)

// Token codes
const (
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
)

// Scheduling and booking lifecycle codes
const (
	ErrInvalidRange        ErrorCode = "INVALID_RANGE"
	ErrOverlapConflict     ErrorCode = "OVERLAP_CONFLICT"
	ErrOutsideAvailability ErrorCode = "OUTSIDE_AVAILABILITY"
	ErrTimeConflict        ErrorCode = "TIME_CONFLICT"
	ErrPastDate            ErrorCode = "PAST_DATE"
	ErrInvalidTransition   ErrorCode = "INVALID_TRANSITION"
)

// Review gate codes
const (
	ErrNotCompleted     ErrorCode = "NOT_COMPLETED"
	ErrAlreadyReviewed  ErrorCode = "ALREADY_REVIEWED"
	ErrAlreadyResponded ErrorCode = "ALREADY_RESPONDED"
	ErrInvalidRating    ErrorCode = "INVALID_RATING"
	ErrEmptyResponse    ErrorCode = "EMPTY_RESPONSE"
)

// AppError is the structured error returned by services. Err keeps the
// underlying cause for logging; it is never serialized to clients.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
