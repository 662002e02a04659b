package model

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error codes
const (
	ErrCodeReviewNotFound    = "REV001"
	ErrCodeDoctorNotFound    = "REV002"
	ErrCodeValidation        = "REV003"
	ErrCodeInvalidStatus     = "REV004"
	ErrCodeInvalidTransition = "REV005"
)

// ErrorKind quyết định HTTP status ở handler; error không có kind là store error
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindInvalidTransition ErrorKind = "invalid_transition"
)

// Errors
var (
	ErrReviewNotFound    = errors.New("review not found")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ReviewError custom error type
type ReviewError struct {
	Code    string
	Message string
	Kind    ErrorKind
	Details map[string]string
	Err     error
}

func (e *ReviewError) Error() string {
	return e.Message
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

// KindOf trả về kind của error chain, "" nếu không phải ReviewError
func KindOf(err error) ErrorKind {
	var re *ReviewError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// Error constructors
func NewReviewNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeReviewNotFound,
		Message: "review not found",
		Kind:    KindNotFound,
		Err:     ErrReviewNotFound,
	}
}

func NewDoctorNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeDoctorNotFound,
		Message: "doctor not found",
		Kind:    KindNotFound,
		Err:     ErrDoctorNotFound,
	}
}

func NewInvalidStatusError(raw string) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeInvalidStatus,
		Message: "invalid status: must be one of pending, approved, rejected",
		Kind:    KindValidation,
		Details: map[string]string{"status": fmt.Sprintf("%q is not a valid status", raw)},
		Err:     ErrInvalidStatus,
	}
}

func NewInvalidTransitionError(from, to Status) *ReviewError {
	return &ReviewError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot move review from %s to %s", from, to),
		Kind:    KindInvalidTransition,
		Err:     ErrInvalidTransition,
	}
}

// NewValidationError wrap lỗi của ozzo-validation; validation.Errors được
// tách thành details theo field
func NewValidationError(err error) *ReviewError {
	re := &ReviewError{
		Code:    ErrCodeValidation,
		Message: err.Error(),
		Kind:    KindValidation,
		Err:     ErrValidation,
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		re.Details = make(map[string]string, len(fieldErrs))
		for field, fe := range fieldErrs {
			re.Details[field] = fe.Error()
		}
	}
	return re
}

// NewFieldError: lỗi validation cho một field (query/path param)
func NewFieldError(field, message string) *ReviewError {
	return NewValidationError(validation.Errors{field: errors.New(message)})
}
