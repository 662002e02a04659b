package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error codes
const (
	ErrCodeDoctorNotFound = "DOC001"
	ErrCodeEmailExists    = "DOC002"
	ErrCodeValidation     = "DOC003"
)

// Sentinel errors trả về từ repository
var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrEmailExists    = errors.New("doctor email already registered")
	ErrValidation     = errors.New("validation failed")
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
)

// DoctorError là domain error mà handler map sang HTTP status
type DoctorError struct {
	Code    string
	Message string
	Kind    ErrorKind
	Details map[string]string
	Err     error
}

func (e *DoctorError) Error() string {
	return e.Message
}

func (e *DoctorError) Unwrap() error {
	return e.Err
}

func NewDoctorNotFoundError() *DoctorError {
	return &DoctorError{
		Code:    ErrCodeDoctorNotFound,
		Message: "doctor not found",
		Kind:    KindNotFound,
		Err:     ErrDoctorNotFound,
	}
}

func NewEmailExistsError() *DoctorError {
	return &DoctorError{
		Code:    ErrCodeEmailExists,
		Message: "a doctor with this email already exists",
		Kind:    KindConflict,
		Err:     ErrEmailExists,
	}
}

func NewValidationError(err error) *DoctorError {
	de := &DoctorError{
		Code:    ErrCodeValidation,
		Message: err.Error(),
		Kind:    KindValidation,
		Err:     ErrValidation,
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		de.Details = make(map[string]string, len(fieldErrs))
		for field, fe := range fieldErrs {
			de.Details[field] = fe.Error()
		}
	}
	return de
}

func NewFieldError(field, message string) *DoctorError {
	return NewValidationError(validation.Errors{field: errors.New(message)})
}
