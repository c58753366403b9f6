package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrFormat
	ErrPastDate
	ErrNotAvailable
	ErrValidation
	ErrNotification
	ErrInternal
)

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewFormat(message string, err error) *AppError {
	return &AppError{
		Code:    ErrFormat,
		Message: message,
		Err:     err,
	}
}

func NewPastDate(message string) *AppError {
	return &AppError{
		Code:    ErrPastDate,
		Message: message,
	}
}

func NewNotAvailable(message string) *AppError {
	return &AppError{
		Code:    ErrNotAvailable,
		Message: message,
	}
}

func NewValidation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

func NewNotification(message string, err error) *AppError {
	return &AppError{
		Code:    ErrNotification,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal error",
		Err:     err,
	}
}

// CodeOf returns the ErrorCode carried by err, or ErrInternal when err
// is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

func IsNotFound(err error) bool     { return CodeOf(err) == ErrNotFound }
func IsFormat(err error) bool       { return CodeOf(err) == ErrFormat }
func IsPastDate(err error) bool     { return CodeOf(err) == ErrPastDate }
func IsNotAvailable(err error) bool { return CodeOf(err) == ErrNotAvailable }
func IsValidation(err error) bool   { return CodeOf(err) == ErrValidation }
func IsNotification(err error) bool { return CodeOf(err) == ErrNotification }
