package vmsim

import (
	"errors"
	"fmt"
)

// ErrorCode represents different types of simulator errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Configuration errors
	ErrCodeInvalidArgs
	ErrCodeUnknownAlgorithm
	ErrCodeInvalidFrames
	ErrCodeInvalidRefresh
	ErrCodeInvalidConfig

	// Trace errors
	ErrCodeTraceOpenFailed
	ErrCodeTraceReadFailed
)

// SimError represents a simulator error with context
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// IsConfigError reports whether the error is a configuration error
func (e *SimError) IsConfigError() bool {
	switch e.Code {
	case ErrCodeInvalidArgs, ErrCodeUnknownAlgorithm, ErrCodeInvalidFrames,
		ErrCodeInvalidRefresh, ErrCodeInvalidConfig:
		return true
	}
	return false
}

// NewSimError creates a new simulator error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Helper functions for common errors

func ErrInvalidArgs(op string, got int) *SimError {
	return NewSimError(
		ErrCodeInvalidArgs,
		op,
		fmt.Sprintf("invalid number of arguments: %d", got),
		nil,
	)
}

func ErrUnknownAlgorithm(op, name string) *SimError {
	return NewSimError(
		ErrCodeUnknownAlgorithm,
		op,
		fmt.Sprintf("invalid algorithm %q (must be opt, clock, fifo or nru)", name),
		nil,
	)
}

func ErrInvalidFrames(op string, frames int) *SimError {
	return NewSimError(
		ErrCodeInvalidFrames,
		op,
		fmt.Sprintf("frame count must be positive, got %d", frames),
		nil,
	)
}

func ErrInvalidRefresh(op string, refresh int) *SimError {
	return NewSimError(
		ErrCodeInvalidRefresh,
		op,
		fmt.Sprintf("nru refresh interval must be positive, got %d", refresh),
		nil,
	)
}

func ErrTraceOpen(op, path string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceOpenFailed,
		op,
		fmt.Sprintf("error opening trace file %s", path),
		err,
	)
}

func ErrTraceRead(op string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceReadFailed,
		op,
		"error reading trace",
		err,
	)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeUnknown
}
