package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrNotFound indicates a required file or record was not found
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed arguments (bad column, shape mismatch)
	ErrValidation = errors.New("validation failed")

	// ErrTypeMismatch indicates a value does not match its column's declared type
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDuplicate indicates a record with the same content hash already exists
	ErrDuplicate = errors.New("duplicate content")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
