package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrResultNotFound = fmt.Errorf("%w: run result", ErrNotFound)

	// Run preparation errors
	ErrConfiguration      = errors.New("invalid run configuration")
	ErrDataShape          = errors.New("resource shape mismatch")
	ErrInvariantViolation = errors.New("model invariant violated")
	ErrSampler            = errors.New("sampler failed")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewConfigurationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfiguration, field, reason)
}

func NewDataShapeError(resource string, want, got int) error {
	return fmt.Errorf("%w: %s: expected %d rows, got %d", ErrDataShape, resource, want, got)
}

func NewInvariantViolationError(invariant string, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvariantViolation, invariant, detail)
}

func NewSamplerError(err error) error {
	return fmt.Errorf("%w: %v", ErrSampler, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsDataShapeError(err error) bool {
	return errors.Is(err, ErrDataShape)
}

func IsInvariantViolationError(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}

func IsSamplerError(err error) bool {
	return errors.Is(err, ErrSampler)
}
