package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	cfgErr := NewConfigurationError("iterations", "must be positive")
	assert.True(t, IsConfigurationError(cfgErr))
	assert.False(t, IsDataShapeError(cfgErr))
	assert.Contains(t, cfgErr.Error(), "iterations")

	shapeErr := NewDataShapeError("summary_statistics", 9, 6)
	assert.True(t, IsDataShapeError(shapeErr))
	assert.Contains(t, shapeErr.Error(), "expected 9 rows, got 6")

	invErr := NewInvariantViolationError("transition row sum", "row 1 sums to 0.9")
	assert.True(t, IsInvariantViolationError(invErr))

	sampErr := NewSamplerError(errors.New("diverged"))
	assert.True(t, IsSamplerError(sampErr))
	assert.Contains(t, sampErr.Error(), "diverged")

	nfErr := NewNotFoundError("run result", "abc")
	assert.True(t, IsNotFoundError(nfErr))
}
