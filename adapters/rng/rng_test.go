package rng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededStreamDeterminism(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	a, err := p.SeededStream(ctx, "initial-state", 42)
	require.NoError(t, err)
	b, err := p.SeededStream(ctx, "initial-state", 42)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSeededStreamIndependentNames(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	a, err := p.SeededStream(ctx, "initial-state", 42)
	require.NoError(t, err)
	b, err := p.SeededStream(ctx, "other-op", 42)
	require.NoError(t, err)

	assert.NotEqual(t, a.Float64(), b.Float64())
}

func TestSeededStreamRejectsZeroSeed(t *testing.T) {
	p := NewProvider()
	_, err := p.SeededStream(context.Background(), "initial-state", 0)
	require.Error(t, err)
}
