package ports

import (
	"context"
	"math/rand"
)

// RNG provides seeded random number generation for deterministic operations.
// No code in this module touches the process-global generator; every draw
// flows from a stream created here, so tests can supply a fixed stream and
// assert bit-identical output.
type RNG interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
