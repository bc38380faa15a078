// Package rng implements ports.RNG with named, hash-derived streams so that
// distinct operations sharing one run seed still draw from independent
// sequences.
package rng

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"sleephmm/ports"
)

type provider struct{}

// NewProvider creates the default RNG stream provider.
func NewProvider() ports.RNG {
	return &provider{}
}

// SeededStream derives a generator from the operation name and seed. The
// same (name, seed) pair always yields an identical stream.
func (p *provider) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if seed == 0 {
		return nil, fmt.Errorf("stream %q: seed cannot be zero", name)
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	derived := int64(h.Sum64()) ^ seed
	return rand.New(rand.NewSource(derived)), nil
}
