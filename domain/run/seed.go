package run

import (
	"math/rand"
	"time"
)

// SeedMax bounds the uniform range run seeds are drawn from. The seed is the
// sole source of randomness for a run and is recorded verbatim in the
// result, so any run can be reproduced from its artifact alone.
const SeedMax = 1_000_000_000

// DrawSeed draws a fresh run seed from [1, SeedMax).
func DrawSeed() int64 {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return 1 + src.Int63n(SeedMax-1)
}
