// Package rng provides per-sub-colony pseudo-random sources. Each worker
// owns an independent *rand.Rand so ant construction never contends on the
// global math/rand source's internal lock, and so that two sub-colonies
// started in the same process never draw from the same stream.
package rng

import (
	"math/rand"
	"time"
)

// New returns a *rand.Rand seeded from a time-derived master seed combined
// with the sub-colony index id, so distinct sub-colonies are guaranteed
// distinct seeds even when constructed in the same instant.
func New(id int) *rand.Rand {
	seed := time.Now().UnixNano() + int64(id)*1_000_003
	return rand.New(rand.NewSource(seed))
}
