// SPDX-License-Identifier: MIT

package bootstrap

import "math/rand"

// seedStride spaces the per-iteration seeds so neighboring iterations never
// share a source state.
const seedStride int64 = 1_000_003

// sourceFor builds the deterministic random source of one iteration. Every
// iteration owns its source, so iterations are independent of scheduling.
func sourceFor(seed int64, iteration int) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(iteration)*seedStride))
}

// Resample draws n row indices with replacement, in draw order. Feeding
// the result to matrix.SelectRows materializes one bootstrap sample.
func Resample(rng *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}

	return idx
}
