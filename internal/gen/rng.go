package gen

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Stream returns an independent pseudorandom stream derived from the master
// seed plus a fixed per-type offset. Every stage constructs its own stream, so
// results are identical no matter which other stages ran before it.
func Stream(master, offset int64) *rand.Rand {
	return rand.New(rand.NewSource(master + offset))
}

// NewID draws a version-4 UUID from the given stream. *rand.Rand implements
// io.Reader, which keeps identifiers on the deterministic stream instead of
// crypto/rand.
func NewID(r *rand.Rand) string {
	return uuid.Must(uuid.NewRandomFromReader(r)).String()
}

// SeedID returns a stable version-5 UUID for a hand-placed seed entity. Seed
// identifiers do not depend on the master seed at all.
func SeedID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("relgen/"+kind+"/"+name)).String()
}

// WeightedIndex samples an index from a categorical distribution. Weights are
// assumed validated (non-negative, summing to ~1).
func WeightedIndex(r *rand.Rand, weights []float64) int {
	u := r.Float64()
	var cum float64
	for i, w := range weights {
		cum += w
		if u < cum {
			return i
		}
	}
	return len(weights) - 1
}

// Poisson draws from a Poisson distribution via Knuth's inversion. Fine for
// the small per-segment frequencies used here.
func Poisson(r *rand.Rand, lambda float64) int {
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= r.Float64()
		if p <= l {
			return k - 1
		}
	}
}

// Uniform draws from [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Round2 rounds a monetary amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Pick returns a uniformly chosen element of a non-empty slice.
func Pick[T any](r *rand.Rand, items []T) T {
	return items[r.Intn(len(items))]
}
