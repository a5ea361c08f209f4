// Package reservoir keeps a fixed-size uniform sample of a stream of unknown
// length.
package reservoir

import (
	"math/rand/v2"
	"strings"
)

// Reservoir is an Algorithm R sampler. Not safe for concurrent use.
type Reservoir struct {
	counter int64
	size    int
	sample  []string
	rng     *rand.Rand
}

// New creates a reservoir holding at most size elements. Panics if size is
// not positive.
func New(size int, rng *rand.Rand) *Reservoir {
	if size <= 0 {
		panic("reservoir: size must be positive")
	}
	return &Reservoir{
		size:   size,
		sample: make([]string, 0, min(size, 1<<16)),
		rng:    rng,
	}
}

// Add offers s to the reservoir. Once full, the i-th element (counting from
// zero) is kept with probability size/(i+1) and replaces a random slot.
func (r *Reservoir) Add(s string) {
	if r.counter < int64(r.size) {
		r.sample = append(r.sample, s)
	} else if j := r.rng.Int64N(r.counter + 1); j < int64(r.size) {
		r.sample[j] = s
	}
	r.counter++
}

// Sample returns the current sample. The slice is owned by the reservoir.
func (r *Reservoir) Sample() []string {
	return r.sample
}

// Count returns the number of elements seen so far.
func (r *Reservoir) Count() int64 {
	return r.counter
}

func (r *Reservoir) String() string {
	return strings.Join(r.sample, "\n")
}
