package reservoir

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(r *Reservoir, n int) {
	for i := 1; i <= n; i++ {
		r.Add(strconv.Itoa(i))
	}
}

func TestFewerElementsThanSize(t *testing.T) {
	r := New(16, rand.New(rand.NewPCG(1, 2)))
	fill(r, 5)

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, r.Sample())
	assert.Equal(t, int64(5), r.Count())
	assert.Equal(t, "1\n2\n3\n4\n5", r.String())
}

func TestSampleSizeIsBounded(t *testing.T) {
	r := New(16, rand.New(rand.NewPCG(1, 2)))
	fill(r, 10000)

	assert.Len(t, r.Sample(), 16)
	assert.Equal(t, int64(10000), r.Count())

	seen := map[string]bool{}
	for _, s := range r.Sample() {
		assert.False(t, seen[s], "duplicate %s", s)
		seen[s] = true
	}
}

func TestSameSeedSameSample(t *testing.T) {
	a := New(8, rand.New(rand.NewPCG(42, 7)))
	b := New(8, rand.New(rand.NewPCG(42, 7)))
	fill(a, 1000)
	fill(b, 1000)

	assert.Equal(t, a.Sample(), b.Sample())
}

func TestRoughlyUniform(t *testing.T) {
	const (
		n      = 10
		size   = 2
		rounds = 20000
	)
	rng := rand.New(rand.NewPCG(3, 4))
	counts := make(map[string]int, n)

	for i := 0; i < rounds; i++ {
		r := New(size, rng)
		fill(r, n)
		for _, s := range r.Sample() {
			counts[s]++
		}
	}

	// Every element should land in the sample size/n of the time
	expected := float64(rounds*size) / n
	require.Len(t, counts, n)
	for s, count := range counts {
		assert.InEpsilon(t, expected, float64(count), 0.1, "element %s", s)
	}
}

func TestNewPanicsOnInvalidSize(t *testing.T) {
	assert.Panics(t, func() { New(0, rand.New(rand.NewPCG(1, 1))) })
}
