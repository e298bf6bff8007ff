package mcl

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightsOf(ws ...float64) []WeightedPose {
	out := make([]WeightedPose, len(ws))
	for i, w := range ws {
		out[i] = WeightedPose{Pose: NewPose(float64(i), 0, 0), Weight: w}
	}
	return out
}

func TestRouletteIndexBoundaries(t *testing.T) {
	t.Parallel()

	weights := weightsOf(1, 3, 6)
	tests := []struct {
		r    float64
		want int
	}{
		{0, 0},
		{0.9999, 0},
		{1, 0},
		{1.0001, 1},
		{3.9999, 1},
		{4.0001, 2},
		{9.9999, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rouletteIndex(weights, tt.r), "r=%v", tt.r)
	}
}

func TestRouletteIndexOverrun(t *testing.T) {
	t.Parallel()

	// r beyond the sum only happens through rounding; never run off the end.
	assert.Equal(t, 2, rouletteIndex(weightsOf(1, 3, 6), 10.0000001))
	assert.Equal(t, 1, rouletteIndex(weightsOf(1, 3, 0), 4.5))
}

func TestRouletteIndexSkipsZeroWeights(t *testing.T) {
	t.Parallel()

	weights := weightsOf(0, 0, 2, 0)
	assert.Equal(t, 2, rouletteIndex(weights, 0))
	assert.Equal(t, 2, rouletteIndex(weights, 1.999))
}

func TestRouletteSelectionFrequency(t *testing.T) {
	t.Parallel()

	weights := weightsOf(1, 3, 6)
	rw := NewRoulette(rand.NewPCG(42, 43))
	const trials = 100000
	counts := make([]int, len(weights))
	for i := 0; i < trials; i++ {
		counts[rw.Select(weights, 10)]++
	}
	for i, want := range []float64{0.1, 0.3, 0.6} {
		assert.InDelta(t, want, float64(counts[i])/trials, 0.01, "index %d", i)
	}
}

func TestRouletteNeverSelectsZeroWeight(t *testing.T) {
	t.Parallel()

	weights := weightsOf(0, 1, 0, 0.5, 0)
	rw := NewRoulette(rand.NewPCG(5, 6))
	for i := 0; i < 20000; i++ {
		idx := rw.Select(weights, 1.5)
		require.Contains(t, []int{1, 3}, idx)
	}
}

func TestRouletteDegenerateWeightsAreUniform(t *testing.T) {
	t.Parallel()

	weights := weightsOf(0, 0, 0, 0)
	rw := NewRoulette(rand.NewPCG(9, 10))
	const trials = 40000
	counts := make([]int, len(weights))
	for i := 0; i < trials; i++ {
		counts[rw.Select(weights, 0)]++
	}
	for i, c := range counts {
		assert.InDelta(t, 0.25, float64(c)/trials, 0.02, "index %d", i)
	}
}

func TestRouletteResampleCopies(t *testing.T) {
	t.Parallel()

	weights := weightsOf(0, 1, 0)
	rw := NewRoulette(rand.NewPCG(1, 1))
	pop := rw.Resample(weights, 1, 5)
	require.Len(t, pop, 5)
	for _, p := range pop {
		assert.Equal(t, 1.0, p.X)
	}

	pop[0].X = 99
	assert.Equal(t, 1.0, pop[1].X)
	assert.Equal(t, 1.0, weights[1].Pose.X)
}
