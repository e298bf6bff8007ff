package mcl

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// rouletteIndex locates r inside the cumulative weight partition of
// [0, sum) with a single scan of the running remainder. The first particle
// whose weight takes the remainder to zero or below is chosen. Zero weights
// own no part of the wheel and are never returned. If rounding leaves the
// remainder positive past the end, the last particle with weight is used.
func rouletteIndex(weights []WeightedPose, r float64) int {
	last := len(weights) - 1
	for i, w := range weights {
		if w.Weight <= 0 {
			continue
		}
		last = i
		r -= w.Weight
		if r <= 0 {
			return i
		}
	}
	return last
}

// Roulette performs roulette wheel selection.
type Roulette struct {
	src rand.Source
	rnd *rand.Rand
}

// NewRoulette returns a selector drawing from src.
func NewRoulette(src rand.Source) *Roulette {
	return &Roulette{src: src, rnd: rand.New(src)}
}

// Select returns an index chosen with probability proportional to its
// weight. When sum is not positive every index is equally likely.
func (rw *Roulette) Select(weights []WeightedPose, sum float64) int {
	if !(sum > 0) {
		return rw.rnd.IntN(len(weights))
	}
	r := distuv.Uniform{Min: 0, Max: sum, Src: rw.src}.Rand()
	return rouletteIndex(weights, r)
}

// Resample draws n particles with replacement. Each draw is independent
// and yields a copy of the selected pose.
func (rw *Roulette) Resample(weights []WeightedPose, sum float64, n int) Population {
	out := make(Population, n)
	for i := range out {
		out[i] = weights[rw.Select(weights, sum)].Pose
	}
	return out
}
