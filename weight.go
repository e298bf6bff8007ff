package mcl

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Scan is a planar range scan. Ranges[i] was measured at bearing
// AngleMin + i*AngleIncrement in the sensor frame.
type Scan struct {
	Ranges         []float64
	AngleMin       float64
	AngleIncrement float64
	RangeMin       float64
	RangeMax       float64
}

// SensorModel scores how well a pose explains a scan. Implementations must
// return a finite, non-negative likelihood.
type SensorModel interface {
	Weight(scan Scan, pose Pose) float64
}

// SensorModelFunc adapts a function to SensorModel.
type SensorModelFunc func(scan Scan, pose Pose) float64

// Weight calls f(scan, pose).
func (f SensorModelFunc) Weight(scan Scan, pose Pose) float64 {
	return f(scan, pose)
}

// weigh scores every particle against the scan. A negative or non-finite
// weight aborts the cycle.
func weigh(sensor SensorModel, scan Scan, pop Population) ([]WeightedPose, float64, error) {
	weighted := make([]WeightedPose, len(pop))
	w := make([]float64, len(pop))
	for i, p := range pop {
		w[i] = sensor.Weight(scan, p)
		if w[i] < 0 || math.IsNaN(w[i]) || math.IsInf(w[i], 0) {
			return nil, 0, fmt.Errorf("%w: particle %d scored %v", ErrInvalidWeight, i, w[i])
		}
		weighted[i] = WeightedPose{Pose: p, Weight: w[i]}
	}
	sum := floats.Sum(w)
	if math.IsInf(sum, 0) {
		return nil, 0, fmt.Errorf("%w: weight sum overflowed", ErrInvalidWeight)
	}
	return weighted, sum, nil
}

// CycleStats summarises the weights seen by the most recent update.
type CycleStats struct {
	Cycle      int
	WeightSum  float64
	MaxWeight  float64
	Effective  float64 // effective sample size, (sum w)^2 / sum w^2
	Degenerate bool    // no particle had positive weight
}

func cycleStats(cycle int, weighted []WeightedPose, sum float64) CycleStats {
	st := CycleStats{Cycle: cycle, WeightSum: sum, Degenerate: !(sum > 0)}
	if len(weighted) == 0 {
		return st
	}
	w := make([]float64, len(weighted))
	for i := range weighted {
		w[i] = weighted[i].Weight
	}
	st.MaxWeight = floats.Max(w)
	if sq := floats.Dot(w, w); sq > 0 {
		st.Effective = sum * sum / sq
	}
	return st
}
