package mcl

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/stat"
)

// EstimateMode selects the orientation reduction used by Estimate.
type EstimateMode string

const (
	// EstimateLinear averages the z and w quaternion components and uses
	// the result as is. It is only a fair approximation while the cloud is
	// concentrated; multimodal or dispersed clouds bias it and its norm
	// drops below one.
	EstimateLinear EstimateMode = "linear"
	// EstimateNormalised is EstimateLinear rescaled to a unit quaternion.
	EstimateNormalised EstimateMode = "normalised"
	// EstimateCircular takes the circular mean of the particle headings.
	EstimateCircular EstimateMode = "circular"
)

// Estimate reduces a population to a single pose. Position is the
// arithmetic mean; orientation depends on mode. The population is not
// modified.
func Estimate(pop Population, mode EstimateMode) (Pose, error) {
	if len(pop) == 0 {
		return Pose{}, ErrEmptyPopulation
	}

	xs := make([]float64, len(pop))
	ys := make([]float64, len(pop))
	for i, p := range pop {
		xs[i] = p.X
		ys[i] = p.Y
	}
	est := Pose{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}

	switch mode {
	case "", EstimateLinear, EstimateNormalised:
		zs := make([]float64, len(pop))
		ws := make([]float64, len(pop))
		for i, p := range pop {
			zs[i] = p.Orientation.Kmag
			ws[i] = p.Orientation.Real
		}
		est.Orientation = quat.Number{Real: stat.Mean(ws, nil), Kmag: stat.Mean(zs, nil)}
		if mode != EstimateNormalised {
			return est, nil
		}
		n := quat.Abs(est.Orientation)
		if n < 1e-12 {
			return Pose{}, ErrAmbiguousHeading
		}
		est.Orientation = quat.Scale(1/n, est.Orientation)
	case EstimateCircular:
		var sin, cos float64
		for _, p := range pop {
			s, c := math.Sincos(p.Heading())
			sin += s
			cos += c
		}
		if math.Hypot(sin, cos) < 1e-12*float64(len(pop)) {
			return Pose{}, ErrAmbiguousHeading
		}
		est.Orientation = yaw(math.Atan2(sin, cos))
	default:
		return Pose{}, fmt.Errorf("unknown estimate mode %q", mode)
	}
	return est, nil
}
