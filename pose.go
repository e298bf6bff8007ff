package mcl

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Pose is a planar pose. Orientation is a unit quaternion rotating about the
// vertical axis only: Kmag holds z, Real holds w, Imag and Jmag stay zero.
type Pose struct {
	X           float64
	Y           float64
	Orientation quat.Number
}

// NewPose builds a pose facing heading radians counter-clockwise from the x axis.
func NewPose(x, y, heading float64) Pose {
	return Pose{X: x, Y: y, Orientation: yaw(heading)}
}

// yaw returns the unit quaternion for a rotation of angle radians about z.
func yaw(angle float64) quat.Number {
	s, c := math.Sincos(angle / 2)
	return quat.Number{Real: c, Kmag: s}
}

// Heading returns the yaw of the pose in (-pi, pi].
func (p Pose) Heading() float64 {
	q := p.Orientation
	return math.Atan2(2*(q.Real*q.Kmag+q.Imag*q.Jmag), 1-2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag))
}

// Norm is the magnitude of the orientation quaternion.
func (p Pose) Norm() float64 {
	return quat.Abs(p.Orientation)
}

// Rotate composes a yaw rotation of angle radians onto the current
// orientation and renormalises the result.
func (p *Pose) Rotate(angle float64) {
	q := quat.Mul(yaw(angle), p.Orientation)
	p.Orientation = quat.Scale(1/quat.Abs(q), q)
}

// Validate reports whether the pose can seed a particle cloud.
func (p Pose) Validate() error {
	q := p.Orientation
	for _, v := range []float64{p.X, p.Y, q.Real, q.Imag, q.Jmag, q.Kmag} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite component in %+v", ErrInvalidPose, p)
		}
	}
	if quat.Abs(q) == 0 {
		return fmt.Errorf("%w: zero orientation quaternion", ErrInvalidPose)
	}
	return nil
}

// Population is the ordered set of pose hypotheses. Order only pairs a
// particle with its weight during a cycle.
type Population []Pose

// Clone returns an independent copy of the population.
func (pop Population) Clone() Population {
	if pop == nil {
		return nil
	}
	out := make(Population, len(pop))
	copy(out, pop)
	return out
}

// WeightedPose pairs a particle with the likelihood computed for the current scan.
type WeightedPose struct {
	Pose   Pose
	Weight float64
}
