package mcl

import "math"

// Motion is a displacement in the robot frame since the previous update.
type Motion struct {
	Forward float64 // along the heading
	Lateral float64 // to the left of the heading
	Turn    float64 // radians, counter-clockwise
}

// perturb applies one draw of the configured noise to p: Gaussian offsets
// on x and y scaled by the translation and drift factors, and a von Mises
// heading offset scaled by the rotation factor, composed onto the
// orientation.
func (l *Localiser) perturb(p Pose, spread SpreadConfig) Pose {
	p.X += l.noise.Gaussian(spread.GaussSD) * l.cfg.Odometry.Translation
	p.Y += l.noise.Gaussian(spread.GaussSD) * l.cfg.Odometry.Drift
	p.Rotate(l.noise.Circular(spread.VonMisesKappa) * l.cfg.Odometry.Rotation)
	return p
}

// addNoise perturbs a resampled particle with the per-cycle spread.
func (l *Localiser) addNoise(p Pose) Pose {
	return l.perturb(p, l.cfg.Update)
}

// ApplyOdometry moves every particle by m expressed in that particle's own
// frame. No noise is added here; the next update perturbs the cloud.
func (l *Localiser) ApplyOdometry(m Motion) {
	for i := range l.population {
		p := &l.population[i]
		s, c := math.Sincos(p.Heading())
		p.X += m.Forward*c - m.Lateral*s
		p.Y += m.Forward*s + m.Lateral*c
		if m.Turn != 0 {
			p.Rotate(m.Turn)
		}
	}
}
