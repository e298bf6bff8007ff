package mcl

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// VonMises is the von Mises distribution over angles, centred on Mu with
// concentration Kappa. Samples lie in [0, 2*pi).
type VonMises struct {
	Mu    float64
	Kappa float64
	Src   rand.Source
}

// Rand returns a random sample drawn from the distribution using the
// Best-Fisher rejection method. Kappa close to zero degenerates to a
// uniform angle.
func (v VonMises) Rand() float64 {
	var rnd *rand.Rand
	if v.Src != nil {
		rnd = rand.New(v.Src)
	}
	uniform := func() float64 {
		if rnd == nil {
			return rand.Float64()
		}
		return rnd.Float64()
	}

	if v.Kappa <= 1e-6 {
		return 2 * math.Pi * uniform()
	}

	s := 0.5 / v.Kappa
	r := s + math.Sqrt(1+s*s)

	var z float64
	for {
		z = math.Cos(math.Pi * uniform())
		d := z / (r + z)
		u := uniform()
		if u < 1-d*d || u <= (1-d)*math.Exp(d) {
			break
		}
	}

	q := 1 / r
	f := (q + z) / (1 + q*z)
	var theta float64
	if uniform() > 0.5 {
		theta = v.Mu + math.Acos(f)
	} else {
		theta = v.Mu - math.Acos(f)
	}
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// Noise draws the zero-mean perturbations applied to particles. All draws
// consume the same owned source.
type Noise struct {
	src rand.Source
}

// NewNoise returns a generator reading from src.
func NewNoise(src rand.Source) *Noise {
	return &Noise{src: src}
}

// Gaussian returns one sample from N(0, sd^2).
func (n *Noise) Gaussian(sd float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: sd, Src: n.src}.Rand()
}

// Circular returns one heading perturbation in [-pi, pi). The von Mises
// sample is centred on pi and shifted back so no noise means no rotation.
func (n *Noise) Circular(kappa float64) float64 {
	return VonMises{Mu: math.Pi, Kappa: kappa, Src: n.src}.Rand() - math.Pi
}
