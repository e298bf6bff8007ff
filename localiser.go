// Package mcl is the estimation core of Monte Carlo Localisation: a cloud of
// weighted pose hypotheses that is resampled against each range scan and
// reduced to a single pose estimate on demand.
package mcl

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Localiser holds the particle cloud of one localisation session. It is not
// safe for concurrent use; the host runs one cycle at a time.
type Localiser struct {
	cfg        Config
	sensor     SensorModel
	src        rand.Source
	noise      *Noise
	roulette   *Roulette
	population Population
	stats      CycleStats
	session    string
	logger     *slog.Logger
}

// Option customises a Localiser.
type Option func(*Localiser)

// WithSource sets the random source used for every draw.
func WithSource(src rand.Source) Option {
	return func(l *Localiser) {
		l.src = src
	}
}

// WithSeed seeds a PCG source, for reproducible runs.
func WithSeed(seed uint64) Option {
	return WithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Localiser) {
		l.logger = logger
	}
}

// New creates a Localiser for cfg scoring particles with sensor.
func New(cfg Config, sensor SensorModel, opts ...Option) (*Localiser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sensor == nil {
		return nil, fmt.Errorf("%w: nil sensor model", ErrInvalidConfig)
	}

	l := &Localiser{
		cfg:     cfg,
		sensor:  sensor,
		session: uuid.NewString(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.src == nil {
		l.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	l.noise = NewNoise(l.src)
	l.roulette = NewRoulette(l.src)
	l.logger = l.logger.With("session", l.session)
	return l, nil
}

// InitialiseParticleCloud replaces the cloud with Config.Particles copies of
// prior, each displaced by the initial spread. The prior is not modified.
func (l *Localiser) InitialiseParticleCloud(prior Pose) (Population, error) {
	if err := prior.Validate(); err != nil {
		return nil, err
	}

	pop := make(Population, l.cfg.Particles)
	for i := range pop {
		pop[i] = l.perturb(prior, l.cfg.Initial)
	}
	l.population = pop
	l.stats = CycleStats{}

	l.logger.Info("particle cloud initialised",
		"particles", len(pop),
		"x", prior.X,
		"y", prior.Y,
		"heading", prior.Heading())
	return pop.Clone(), nil
}

// UpdateParticleCloud weighs the cloud against scan, resamples it by
// roulette wheel selection and perturbs every new particle. If the sensor
// model misbehaves the error is returned and the cloud is left untouched.
func (l *Localiser) UpdateParticleCloud(scan Scan) error {
	if len(l.population) == 0 {
		return ErrNotInitialised
	}

	weighted, sum, err := weigh(l.sensor, scan, l.population)
	if err != nil {
		return fmt.Errorf("cycle %d: %w", l.stats.Cycle+1, err)
	}

	stats := cycleStats(l.stats.Cycle+1, weighted, sum)
	if stats.Degenerate {
		l.logger.Warn("all particle weights are zero, resampling uniformly",
			"cycle", stats.Cycle,
			"particles", len(weighted))
	}

	next := l.roulette.Resample(weighted, sum, len(weighted))
	for i := range next {
		next[i] = l.addNoise(next[i])
	}
	l.population = next
	l.stats = stats

	l.logger.Debug("particle cloud updated",
		"cycle", stats.Cycle,
		"particles", len(next),
		"weight_sum", stats.WeightSum,
		"max_weight", stats.MaxWeight,
		"effective", stats.Effective)
	return nil
}

// EstimatePose reduces the cloud to one pose using the configured mode.
func (l *Localiser) EstimatePose() (Pose, error) {
	est, err := Estimate(l.population, l.cfg.Estimate.Mode)
	if err != nil {
		return Pose{}, err
	}
	l.logger.Debug("pose estimated", "x", est.X, "y", est.Y, "heading", est.Heading())
	return est, nil
}

// Particles returns a copy of the current cloud.
func (l *Localiser) Particles() Population {
	return l.population.Clone()
}

// Len is the number of particles currently held.
func (l *Localiser) Len() int {
	return len(l.population)
}

// Stats describes the most recent update.
func (l *Localiser) Stats() CycleStats {
	return l.stats
}

// SessionID identifies this session in log output.
func (l *Localiser) SessionID() string {
	return l.session
}

// Config returns the configuration the Localiser was built with.
func (l *Localiser) Config() Config {
	return l.cfg
}
