package mcl

import "errors"

var (
	// ErrInvalidConfig is returned by New and Config.Validate for unusable configuration.
	ErrInvalidConfig = errors.New("mcl: invalid configuration")
	// ErrInvalidWeight is returned when the sensor model produces a negative or non-finite weight.
	ErrInvalidWeight = errors.New("mcl: invalid particle weight")
	// ErrInvalidPose is returned for poses with non-finite components or a zero quaternion.
	ErrInvalidPose = errors.New("mcl: invalid pose")
	// ErrEmptyPopulation is returned when estimating from no particles.
	ErrEmptyPopulation = errors.New("mcl: empty particle population")
	// ErrNotInitialised is returned when updating before the particle cloud exists.
	ErrNotInitialised = errors.New("mcl: particle cloud not initialised")
	// ErrAmbiguousHeading is returned when the orientations cancel out and no heading can be recovered.
	ErrAmbiguousHeading = errors.New("mcl: ambiguous mean heading")
)
