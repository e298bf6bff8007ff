package main

import (
	"math"
	"math/rand/v2"

	"github.com/jhoydich/mcl"
	"gonum.org/v1/gonum/stat/distuv"
)

// Room is an empty rectangle [0, Width] x [0, Height].
type Room struct {
	Width  float64
	Height float64
}

// Contains reports whether (x, y) is inside the room.
func (r Room) Contains(x, y float64) bool {
	return x >= 0 && x <= r.Width && y >= 0 && y <= r.Height
}

// Cast returns the distance from (x, y) to the first wall along bearing.
func (r Room) Cast(x, y, bearing float64) float64 {
	s, c := math.Sincos(bearing)
	dist := math.Inf(1)
	if c > 0 {
		dist = math.Min(dist, (r.Width-x)/c)
	} else if c < 0 {
		dist = math.Min(dist, -x/c)
	}
	if s > 0 {
		dist = math.Min(dist, (r.Height-y)/s)
	} else if s < 0 {
		dist = math.Min(dist, -y/s)
	}
	return dist
}

// Lidar produces scans of a room from a known pose.
type Lidar struct {
	Beams    int
	RangeMax float64
	Noise    float64 // range noise standard deviation
	Src      rand.Source
}

// Scan measures the room from pose.
func (l Lidar) Scan(room Room, pose mcl.Pose) mcl.Scan {
	scan := mcl.Scan{
		Ranges:         make([]float64, l.Beams),
		AngleMin:       -math.Pi,
		AngleIncrement: 2 * math.Pi / float64(l.Beams),
		RangeMax:       l.RangeMax,
	}
	noise := distuv.Normal{Mu: 0, Sigma: l.Noise, Src: l.Src}
	heading := pose.Heading()
	for i := range scan.Ranges {
		bearing := heading + scan.AngleMin + float64(i)*scan.AngleIncrement
		d := room.Cast(pose.X, pose.Y, bearing) + noise.Rand()
		scan.Ranges[i] = math.Max(scan.RangeMin, math.Min(d, l.RangeMax))
	}
	return scan
}

// BeamModel scores a pose by comparing a subset of the measured ranges
// with the ranges predicted from the room.
type BeamModel struct {
	Room     Room
	Readings int     // beams used per weight, spread evenly over the scan
	Sigma    float64 // range likelihood standard deviation
}

// Weight implements mcl.SensorModel.
func (m BeamModel) Weight(scan mcl.Scan, pose mcl.Pose) float64 {
	if !m.Room.Contains(pose.X, pose.Y) || len(scan.Ranges) == 0 {
		return 0
	}

	step := 1
	if m.Readings > 0 && m.Readings < len(scan.Ranges) {
		step = len(scan.Ranges) / m.Readings
	}
	heading := pose.Heading()

	var weight float64
	for i := 0; i < len(scan.Ranges); i += step {
		bearing := heading + scan.AngleMin + float64(i)*scan.AngleIncrement
		expected := math.Min(m.Room.Cast(pose.X, pose.Y, bearing), scan.RangeMax)
		p := distuv.Normal{Mu: expected, Sigma: m.Sigma}.Prob(scan.Ranges[i])
		// Cubing sharpens the contrast between good and bad beams.
		weight += p * p * p
	}
	return weight
}
