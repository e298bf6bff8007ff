// Command example drives an mcl.Localiser with a simulated robot driving a
// circle in an empty room.
package main

import (
	"flag"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"

	"github.com/jhoydich/mcl"
	"gonum.org/v1/gonum/stat/distuv"
)

func main() {
	configPath := flag.String("config", "", "Path to mcl YAML config (empty = defaults)")
	steps := flag.Int("steps", 50, "Number of simulated steps")
	seed := flag.Uint64("seed", 1, "Random seed")
	readings := flag.Int("readings", 30, "Beams used by the sensor model per particle")
	tracePath := flag.String("trace", "", "Write a per-step CSV trace to this file")
	plotDir := flag.String("plots", "", "Write a particle plot per step into this directory")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := mcl.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *plotDir != "" {
		if err := os.MkdirAll(*plotDir, 0755); err != nil {
			slog.Error("failed to create plot directory", "error", err)
			os.Exit(1)
		}
	}

	src := rand.NewPCG(*seed, *seed+1)
	room := Room{Width: 10, Height: 8}
	lidar := Lidar{Beams: 360, RangeMax: 15, Noise: 0.05, Src: src}
	sensor := BeamModel{Room: room, Readings: *readings, Sigma: 0.2}

	loc, err := mcl.New(cfg, sensor, mcl.WithSource(src), mcl.WithLogger(logger))
	if err != nil {
		slog.Error("failed to create localiser", "error", err)
		os.Exit(1)
	}

	truth := mcl.NewPose(3, 3, 0)
	// The prior is deliberately off so convergence is visible.
	if _, err := loc.InitialiseParticleCloud(mcl.NewPose(3.2, 2.9, 0.1)); err != nil {
		slog.Error("failed to initialise particle cloud", "error", err)
		os.Exit(1)
	}

	odomNoise := distuv.Normal{Mu: 0, Sigma: 0.01, Src: src}
	motion := mcl.Motion{Forward: 0.2, Turn: 0.1}
	records := make([]*StepRecord, 0, *steps)

	for step := 1; step <= *steps; step++ {
		s, c := math.Sincos(truth.Heading())
		truth.X += motion.Forward * c
		truth.Y += motion.Forward * s
		truth.Rotate(motion.Turn)

		loc.ApplyOdometry(mcl.Motion{
			Forward: motion.Forward + odomNoise.Rand(),
			Turn:    motion.Turn + odomNoise.Rand(),
		})
		if err := loc.UpdateParticleCloud(lidar.Scan(room, truth)); err != nil {
			slog.Error("update failed", "step", step, "error", err)
			os.Exit(1)
		}

		est, err := loc.EstimatePose()
		if err != nil {
			slog.Error("estimate failed", "step", step, "error", err)
			os.Exit(1)
		}
		st := loc.Stats()
		rec := &StepRecord{
			Step:       step,
			TrueX:      truth.X,
			TrueY:      truth.Y,
			TrueYaw:    truth.Heading(),
			EstX:       est.X,
			EstY:       est.Y,
			EstYaw:     est.Heading(),
			Error:      math.Hypot(est.X-truth.X, est.Y-truth.Y),
			WeightSum:  st.WeightSum,
			Effective:  st.Effective,
			Degenerate: st.Degenerate,
		}
		records = append(records, rec)
		slog.Info("step",
			"step", step,
			"x", est.X,
			"y", est.Y,
			"error", rec.Error,
			"effective", st.Effective)

		if *plotDir != "" {
			if err := plotCloud(*plotDir, step, room, loc.Particles(), truth, est); err != nil {
				slog.Error("plot failed", "step", step, "error", err)
			}
		}
	}

	if *tracePath != "" {
		if err := writeTrace(*tracePath, records); err != nil {
			slog.Error("failed to write trace", "error", err)
			os.Exit(1)
		}
	}
}
