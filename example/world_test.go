package main

import (
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/jhoydich/mcl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCast(t *testing.T) {
	t.Parallel()

	room := Room{Width: 10, Height: 8}
	assert.InDelta(t, 7, room.Cast(3, 3, 0), 1e-12)
	assert.InDelta(t, 3, room.Cast(3, 3, math.Pi), 1e-12)
	assert.InDelta(t, 5, room.Cast(3, 3, math.Pi/2), 1e-12)
	assert.InDelta(t, 3, room.Cast(3, 3, -math.Pi/2), 1e-12)
	assert.InDelta(t, 5*math.Sqrt2, room.Cast(3, 3, math.Pi/4), 1e-9)
}

func TestBeamModelPrefersTruePose(t *testing.T) {
	t.Parallel()

	room := Room{Width: 10, Height: 8}
	lidar := Lidar{Beams: 360, RangeMax: 15, Noise: 0.02, Src: rand.NewPCG(1, 2)}
	model := BeamModel{Room: room, Readings: 30, Sigma: 0.2}

	truth := mcl.NewPose(4, 3, 0.3)
	scan := lidar.Scan(room, truth)
	require.Len(t, scan.Ranges, 360)

	best := model.Weight(scan, truth)
	assert.Greater(t, best, model.Weight(scan, mcl.NewPose(5, 3, 0.3)))
	assert.Greater(t, best, model.Weight(scan, mcl.NewPose(4, 3, 1.3)))
	assert.Zero(t, model.Weight(scan, mcl.NewPose(-1, 3, 0)))
	assert.Zero(t, model.Weight(mcl.Scan{}, truth))
}

func TestLocaliserTracksSimulatedRobot(t *testing.T) {
	t.Parallel()

	src := rand.NewPCG(3, 4)
	room := Room{Width: 10, Height: 8}
	lidar := Lidar{Beams: 180, RangeMax: 15, Noise: 0.02, Src: src}
	cfg := mcl.DefaultConfig()
	cfg.Particles = 300

	loc, err := mcl.New(cfg, BeamModel{Room: room, Readings: 30, Sigma: 0.2}, mcl.WithSource(src))
	require.NoError(t, err)

	truth := mcl.NewPose(3, 3, 0)
	_, err = loc.InitialiseParticleCloud(mcl.NewPose(3.1, 2.95, 0.05))
	require.NoError(t, err)

	for step := 0; step < 15; step++ {
		require.NoError(t, loc.UpdateParticleCloud(lidar.Scan(room, truth)))
	}
	est, err := loc.EstimatePose()
	require.NoError(t, err)
	assert.Less(t, math.Hypot(est.X-truth.X, est.Y-truth.Y), 0.25)
}

func TestWriteTrace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trace.csv")
	records := []*StepRecord{
		{Step: 1, TrueX: 1, EstX: 1.1, Error: 0.1, Effective: 42},
		{Step: 2, TrueX: 2, EstX: 2.05, Error: 0.05, Degenerate: true},
	}
	require.NoError(t, writeTrace(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got []*StepRecord
	require.NoError(t, gocsv.UnmarshalFile(f, &got))
	assert.Equal(t, records, got)
}

func TestPlotCloud(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cloud := mcl.Population{mcl.NewPose(1, 1, 0), mcl.NewPose(2, 2, 0)}
	require.NoError(t, plotCloud(dir, 7, Room{Width: 10, Height: 8}, cloud, cloud[0], cloud[1]))

	info, err := os.Stat(filepath.Join(dir, "step007.png"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
