package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/jhoydich/mcl"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// StepRecord is one row of the trace CSV.
type StepRecord struct {
	Step       int     `csv:"step"`
	TrueX      float64 `csv:"true_x"`
	TrueY      float64 `csv:"true_y"`
	TrueYaw    float64 `csv:"true_heading"`
	EstX       float64 `csv:"est_x"`
	EstY       float64 `csv:"est_y"`
	EstYaw     float64 `csv:"est_heading"`
	Error      float64 `csv:"position_error"`
	WeightSum  float64 `csv:"weight_sum"`
	Effective  float64 `csv:"effective_particles"`
	Degenerate bool    `csv:"degenerate"`
}

// writeTrace writes records to path as CSV.
func writeTrace(path string, records []*StepRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// plotCloud saves a scatter plot of the particle cloud with the true and
// estimated positions to dir/step<N>.png.
func plotCloud(dir string, step int, room Room, cloud mcl.Population, truth, est mcl.Pose) error {
	pts := make(plotter.XYs, len(cloud))
	for i, p := range cloud {
		pts[i].X = p.X
		pts[i].Y = p.Y
	}

	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("Monte Carlo Localisation, step %d", step)
	plt.X.Label.Text = "X"
	plt.Y.Label.Text = "Y"
	plt.Add(plotter.NewGrid())

	particles, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	particles.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	particles.GlyphStyle.Radius = vg.Points(1)
	plt.Add(particles)

	truthPt, err := plotter.NewScatter(plotter.XYs{{X: truth.X, Y: truth.Y}})
	if err != nil {
		return err
	}
	truthPt.GlyphStyle.Color = color.RGBA{G: 160, A: 255}
	plt.Add(truthPt)

	estPt, err := plotter.NewScatter(plotter.XYs{{X: est.X, Y: est.Y}})
	if err != nil {
		return err
	}
	estPt.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	plt.Add(estPt)

	plt.X.Min, plt.X.Max = 0, room.Width
	plt.Y.Min, plt.Y.Max = 0, room.Height

	fName := filepath.Join(dir, fmt.Sprintf("step%03d.png", step))
	if err := plt.Save(4*vg.Inch, 4*vg.Inch, fName); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
