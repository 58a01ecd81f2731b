package report

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/geobnn/bnn"
)

// LossCurve plots the average loss of each epoch against the iteration it ended on, along with the
// test cost of any test results.
func LossCurve(path string, results []bnn.Result) error {
	var train, test plotter.XYs
	for _, r := range results {
		xy := plotter.XY{X: float64(r.Iteration), Y: r.Loss}
		switch r.Kind {
		case bnn.TestResult:
			xy.Y = r.Cost
			test = append(test, xy)
		case bnn.EpochResult:
			train = append(train, xy)
		}
	}

	if len(train) == 0 {
		return errors.Errorf("No training losses to plot")
	}

	p := plot.New()
	p.Title.Text = "ELBO loss"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "loss"
	p.Add(plotter.NewGrid())

	l, err := plotter.NewLine(train)
	if err != nil {
		return errors.Wrapf(err, "Failed to plot training loss")
	}
	l.Color = color.RGBA{R: 20, G: 80, B: 200, A: 255}
	l.Width = vg.Points(1)
	p.Add(l)
	p.Legend.Add("train", l)

	if len(test) != 0 {
		s, err := plotter.NewScatter(test)
		if err != nil {
			return errors.Wrapf(err, "Failed to plot test cost")
		}
		s.GlyphStyle.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add("test cost", s)
	}

	return errors.Wrapf(p.Save(8*vg.Inch, 5*vg.Inch, path), "Failed to save %q", path)
}

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// ErrorBars plots the predicted mean of one output against the measured target, with bars of
// stdMultiplier standard deviations and the line of perfect prediction.
func ErrorBars(path, name string, targets []float64, preds []bnn.Prediction, output int, stdMultiplier float64) error {
	if len(targets) != len(preds) {
		return errors.Errorf("Have %d predictions for %d targets", len(preds), len(targets))
	} else if len(preds) == 0 {
		return errors.Errorf("Nothing to plot")
	}

	pts := errorPoints{
		XYs:     make(plotter.XYs, len(preds)),
		YErrors: make(plotter.YErrors, len(preds)),
	}

	lo, hi := targets[0], targets[0]
	for i, p := range preds {
		if output >= len(p.Mean) {
			return errors.Errorf("Prediction %d has no output %d", i, output)
		}

		pts.XYs[i] = plotter.XY{X: targets[i], Y: p.Mean[output]}
		e := stdMultiplier * p.Std[output]
		pts.YErrors[i].Low, pts.YErrors[i].High = e, e

		lo, hi = min(lo, targets[i], p.Mean[output]-e), max(hi, targets[i], p.Mean[output]+e)
	}

	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "measured"
	p.Y.Label.Text = "predicted"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return errors.Wrapf(err, "Failed to plot error bars")
	}
	bars.LineStyle.Color = color.RGBA{R: 120, G: 120, B: 120, A: 180}
	p.Add(bars)

	s, err := plotter.NewScatter(pts.XYs)
	if err != nil {
		return errors.Wrapf(err, "Failed to plot means")
	}
	s.GlyphStyle.Color = color.RGBA{R: 20, G: 80, B: 200, A: 220}
	s.GlyphStyle.Radius = vg.Points(1.8)
	p.Add(s)
	p.Legend.Add("mean", s)

	ideal, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return errors.Wrapf(err, "Failed to plot reference line")
	}
	ideal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(ideal)

	return errors.Wrapf(p.Save(6*vg.Inch, 6*vg.Inch, path), "Failed to save %q", path)
}
