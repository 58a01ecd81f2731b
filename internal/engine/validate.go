package engine

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
	"github.com/geobnn/bnn/internal/config"
	"github.com/geobnn/bnn/internal/console"
	"github.com/geobnn/bnn/internal/metrics"
	"github.com/geobnn/bnn/internal/report"
)

// Validation is the performance of a trained network on labelled data
type Validation struct {
	// Targets names the outputs that Scores refers to
	Targets []string
	Scores  []metrics.Scores

	Coverage    bnn.Coverage
	Predictions []bnn.Prediction
}

// Validate compares the predictions of the trained network at opts.Network with the targets in
// opts.Data. The targets are found with the configured target key, or the one the network was
// trained with if that is empty.
func Validate(c config.Config, opts Options) (*Validation, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Invalid configuration")
	}

	selectDevice(c)

	ck, net, err := loadCheckpoint(opts.Network)
	if err != nil {
		return nil, err
	}

	targetKey := c.Data.TargetKey
	if targetKey == "" {
		targetKey = ck.TargetKey
	}
	if targetKey == "" {
		return nil, errors.Errorf("Validation requires a target key")
	}

	tb, err := loadTable(opts.Data, latentKey(c, ck), targetKey)
	if err != nil {
		return nil, err
	}

	if err = checkShape(net, tb); err != nil {
		return nil, err
	}

	preds, err := predict(net, ck, tb, c.Predict.Samples, c.Predict.Scale)
	if err != nil {
		return nil, errors.Wrapf(err, "Prediction failed")
	}

	means := make([][]float64, len(preds))
	for i, p := range preds {
		means[i] = p.Mean
	}

	v := &Validation{Targets: tb.TargetNames, Predictions: preds}
	if v.Scores, err = metrics.Score(means, tb.Targets); err != nil {
		return nil, err
	}

	data, err := datums(tb, ck.InputScaler, ck.TargetScaler)
	if err != nil {
		return nil, err
	}
	if v.Coverage, err = net.Evaluate(data, c.Train.TestSamples, c.Train.StdMultiplier); err != nil {
		return nil, errors.Wrapf(err, "Failed to evaluate coverage")
	}

	for i, s := range v.Scores {
		console.Info(fmt.Sprintf("%s: RMSE %.4f, MAE %.4f, R² %.4f", v.Targets[i], s.RMSE, s.MAE, s.R2))
	}
	console.Info(fmt.Sprintf("CI acc: %.2f, CI upper acc: %.2f, CI lower acc: %.2f (±%v std)",
		v.Coverage.Within, v.Coverage.UnderUpper, v.Coverage.OverLower, c.Train.StdMultiplier))

	if opts.Output != "" {
		if _, err = os.Stat(opts.Output); err == nil {
			console.Warn("Overwriting", opts.Output)
		}
		if err = report.SavePredictions(opts.Output, tb, columnKey(c, targetKey), preds); err != nil {
			return nil, err
		}
		console.Info("Saved predictions to", opts.Output)
	}

	if opts.PlotDir != "" {
		column := make([]float64, tb.Len())
		for o, name := range v.Targets {
			for i := range column {
				column[i] = tb.Targets[i][o]
			}

			path, err := plotPath(opts.PlotDir, "errorbars_"+fmt.Sprint(o)+".png")
			if err != nil {
				return nil, err
			}
			if err = report.ErrorBars(path, name, column, preds, o, c.Train.StdMultiplier); err != nil {
				return nil, err
			}
			console.Info("Saved error bars for", name, "to", path)
		}
	}

	return v, nil
}
