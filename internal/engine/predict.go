package engine

import (
	"os"

	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
	"github.com/geobnn/bnn/internal/config"
	"github.com/geobnn/bnn/internal/console"
	"github.com/geobnn/bnn/internal/report"
)

// Predict runs the trained network at opts.Network over every row of opts.Data and writes the
// predicted means and deviations to opts.Output. It returns the path written to.
//
// The prediction columns are named after the configured target key, if any; the target columns
// themselves are not read.
func Predict(c config.Config, opts Options) (string, []bnn.Prediction, error) {
	if err := c.Validate(); err != nil {
		return "", nil, errors.Wrapf(err, "Invalid configuration")
	}

	selectDevice(c)

	ck, net, err := loadCheckpoint(opts.Network)
	if err != nil {
		return "", nil, err
	}

	tb, err := loadTable(opts.Data, latentKey(c, ck), "")
	if err != nil {
		return "", nil, err
	}

	if err = checkShape(net, tb); err != nil {
		return "", nil, err
	}

	preds, err := predict(net, ck, tb, c.Predict.Samples, c.Predict.Scale)
	if err != nil {
		return "", nil, errors.Wrapf(err, "Prediction failed")
	}

	path := opts.Output
	if path == "" {
		path = report.PredictionsName(now())
	}
	if _, err = os.Stat(path); err == nil {
		console.Warn("Overwriting", path)
	}

	if err = report.SavePredictions(path, tb, columnKey(c, c.Data.TargetKey), preds); err != nil {
		return "", nil, err
	}
	console.Info("Saved predictions to", path)

	return path, preds, nil
}
