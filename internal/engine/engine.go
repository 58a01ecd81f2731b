// Package engine runs the train, predict and validate workflows of the command line tool
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/geobnn/bnn"
	"github.com/geobnn/bnn/internal/checkpoint"
	"github.com/geobnn/bnn/internal/config"
	"github.com/geobnn/bnn/internal/console"
	"github.com/geobnn/bnn/internal/dataset"
	"github.com/geobnn/bnn/internal/device"
)

// now is replaced in tests
var now = time.Now

// Options are the file arguments shared by the workflows
type Options struct {
	// Data is the CSV of latent vectors, and targets for training and validation
	Data string

	// Network is the checkpoint to read, or to write when training
	Network string

	// Output is where predictions are written. Predict uses a timestamped name if it is empty;
	// Validate writes nothing.
	Output string

	// PlotDir is the directory plots are saved to. No plots are made if it is empty.
	PlotDir string

	// Resume continues training from the checkpoint at Network
	Resume bool
}

func selectDevice(c config.Config) {
	dev := device.Select(c.Device.GPU, c.Device.CPUOnly)
	if dev.Fallback {
		console.Warn(fmt.Sprintf("GPU %d is not available", c.Device.GPU))
	}
	console.Info("Using", dev)
	if len(dev.Vector) != 0 {
		console.Info("Vector extensions:", dev.Vector)
	}
}

func loadTable(path, latentKey, targetKey string) (*dataset.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "Data file %q is unavailable", path)
	}

	tb, err := dataset.Load(path, latentKey, targetKey)
	if err != nil {
		return nil, err
	}

	console.Info(fmt.Sprintf("Loaded %d rows from %s (%d dropped)", tb.Len(), path, tb.Dropped))
	console.Info("Latent dimensions:", len(tb.LatentNames))
	if tb.HasTargets() {
		console.Info("Targets:", tb.TargetNames)
	}
	if tb.Len() == 0 {
		return nil, errors.Errorf("No usable rows in %q", path)
	}

	return tb, nil
}

func loadCheckpoint(path string) (*checkpoint.Checkpoint, *bnn.Network, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, errors.Wrapf(err, "Trained network %q is unavailable", path)
	}

	ck, err := checkpoint.Load(path)
	if err != nil {
		return nil, nil, err
	}

	net, err := ck.Net()
	if err != nil {
		return nil, nil, err
	}

	console.Info(fmt.Sprintf("Loaded network %s trained for %d epochs (%d iterations)", ck.ID, ck.Epochs, net.Iter()))
	return ck, net, nil
}

// latentKey returns the configured latent key, or that of the checkpoint if the configuration
// leaves it at the default
func latentKey(c config.Config, ck *checkpoint.Checkpoint) string {
	if c.Data.LatentKey == config.Default().Data.LatentKey && ck.LatentKey != "" {
		return ck.LatentKey
	}
	return c.Data.LatentKey
}

// columnKey names the prediction columns: the target key if there is one, otherwise the
// configured prediction key
func columnKey(c config.Config, targetKey string) string {
	if targetKey != "" {
		return targetKey
	}
	return c.Predict.Key
}

// checkShape returns an error if the table cannot be used with the network
func checkShape(net *bnn.Network, tb *dataset.Table) error {
	if len(tb.LatentNames) != net.InputSize() {
		return errors.Errorf("Latent vector length %d does not match network input size %d", len(tb.LatentNames), net.InputSize())
	} else if tb.HasTargets() && len(tb.TargetNames) != net.OutputSize() {
		return errors.Errorf("Number of targets %d does not match network output size %d", len(tb.TargetNames), net.OutputSize())
	}
	return nil
}

// inputs returns the latent vectors of the table, standardized if there is a scaler
func inputs(tb *dataset.Table, s *dataset.Scaler) ([][]float64, error) {
	if s == nil {
		return tb.Latents, nil
	}

	in, err := s.Transform(tb.Latents)
	return in, errors.Wrapf(err, "Failed to standardize latent vectors")
}

// datums pairs the table's inputs and targets after standardizing each
func datums(tb *dataset.Table, in, out *dataset.Scaler) (bnn.Datums, error) {
	xs, err := inputs(tb, in)
	if err != nil {
		return nil, err
	}

	ys := tb.Targets
	if out != nil {
		if ys, err = out.Transform(ys); err != nil {
			return nil, errors.Wrapf(err, "Failed to standardize targets")
		}
	}

	ds := make(bnn.Datums, tb.Len())
	for i := range ds {
		ds[i] = bnn.Datum{Inputs: xs[i], Outputs: ys[i]}
	}
	return ds, nil
}

// predict draws the posterior predictive distribution of every row, in the units of the targets
// the network was trained on, multiplied by scale.
func predict(net *bnn.Network, ck *checkpoint.Checkpoint, tb *dataset.Table, samples int, scale float64) ([]bnn.Prediction, error) {
	xs, err := inputs(tb, ck.InputScaler)
	if err != nil {
		return nil, err
	}

	s := scale
	if ck.TargetScaler != nil {
		s = 1
	}

	console.Info(fmt.Sprintf("Predicting %d rows with %d samples each", len(xs), samples))
	preds, err := net.PredictAll(xs, samples, s, func(i int) { console.Progress(i+1, len(xs)) })
	if err != nil {
		return nil, err
	}

	if ck.TargetScaler != nil {
		for i, p := range preds {
			if err = ck.TargetScaler.Inverse(p.Mean, p.Std); err != nil {
				return nil, errors.Wrapf(err, "Failed to rescale prediction %d", i)
			}
			floats.Scale(scale, p.Mean)
			floats.Scale(scale, p.Std)
		}
	}

	return preds, nil
}

func ensureDir(dir string) error {
	return errors.Wrapf(os.MkdirAll(dir, 0755), "Failed to create %q", dir)
}

// plotPath joins the plot directory and name, creating the directory
func plotPath(dir, name string) (string, error) {
	if err := ensureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
