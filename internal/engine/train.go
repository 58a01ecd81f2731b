package engine

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
	"github.com/geobnn/bnn/internal/checkpoint"
	"github.com/geobnn/bnn/internal/config"
	"github.com/geobnn/bnn/internal/console"
	"github.com/geobnn/bnn/internal/dataset"
	"github.com/geobnn/bnn/internal/report"
	"github.com/geobnn/bnn/regressor"
)

// Train fits a regressor to the data and saves it, with its metadata, to opts.Network. With
// opts.Resume the network, its optimizer state and its scalers are read from the existing
// checkpoint and trained for a further c.Train.Epochs.
func Train(c config.Config, opts Options) (*checkpoint.Checkpoint, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Invalid configuration")
	} else if c.Data.TargetKey == "" {
		return nil, errors.Errorf("Training requires a target key")
	} else if opts.Network == "" {
		return nil, errors.Errorf("No path given for the trained network")
	}

	selectDevice(c)

	tb, err := loadTable(opts.Data, c.Data.LatentKey, c.Data.TargetKey)
	if err != nil {
		return nil, err
	}

	train, test, err := tb.Split(c.Data.TestRatio, c.Train.Seed)
	if err != nil {
		return nil, err
	}
	console.Info(fmt.Sprintf("Training on %d rows, testing on %d", train.Len(), test.Len()))

	var (
		ck  *checkpoint.Checkpoint
		net *bnn.Network
	)

	if opts.Resume {
		if ck, net, err = loadCheckpoint(opts.Network); err != nil {
			return nil, errors.Wrapf(err, "Failed to resume")
		}
		lr, err := regressor.LearningRate(c.Train.LearningRate, c.Train.LRSteps)
		if err != nil {
			return nil, err
		}
		net.SetHP("learning-rate", lr)
	} else {
		net, err = regressor.New(regressor.Config{
			Inputs:       len(tb.LatentNames),
			Hidden:       c.Model.Hidden,
			Outputs:      len(tb.TargetNames),
			Activation:   c.Model.Activation,
			OutputType:   c.Model.OutputType,
			Prior:        c.Model.Prior,
			PosteriorMu:  c.Model.PosteriorMuInit,
			PosteriorRho: c.Model.PosteriorRhoInit,
			Optimizer:    c.Train.Optimizer,
			LearningRate: c.Train.LearningRate,
			LRSteps:      c.Train.LRSteps,
			Cost:         c.Model.Criterion,
			HuberDelta:   c.Model.HuberDelta,
			Seed:         c.Train.Seed,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to build regressor")
		}

		if ck, err = checkpoint.New(net); err != nil {
			return nil, err
		}
		ck.LatentKey, ck.TargetKey = c.Data.LatentKey, c.Data.TargetKey
		ck.LatentNames, ck.Targets = tb.LatentNames, tb.TargetNames
		ck.OutputType = c.Model.OutputType

		if c.Data.Standardize {
			if ck.InputScaler, err = dataset.FitScaler(train.Latents); err != nil {
				return nil, errors.Wrapf(err, "Failed to fit input scaler")
			}
			// sigmoid outputs are already bounded
			if c.Model.OutputType == regressor.Linear {
				if ck.TargetScaler, err = dataset.FitScaler(train.Targets); err != nil {
					return nil, errors.Wrapf(err, "Failed to fit target scaler")
				}
			}
		}
	}

	if err = checkShape(net, tb); err != nil {
		return nil, err
	}

	trainData, err := datums(train, ck.InputScaler, ck.TargetScaler)
	if err != nil {
		return nil, err
	}

	args := bnn.TrainArgs{
		TrainData:        trainData,
		Epochs:           c.Train.Epochs,
		BatchSize:        c.Train.BatchSize,
		SampleNbr:        c.Train.ELBOSamples,
		FitWeight:        c.Train.LambdaFitLoss,
		ComplexityWeight: c.Train.ELBOKLD / float64(train.Len()),
		TestSamples:      c.Train.TestSamples,
		StdMultiplier:    c.Train.StdMultiplier,
		SendStatus:       bnn.Every(c.Train.StatusEvery),
	}

	if test.Len() != 0 {
		if args.TestData, err = datums(test, ck.InputScaler, ck.TargetScaler); err != nil {
			return nil, err
		}
		args.ShouldTest = bnn.Every(c.Train.TestEvery)
	}

	var results []bnn.Result
	args.Update = func(r bnn.Result) {
		results = append(results, r)

		switch r.Kind {
		case bnn.TestResult:
			console.Info(fmt.Sprintf("Iteration %d: CI acc: %.2f, CI upper acc: %.2f, CI lower acc: %.2f, test cost: %.4f",
				r.Iteration, r.Coverage.Within, r.Coverage.UnderUpper, r.Coverage.OverLower, r.Cost))
		case bnn.StatusResult:
			console.Info(fmt.Sprintf("Iteration %d: loss: %.4f (fit %.4f, complexity %.4f)", r.Iteration, r.Loss, r.Fit, r.Complexity))
		case bnn.EpochResult:
			console.Progress(r.Epoch+1, c.Train.Epochs)
		}
	}

	console.Info(fmt.Sprintf("Training for %d epochs from iteration %d", c.Train.Epochs, net.Iter()))
	if err = net.Train(args); err != nil {
		return nil, errors.Wrapf(err, "Training failed")
	}

	if err = ck.Update(net); err != nil {
		return nil, err
	}
	ck.Epochs += c.Train.Epochs
	ck.BatchSize = c.Train.BatchSize
	ck.LearningRate = c.Train.LearningRate
	ck.LambdaFitLoss = c.Train.LambdaFitLoss
	ck.ELBOKLD = c.Train.ELBOKLD
	ck.ELBOSamples = c.Train.ELBOSamples

	if _, err = os.Stat(opts.Network); err == nil {
		console.Warn("Overwriting", opts.Network)
	}
	if err = ck.Save(opts.Network, true); err != nil {
		return nil, err
	}
	console.Info("Saved network to", opts.Network)

	if opts.PlotDir != "" {
		path, err := plotPath(opts.PlotDir, "loss.png")
		if err != nil {
			return nil, err
		}
		if err = report.LossCurve(path, results); err != nil {
			// the network is already saved
			console.Warn("Failed to plot loss curve:", err)
		} else {
			console.Info("Saved loss curve to", path)
		}
	}

	return ck, nil
}
