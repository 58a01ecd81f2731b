// Command bnn trains Bayesian regressors of seabed properties from acoustic latent vectors and uses
// them to predict, with uncertainty, at new survey locations.
//
//	bnn train    -latent survey.csv -target depth -network model.json.zlib
//	bnn predict  -latent new.csv -network model.json.zlib -output predictions.csv
//	bnn validate -latent labelled.csv -network model.json.zlib -plot plots
//
// Tunables are read from the -config JSON file, then overridden by any flags given explicitly.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/geobnn/bnn/internal/config"
	"github.com/geobnn/bnn/internal/console"
	"github.com/geobnn/bnn/internal/engine"
)

const version = "0.3.0"

type flags struct {
	fs *flag.FlagSet

	config  string
	opts    engine.Options
	noColor bool

	latentKey  string
	targetKey  string
	samples    int
	scale      float64
	gpu        int
	cpu        bool
	epochs     int
	batch      int
	lr         float64
	seed       uint64
	outputType string
}

func newFlags(cmd string) *flags {
	f := &flags{fs: flag.NewFlagSet(cmd, flag.ContinueOnError)}
	fs := f.fs

	fs.StringVar(&f.config, "config", "", "JSON file of tunables")
	fs.StringVar(&f.opts.Data, "latent", "", "CSV of latent vectors (and targets, for train and validate)")
	fs.StringVar(&f.opts.Network, "network", "", "trained network checkpoint; compressed if it ends in .zlib")
	fs.StringVar(&f.opts.Output, "output", "", "where to write predictions")
	fs.StringVar(&f.opts.PlotDir, "plot", "", "directory to save plots to")
	fs.BoolVar(&f.opts.Resume, "resume", false, "continue training the network at -network")
	fs.BoolVar(&f.noColor, "no-color", false, "disable coloured output")

	fs.StringVar(&f.latentKey, "key", "", "pattern matching the latent columns")
	fs.StringVar(&f.targetKey, "target", "", "pattern matching the target columns")
	fs.IntVar(&f.samples, "samples", 0, "number of posterior samples per prediction (0 for the configured value)")
	fs.Float64Var(&f.scale, "scale", 0, "factor applied to predictions (0 for the configured value)")
	fs.IntVar(&f.gpu, "gpu", -1, "index of the GPU to use")
	fs.BoolVar(&f.cpu, "cpu", false, "use the CPU even if a GPU is requested")
	fs.IntVar(&f.epochs, "epochs", 0, "number of training epochs")
	fs.IntVar(&f.batch, "batch", 0, "mini-batch size")
	fs.Float64Var(&f.lr, "lr", 0, "learning rate")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed of the data split and the network")
	fs.StringVar(&f.outputType, "output-type", "", "\"linear\" or \"sigmoid\"")

	return f
}

// load returns the configuration with every explicitly set flag applied
func (f *flags) load() (config.Config, error) {
	c := config.Default()
	if f.config != "" {
		var err error
		if c, err = config.Load(f.config); err != nil {
			return c, err
		}
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "key":
			c.Data.LatentKey = f.latentKey
		case "target":
			c.Data.TargetKey = f.targetKey
		// zero asks for the configured value
		case "samples":
			if f.samples != 0 {
				c.Predict.Samples = f.samples
			}
		case "scale":
			if f.scale != 0 {
				c.Predict.Scale = f.scale
			}
		case "gpu":
			c.Device.GPU = f.gpu
		case "cpu":
			c.Device.CPUOnly = f.cpu
		case "epochs":
			c.Train.Epochs = f.epochs
		case "batch":
			c.Train.BatchSize = f.batch
		case "lr":
			c.Train.LearningRate = f.lr
		case "seed":
			c.Train.Seed = f.seed
		case "output-type":
			c.Model.OutputType = f.outputType
		}
	})

	return c, errors.Wrapf(c.Validate(), "Invalid configuration")
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: bnn <train|predict|validate> [flags]\n\nRun 'bnn <command> -h' for the flags of a command.\n")
}

func run(cmd string, args []string) error {
	f := newFlags(cmd)
	if err := f.fs.Parse(args); err != nil {
		return err
	}

	if f.noColor {
		console.SetOutput(os.Stdout, false)
	}

	c, err := f.load()
	if err != nil {
		return err
	}

	if f.opts.Data == "" {
		return errors.Errorf("-latent is required")
	} else if f.opts.Network == "" {
		return errors.Errorf("-network is required")
	}

	switch cmd {
	case "train":
		_, err = engine.Train(c, f.opts)
	case "predict":
		_, _, err = engine.Predict(c, f.opts)
	case "validate":
		_, err = engine.Validate(c, f.opts)
	default:
		usage()
		return errors.Errorf("Unknown command %q", cmd)
	}

	return err
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	console.Banner("bnn", version)

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		if err == flag.ErrHelp {
			return
		}
		console.Quit(err)
	}

	console.Info("Done")
}
