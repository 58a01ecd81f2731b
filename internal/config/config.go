// Package config holds the tunables of the command line tools. Values come from the defaults,
// then an optional JSON file, then explicit flags.
package config

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/geobnn/bnn/priors"
	"github.com/geobnn/bnn/regressor"
)

// Config is the complete set of tunables
type Config struct {
	Data    Data    `json:"data"`
	Model   Model   `json:"model"`
	Train   Train   `json:"train"`
	Predict Predict `json:"predict"`
	Device  Device  `json:"device"`
}

// Data describes how datasets are read
type Data struct {
	// LatentKey is a regular expression matching the names of the latent columns
	LatentKey string `json:"latent_key"`

	// TargetKey is a regular expression matching the names of the target columns
	TargetKey string `json:"target_key"`

	// TestRatio is the fraction of the rows held out for testing while training
	TestRatio float64 `json:"test_ratio"`

	// Standardize fits a standard scaler to the training inputs
	Standardize bool `json:"standardize"`
}

// Model describes the architecture of the regressor
type Model struct {
	Hidden           int            `json:"hidden"`
	Activation       string         `json:"activation"`
	OutputType       string         `json:"output_type"`
	Prior            priors.Mixture `json:"prior"`
	PosteriorMuInit  float64        `json:"posterior_mu_init"`
	PosteriorRhoInit float64        `json:"posterior_rho_init"`
	Criterion        string         `json:"criterion"`

	// HuberDelta is the δ of the "huber" criterion
	HuberDelta float64 `json:"huber_delta"`
}

// Train holds the training hyperparameters
type Train struct {
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batch_size"`
	LearningRate float64 `json:"learning_rate"`

	// LRSteps changes the learning rate at later iterations, counted across resumed runs
	LRSteps []regressor.Step `json:"lr_steps,omitempty"`

	LambdaFitLoss float64 `json:"lambda_fit_loss"`
	// ELBOKLD is divided by the number of training rows to give the weight of the complexity cost
	ELBOKLD       float64 `json:"elbo_kld"`
	ELBOSamples   int     `json:"elbo_samples"`
	Optimizer     string  `json:"optimizer"`
	Seed          uint64  `json:"seed"`
	TestEvery     int     `json:"test_every"`
	TestSamples   int     `json:"test_samples"`
	StdMultiplier float64 `json:"std_multiplier"`
	StatusEvery   int     `json:"status_every"`
}

// Predict holds the settings of Monte Carlo prediction
type Predict struct {
	Samples int     `json:"samples"`
	Scale   float64 `json:"scale"`

	// Key names the prediction columns, as in pred_<key>_0
	Key string `json:"key"`
}

// Device selects where computation happens. A negative GPU means none was requested.
type Device struct {
	GPU     int  `json:"gpu"`
	CPUOnly bool `json:"cpu_only"`
}

// Default returns the built-in tunables
func Default() Config {
	return Config{
		Data: Data{
			LatentKey: "latent_",
			TargetKey: "",
			TestRatio: 0.25,
		},
		Model: Model{
			Hidden:           128,
			Activation:       "sigmoid",
			OutputType:       "linear",
			Prior:            priors.Default(),
			PosteriorMuInit:  0,
			PosteriorRhoInit: -7,
			Criterion:        "mse",
			HuberDelta:       1,
		},
		Train: Train{
			Epochs:        100,
			BatchSize:     16,
			LearningRate:  0.01,
			LambdaFitLoss: 1,
			ELBOKLD:       1,
			ELBOSamples:   3,
			Optimizer:     "adam",
			Seed:          42,
			TestEvery:     100,
			TestSamples:   25,
			StdMultiplier: 3,
			StatusEvery:   100,
		},
		Predict: Predict{
			Samples: 20,
			Scale:   1.0,
			Key:     "predicted",
		},
		Device: Device{GPU: -1},
	}
}

// Load reads the JSON file at path over the defaults. Fields missing from the file keep their
// default values; unknown fields are an error.
func Load(path string) (Config, error) {
	c := Default()

	f, err := os.Open(path)
	if err != nil {
		return c, errors.Wrapf(err, "Failed to open config %q", path)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err = dec.Decode(&c); err != nil {
		return c, errors.Wrapf(err, "Failed to decode config %q", path)
	}

	return c, nil
}

// Save writes the config as indented JSON
func (c Config) Save(path string) error {
	bs, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "Failed to encode config")
	}

	return errors.Wrapf(os.WriteFile(path, append(bs, '\n'), 0644), "Failed to write config %q", path)
}

// Validate returns the first impossible value found
func (c Config) Validate() error {
	switch {
	case c.Data.LatentKey == "":
		return errors.Errorf("data.latent_key is empty")
	case c.Data.TestRatio < 0 || c.Data.TestRatio >= 1:
		return errors.Errorf("data.test_ratio must be in [0, 1) (%v)", c.Data.TestRatio)
	case c.Model.Hidden < 1:
		return errors.Errorf("model.hidden must be >= 1 (%d)", c.Model.Hidden)
	case c.Model.OutputType != "linear" && c.Model.OutputType != "sigmoid":
		return errors.Errorf("model.output_type must be \"linear\" or \"sigmoid\" (%q)", c.Model.OutputType)
	case c.Train.Epochs < 1:
		return errors.Errorf("train.epochs must be >= 1 (%d)", c.Train.Epochs)
	case c.Train.BatchSize < 1:
		return errors.Errorf("train.batch_size must be >= 1 (%d)", c.Train.BatchSize)
	case !(c.Model.HuberDelta > 0):
		return errors.Errorf("model.huber_delta must be > 0 (%v)", c.Model.HuberDelta)
	case c.Train.LambdaFitLoss <= 0:
		return errors.Errorf("train.lambda_fit_loss must be > 0 (%v)", c.Train.LambdaFitLoss)
	case c.Train.ELBOKLD < 0:
		return errors.Errorf("train.elbo_kld must be >= 0 (%v)", c.Train.ELBOKLD)
	case c.Train.ELBOSamples < 1:
		return errors.Errorf("train.elbo_samples must be >= 1 (%d)", c.Train.ELBOSamples)
	case c.Train.TestSamples < 2:
		return errors.Errorf("train.test_samples must be >= 2 (%d)", c.Train.TestSamples)
	case c.Train.StdMultiplier <= 0:
		return errors.Errorf("train.std_multiplier must be > 0 (%v)", c.Train.StdMultiplier)
	case c.Predict.Scale == 0 || math.IsNaN(c.Predict.Scale) || math.IsInf(c.Predict.Scale, 0):
		return errors.Errorf("predict.scale must be finite and non-zero (%v)", c.Predict.Scale)
	case c.Predict.Samples < 1:
		return errors.Errorf("predict.samples must be >= 1 (%d)", c.Predict.Samples)
	case c.Predict.Key == "":
		return errors.Errorf("predict.key is empty")
	}

	if _, err := regressor.LearningRate(c.Train.LearningRate, c.Train.LRSteps); err != nil {
		return errors.Wrapf(err, "train.learning_rate")
	}

	return errors.Wrapf(c.Model.Prior.Validate(), "model.prior")
}
