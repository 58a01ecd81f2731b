// Package regressor builds the Bayesian regressor: a Bayesian linear hidden layer, an activation,
// and a Bayesian linear output layer, optionally followed by a sigmoid.
package regressor

import (
	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
	"github.com/geobnn/bnn/costfuncs"
	"github.com/geobnn/bnn/hyperparams"
	"github.com/geobnn/bnn/operators"
	"github.com/geobnn/bnn/optimizers"
	"github.com/geobnn/bnn/priors"
)

// Names of the Nodes of the regressor
const (
	InputName      = "latent"
	HiddenName     = "blinear_hidden"
	ActivationName = "activation"
	OutputName     = "blinear_output"
	SquashName     = "output_sigmoid"
)

// Output types
const (
	Linear  = "linear"
	Sigmoid = "sigmoid"
)

// Config describes the architecture and training setup of a regressor. Zero values are replaced
// by the defaults in DefaultConfig, except for Inputs and Outputs which are required.
type Config struct {
	Inputs  int
	Hidden  int
	Outputs int

	// Activation is the elementwise function between the two layers
	Activation string

	// OutputType is either Linear or Sigmoid
	OutputType string

	Prior        priors.Mixture
	PosteriorMu  float64
	PosteriorRho float64

	Optimizer    string
	LearningRate float64

	// LRSteps changes the learning rate at later iterations. The rate is constant if it is empty.
	LRSteps []Step

	Cost string

	// HuberDelta is the δ of the "huber" cost. Zero gives 1.
	HuberDelta float64

	Seed uint64
}

// DefaultConfig returns the defaults: 128 hidden units with a sigmoid activation, a linear output,
// the default prior, Adam with a learning rate of 0.01, and MSE.
func DefaultConfig() Config {
	return Config{
		Hidden:       128,
		Activation:   "sigmoid",
		OutputType:   Linear,
		Prior:        priors.Default(),
		PosteriorMu:  0,
		PosteriorRho: -7,
		Optimizer:    "adam",
		LearningRate: 0.01,
		Cost:         "mse",
		Seed:         bnn.DefaultSeed,
	}
}

func (c *Config) setDefaults() {
	d := DefaultConfig()

	if c.Hidden == 0 {
		c.Hidden = d.Hidden
	}
	if c.Activation == "" {
		c.Activation = d.Activation
	}
	if c.OutputType == "" {
		c.OutputType = d.OutputType
	}
	if c.Prior == (priors.Mixture{}) {
		c.Prior = d.Prior
	}
	if c.PosteriorRho == 0 {
		c.PosteriorRho = d.PosteriorRho
	}
	if c.Optimizer == "" {
		c.Optimizer = d.Optimizer
	}
	if c.LearningRate == 0 {
		c.LearningRate = d.LearningRate
	}
	if c.Cost == "" {
		c.Cost = d.Cost
	}
}

// Step sets the learning rate to Value from iteration Iter on
type Step struct {
	Iter  int     `json:"iter"`
	Value float64 `json:"value"`
}

// LearningRate returns the learning-rate HyperParameter starting at base and changing at each of
// the steps, which must be in increasing order of iteration.
func LearningRate(base float64, steps []Step) (bnn.HyperParameter, error) {
	if !(base > 0) {
		return nil, errors.Errorf("Learning rate must be > 0 (%v)", base)
	} else if len(steps) == 0 {
		return hyperparams.Constant(base), nil
	}

	st := hyperparams.Step(base)
	last := 0
	for i, s := range steps {
		if s.Iter <= last {
			return nil, errors.Errorf("Learning rate step %d is at iteration %d, must be after %d", i, s.Iter, last)
		} else if !(s.Value > 0) {
			return nil, errors.Errorf("Learning rate step %d must be > 0 (%v)", i, s.Value)
		}

		st.Add(s.Iter, s.Value)
		last = s.Iter
	}

	return st, nil
}

// New builds and finalizes a regressor
func New(c Config) (*bnn.Network, error) {
	c.setDefaults()

	if c.Inputs < 1 || c.Outputs < 1 || c.Hidden < 1 {
		return nil, errors.Errorf("Inputs, Outputs and Hidden must all be >= 1 (%d, %d, %d)", c.Inputs, c.Outputs, c.Hidden)
	} else if c.OutputType != Linear && c.OutputType != Sigmoid {
		return nil, errors.Errorf("Unknown output type %q", c.OutputType)
	}

	act, err := operators.ActivationByName(c.Activation)
	if err != nil {
		return nil, err
	}

	opt, err := optimizers.ByName(c.Optimizer)
	if err != nil {
		return nil, err
	}

	lr, err := LearningRate(c.LearningRate, c.LRSteps)
	if err != nil {
		return nil, err
	}

	cf, err := costfuncs.ByName(c.Cost, c.HuberDelta)
	if err != nil {
		return nil, err
	}

	net := new(bnn.Network).SetSeed(c.Seed)

	in, err := net.AddInput(InputName, c.Inputs)
	if err != nil {
		return nil, err
	}

	hidden, err := net.Add(HiddenName, operators.BayesLinear().PosteriorInit(c.PosteriorMu, c.PosteriorRho).WithPrior(c.Prior), c.Hidden, in)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to add hidden layer")
	}
	hidden.SetOptimizer(opt())

	a, err := net.Add(ActivationName, act, c.Hidden, hidden)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to add activation")
	}

	out, err := net.Add(OutputName, operators.BayesLinear().PosteriorInit(c.PosteriorMu, c.PosteriorRho).WithPrior(c.Prior), c.Outputs, a)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to add output layer")
	}
	out.SetOptimizer(opt())

	if c.OutputType == Sigmoid {
		if out, err = net.Add(SquashName, operators.Logistic(), c.Outputs, out); err != nil {
			return nil, errors.Wrapf(err, "Failed to add output sigmoid")
		}
	}

	net.SetHP("learning-rate", lr)

	if err = net.Finalize(cf, out); err != nil {
		return nil, errors.Wrapf(err, "Failed to finalize regressor")
	}

	return net, nil
}
