package bnn

import (
	"math/rand/v2"
)

// Operator is an interface for defining layers and activation functions
type Operator interface {
	// Init will always be run on an Operator before any other method, once the inputs of the Node
	// have been set. It should allocate and initialize any weights. If the Operator already holds
	// weights (because it was decoded from a checkpoint), Init should only check that they fit
	// the Node.
	Init(*Node) error

	// TypeString returns the string corresponding to the type of the Operator. It is the name the
	// Operator is registered under.
	TypeString() string

	// Evaluate should update the values of the Node to reflect its inputs and weights.
	//
	// arguments: given Node, destination slice for the values of that Node
	Evaluate(*Node, []float64) error

	// InputDeltas should add to the deltas of the given range of inputs how each of those values
	// affects the total cost through the values of the host Node.
	//
	// arguments: given Node, a way to add to the deltas of the given input, starting index of
	// those input values, ending index of those input values. 'add' is indexed from 'start'.
	InputDeltas(*Node, func(int, float64), int, int) error

	// CanBeAdjusted returns whether or not the Operator has weights. It will be run once, during
	// setup, and should not change.
	CanBeAdjusted(*Node) bool

	// Accumulate adds the gradient of the current sample, multiplied by the given scale, to the
	// gradients held by the Operator. It is only called after the deltas of the Node have been
	// calculated.
	Accumulate(*Node, float64) error

	// Adjust applies the accumulated gradients with the Node's Optimizer and the given learning
	// rate, then clears them.
	Adjust(*Node, float64) error

	// Get returns the value that should be encoded to store the Operator. It may be nil for
	// Operators without any state.
	Get() interface{}

	// Blank returns the value that an encoded Operator should be decoded into. It may be nil if
	// Get is.
	Blank() interface{}
}

// Stochastic is implemented by Operators whose weights are distributions rather than points.
type Stochastic interface {
	Operator

	// Resample draws a fresh set of weights from the distribution. Gradients accumulated with the
	// previous draw are kept.
	Resample(*Node, *rand.Rand)

	// Complexity returns the complexity cost (the KL divergence between the weight distribution
	// and the prior) of the current draw, adding its gradient multiplied by the given weight to
	// the accumulated gradients.
	Complexity(*Node, float64) float64
}

// Optimizer determines how the weights of an Operator change, given their gradients. Optimizers
// may keep state, so each Node gets its own.
type Optimizer interface {
	// Run is called to suggest changes to each weight, given: the Node, number of weights,
	// gradient at weight, function to add to weights, and a learning rate.
	Run(*Node, int, func(int) float64, func(int, float64), float64) error

	// TypeString returns the string corresponding to the type of the Optimizer.
	// For example: the Optimizer "Adam" should return "adam", or something
	// to that effect.
	TypeString() string

	Get() interface{}
	Blank() interface{}
}

// HyperParameter gives the value of a named parameter (such as the learning rate) at a certain
// iteration of the Network.
type HyperParameter interface {
	TypeString() string

	// Value returns the value of the HyperParameter, given the iteration.
	Value(int) float64

	Get() interface{}
	Blank() interface{}
}

// CostFunction measures how far the outputs of the Network are from their targets.
type CostFunction interface {
	TypeString() string

	// Cost returns the cost of the given outputs against the targets. Both have the same length,
	// without NaNs or Infs.
	Cost(outs, targets []float64) float64

	// Derivs returns the derivative of Cost w.r.t. each output.
	Derivs(outs, targets []float64) []float64

	Get() interface{}
	Blank() interface{}
}

// Initializer dictates how the weights in an Operator will be set, given a slice to fill.
type Initializer interface {
	Set(*Node, []float64)
}
