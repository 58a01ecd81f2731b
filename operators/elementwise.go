package operators

import (
	"math"

	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
)

// Elementwise is implemented by activation functions that are applied to each input value
// separately. Elementwise functions are turned into Operators by Activation.
type Elementwise interface {
	TypeString() string

	// Value returns the output of the function for a single input
	Value(in float64) float64

	// Deriv returns the derivative of the output w.r.t. the input, given both
	Deriv(in, out float64) float64
}

// elementwise wraps an Elementwise to implement bnn.Operator
type elementwise struct {
	Elementwise
}

// Activation returns an Operator that applies the function to each of its inputs. The Node must
// have the same size as its inputs.
func Activation(f Elementwise) bnn.Operator {
	return elementwise{f}
}

func (e elementwise) Init(n *bnn.Node) error {
	if n.Size() != n.NumInputs() {
		return errors.Errorf("Can't initialize %s Operator, does not have same number of values as inputs (%d != %d)",
			e.TypeString(), n.Size(), n.NumInputs())
	}

	return nil
}

func (e elementwise) Evaluate(n *bnn.Node, values []float64) error {
	inputs := n.Inputs()
	for i := range values {
		values[i] = e.Value(inputs[i])
	}

	return nil
}

func (e elementwise) InputDeltas(n *bnn.Node, add func(int, float64), start, end int) error {
	inputs := n.Inputs()
	for i := start; i < end; i++ {
		add(i-start, n.Delta(i)*e.Deriv(inputs[i], n.Value(i)))
	}

	return nil
}

func (e elementwise) CanBeAdjusted(n *bnn.Node) bool {
	return false
}

func (e elementwise) Accumulate(n *bnn.Node, scale float64) error {
	return nil
}

func (e elementwise) Adjust(n *bnn.Node, learningRate float64) error {
	return nil
}

type encodable interface {
	Get() interface{}
	Blank() interface{}
}

func (e elementwise) Get() interface{} {
	if enc, ok := e.Elementwise.(encodable); ok {
		return enc.Get()
	}
	return nil
}

func (e elementwise) Blank() interface{} {
	if enc, ok := e.Elementwise.(encodable); ok {
		return enc.Blank()
	}
	return nil
}

// sigmoid is the logistic function, rephrased with tanh to avoid overflow
func sigmoid(x float64) float64 {
	return 0.5 + 0.5*math.Tanh(0.5*x)
}

// softplus is log(1 + e^x)
func softplus(x float64) float64 {
	if x > 30 {
		return x
	}
	return math.Log1p(math.Exp(x))
}
