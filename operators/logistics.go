package operators

import (
	"math"

	"github.com/geobnn/bnn"
)

// ****************************************
// Logistic
// ****************************************

type logistic int8

// Logistic returns an elementwise application of the logistic (or sigmoid) function that
// implements bnn.Operator.
func Logistic() bnn.Operator {
	return Activation(logistic(0))
}

// Sigmoid is a proxy for Logistic
func Sigmoid() bnn.Operator {
	return Logistic()
}

func (t logistic) TypeString() string {
	return "logistic"
}

func (t logistic) Value(in float64) float64 {
	return sigmoid(in)
}

func (t logistic) Deriv(in, out float64) float64 {
	return out * (1 - out)
}

// ****************************************
// Tanh
// ****************************************

type tanh int8

// Tanh returns an Operator that performs an element-wise application of the tanh() function.
func Tanh() bnn.Operator {
	return Activation(tanh(0))
}

func (t tanh) TypeString() string {
	return "tanh"
}

func (t tanh) Value(in float64) float64 {
	return math.Tanh(in)
}

func (t tanh) Deriv(in, out float64) float64 {
	return 1 - out*out
}

// ****************************************
// Softsign
// ****************************************

type softsign int8

// Softsign (not to be confused with softplus) returns the Softsign activation function. It is
// similar in shape to Tanh and Logistic.
func Softsign() bnn.Operator {
	return Activation(softsign(0))
}

func (t softsign) TypeString() string {
	return "softsign"
}

func (t softsign) Value(in float64) float64 {
	return in / (math.Abs(in) + 1)
}

func (t softsign) Deriv(in, out float64) float64 {
	// 1 / (|in| + 1)^2
	d := math.Abs(in) + 1
	return 1 / (d * d)
}
