// relus.go contains all activation functions that are derivative of relu:
// * ReLU
// * Leaky ReLU
// * ELU
// * Softplus (because it's similar)
package operators

import (
	"math"

	"github.com/geobnn/bnn"
)

// ****************************************
// ReLU
// ****************************************

type relu int8

// ReLU returns the standard rectified linear unit, which implements bnn.Operator.
func ReLU() bnn.Operator {
	return Activation(relu(0))
}

func (t relu) TypeString() string {
	return "relu"
}

func (t relu) Value(in float64) float64 {
	return math.Max(in, 0)
}

func (t relu) Deriv(in, out float64) float64 {
	if in > 0 {
		return 1
	}
	return 0
}

// ****************************************
// Leaky ReLU
// ****************************************

type lrelu float64

// LeakyReLU returns a standard 'leaky ReLU', where the leaky factor is given by alpha.
func LeakyReLU(alpha float64) bnn.Operator {
	t := lrelu(alpha)
	return Activation(&t)
}

func (t *lrelu) TypeString() string {
	return "leaky-relu"
}

func (t *lrelu) Get() interface{} {
	return float64(*t)
}

func (t *lrelu) Blank() interface{} {
	return (*float64)(t)
}

func (t *lrelu) Value(in float64) float64 {
	if in < 0 {
		return float64(*t) * in
	}
	return in
}

func (t *lrelu) Deriv(in, out float64) float64 {
	if in < 0 {
		return float64(*t)
	}
	return 1
}

// ****************************************
// ELU
// ****************************************

type elu int8

// ELU (exponential linear unit) returns a smooth approximation of ReLU that tends towards -1 as
// inputs become infinitely negative.
func ELU() bnn.Operator {
	return Activation(elu(0))
}

func (t elu) TypeString() string {
	return "elu"
}

func (t elu) Value(in float64) float64 {
	if in >= 0 {
		return in
	}
	return math.Exp(in) - 1
}

func (t elu) Deriv(in, out float64) float64 {
	if in < 0 {
		return out + 1
	}
	return 1
}

// ****************************************
// Softplus
// ****************************************

type softplusOp int8

// Softplus is a smooth approximation of ReLU that approaches 0 as inputs tend towards negative
// infinity.
func Softplus() bnn.Operator {
	return Activation(softplusOp(0))
}

func (t softplusOp) TypeString() string {
	return "softplus"
}

func (t softplusOp) Value(in float64) float64 {
	return softplus(in)
}

func (t softplusOp) Deriv(in, out float64) float64 {
	return sigmoid(in)
}
