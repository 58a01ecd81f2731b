package operators

import (
	"github.com/geobnn/bnn"
)

type identity int8

// Identity returns an operator that returns its inputs
func Identity() bnn.Operator {
	return Activation(identity(0))
}

func (t identity) TypeString() string {
	return "identity"
}

func (t identity) Value(in float64) float64 {
	return in
}

func (t identity) Deriv(in, out float64) float64 {
	return 1
}
