// Package operators provides the Operators that Networks are built from: Bayesian layers and
// elementwise activation functions.
package operators

import (
	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
)

func init() {
	list := []interface{}{
		func() bnn.Operator { return BayesLinear() },
		func() bnn.Operator { return LeakyReLU(0) },
		func() bnn.Operator { return Identity() },
		func() bnn.Operator { return Logistic() },
		func() bnn.Operator { return Softplus() },
		func() bnn.Operator { return Softsign() },
		func() bnn.Operator { return Tanh() },
		func() bnn.Operator { return ReLU() },
		func() bnn.Operator { return ELU() },
	}

	if err := bnn.RegisterAll(list); err != nil {
		panic(err)
	}
}

// ActivationByName returns the elementwise activation Operator with the given name. "sigmoid" is
// accepted for "logistic" and "linear" for "identity".
func ActivationByName(name string) (bnn.Operator, error) {
	switch name {
	case "logistic", "sigmoid":
		return Logistic(), nil
	case "tanh":
		return Tanh(), nil
	case "softsign":
		return Softsign(), nil
	case "relu":
		return ReLU(), nil
	case "leaky-relu":
		return LeakyReLU(0.01), nil
	case "elu":
		return ELU(), nil
	case "softplus":
		return Softplus(), nil
	case "identity", "linear":
		return Identity(), nil
	}

	return nil, errors.Errorf("Unknown activation %q", name)
}
