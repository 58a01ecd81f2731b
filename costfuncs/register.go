package costfuncs

import (
	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
)

func init() {
	list := []interface{}{
		func() bnn.CostFunction { return MSE() },
		func() bnn.CostFunction { return Huber(1) },
		func() bnn.CostFunction { return Abs() },
	}

	if err := bnn.RegisterAll(list); err != nil {
		panic(err)
	}
}

// ByName returns the CostFunction with the given name: one of "mse", "huber" or "abs". huberDelta
// is the δ of the Huber loss and is ignored by the others; zero gives δ = 1.
func ByName(name string, huberDelta float64) (bnn.CostFunction, error) {
	switch name {
	case "mse", "l2":
		return MSE(), nil
	case "huber":
		if huberDelta == 0 {
			huberDelta = 1
		} else if !(huberDelta > 0) {
			return nil, errors.Errorf("Huber delta must be > 0 (%v)", huberDelta)
		}
		return Huber(huberDelta), nil
	case "abs", "l1":
		return Abs(), nil
	}

	return nil, errors.Errorf("Unknown cost function %q", name)
}
