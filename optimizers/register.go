package optimizers

import (
	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
)

func init() {
	list := []interface{}{
		func() bnn.Optimizer { return GradientDescent() },
		func() bnn.Optimizer { return Adam() },
	}

	if err := bnn.RegisterAll(list); err != nil {
		panic(err)
	}

	bnn.SetDefaultOptimizer(func() bnn.Optimizer { return Adam() })
}

// ByName returns a new Optimizer of the named type: "adam" or "sgd"
func ByName(name string) (func() bnn.Optimizer, error) {
	switch name {
	case "adam":
		return func() bnn.Optimizer { return Adam() }, nil
	case "sgd":
		return func() bnn.Optimizer { return GradientDescent() }, nil
	}

	return nil, errors.Errorf("Unknown optimizer %q", name)
}
