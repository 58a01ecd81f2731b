package hyperparams

import (
	"github.com/geobnn/bnn"
)

func init() {
	list := []interface{}{
		func() bnn.HyperParameter { return Constant(0) }, // the value is decoded
		func() bnn.HyperParameter { return Step(0) },
	}

	if err := bnn.RegisterAll(list); err != nil {
		panic(err)
	}
}
