package initializers

import (
	"github.com/geobnn/bnn"
)

type random struct {
	RNG
}

// Random returns an Initializer that uses the provided RNG to generate the weights, drawing from
// the random number generator of the Network so that initialization follows its seed. There is no
// scaling beyond that of the RNG.
func Random(g RNG) random {
	return random{g}
}

// Set is the implementation of bnn.Initializer
func (r random) Set(n *bnn.Node, ws []float64) {
	rng := n.Rand()
	for i := range ws {
		ws[i] = r.Gen(rng)
	}
}
