// Package initializers provides the ways that the weights of Operators are first set.
package initializers

import (
	"math/rand/v2"
)

// RNG generates single random values from a source of randomness
type RNG interface {
	Gen(*rand.Rand) float64
}

type normal struct {
	µ, σ float64
}

// Normal returns an RNG that gives values within a standard normal distribution. The center
// and standard deviation can be set by Mean and SD, respectively.
func Normal() *normal {
	return &normal{0, 1}
}

// SD sets the value of the standard deviation of the normal distribution.
func (n *normal) SD(sd float64) *normal {
	n.σ = sd
	return n
}

// Mean sets the center of the normal distribution.
func (n *normal) Mean(mean float64) *normal {
	n.µ = mean
	return n
}

// Gen is the implementation of RNG for Normal. It returns a random number.
func (n *normal) Gen(r *rand.Rand) float64 {
	return r.NormFloat64()*n.σ + n.µ
}
