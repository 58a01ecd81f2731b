package optimizers

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/geobnn/bnn"
)

type adam struct {
	Beta1   float64 `json:"beta_1"`
	Beta2   float64 `json:"beta_2"`
	Epsilon float64 `json:"epsilon"`

	// first and second moment estimates, one per weight
	M []float64 `json:"m,omitempty"`
	V []float64 `json:"v,omitempty"`

	// number of steps taken
	T int `json:"t"`
}

// Adam returns the Adam optimizer with the usual defaults: β₁ = 0.9, β₂ = 0.999 and ε = 1e-8.
//
// Adam keeps state for every weight, so each Node must have its own.
func Adam() *adam {
	return &adam{Beta1: 0.9, Beta2: 0.999, Epsilon: 1e-8}
}

// Betas sets the decay rates of the moment estimates
func (a *adam) Betas(β1, β2 float64) *adam {
	a.Beta1, a.Beta2 = β1, β2
	return a
}

func (a *adam) TypeString() string {
	return "adam"
}

func (a *adam) Run(n *bnn.Node, size int, grad func(int) float64, add func(int, float64), learningRate float64) error {
	if a.M == nil {
		a.M = make([]float64, size)
		a.V = make([]float64, size)
	} else if len(a.M) != size || len(a.V) != size {
		return errors.Errorf("Number of weights changed (%d -> %d)", len(a.M), size)
	}

	a.T++
	c1 := 1 - math.Pow(a.Beta1, float64(a.T))
	c2 := 1 - math.Pow(a.Beta2, float64(a.T))

	floats.Scale(a.Beta1, a.M)
	floats.Scale(a.Beta2, a.V)

	for i := 0; i < size; i++ {
		g := grad(i)
		a.M[i] += (1 - a.Beta1) * g
		a.V[i] += (1 - a.Beta2) * g * g

		add(i, -learningRate*(a.M[i]/c1)/(math.Sqrt(a.V[i]/c2)+a.Epsilon))
	}

	return nil
}

func (a *adam) Get() interface{} {
	return *a
}

func (a *adam) Blank() interface{} {
	return a
}
