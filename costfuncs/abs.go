package costfuncs

import (
	"math"
)

type abs int8

// Abs returns the Absolute Value cost function, which implements bnn.CostFunction.
func Abs() *abs {
	a := abs(0)
	return &a
}

// L1 is a proxy for Abs
func L1() *abs {
	return Abs()
}

func (a *abs) TypeString() string {
	return "abs"
}

func (a *abs) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		sum += math.Abs(outs[i] - targets[i])
	}

	return sum / float64(len(outs))
}

func (a *abs) Derivs(outs, targets []float64) []float64 {
	ds := make([]float64, len(outs))
	for i := range outs {
		if d := outs[i] - targets[i]; d != 0 {
			ds[i] = math.Copysign(1, d) / float64(len(outs))
		}
	}

	return ds
}

func (a *abs) Get() interface{} {
	return nil
}

func (a *abs) Blank() interface{} {
	return nil
}
