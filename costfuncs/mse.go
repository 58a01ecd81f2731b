package costfuncs

import (
	"math"
)

type mse int8

// MSE returns the mean squared error cost function, which implements bnn.CostFunction. The cost
// is the mean of the squared differences, without the factor of one half.
func MSE() *mse {
	m := mse(0)
	return &m
}

// L2 is a proxy for MSE
func L2() *mse {
	return MSE()
}

func (m *mse) TypeString() string {
	return "mse"
}

func (m *mse) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		sum += math.Pow(outs[i]-targets[i], 2)
	}

	return sum / float64(len(outs))
}

func (m *mse) Derivs(outs, targets []float64) []float64 {
	ds := make([]float64, len(outs))
	for i := range outs {
		ds[i] = 2 * (outs[i] - targets[i]) / float64(len(outs))
	}

	return ds
}

func (m *mse) Get() interface{} {
	return nil
}

func (m *mse) Blank() interface{} {
	return nil
}
