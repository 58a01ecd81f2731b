package costfuncs

import (
	"math"
)

type huber struct {
	Delta float64 `json:"delta"`
}

// Huber returns the Huber Loss Function, which implements bnn.CostFunction. δ controls the
// bounds of the transition between MSE and Absolute Value.
func Huber(δ float64) *huber {
	return &huber{Delta: δ}
}

func (h *huber) TypeString() string {
	return "huber"
}

func (h *huber) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		d := math.Abs(outs[i] - targets[i])
		if d <= h.Delta {
			sum += 0.5 * d * d
		} else {
			sum += h.Delta*d - 0.5*h.Delta*h.Delta
		}
	}

	return sum / float64(len(outs))
}

func (h *huber) Derivs(outs, targets []float64) []float64 {
	ds := make([]float64, len(outs))
	for i := range outs {
		d := outs[i] - targets[i]
		if d >= -h.Delta && d <= h.Delta {
			ds[i] = d
		} else {
			ds[i] = h.Delta * math.Copysign(1, d)
		}
		ds[i] /= float64(len(outs))
	}

	return ds
}

func (h *huber) Get() interface{} {
	return *h
}

func (h *huber) Blank() interface{} {
	return h
}
