package bnn

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Prediction is the posterior predictive distribution of the Network's outputs for a single
// input, summarized by the mean and standard deviation of each output value.
type Prediction struct {
	Mean []float64
	Std  []float64
}

// Coverage gives the fraction of targets that fall inside confidence intervals of the form
// mean ± m·std.
type Coverage struct {
	// Within is the fraction of targets inside both bounds
	Within float64

	// UnderUpper is the fraction of targets below the upper bound
	UnderUpper float64

	// OverLower is the fraction of targets above the lower bound
	OverLower float64
}

// Sample runs every input through the Network once for each draw of its weights. The result is
// indexed by [draw][input][output]. All inputs of a draw share the same weights.
//
// Frozen Networks give identical draws.
func (net *Network) Sample(inputs [][]float64, samples int) ([][][]float64, error) {
	if net.stat < finalized {
		return nil, ErrNetNotFinalized
	} else if samples < 1 {
		return nil, errors.Errorf("Number of samples must be >= 1 (%d)", samples)
	}

	draws := make([][][]float64, samples)
	for s := range draws {
		net.Resample()

		draws[s] = make([][]float64, len(inputs))
		for i, in := range inputs {
			out, err := net.GetOutputs(in)
			if err != nil {
				return nil, errors.Wrapf(err, "Failed to get outputs for input %d of draw %d", i, s)
			}

			draws[s][i] = out
		}
	}

	return draws, nil
}

// Predict estimates the posterior predictive distribution for a single input from the given number
// of independent forward passes, each with a fresh draw of weights. The standard deviation is that
// of the population of draws. Both the mean and standard deviation are multiplied by scale.
func (net *Network) Predict(inputs []float64, samples int, scale float64) (Prediction, error) {
	draws, err := net.Sample([][]float64{inputs}, samples)
	if err != nil {
		return Prediction{}, err
	}

	p := Prediction{
		Mean: make([]float64, net.OutputSize()),
		Std:  make([]float64, net.OutputSize()),
	}

	column := make([]float64, samples)
	for o := range p.Mean {
		for s := range draws {
			column[s] = draws[s][0][o]
		}

		mean, std := stat.PopMeanStdDev(column, nil)
		p.Mean[o] = mean * scale
		p.Std[o] = std * scale
	}

	return p, nil
}

// PredictAll calls Predict for each of the inputs, sending the index of each finished input to
// progress, which may be nil.
func (net *Network) PredictAll(inputs [][]float64, samples int, scale float64, progress func(int)) ([]Prediction, error) {
	ps := make([]Prediction, len(inputs))
	for i, in := range inputs {
		p, err := net.Predict(in, samples, scale)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to predict input %d", i)
		}

		ps[i] = p
		if progress != nil {
			progress(i)
		}
	}

	return ps, nil
}

// Evaluate estimates the confidence interval coverage of the data. The weights are drawn once per
// sample and used for all of the data. The confidence interval of each output is the sample
// mean ± stdMultiplier times the (unbiased) sample standard deviation.
func (net *Network) Evaluate(data DataSupplier, samples int, stdMultiplier float64) (Coverage, error) {
	_, cov, err := net.test(data, samples, stdMultiplier)
	return cov, err
}

// test returns the average cost of the mean prediction as well as the coverage of the given data
func (net *Network) test(data DataSupplier, samples int, stdMultiplier float64) (float64, Coverage, error) {
	if data == nil {
		return 0, Coverage{}, errors.Errorf("Data is nil")
	} else if data.Len() == 0 {
		return 0, Coverage{}, errors.Errorf("Data is empty")
	}

	inputs := make([][]float64, data.Len())
	targets := make([][]float64, data.Len())
	for i := range inputs {
		d, err := data.Get(i)
		if err != nil {
			return 0, Coverage{}, errors.Wrapf(err, "Failed to get data %d", i)
		} else if !d.Fits(net) {
			return 0, Coverage{}, errors.Errorf("Data %d does not fit Network", i)
		}

		inputs[i], targets[i] = d.Inputs, d.Outputs
	}

	draws, err := net.Sample(inputs, samples)
	if err != nil {
		return 0, Coverage{}, err
	}

	var within, under, over int
	var cost float64
	column := make([]float64, samples)
	means := make([]float64, net.OutputSize())

	for i := range inputs {
		for o := range means {
			for s := range draws {
				column[s] = draws[s][i][o]
			}

			var mean, std float64
			if samples == 1 {
				mean = column[0]
			} else {
				mean, std = stat.MeanStdDev(column, nil)
			}
			means[o] = mean

			upper := mean + stdMultiplier*std
			lower := mean - stdMultiplier*std
			t := targets[i][o]

			if t <= upper {
				under++
			}
			if t >= lower {
				over++
			}
			if t <= upper && t >= lower {
				within++
			}
		}

		cost += net.cf.Cost(means, targets[i])
	}

	total := float64(len(inputs) * len(means))
	cov := Coverage{
		Within:     float64(within) / total,
		UnderUpper: float64(under) / total,
		OverLower:  float64(over) / total,
	}

	return cost / float64(len(inputs)), cov, nil
}
