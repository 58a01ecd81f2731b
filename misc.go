package bnn

import (
	"github.com/pkg/errors"
)

// TrainUntil returns a function that satisfies TrainArgs.RunCondition, stopping training once the
// given number of iterations has been reached.
func TrainUntil(maxIterations int) func(int) bool {
	return func(iteration int) bool {
		return iteration < maxIterations
	}
}

// returns a function that satisfies TrainArgs.SendStatus or TrainArgs.ShouldTest
// 'frequency' is in units of iterations
//
// this function is self-explanatory from viewing the source
func Every(frequency int) func(int) bool {
	if frequency <= 0 {
		return func(int) bool { return false }
	}

	return func(iteration int) bool {
		return iteration%frequency == 0
	}
}

// Datums is a DataSupplier backed by a slice
type Datums []Datum

// Get returns the Datum at the index. It never returns an error for indexes in range.
func (ds Datums) Get(index int) (Datum, error) {
	if index < 0 || index >= len(ds) {
		return Datum{}, errors.Errorf("Index %d out of range [0, %d)", index, len(ds))
	}

	return ds[index], nil
}

// Len returns the length of the slice
func (ds Datums) Len() int {
	return len(ds)
}

// Data converts a list of {inputs, outputs} pairs into a DataSupplier. Each element of data must
// have length 2.
func Data(data [][][]float64) (DataSupplier, error) {
	ds := make(Datums, len(data))
	for i, d := range data {
		if len(d) != 2 {
			return nil, errors.Errorf("Data %d has %d parts, expected 2 (inputs and outputs)", i, len(d))
		}

		ds[i] = Datum{Inputs: d[0], Outputs: d[1]}
	}

	return ds, nil
}
