package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes each column to zero mean and unit variance. Columns with no variance are
// only centered.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// FitScaler computes the per-column population mean and standard deviation of rows
func FitScaler(rows [][]float64) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, errors.Errorf("Cannot fit scaler to zero rows")
	}

	cols := len(rows[0])
	s := &Scaler{Mean: make([]float64, cols), Std: make([]float64, cols)}

	col := make([]float64, len(rows))
	for j := 0; j < cols; j++ {
		for i, r := range rows {
			if len(r) != cols {
				return nil, errors.Errorf("Row %d has %d columns, expected %d", i, len(r), cols)
			}
			col[i] = r[j]
		}

		s.Mean[j], s.Std[j] = stat.PopMeanStdDev(col, nil)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}

	return s, nil
}

func (s *Scaler) check(row []float64) error {
	if len(row) != len(s.Mean) {
		return errors.Errorf("Scaler fitted to %d columns, got %d", len(s.Mean), len(row))
	}
	return nil
}

// Transform returns standardized copies of rows
func (s *Scaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		if err := s.check(r); err != nil {
			return nil, errors.Wrapf(err, "Row %d", i)
		}

		out[i] = make([]float64, len(r))
		floats.SubTo(out[i], r, s.Mean)
		floats.Div(out[i], s.Std)
	}
	return out, nil
}

// Inverse maps a standardized mean and standard deviation back to the original units, in place
func (s *Scaler) Inverse(mean, std []float64) error {
	if err := s.check(mean); err != nil {
		return err
	} else if err := s.check(std); err != nil {
		return err
	}

	floats.Mul(mean, s.Std)
	floats.Add(mean, s.Mean)
	floats.Mul(std, s.Std)
	return nil
}
