// Package metrics scores predictions against measured targets
package metrics

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scores are the error metrics of a single output
type Scores struct {
	RMSE float64
	MAE  float64
	R2   float64
}

// Score compares each column of the predicted means with the same column of the targets
func Score(means, targets [][]float64) ([]Scores, error) {
	if len(means) != len(targets) {
		return nil, errors.Errorf("Have %d predictions for %d targets", len(means), len(targets))
	} else if len(means) == 0 {
		return nil, errors.Errorf("Nothing to score")
	}

	outs := len(targets[0])
	scores := make([]Scores, outs)

	pred := make([]float64, len(means))
	obs := make([]float64, len(means))
	for j := 0; j < outs; j++ {
		for i := range means {
			if len(means[i]) != outs || len(targets[i]) != outs {
				return nil, errors.Errorf("Row %d has %d predictions and %d targets, expected %d", i, len(means[i]), len(targets[i]), outs)
			}
			pred[i], obs[i] = means[i][j], targets[i][j]
		}

		scores[j] = Scores{
			RMSE: RMSE(pred, obs),
			MAE:  MAE(pred, obs),
			R2:   stat.RSquaredFrom(pred, obs, nil),
		}
	}

	return scores, nil
}

// RMSE is the root mean squared error
func RMSE(pred, obs []float64) float64 {
	return floats.Distance(pred, obs, 2) / math.Sqrt(float64(len(pred)))
}

// MAE is the mean absolute error
func MAE(pred, obs []float64) float64 {
	return floats.Distance(pred, obs, 1) / float64(len(pred))
}
