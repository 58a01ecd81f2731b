package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	targets := [][]float64{{1, 0}, {2, 0}, {3, 0}, {4, 0}}
	means := [][]float64{{1, 1}, {2, -1}, {3, 1}, {4, -1}}

	s, err := Score(means, targets)
	require.NoError(t, err)
	require.Len(t, s, 2)

	require.Equal(t, Scores{RMSE: 0, MAE: 0, R2: 1}, s[0])
	require.InDelta(t, 1, s[1].RMSE, 1e-12)
	require.InDelta(t, 1, s[1].MAE, 1e-12)
}

func TestErrorMetrics(t *testing.T) {
	pred := []float64{1, 2, 3}
	obs := []float64{2, 2, 6}

	require.InDelta(t, 4.0/3, MAE(pred, obs), 1e-12)
	require.InDelta(t, 1.825742, RMSE(pred, obs), 1e-6)
}

func TestScoreErrors(t *testing.T) {
	_, err := Score([][]float64{{1}}, nil)
	require.Error(t, err)

	_, err = Score(nil, nil)
	require.Error(t, err)

	_, err = Score([][]float64{{1}, {1, 2}}, [][]float64{{1}, {1}})
	require.Error(t, err)
}
