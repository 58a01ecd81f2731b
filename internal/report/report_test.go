package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/geobnn/bnn"
	"github.com/geobnn/bnn/internal/dataset"
)

func table(t *testing.T) *dataset.Table {
	tb, err := dataset.Read(strings.NewReader("id,northing,latent_0,latent_1\nx,10,0.1,0.2\ny,20,0.3,0.4\n"), "latent_", "")
	require.NoError(t, err)
	return tb
}

func TestPredictionsName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	require.Equal(t, "20240309_140507_bnn_predictions.csv", PredictionsName(ts))
}

func TestWritePredictions(t *testing.T) {
	preds := []bnn.Prediction{
		{Mean: []float64{1.5, 2}, Std: []float64{0.1, 0.2}},
		{Mean: []float64{-1, 0}, Std: []float64{0.3, 0}},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePredictions(&buf, table(t), "depth", preds))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"index", "id", "northing", "pred_depth_0", "pred_depth_1", "std_depth_0", "std_depth_1"},
		{"0", "x", "10", "1.5", "2", "0.1", "0.2"},
		{"1", "y", "20", "-1", "0", "0.3", "0"},
	}, recs)
}

func TestWritePredictionsErrors(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WritePredictions(&buf, table(t), "k", []bnn.Prediction{{Mean: []float64{1}, Std: []float64{1}}}))

	ragged := []bnn.Prediction{
		{Mean: []float64{1}, Std: []float64{1}},
		{Mean: []float64{1, 2}, Std: []float64{1, 2}},
	}
	require.Error(t, WritePredictions(&buf, table(t), "k", ragged))
}

func TestSavePredictions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	preds := []bnn.Prediction{{Mean: []float64{1}, Std: []float64{0}}, {Mean: []float64{2}, Std: []float64{0}}}
	require.NoError(t, SavePredictions(path, table(t), "k", preds))

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(bs), "index,id,northing,pred_k_0,std_k_0\n"))
}

func TestPlots(t *testing.T) {
	dir := t.TempDir()

	results := []bnn.Result{
		{Kind: bnn.StatusResult, Iteration: 5, Loss: 4},
		{Kind: bnn.EpochResult, Iteration: 10, Loss: 3},
		{Kind: bnn.EpochResult, Iteration: 20, Loss: 2},
		{Kind: bnn.TestResult, Iteration: 20, Cost: 2.5},
	}
	loss := filepath.Join(dir, "loss.png")
	require.NoError(t, LossCurve(loss, results))
	require.FileExists(t, loss)

	require.Error(t, LossCurve(filepath.Join(dir, "empty.png"), results[:1]), "no epochs")

	preds := []bnn.Prediction{
		{Mean: []float64{1.1}, Std: []float64{0.1}},
		{Mean: []float64{1.9}, Std: []float64{0.3}},
	}
	bars := filepath.Join(dir, "bars.png")
	require.NoError(t, ErrorBars(bars, "depth", []float64{1, 2}, preds, 0, 2))
	require.FileExists(t, bars)

	require.Error(t, ErrorBars(bars, "depth", []float64{1}, preds, 0, 2))
	require.Error(t, ErrorBars(bars, "depth", []float64{1, 2}, preds, 1, 2))
}
