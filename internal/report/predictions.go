// Package report writes the outputs of the command line tools: prediction tables and plots.
package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
	"github.com/geobnn/bnn/internal/dataset"
)

// PredictionsName gives the default name of a predictions file created at t
func PredictionsName(t time.Time) string {
	return t.Format("20060102_150405") + "_bnn_predictions.csv"
}

// Header returns the column names of a predictions table: the row index, the identifier, the
// metadata, then the predicted means and standard deviations of each output.
func Header(tb *dataset.Table, key string, outputs int) []string {
	h := make([]string, 0, 2+len(tb.MetaNames)+2*outputs)
	h = append(h, "index", tb.IDName)
	h = append(h, tb.MetaNames...)
	for i := 0; i < outputs; i++ {
		h = append(h, "pred_"+key+"_"+strconv.Itoa(i))
	}
	for i := 0; i < outputs; i++ {
		h = append(h, "std_"+key+"_"+strconv.Itoa(i))
	}
	return h
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WritePredictions writes one row per prediction, in the order of the table's rows
func WritePredictions(w io.Writer, tb *dataset.Table, key string, preds []bnn.Prediction) error {
	if len(preds) != tb.Len() {
		return errors.Errorf("Have %d predictions for %d rows", len(preds), tb.Len())
	} else if len(preds) == 0 {
		return errors.Errorf("No predictions to write")
	}

	outputs := len(preds[0].Mean)

	cw := csv.NewWriter(w)
	if err := cw.Write(Header(tb, key, outputs)); err != nil {
		return errors.Wrapf(err, "Failed to write header")
	}

	rec := make([]string, 0, 2+len(tb.MetaNames)+2*outputs)
	for i, p := range preds {
		if len(p.Mean) != outputs || len(p.Std) != outputs {
			return errors.Errorf("Prediction %d has %d means and %d deviations, expected %d", i, len(p.Mean), len(p.Std), outputs)
		}

		rec = append(rec[:0], strconv.Itoa(i), tb.IDs[i])
		rec = append(rec, tb.Meta[i]...)
		for _, m := range p.Mean {
			rec = append(rec, formatFloat(m))
		}
		for _, s := range p.Std {
			rec = append(rec, formatFloat(s))
		}

		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "Failed to write row %d", i)
		}
	}

	cw.Flush()
	return errors.Wrapf(cw.Error(), "Failed to flush predictions")
}

// SavePredictions writes the predictions to the file at path, replacing it if it exists
func SavePredictions(path string, tb *dataset.Table, key string, preds []bnn.Prediction) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create %q", path)
	}

	if err = WritePredictions(f, tb, key, preds); err != nil {
		f.Close()
		return errors.Wrapf(err, "Failed to save predictions to %q", path)
	}

	return errors.Wrapf(f.Close(), "Failed to close %q", path)
}
