package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geobnn/bnn/internal/checkpoint"
	"github.com/geobnn/bnn/internal/config"
	"github.com/geobnn/bnn/internal/console"
)

func TestMain(m *testing.M) {
	console.SetOutput(io.Discard, false)
	os.Exit(m.Run())
}

// writeSurvey writes rows of latents and a depth that is linear in them, plus one unusable row
func writeSurvey(t *testing.T, dir string, rows, latents int) string {
	return writeSurveyNamed(t, dir, "latent_", rows, latents)
}

// writeSurveyNamed is writeSurvey with the latent columns named prefix0, prefix1...
func writeSurveyNamed(t *testing.T, dir, prefix string, rows, latents int) string {
	var b strings.Builder

	b.WriteString("id,northing")
	for j := 0; j < latents; j++ {
		fmt.Fprintf(&b, ",%s%d", prefix, j)
	}
	b.WriteString(",depth\n")

	for i := 0; i < rows; i++ {
		x := float64(i)/float64(rows) - 0.5
		fmt.Fprintf(&b, "r%d,%d", i, 100+i)
		for j := 0; j < latents; j++ {
			fmt.Fprintf(&b, ",%v", x*float64(j+1))
		}
		fmt.Fprintf(&b, ",%v\n", 20+3*x)
	}
	b.WriteString("bad,0" + strings.Repeat(",NaN", latents) + ",NaN\n")

	path := filepath.Join(dir, fmt.Sprintf("survey_%s%d.csv", prefix, latents))
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func testConfig() config.Config {
	c := config.Default()
	c.Data.TargetKey = "depth"
	c.Data.Standardize = true
	c.Model.Hidden = 8
	c.Train.Epochs = 5
	c.Train.BatchSize = 8
	c.Train.TestEvery = 5
	c.Train.StatusEvery = 5
	c.Train.TestSamples = 5
	c.Predict.Samples = 5
	return c
}

func TestTrainPredictValidate(t *testing.T) {
	dir := t.TempDir()
	data := writeSurvey(t, dir, 40, 2)
	network := filepath.Join(dir, "network.json.zlib")
	c := testConfig()

	ck, err := Train(c, Options{Data: data, Network: network, PlotDir: filepath.Join(dir, "plots")})
	require.NoError(t, err)
	require.Equal(t, 5, ck.Epochs)
	require.Equal(t, []string{"depth"}, ck.Targets)
	require.Equal(t, []string{"latent_0", "latent_1"}, ck.LatentNames)
	require.NotNil(t, ck.InputScaler)
	require.NotNil(t, ck.TargetScaler)
	// 30 training rows in batches of 8
	require.Equal(t, 20, ck.Network.Iter)
	require.FileExists(t, filepath.Join(dir, "plots", "loss.png"))

	saved, err := checkpoint.Load(network)
	require.NoError(t, err)
	require.Equal(t, ck.ID, saved.ID)

	out := filepath.Join(dir, "predictions.csv")
	path, preds, err := Predict(c, Options{Data: data, Network: network, Output: out})
	require.NoError(t, err)
	require.Equal(t, out, path)
	require.Len(t, preds, 40)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 41)
	// columns are named after the target key
	require.Equal(t, []string{"index", "id", "northing", "depth", "pred_depth_0", "std_depth_0"}, recs[0])
	require.Equal(t, []string{"39", "r39"}, recs[40][:2])

	v, err := Validate(c, Options{Data: data, Network: network, PlotDir: filepath.Join(dir, "plots")})
	require.NoError(t, err)
	require.Len(t, v.Scores, 1)
	require.GreaterOrEqual(t, v.Scores[0].RMSE, 0.0)
	require.GreaterOrEqual(t, v.Coverage.UnderUpper, v.Coverage.Within)
	require.GreaterOrEqual(t, v.Coverage.OverLower, v.Coverage.Within)
	require.LessOrEqual(t, v.Coverage.Within, 1.0)
	require.FileExists(t, filepath.Join(dir, "plots", "errorbars_0.png"))
}

func TestTrainResume(t *testing.T) {
	dir := t.TempDir()
	data := writeSurvey(t, dir, 40, 2)
	network := filepath.Join(dir, "network.json")
	c := testConfig()

	first, err := Train(c, Options{Data: data, Network: network})
	require.NoError(t, err)

	c.Train.Epochs = 2
	second, err := Train(c, Options{Data: data, Network: network, Resume: true})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 7, second.Epochs)
	require.Equal(t, 28, second.Network.Iter)
	require.Equal(t, first.InputScaler, second.InputScaler)
}

func TestPredictRejectsWrongLatentSize(t *testing.T) {
	dir := t.TempDir()
	network := filepath.Join(dir, "network.json")
	c := testConfig()

	_, err := Train(c, Options{Data: writeSurvey(t, dir, 20, 2), Network: network})
	require.NoError(t, err)

	_, _, err = Predict(c, Options{Data: writeSurvey(t, dir, 20, 3), Network: network, Output: filepath.Join(dir, "out.csv")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Latent vector length 3")
}

func TestMissingFiles(t *testing.T) {
	dir := t.TempDir()
	c := testConfig()
	data := writeSurvey(t, dir, 20, 2)
	missing := filepath.Join(dir, "missing")

	_, err := Train(c, Options{Data: missing, Network: filepath.Join(dir, "n.json")})
	require.Error(t, err)

	_, err = Train(c, Options{Data: data, Network: missing, Resume: true})
	require.Error(t, err)

	_, _, err = Predict(c, Options{Data: data, Network: missing})
	require.Error(t, err)

	_, err = Validate(c, Options{Data: data, Network: missing})
	require.Error(t, err)

	c.Data.TargetKey = ""
	_, err = Train(c, Options{Data: data, Network: filepath.Join(dir, "n.json")})
	require.Error(t, err, "no target key")
}

func TestPredictColumnKey(t *testing.T) {
	dir := t.TempDir()
	data := writeSurvey(t, dir, 20, 2)
	network := filepath.Join(dir, "network.json")
	c := testConfig()

	_, err := Train(c, Options{Data: data, Network: network})
	require.NoError(t, err)

	header := func(c config.Config, name string) []string {
		out := filepath.Join(dir, name)
		_, _, err := Predict(c, Options{Data: data, Network: network, Output: out})
		require.NoError(t, err)

		f, err := os.Open(out)
		require.NoError(t, err)
		defer f.Close()

		rec, err := csv.NewReader(f).Read()
		require.NoError(t, err)
		return rec[len(rec)-2:]
	}

	require.Equal(t, []string{"pred_depth_0", "std_depth_0"}, header(c, "target.csv"))

	c.Data.TargetKey = ""
	require.Equal(t, []string{"pred_predicted_0", "std_predicted_0"}, header(c, "default.csv"))

	c.Predict.Key = "porosity"
	require.Equal(t, []string{"pred_porosity_0", "std_porosity_0"}, header(c, "named.csv"))

	out := filepath.Join(dir, "validated.csv")
	_, err = Validate(c, Options{Data: data, Network: network, Output: out})
	require.NoError(t, err)
	bs, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, strings.SplitN(string(bs), "\n", 2)[0], "pred_depth_0", "validate falls back to the trained target key")
}

func TestPredictUsesTrainedLatentKey(t *testing.T) {
	dir := t.TempDir()
	data := writeSurveyNamed(t, dir, "h", 20, 2)
	network := filepath.Join(dir, "network.json")

	c := testConfig()
	c.Data.LatentKey = "^h[0-9]+$"
	ck, err := Train(c, Options{Data: data, Network: network})
	require.NoError(t, err)
	require.Equal(t, []string{"h0", "h1"}, ck.LatentNames)

	// nothing matches the default latent key, so the checkpoint's is used
	c = testConfig()
	c.Data.TargetKey = ""
	_, preds, err := Predict(c, Options{Data: data, Network: network, Output: filepath.Join(dir, "out.csv")})
	require.NoError(t, err)
	require.Len(t, preds, 20)

	// an explicit key still wins
	c.Data.LatentKey = "^northing$"
	_, _, err = Predict(c, Options{Data: data, Network: network, Output: filepath.Join(dir, "out.csv")})
	require.Error(t, err)
}
