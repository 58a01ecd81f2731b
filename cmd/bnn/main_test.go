package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"train": {"epochs": 7, "batch_size": 4}, "data": {"target_key": "depth"}}`), 0644))

	f := newFlags("train")
	require.NoError(t, f.fs.Parse([]string{"-config", path, "-epochs", "3", "-gpu", "1", "-output-type", "sigmoid", "-scale", "0.5"}))

	c, err := f.load()
	require.NoError(t, err)
	require.Equal(t, 3, c.Train.Epochs, "flag wins over file")
	require.Equal(t, 4, c.Train.BatchSize, "file wins over default")
	require.Equal(t, "depth", c.Data.TargetKey)
	require.Equal(t, 1, c.Device.GPU)
	require.Equal(t, "sigmoid", c.Model.OutputType)
	require.Equal(t, 0.5, c.Predict.Scale)
	require.Equal(t, 0.01, c.Train.LearningRate, "unset flags keep the default")
}

func TestZeroSamplesAndScaleKeepConfig(t *testing.T) {
	f := newFlags("predict")
	require.NoError(t, f.fs.Parse([]string{"-samples", "0", "-scale", "0"}))

	c, err := f.load()
	require.NoError(t, err)
	require.Equal(t, 20, c.Predict.Samples)
	require.Equal(t, 1.0, c.Predict.Scale)

	f = newFlags("predict")
	require.NoError(t, f.fs.Parse([]string{"-samples", "5", "-scale", "2.5"}))
	c, err = f.load()
	require.NoError(t, err)
	require.Equal(t, 5, c.Predict.Samples)
	require.Equal(t, 2.5, c.Predict.Scale)
}

func TestLoadRejectsInvalid(t *testing.T) {
	f := newFlags("train")
	require.NoError(t, f.fs.Parse([]string{"-batch", "0"}))

	_, err := f.load()
	require.Error(t, err)
}

func TestRunErrors(t *testing.T) {
	require.Error(t, run("train", []string{"-network", "n.json"}), "no data")
	require.Error(t, run("predict", []string{"-latent", "d.csv"}), "no network")
	require.Error(t, run("frobnicate", []string{"-latent", "d.csv", "-network", "n.json"}))
}
