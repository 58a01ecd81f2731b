// Package checkpoint saves trained regressors together with the metadata needed to use them.
// A checkpoint is a JSON document, compressed with zlib when its path ends in ".zlib".
package checkpoint

import (
	"compress/zlib"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
	"github.com/geobnn/bnn/internal/dataset"

	// registers every type that a regressor can be built from
	_ "github.com/geobnn/bnn/regressor"
)

// Checkpoint is a trained network and how it was trained
type Checkpoint struct {
	ID      uuid.UUID `json:"id"`
	Created time.Time `json:"created"`

	Epochs        int     `json:"epochs"`
	BatchSize     int     `json:"batch_size"`
	LearningRate  float64 `json:"learning_rate"`
	LambdaFitLoss float64 `json:"lambda_fit_loss"`
	ELBOKLD       float64 `json:"elbo_kld"`
	ELBOSamples   int     `json:"elbo_samples"`

	LatentKey   string   `json:"latent_key"`
	LatentNames []string `json:"latent_names"`
	TargetKey   string   `json:"target_key"`
	Targets     []string `json:"targets"`
	OutputType  string   `json:"output_type"`

	// InputScaler and TargetScaler are nil if the data was not standardized
	InputScaler  *dataset.Scaler `json:"input_scaler,omitempty"`
	TargetScaler *dataset.Scaler `json:"target_scaler,omitempty"`

	Network *bnn.State `json:"network"`
}

// New captures the current state of the network under a fresh run ID
func New(net *bnn.Network) (*Checkpoint, error) {
	st, err := net.State()
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to get network state")
	}

	return &Checkpoint{
		ID:      uuid.New(),
		Created: time.Now().UTC(),
		Network: st,
	}, nil
}

// Update replaces the stored network state, keeping the run ID
func (c *Checkpoint) Update(net *bnn.Network) error {
	st, err := net.State()
	if err != nil {
		return errors.Wrapf(err, "Failed to get network state")
	}

	c.Network = st
	return nil
}

// Net rebuilds the stored network
func (c *Checkpoint) Net() (*bnn.Network, error) {
	if c.Network == nil {
		return nil, errors.Errorf("Checkpoint %s has no network", c.ID)
	}

	net, err := bnn.FromState(c.Network)
	return net, errors.Wrapf(err, "Failed to rebuild network from checkpoint %s", c.ID)
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".zlib")
}

// Save writes the checkpoint to path. Existing files are only replaced if overwrite is true.
func (c *Checkpoint) Save(path string, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return errors.Wrapf(err, "Failed to create checkpoint %q", path)
	}

	if err = c.write(f, compressed(path)); err != nil {
		f.Close()
		return errors.Wrapf(err, "Failed to save checkpoint %q", path)
	}

	return errors.Wrapf(f.Close(), "Failed to close checkpoint %q", path)
}

func (c *Checkpoint) write(w io.Writer, compress bool) error {
	if !compress {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(c)
	}

	zw := zlib.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(c); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Load reads the checkpoint at path
func Load(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open checkpoint %q", path)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed(path) {
		zr, err := zlib.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to decompress checkpoint %q", path)
		}
		defer zr.Close()
		r = zr
	}

	c := new(Checkpoint)
	if err = json.NewDecoder(r).Decode(c); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode checkpoint %q", path)
	} else if c.Network == nil {
		return nil, errors.Errorf("Checkpoint %q has no network", path)
	}

	return c, nil
}
