// Package dataset reads survey tables from CSV. The first column of a table identifies each row;
// latent and target columns are picked out by regular expressions over the header.
package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/geobnn/bnn"
)

// Table is a parsed dataset. Rows with a missing or non-finite latent or target value are not
// present.
type Table struct {
	// IDName is the header of the identifier column
	IDName string

	// MetaNames are the headers of every column that is neither the identifier nor a latent
	MetaNames []string

	LatentNames []string
	TargetNames []string

	IDs     []string
	Meta    [][]string
	Latents [][]float64

	// Targets is nil when no target key was given
	Targets [][]float64

	// Dropped is the number of rows skipped while loading
	Dropped int
}

// Load reads the CSV file at path. A blank targetKey loads no targets.
func Load(path, latentKey, targetKey string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open dataset %q", path)
	}
	defer f.Close()

	t, err := Read(f, latentKey, targetKey)
	return t, errors.Wrapf(err, "Failed to load dataset %q", path)
}

// Read parses a CSV document, as in Load
func Read(r io.Reader, latentKey, targetKey string) (*Table, error) {
	latentRe, err := regexp.Compile(latentKey)
	if err != nil {
		return nil, errors.Wrapf(err, "Bad latent key %q", latentKey)
	}

	var targetRe *regexp.Regexp
	if targetKey != "" {
		if targetRe, err = regexp.Compile(targetKey); err != nil {
			return nil, errors.Wrapf(err, "Bad target key %q", targetKey)
		}
	}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Errorf("Dataset is empty")
	} else if err != nil {
		return nil, errors.Wrapf(err, "Failed to read header")
	} else if len(header) < 2 {
		return nil, errors.Errorf("Dataset must have an identifier column and at least one other (has %d)", len(header))
	}

	t := &Table{IDName: header[0]}

	var latentCols, targetCols, metaCols []int
	for i, name := range header[1:] {
		col := i + 1

		if latentRe.MatchString(name) {
			latentCols = append(latentCols, col)
			t.LatentNames = append(t.LatentNames, name)
			continue
		}

		metaCols = append(metaCols, col)
		t.MetaNames = append(t.MetaNames, name)

		if targetRe != nil && targetRe.MatchString(name) {
			targetCols = append(targetCols, col)
			t.TargetNames = append(t.TargetNames, name)
		}
	}

	if len(latentCols) == 0 {
		return nil, errors.Errorf("No columns match latent key %q", latentKey)
	} else if targetRe != nil && len(targetCols) == 0 {
		return nil, errors.Errorf("No columns match target key %q", targetKey)
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrapf(err, "Failed to read line %d", line)
		}

		latents, ok := parseRow(rec, latentCols)
		if !ok {
			t.Dropped++
			continue
		}

		var targets []float64
		if targetRe != nil {
			if targets, ok = parseRow(rec, targetCols); !ok {
				t.Dropped++
				continue
			}
		}

		meta := make([]string, len(metaCols))
		for i, c := range metaCols {
			meta[i] = rec[c]
		}

		t.IDs = append(t.IDs, rec[0])
		t.Meta = append(t.Meta, meta)
		t.Latents = append(t.Latents, latents)
		if targetRe != nil {
			t.Targets = append(t.Targets, targets)
		}
	}

	return t, nil
}

// parseRow returns false if any of the columns is not a finite number
func parseRow(rec []string, cols []int) ([]float64, bool) {
	vs := make([]float64, len(cols))
	for i, c := range cols {
		v, err := strconv.ParseFloat(rec[c], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		vs[i] = v
	}
	return vs, true
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.IDs)
}

// HasTargets returns whether the table was loaded with a target key
func (t *Table) HasTargets() bool {
	return t.Targets != nil
}

// Datums pairs each latent vector with its targets
func (t *Table) Datums() (bnn.Datums, error) {
	if !t.HasTargets() {
		return nil, errors.Errorf("Dataset has no targets")
	}

	ds := make(bnn.Datums, t.Len())
	for i := range ds {
		ds[i] = bnn.Datum{Inputs: t.Latents[i], Outputs: t.Targets[i]}
	}
	return ds, nil
}

// Subset returns a table with only the given rows, in order. Row data is shared.
func (t *Table) Subset(rows []int) *Table {
	s := &Table{
		IDName:      t.IDName,
		MetaNames:   t.MetaNames,
		LatentNames: t.LatentNames,
		TargetNames: t.TargetNames,
		IDs:         make([]string, len(rows)),
		Meta:        make([][]string, len(rows)),
		Latents:     make([][]float64, len(rows)),
	}
	if t.HasTargets() {
		s.Targets = make([][]float64, len(rows))
	}

	for i, r := range rows {
		s.IDs[i] = t.IDs[r]
		s.Meta[i] = t.Meta[r]
		s.Latents[i] = t.Latents[r]
		if t.HasTargets() {
			s.Targets[i] = t.Targets[r]
		}
	}
	return s
}

// Split shuffles the rows with the seed and holds out testRatio of them. The test table is empty
// if testRatio is zero.
func (t *Table) Split(testRatio float64, seed uint64) (train, test *Table, err error) {
	if testRatio < 0 || testRatio >= 1 {
		return nil, nil, errors.Errorf("Test ratio must be in [0, 1) (%v)", testRatio)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(t.Len())

	nTest := int(float64(t.Len()) * testRatio)
	if nTest == t.Len() {
		return nil, nil, errors.Errorf("Test ratio %v leaves no training rows out of %d", testRatio, t.Len())
	}

	return t.Subset(perm[nTest:]), t.Subset(perm[:nTest]), nil
}
