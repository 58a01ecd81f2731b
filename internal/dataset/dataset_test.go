package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const survey = `id,northing,easting,depth,slope,latent_0,latent_1
a,1,2,10,0.1,0.5,0.25
b,3,4,NaN,0.2,0.1,0.2
c,5,6,30,0.3,,0.3
d,7,8,40,0.4,0.4,inf
e,9,10,50,0.5,-1,1
`

func TestReadSelectsColumns(t *testing.T) {
	tb, err := Read(strings.NewReader(survey), "latent_", "depth|slope")
	require.NoError(t, err)

	require.Equal(t, "id", tb.IDName)
	require.Equal(t, []string{"latent_0", "latent_1"}, tb.LatentNames)
	require.Equal(t, []string{"depth", "slope"}, tb.TargetNames)
	require.Equal(t, []string{"northing", "easting", "depth", "slope"}, tb.MetaNames)

	// b has a NaN target, c a missing latent, d an infinite latent
	require.Equal(t, []string{"a", "e"}, tb.IDs)
	require.Equal(t, 3, tb.Dropped)

	require.Equal(t, [][]float64{{0.5, 0.25}, {-1, 1}}, tb.Latents)
	require.Equal(t, [][]float64{{10, 0.1}, {50, 0.5}}, tb.Targets)
	require.Equal(t, []string{"9", "10", "50", "0.5"}, tb.Meta[1])

	ds, err := tb.Datums()
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	require.Equal(t, []float64{50, 0.5}, ds[1].Outputs)
}

func TestReadWithoutTargets(t *testing.T) {
	tb, err := Read(strings.NewReader(survey), "latent_", "")
	require.NoError(t, err)

	// the NaN in depth no longer matters
	require.Equal(t, []string{"a", "b", "e"}, tb.IDs)
	require.False(t, tb.HasTargets())

	_, err = tb.Datums()
	require.Error(t, err)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""), "latent_", "")
	require.Error(t, err)

	_, err = Read(strings.NewReader(survey), "h[0-9]", "")
	require.Error(t, err, "no latent columns")

	_, err = Read(strings.NewReader(survey), "latent_", "porosity")
	require.Error(t, err, "no target columns")

	_, err = Read(strings.NewReader(survey), "(", "")
	require.Error(t, err, "bad pattern")

	_, err = Read(strings.NewReader("id,latent_0\na,1,2\n"), "latent_", "")
	require.Error(t, err, "ragged rows")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(survey), 0644))

	tb, err := Load(path, "latent_", "depth")
	require.NoError(t, err)
	require.Equal(t, 2, tb.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), "latent_", "")
	require.Error(t, err)
}

func TestSplit(t *testing.T) {
	tb := &Table{}
	for i := 0; i < 20; i++ {
		tb.IDs = append(tb.IDs, string(rune('a'+i)))
		tb.Meta = append(tb.Meta, nil)
		tb.Latents = append(tb.Latents, []float64{float64(i)})
		tb.Targets = append(tb.Targets, []float64{float64(2 * i)})
	}

	train, test, err := tb.Split(0.25, 42)
	require.NoError(t, err)
	require.Equal(t, 15, train.Len())
	require.Equal(t, 5, test.Len())

	seen := map[string]bool{}
	for _, s := range []*Table{train, test} {
		for i, id := range s.IDs {
			require.False(t, seen[id])
			seen[id] = true
			require.Equal(t, 2*s.Latents[i][0], s.Targets[i][0], "rows stay paired")
		}
	}
	require.Len(t, seen, 20)

	again, _, err := tb.Split(0.25, 42)
	require.NoError(t, err)
	require.Equal(t, train.IDs, again.IDs)

	_, _, err = tb.Split(1, 42)
	require.Error(t, err)
}

func TestScaler(t *testing.T) {
	rows := [][]float64{{1, 5}, {3, 5}, {5, 5}}

	s, err := FitScaler(rows)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 5}, s.Mean)
	require.InDelta(t, 1.632993, s.Std[0], 1e-6)
	require.Equal(t, 1.0, s.Std[1], "constant columns are only centered")

	out, err := s.Transform(rows)
	require.NoError(t, err)
	require.InDelta(t, 0, out[1][0], 1e-12)
	require.InDelta(t, -out[0][0], out[2][0], 1e-12)
	require.Equal(t, 1.0, rows[0][0], "input is not modified")

	mean, std := []float64{out[2][0], 0}, []float64{1, 2}
	require.NoError(t, s.Inverse(mean, std))
	require.InDelta(t, 5, mean[0], 1e-12)
	require.InDelta(t, s.Std[0], std[0], 1e-12)
	require.Equal(t, 2.0, std[1])

	_, err = s.Transform([][]float64{{1}})
	require.Error(t, err)

	_, err = FitScaler(nil)
	require.Error(t, err)
}
