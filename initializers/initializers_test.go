package initializers

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/geobnn/bnn"
)

func TestNormal(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	n := Normal().Mean(-7).SD(0.1)

	vs := make([]float64, 5000)
	for i := range vs {
		vs[i] = n.Gen(r)
	}

	mean, std := stat.MeanStdDev(vs, nil)
	require.InDelta(t, -7, mean, 0.01)
	require.InDelta(t, 0.1, std, 0.01)
}

func TestRandomFollowsSeed(t *testing.T) {
	draw := func() []float64 {
		net := new(bnn.Network).SetSeed(9)
		in, err := net.AddInput("in", 1)
		require.NoError(t, err)

		ws := make([]float64, 4)
		Random(Normal()).Set(in, ws)
		return ws
	}

	a, b := draw(), draw()
	require.Equal(t, a, b)
	require.NotEqual(t, a[0], a[1])
}
