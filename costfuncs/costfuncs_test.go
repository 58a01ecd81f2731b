package costfuncs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geobnn/bnn"
)

// numericDerivs estimates the derivatives of the cost by central differences
func numericDerivs(cf bnn.CostFunction, outs, targets []float64) []float64 {
	const h = 1e-6

	ds := make([]float64, len(outs))
	for i := range outs {
		x := outs[i]
		outs[i] = x + h
		plus := cf.Cost(outs, targets)
		outs[i] = x - h
		minus := cf.Cost(outs, targets)
		outs[i] = x

		ds[i] = (plus - minus) / (2 * h)
	}
	return ds
}

func TestCosts(t *testing.T) {
	outs := []float64{1, -2, 0.5}
	targets := []float64{0, 1, 0.25}

	require.InDelta(t, (1+9+0.0625)/3, MSE().Cost(outs, targets), 1e-12)
	require.InDelta(t, (1+3+0.25)/3, Abs().Cost(outs, targets), 1e-12)
	require.InDelta(t, (0.5+(3-0.5)+0.5*0.0625)/3, Huber(1).Cost(outs, targets), 1e-12)
}

func TestDerivsMatchCost(t *testing.T) {
	outs := []float64{1, -2, 0.5, 3}
	targets := []float64{0, 1, 0.25, 2.5}

	for _, cf := range []bnn.CostFunction{MSE(), Huber(0.75), Abs()} {
		got := cf.Derivs(outs, targets)
		want := numericDerivs(cf, outs, targets)

		require.InDeltaSlice(t, want, got, 1e-6, cf.TypeString())
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]string{"mse": "mse", "l2": "mse", "huber": "huber", "abs": "abs", "l1": "abs"} {
		cf, err := ByName(name, 0)
		require.NoError(t, err)
		require.Equal(t, want, cf.TypeString())
	}

	_, err := ByName("crossentropy", 0)
	require.Error(t, err)
}

func TestByNameHuberDelta(t *testing.T) {
	cf, err := ByName("huber", 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, cf.(*huber).Delta)

	cf, err = ByName("huber", 0.25)
	require.NoError(t, err)
	require.Equal(t, 0.25, cf.(*huber).Delta)

	// |d| = 0.5 is past δ = 0.25, so the loss is linear there
	require.InDelta(t, 0.25*0.5-0.5*0.25*0.25, cf.Cost([]float64{0.5}, []float64{0}), 1e-12)

	_, err = ByName("huber", -1)
	require.Error(t, err)
}
