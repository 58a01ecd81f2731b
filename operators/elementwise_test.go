package operators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementwiseDerivs(t *testing.T) {
	const h = 1e-6

	names := []string{"logistic", "tanh", "softsign", "relu", "leaky-relu", "elu", "softplus", "identity"}
	for _, name := range names {
		op, err := ActivationByName(name)
		require.NoError(t, err)

		f := op.(elementwise)
		require.Equal(t, name == "identity", f.TypeString() == "identity")

		for _, x := range []float64{-2.5, -0.3, 0.4, 3} {
			numeric := (f.Value(x+h) - f.Value(x-h)) / (2 * h)
			require.InDelta(t, numeric, f.Deriv(x, f.Value(x)), 1e-5, "%s at %v", name, x)
		}
	}
}

func TestActivationByNameUnknown(t *testing.T) {
	_, err := ActivationByName("swish")
	require.Error(t, err)
}

func TestSoftplusLarge(t *testing.T) {
	require.Equal(t, 100.0, softplus(100))
	require.InDelta(t, 0.6931471805599453, softplus(0), 1e-15)
}
