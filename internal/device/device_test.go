package device

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	d := Select(-1, false)
	require.False(t, d.Fallback)
	require.NotEmpty(t, d.Name)
	require.GreaterOrEqual(t, d.Threads, 1)
	require.GreaterOrEqual(t, d.Cores, 1)
	require.Contains(t, d.String(), d.Name)

	require.True(t, Select(0, false).Fallback)
	require.False(t, Select(0, true).Fallback)
}
