package console

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	buf := new(bytes.Buffer)
	SetOutput(buf, false)
	t.Cleanup(func() { SetOutput(os.Stdout, true) })
	return buf
}

func TestLevels(t *testing.T) {
	buf := capture(t)

	Info("Latent dimensions:", 16)
	Warn("Output file", "x.csv", "exists")
	Error("broken")

	require.Equal(t, " INFO ▸ Latent dimensions: 16\n WARN ▸ Output file x.csv exists\n ERROR ▸ broken\n", buf.String())
}

func TestQuit(t *testing.T) {
	buf := capture(t)

	var code int
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	Quit("No pre-trained network found at:", "net.json")
	require.Equal(t, 1, code)
	require.Contains(t, buf.String(), "Reason: No pre-trained network found at: net.json")
}

func TestProgress(t *testing.T) {
	buf := capture(t)

	Progress(5, 10)
	require.Contains(t, buf.String(), "50.0% Complete")
	require.False(t, strings.HasSuffix(buf.String(), "\n"))

	Progress(10, 10)
	require.True(t, strings.HasSuffix(buf.String(), "100.0% Complete\n"))
}
