// Package console prints the coloured, levelled messages of the command line tools.
package console

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const (
	blue   = "\033[94m"
	green  = "\033[92m"
	yellow = "\033[93m"
	red    = "\033[91m"
	end    = "\033[0m"
)

var (
	out    = log.New(os.Stdout, "", 0)
	colour = true

	// exit is replaced in tests
	exit = os.Exit
)

// SetOutput changes where messages are written. Colours are kept only if enable is true.
func SetOutput(w io.Writer, enable bool) {
	out.SetOutput(w)
	colour = enable
}

func paint(c, s string) string {
	if !colour {
		return s
	}
	return c + s + end
}

func join(args []interface{}) string {
	strs := make([]string, len(args))
	for i, a := range args {
		strs[i] = fmt.Sprint(a)
	}
	return strings.Join(strs, " ")
}

// Info prints an information message
func Info(args ...interface{}) {
	out.Println(paint(blue, " INFO ▸ ") + join(args))
}

// Warn prints a warning
func Warn(args ...interface{}) {
	out.Println(paint(yellow, " WARN ▸ ") + join(args))
}

// Error prints an error message without stopping
func Error(args ...interface{}) {
	out.Println(paint(red, " ERROR ▸ ") + join(args))
}

// Quit prints the reason for stopping and exits with status 1
func Quit(args ...interface{}) {
	out.Println()
	out.Println(paint(red, "**** ") + "Exiting.")
	out.Println(paint(red, "**** ") + "Reason: " + join(args))
	exit(1)
}

// Banner prints the name of the program
func Banner(name, version string) {
	out.Println()
	out.Println(paint(blue, "     ● ● ") + " " + name + " " + version)
	out.Println(paint(blue, "     ● ") + paint(yellow, "▲ ") + " Bayesian regression of seabed properties")
	out.Println()
}

// Progress draws a progress bar for the iteration out of total, ending the line when done.
func Progress(iteration, total int) {
	const length = 50

	if total <= 0 {
		return
	}

	frac := float64(iteration) / float64(total)
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * length)

	bar := strings.Repeat("*", filled) + strings.Repeat("-", length-filled)
	line := fmt.Sprintf("\rProgress: |%s| %.1f%% Complete", bar, 100*frac)
	if iteration >= total {
		line += "\n"
	}

	fmt.Fprint(out.Writer(), line)
}
