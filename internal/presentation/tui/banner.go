package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintBanner writes the ASCII banner and version to w.
// Phrases go to stdout, so callers pass stderr here.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	lines := []struct {
		text  string
		color string
	}{
		{`  ____             _                            `, "#818cf8"},
		{` |  _ \ ___ _ __ | |__  _ __ __ _ ___  ___ _ __ `, "#a78bfa"},
		{` | |_) / _ \ '_ \| '_ \| '__/ _' / __|/ _ \ '__|`, "#c084fc"},
		{` |  _ <  __/ |_) | | | | | | (_| \__ \  __/ |   `, "#e879f9"},
		{` |_| \_\___| .__/|_| |_|_|  \__,_|___/\___|_|   `, "#f472b6"},
		{`           |_|                                  `, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  version "+version).Faint())
	fmt.Fprintln(w)
}
