package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintBanner writes the ASCII art banner for expect to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Subtle gradient (Indigo/Violet)
	lines := []struct{ text, color string }{
		{"   _____  ___ __   ___  ___| |_ ", "#818cf8"},
		{"  / _ \\ \\/ / '_ \\ / _ \\/ __| __|", "#a78bfa"},
		{" |  __/>  <| |_) |  __/ (__| |_ ", "#c084fc"},
		{"  \\___/_/\\_\\ .__/ \\___|\\___|\\__|", "#e879f9"},
		{"            |_|                 ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status formats a one-line outcome: a green check for success, a red cross
// otherwise. Colors are dropped when w does not support them.
func Status(w io.Writer, ok bool, msg string) string {
	out := termenv.NewOutput(w)
	if ok {
		return out.String("✔ "+msg).Foreground(out.Color("#22c55e")).Bold().String()
	}
	return out.String("✘ "+msg).Foreground(out.Color("#ef4444")).Bold().String()
}
