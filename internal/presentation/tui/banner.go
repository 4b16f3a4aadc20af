package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner of the simulator to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{"  _____            _             ", "#818cf8"},
		{" |_   _|   _ _ __ (_)_ __   __ _ ", "#a78bfa"},
		{"   | || | | | '__|| | '_ \\ / _` |", "#c084fc"},
		{"   | || |_| | |   | | | | | (_| |", "#e879f9"},
		{"   |_| \\__,_|_|   |_|_| |_|\\__, |", "#f472b6"},
		{"                           |___/ ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Outcome styles a run summary for a color terminal. Plain output is returned unchanged
// when the profile has no colors.
func Outcome(text string, ok bool) string {
	p := termenv.ColorProfile()
	color := "#f87171"
	if ok {
		color = "#4ade80"
	}
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
