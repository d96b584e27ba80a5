package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the vym banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{" __   ___   _ _ __ ___  ", "#fdba74"},
		{" \\ \\ / / | | | '_ ` _ \\ ", "#fb923c"},
		{"  \\ V /| |_| | | | | | |", "#f97316"},
		{"   \\_/  \\__, |_| |_| |_|", "#ea580c"},
		{"        |___/           ", "#c2410c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
