package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`                  _            `, "#818cf8"},
	{`  _ __  __ _ _ __| | ___ _   _ `, "#a78bfa"},
	{` | '_ \/ _' | '__| |/ _ \ | | |`, "#c084fc"},
	{` | |_) | (_| | |  | |  __/ |_| |`, "#e879f9"},
	{` | .__/ \__,_|_|  |_|\___|\__, |`, "#f472b6"},
	{` |_|                      |___/ `, "#fb7185"},
}

// PrintBanner writes the ASCII art banner, colored for the detected profile.
func PrintBanner(w io.Writer) {
	WriteBanner(w, termenv.ColorProfile())
}

// WriteBanner writes the banner using profile p. termenv.Ascii writes plain text.
func WriteBanner(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
