package domain

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses a script color string: "#rgb", "#rrggbb", an SVG color name or
// "transparent". Names are matched case-insensitively.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if (len(s) != 4 && len(s) != 7) || strings.IndexFunc(s[1:], notHex) >= 0 {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := c.Clamped().RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	name := strings.ToLower(s)
	if name == "transparent" {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// ColorHex formats a color as "#rrggbb", the form vym writes into map files.
func ColorHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func notHex(r rune) bool {
	return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F')
}
