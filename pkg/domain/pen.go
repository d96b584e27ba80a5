package domain

import (
	"image/color"
	"strings"
)

// PenStyle is the dash pattern of a cross-link.
type PenStyle int

const (
	PenNone PenStyle = iota
	PenSolid
	PenDash
	PenDot
	PenDashDot
	PenDashDotDot
)

var penStyleNames = []string{"NoPen", "SolidLine", "DashLine", "DotLine", "DashDotLine", "DashDotDotLine"}

func (s PenStyle) String() string {
	if int(s) >= 0 && int(s) < len(penStyleNames) {
		return penStyleNames[s]
	}
	return "NoPen"
}

// ParsePenStyle accepts the short script names ("solid", "dash", "dot", "dashdot",
// "dashdotdot", "nopen") as well as the Qt names vym writes ("SolidLine", "Qt::DashLine").
func ParsePenStyle(s string) (PenStyle, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "qt::")
	name = strings.TrimSuffix(name, "line")
	switch name {
	case "solid":
		return PenSolid, true
	case "dash":
		return PenDash, true
	case "dot":
		return PenDot, true
	case "dashdot":
		return PenDashDot, true
	case "dashdotdot":
		return PenDashDotDot, true
	case "nopen", "none":
		return PenNone, true
	}
	return PenNone, false
}

// Pen describes how a cross-link is drawn.
type Pen struct {
	Width int
	Color color.RGBA
	Style PenStyle
}

// DefaultPen is the pen a new cross-link starts with.
func DefaultPen() Pen {
	return Pen{Width: 1, Color: color.RGBA{R: 0xff, G: 0x7f, B: 0x00, A: 0xff}, Style: PenSolid}
}
