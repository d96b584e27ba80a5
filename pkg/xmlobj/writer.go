package xmlobj

import "strings"

// DefaultIndentWidth is the number of spaces per indentation level.
const DefaultIndentWidth = 4

// Writer builds indented XML fragments. It is not safe for concurrent use.
type Writer struct {
	Codec
	// Width is the number of spaces per level. Zero means DefaultIndentWidth.
	Width int

	depth int
}

// NewWriter returns a Writer at depth 0 using the legacy codec.
func NewWriter() *Writer {
	return &Writer{Width: DefaultIndentWidth}
}

// IncIndent increases the indentation depth.
func (w *Writer) IncIndent() {
	w.depth++
}

// DecIndent decreases the indentation depth. The depth never drops below zero.
func (w *Writer) DecIndent() {
	if w.depth > 0 {
		w.depth--
	}
}

// Depth returns the current indentation depth.
func (w *Writer) Depth() int {
	return w.depth
}

// Indent returns a newline followed by the current indentation.
func (w *Writer) Indent() string {
	width := w.Width
	if width <= 0 {
		width = DefaultIndentWidth
	}
	return "\n" + strings.Repeat(" ", w.depth*width)
}

// SingleElement returns <tag attrs />.
func (w *Writer) SingleElement(tag, attrs string) string {
	return w.Indent() + "<" + tag + " " + attrs + " />"
}

// BeginElement returns <tag>.
func (w *Writer) BeginElement(tag string) string {
	return w.Indent() + "<" + tag + ">"
}

// BeginElementAttrs returns <tag attrs>.
func (w *Writer) BeginElementAttrs(tag, attrs string) string {
	return w.Indent() + "<" + tag + " " + attrs + ">"
}

// EndElement returns </tag>.
func (w *Writer) EndElement(tag string) string {
	return w.Indent() + "</" + tag + ">"
}

// Attribute returns ` name="value"` with value masked by QuoteMeta.
// The leading space is part of the result.
func (w *Writer) Attribute(name, value string) string {
	return " " + name + "=\"" + w.QuoteMeta(value) + "\""
}

// ValueElement returns <tag>value</tag>. The value is written as given.
func (w *Writer) ValueElement(tag, value string) string {
	return w.Indent() + "<" + tag + ">" + value + "</" + tag + ">"
}

// ValueElementAttrs returns <tag attrs>value</tag>.
func (w *Writer) ValueElementAttrs(tag, value, attrs string) string {
	return w.Indent() + "<" + tag + " " + attrs + ">" + value + "</" + tag + ">"
}

// std is the process-wide writer behind the package-level builders.
var std = NewWriter()

// IncIndent increases the depth of the process-wide writer.
func IncIndent() { std.IncIndent() }

// DecIndent decreases the depth of the process-wide writer, clamping at zero.
func DecIndent() { std.DecIndent() }

// CurIndent returns the depth of the process-wide writer.
func CurIndent() int { return std.Depth() }

// SingleElement builds an empty element with the process-wide writer.
func SingleElement(tag, attrs string) string { return std.SingleElement(tag, attrs) }

// BeginElement builds an opening tag with the process-wide writer.
func BeginElement(tag string) string { return std.BeginElement(tag) }

// BeginElementAttrs builds an opening tag with attributes with the process-wide writer.
func BeginElementAttrs(tag, attrs string) string { return std.BeginElementAttrs(tag, attrs) }

// EndElement builds a closing tag with the process-wide writer.
func EndElement(tag string) string { return std.EndElement(tag) }

// Attribute builds an attribute with the process-wide writer.
func Attribute(name, value string) string { return std.Attribute(name, value) }

// ValueElement builds a value element with the process-wide writer.
func ValueElement(tag, value string) string { return std.ValueElement(tag, value) }

// ValueElementAttrs builds a value element with attributes with the process-wide writer.
func ValueElementAttrs(tag, value, attrs string) string {
	return std.ValueElementAttrs(tag, value, attrs)
}
