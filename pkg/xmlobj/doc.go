/*
Package xmlobj produces text that is safe to embed in the vym map XML format and
emits the indented element boilerplate used by the serializers.

The quoting helpers are pure. Element builders live on a Writer, which carries the
indentation depth explicitly; the package-level builders share one default Writer
and are only safe from a single goroutine.

Output fragments always start with a newline, so concatenating them breaks lines:

	w := xmlobj.NewWriter()
	s := w.BeginElementAttrs("vymmap", w.Attribute("version", "2.9"))
	w.IncIndent()
	s += w.ValueElement("heading", xmlobj.CDATA("A & B"))
	w.DecIndent()
	s += w.EndElement("vymmap")

Some helpers keep historical quirks of the format (see Fixes); a Codec with the
matching Fixes enabled produces the corrected output.
*/
package xmlobj
