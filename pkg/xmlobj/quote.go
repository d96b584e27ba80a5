package xmlobj

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// bareAmp matches an ampersand that does not already start "&amp;".
var bareAmp = regexp2.MustCompile(`&(?!amp;)`, regexp2.None)

// Fixes enables corrections of historical quirks. The zero value keeps the
// behavior existing map files were written with.
type Fixes struct {
	// UnquoteAmp makes UnquoteMeta decode "&amp;". Legacy output leaves it encoded.
	UnquoteAmp bool `yaml:"unquote_amp"`
	// Auml makes QuoteUmlaut encode "Ä" as "&Auml;". Legacy output leaves it as is.
	Auml bool `yaml:"auml"`
	// SplitCDATAEnd splits "]]>" inside CDATA sections so they cannot terminate early.
	SplitCDATAEnd bool `yaml:"split_cdata_end"`
}

// Codec applies the quoting rules selected by its Fixes.
type Codec struct {
	Fixes Fixes
}

var metaReplacer = strings.NewReplacer(">", "&gt;", "<", "&lt;", "\"", "&quot;")

// QuoteMeta masks '&', '>', '<' and '"'. An ampersand that already starts "&amp;"
// is left alone.
func (Codec) QuoteMeta(s string) string {
	r, err := bareAmp.Replace(s, "&amp;", -1, -1)
	if err != nil {
		// Only a match timeout fails, and none is set.
		r = s
	}
	return metaReplacer.Replace(r)
}

var unquoteReplacer = strings.NewReplacer("&gt;", ">", "&lt;", "<", "&quot;", "\"")

// UnquoteMeta reverses QuoteMeta.
func (c Codec) UnquoteMeta(s string) string {
	r := unquoteReplacer.Replace(s)
	if c.Fixes.UnquoteAmp {
		r = strings.ReplaceAll(r, "&amp;", "&")
	}
	return r
}

// QuoteQuotes escapes '"' with a backslash.
func (Codec) QuoteQuotes(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

// UnquoteQuotes removes the backslash in front of '"'.
func (Codec) UnquoteQuotes(s string) string {
	return strings.ReplaceAll(s, "\\\"", "\"")
}

var umlautPairs = []string{
	"ü", "&uuml;",
	"Ü", "&Uuml;",
	"ö", "&ouml;",
	"Ö", "&Ouml;",
	"ä", "&auml;",
	"ß", "&szlig;",
	"€", "&euro;",
}

var (
	umlautReplacer     = strings.NewReplacer(umlautPairs...)
	umlautAumlReplacer = strings.NewReplacer(append([]string{"Ä", "&Auml;"}, umlautPairs...)...)
)

// QuoteUmlaut replaces German umlauts, sharp s and the euro sign by named entities.
func (c Codec) QuoteUmlaut(s string) string {
	if c.Fixes.Auml {
		return umlautAumlReplacer.Replace(s)
	}
	return umlautReplacer.Replace(s)
}

// CDATA wraps s in a CDATA section if it contains markup characters.
func (c Codec) CDATA(s string) string {
	if !strings.ContainsAny(s, "<>\"&") {
		return s
	}
	if c.Fixes.SplitCDATAEnd {
		s = strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
	}
	return "<![CDATA[" + s + "]]>"
}

var legacy Codec

// QuoteMeta masks markup characters using the legacy codec.
func QuoteMeta(s string) string { return legacy.QuoteMeta(s) }

// UnquoteMeta reverses QuoteMeta using the legacy codec, which leaves "&amp;" encoded.
func UnquoteMeta(s string) string { return legacy.UnquoteMeta(s) }

// QuoteQuotes escapes '"' with a backslash.
func QuoteQuotes(s string) string { return legacy.QuoteQuotes(s) }

// UnquoteQuotes removes the backslash in front of '"'.
func UnquoteQuotes(s string) string { return legacy.UnquoteQuotes(s) }

// QuoteUmlaut replaces umlauts using the legacy codec, which leaves "Ä" as is.
func QuoteUmlaut(s string) string { return legacy.QuoteUmlaut(s) }

// CDATA wraps s in a CDATA section using the legacy codec.
func CDATA(s string) string { return legacy.CDATA(s) }
