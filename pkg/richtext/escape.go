package richtext

import "strings"

// htmlEscaper escapes text destined for element bodies.
//
//nolint:gochecknoglobals // Replacers are immutable and safe to share
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// attrEscaper escapes text destined for attribute values. It is the body
// escape plus single quotes, so values are safe in either quoting style.
//
//nolint:gochecknoglobals // Replacers are immutable and safe to share
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML escapes s for use as element text content.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// escapeAttr escapes s for use as an attribute value.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// writeEscapedRune appends a single scalar to b, escaped as element text.
func writeEscapedRune(b *strings.Builder, r rune) {
	switch r {
	case '&':
		b.WriteString("&amp;")
	case '<':
		b.WriteString("&lt;")
	case '>':
		b.WriteString("&gt;")
	case '"':
		b.WriteString("&quot;")
	default:
		b.WriteRune(r)
	}
}
