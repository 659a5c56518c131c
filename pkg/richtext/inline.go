package richtext

import "strings"

// renderInline resolves inline spans in a single block-trimmed slice of
// text. A single cursor walks the Unicode scalar sequence left to right;
// at each position span openers are tried in priority order and the first
// that also finds a valid closer wins. When nothing matches, the current
// scalar is escaped as literal text and the cursor advances by one.
//
// Closer searches are greedy unbounded forward scans with no nesting
// awareness. An opener with no closer anywhere ahead fails its rule and
// ultimately degrades to a literal character, which is what makes partial
// streamed input render safely instead of corrupting structure.
func renderInline(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/2)

	rs := []rune(text)
	n := len(rs)
	i := 0

	for i < n {
		// Raw <br> literal passthrough.
		if rs[i] == '<' && i+3 < n && rs[i+1] == 'b' && rs[i+2] == 'r' && rs[i+3] == '>' {
			b.WriteString("<br>")
			i += 4
			continue
		}

		// Inline code. Content is literal, never re-processed.
		if rs[i] == '`' {
			if end := findClosing(rs, i+1, '`'); end >= 0 {
				b.WriteString("<code>")
				b.WriteString(escapeHTML(string(rs[i+1 : end])))
				b.WriteString("</code>")
				i = end + 1
				continue
			}
		}

		// Inline math, \( ... \) form.
		if rs[i] == '\\' && i+1 < n && rs[i+1] == '(' {
			if end := findPair(rs, i+2, '\\', ')'); end >= 0 {
				writeInlineMath(&b, string(rs[i+2:end]))
				i = end + 2
				continue
			}
		}

		// Inline math, $ ... $ form. A second $ immediately after the
		// opener means display math (or empty content); reject both.
		if rs[i] == '$' && i+1 < n && rs[i+1] != '$' {
			if end := findClosing(rs, i+1, '$'); end >= 0 {
				writeInlineMath(&b, string(rs[i+1:end]))
				i = end + 1
				continue
			}
		}

		// Bold+italic, *** ... ***.
		if hasRun(rs, i, '*', 3) {
			if end := findTriple(rs, i+3, '*'); end >= 0 {
				b.WriteString("<strong><em>")
				b.WriteString(renderInline(string(rs[i+3:end])))
				b.WriteString("</em></strong>")
				i = end + 3
				continue
			}
		}

		// Bold, ** ... ** or __ ... __.
		if hasRun(rs, i, '*', 2) || hasRun(rs, i, '_', 2) {
			if end := findDouble(rs, i+2, rs[i]); end >= 0 {
				b.WriteString("<strong>")
				b.WriteString(renderInline(string(rs[i+2:end])))
				b.WriteString("</strong>")
				i = end + 2
				continue
			}
		}

		// Italic, * ... * or _ ... _. A repeated delimiter or a space
		// right after the opener rejects it (avoids misfiring inside
		// bold); the closer must leave non-empty content.
		if (rs[i] == '*' || rs[i] == '_') && i+1 < n && rs[i+1] != rs[i] && rs[i+1] != ' ' {
			if end := findClosing(rs, i+1, rs[i]); end > i+1 {
				b.WriteString("<em>")
				b.WriteString(renderInline(string(rs[i+1:end])))
				b.WriteString("</em>")
				i = end + 1
				continue
			}
		}

		// Image, ![alt](url).
		if rs[i] == '!' && i+1 < n && rs[i+1] == '[' {
			if alt, url, end, ok := scanLinkTarget(rs, i+1); ok {
				b.WriteString(`<img src="`)
				b.WriteString(escapeAttr(url))
				b.WriteString(`" alt="`)
				b.WriteString(escapeAttr(alt))
				b.WriteString(`" class="chat-image" loading="lazy">`)
				i = end
				continue
			}
		}

		// Link, [text](url). Text is re-processed so a bolded label works.
		if rs[i] == '[' {
			if label, url, end, ok := scanLinkTarget(rs, i); ok {
				b.WriteString(`<a href="`)
				b.WriteString(escapeAttr(url))
				b.WriteString(`" target="_blank" rel="noopener">`)
				b.WriteString(renderInline(label))
				b.WriteString("</a>")
				i = end
				continue
			}
		}

		// Strikethrough, ~~ ... ~~.
		if hasRun(rs, i, '~', 2) {
			if end := findDouble(rs, i+2, '~'); end >= 0 {
				b.WriteString("<del>")
				b.WriteString(renderInline(string(rs[i+2:end])))
				b.WriteString("</del>")
				i = end + 2
				continue
			}
		}

		// Superscript, ^ ... ^. Content is literal, never re-processed.
		if rs[i] == '^' && i+1 < n && rs[i+1] != ' ' {
			if end := findClosing(rs, i+1, '^'); end > i+1 {
				b.WriteString("<sup>")
				b.WriteString(escapeHTML(string(rs[i+1 : end])))
				b.WriteString("</sup>")
				i = end + 1
				continue
			}
		}

		writeEscapedRune(&b, rs[i])
		i++
	}

	return b.String()
}

// writeInlineMath emits an inline math span carrying the raw source in
// data-latex for the external typesetter and escaped as visible text.
func writeInlineMath(b *strings.Builder, latex string) {
	b.WriteString(`<span class="katex-inline" data-latex="`)
	b.WriteString(escapeAttr(latex))
	b.WriteString(`">`)
	b.WriteString(escapeHTML(latex))
	b.WriteString("</span>")
}

// scanLinkTarget matches [text](url) starting at an opening bracket:
// the next unescaped ']', an immediately following '(', and the next
// unescaped ')'. Returns the captured text, URL, and the index just past
// the closing paren.
func scanLinkTarget(rs []rune, start int) (text, url string, end int, ok bool) {
	if start >= len(rs) || rs[start] != '[' {
		return "", "", 0, false
	}
	closeBracket := findUnescaped(rs, start+1, ']')
	if closeBracket < 0 {
		return "", "", 0, false
	}
	if closeBracket+1 >= len(rs) || rs[closeBracket+1] != '(' {
		return "", "", 0, false
	}
	closeParen := findUnescaped(rs, closeBracket+2, ')')
	if closeParen < 0 {
		return "", "", 0, false
	}
	text = string(rs[start+1 : closeBracket])
	url = string(rs[closeBracket+2 : closeParen])
	return text, url, closeParen + 1, true
}

// hasRun reports whether count copies of delim start at position i.
func hasRun(rs []rune, i int, delim rune, count int) bool {
	if i+count > len(rs) {
		return false
	}
	for j := range count {
		if rs[i+j] != delim {
			return false
		}
	}
	return true
}

// findClosing returns the index of the next delim at or after start,
// or -1 when there is none.
func findClosing(rs []rune, start int, delim rune) int {
	for j := start; j < len(rs); j++ {
		if rs[j] == delim {
			return j
		}
	}
	return -1
}

// findUnescaped is findClosing skipping delimiters preceded by a backslash.
func findUnescaped(rs []rune, start int, delim rune) int {
	for j := start; j < len(rs); j++ {
		if rs[j] == delim && rs[j-1] != '\\' {
			return j
		}
	}
	return -1
}

// findDouble returns the index of the next two consecutive delims.
func findDouble(rs []rune, start int, delim rune) int {
	for j := start; j+1 < len(rs); j++ {
		if rs[j] == delim && rs[j+1] == delim {
			return j
		}
	}
	return -1
}

// findTriple returns the index of the next three consecutive delims.
func findTriple(rs []rune, start int, delim rune) int {
	for j := start; j+2 < len(rs); j++ {
		if rs[j] == delim && rs[j+1] == delim && rs[j+2] == delim {
			return j
		}
	}
	return -1
}

// findPair returns the index of the next adjacent (a, b) pair.
func findPair(rs []rune, start int, a, b rune) int {
	for j := start; j+1 < len(rs); j++ {
		if rs[j] == a && rs[j+1] == b {
			return j
		}
	}
	return -1
}
