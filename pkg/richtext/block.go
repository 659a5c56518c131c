package richtext

import (
	"strconv"
	"strings"
	"unicode"
)

// listKind tracks the currently open list element during the block walk.
// It is loop-local state, reset at the top and bottom of every render.
type listKind uint8

const (
	listNone listKind = iota
	listUnordered
	listOrdered
)

// rawHTMLTags is the fixed allowlist of block-level tag fragments that may
// pass through unescaped. This is a deliberate allowlist, not general HTML
// sniffing; widening it widens the injection surface.
//
//nolint:gochecknoglobals // Immutable allowlist
var rawHTMLTags = []string{"<table", "<div", "<img", "<br", "<hr"}

// renderBlocks walks input line by line, classifying each line or line run
// into a block and emitting its HTML. One forward pass, one cursor, no
// backtracking; every rule either consumes at least one line or falls
// through to the paragraph fallback, so the walk always terminates.
func renderBlocks(input string, opts Options) string {
	var b strings.Builder
	b.Grow(len(input) + len(input)/2)

	lines := strings.Split(input, "\n")
	list := listNone
	i := 0

	for i < len(lines) {
		line := lines[i]

		switch {
		case isFenceLine(line):
			closeList(&b, &list)
			i = writeCodeFence(&b, lines, i, opts)

		case isDollarMathLine(line):
			closeList(&b, &list)
			i = writeDisplayMath(&b, lines, i, "$$", "$$", false)

		case isBracketMathLine(line):
			closeList(&b, &list)
			i = writeDisplayMath(&b, lines, i, `\[`, `\]`, true)

		case isTableLine(line):
			closeList(&b, &list)
			i = writeTable(&b, lines, i)

		case isThematicBreak(line):
			closeList(&b, &list)
			b.WriteString("<hr>")
			i++

		case headingLevel(line) > 0:
			closeList(&b, &list)
			writeHeading(&b, line)
			i++

		case isBlockquoteLine(line):
			closeList(&b, &list)
			i = writeBlockquote(&b, lines, i)

		case isTaskItem(line):
			openList(&b, &list, listUnordered, true)
			writeTaskItem(&b, line)
			i++

		case isUnorderedItem(line):
			openList(&b, &list, listUnordered, false)
			b.WriteString("<li>")
			b.WriteString(renderInline(trimLeft(line)[2:]))
			b.WriteString("</li>")
			i++

		case isOrderedItem(line):
			openList(&b, &list, listOrdered, false)
			rest, _ := orderedItemRest(line)
			b.WriteString("<li>")
			b.WriteString(renderInline(rest))
			b.WriteString("</li>")
			i++

		case isBlankLine(line):
			closeList(&b, &list)
			i++

		case isRawHTMLLine(line):
			closeList(&b, &list)
			b.WriteString(line)
			i++

		default:
			closeList(&b, &list)
			i = writeParagraph(&b, lines, i)
		}
	}

	closeList(&b, &list)
	return b.String()
}

func openList(b *strings.Builder, list *listKind, kind listKind, task bool) {
	if *list == kind {
		return
	}
	closeList(b, list)
	switch {
	case kind == listOrdered:
		b.WriteString("<ol>")
	case task:
		b.WriteString(`<ul class="task-list">`)
	default:
		b.WriteString("<ul>")
	}
	*list = kind
}

func closeList(b *strings.Builder, list *listKind) {
	switch *list {
	case listUnordered:
		b.WriteString("</ul>")
	case listOrdered:
		b.WriteString("</ol>")
	}
	*list = listNone
}

// writeCodeFence consumes an opening fence line, the fence body, and the
// closing fence if one exists. An unterminated fence consumes to end of
// input; that is graceful degradation, not an error.
func writeCodeFence(b *strings.Builder, lines []string, i int, opts Options) int {
	tag := strings.TrimSpace(strings.TrimLeft(trimLeft(lines[i]), "`"))
	i++

	var body strings.Builder
	for first := true; i < len(lines) && !isFenceLine(lines[i]); i++ {
		if !first {
			body.WriteByte('\n')
		}
		body.WriteString(lines[i])
		first = false
	}
	if i < len(lines) {
		i++ // closing fence
	}
	code := body.String()

	if tag == "" && opts.DetectLanguage != nil {
		if detected := opts.DetectLanguage(code); detected != "" && detected != "text" {
			tag = detected
		}
	}

	label := "code"
	if tag != "" {
		label = escapeHTML(tag)
	}

	b.WriteString(`<div class="code-block"><div class="code-block-header"><span class="code-lang">`)
	b.WriteString(label)
	b.WriteString(`</span><button class="code-copy-btn" onclick="navigator.clipboard.writeText(this.parentElement.nextElementSibling.textContent)">Copy</button></div><pre><code`)
	if tag != "" {
		b.WriteString(` class="language-`)
		b.WriteString(escapeAttr(tag))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(escapeHTML(code))
	b.WriteString("</code></pre></div>")
	return i
}

// writeDisplayMath consumes a display math block in either the multi-line
// form (opener and closer on their own lines) or the single-line form
// (both delimiters on one line). The math source is emitted twice: escaped
// into data-latex for the external typesetter, and escaped as visible text
// so something sane shows before typesetting runs.
func writeDisplayMath(b *strings.Builder, lines []string, i int, open, closer string, trimSingle bool) int {
	t := strings.TrimSpace(lines[i])

	var latex string
	if t == open {
		i++
		var src strings.Builder
		for first := true; i < len(lines) && strings.TrimSpace(lines[i]) != closer; i++ {
			if !first {
				src.WriteByte('\n')
			}
			src.WriteString(lines[i])
			first = false
		}
		if i < len(lines) {
			i++ // closing delimiter line
		}
		latex = src.String()
	} else {
		latex = strings.TrimSuffix(strings.TrimPrefix(t, open), closer)
		if trimSingle {
			latex = strings.TrimSpace(latex)
		}
		i++
	}

	b.WriteString(`<div class="katex-block" data-latex="`)
	b.WriteString(escapeAttr(latex))
	b.WriteString(`">`)
	b.WriteString(escapeHTML(latex))
	b.WriteString("</div>")
	return i
}

// writeTable consumes a header row, skips the separator row when present
// (its content is never validated), and consumes contiguous pipe-bounded
// body rows. Column counts are not enforced to be uniform.
func writeTable(b *strings.Builder, lines []string, i int) int {
	b.WriteString("<table><thead><tr>")
	for _, cell := range splitTableRow(lines[i]) {
		b.WriteString("<th>")
		b.WriteString(renderInline(cell))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead>")
	i++

	if i < len(lines) {
		i++ // separator row
	}

	b.WriteString("<tbody>")
	for ; i < len(lines) && isTableLine(lines[i]); i++ {
		b.WriteString("<tr>")
		for _, cell := range splitTableRow(lines[i]) {
			b.WriteString("<td>")
			b.WriteString(renderInline(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return i
}

// splitTableRow splits a pipe-bounded row into trimmed cell slices,
// stripping exactly one leading and one trailing pipe.
func splitTableRow(line string) []string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	cells := strings.Split(t, "|")
	for idx, cell := range cells {
		cells[idx] = strings.TrimSpace(cell)
	}
	return cells
}

func writeHeading(b *strings.Builder, line string) {
	level := headingLevel(line)
	tag := strconv.Itoa(level)
	b.WriteString("<h")
	b.WriteString(tag)
	b.WriteString(">")
	b.WriteString(renderInline(trimLeft(line)[level+1:]))
	b.WriteString("</h")
	b.WriteString(tag)
	b.WriteString(">")
}

// writeBlockquote consumes every immediately following quoted line into
// one blockquote, each line becoming its own paragraph.
func writeBlockquote(b *strings.Builder, lines []string, i int) int {
	b.WriteString("<blockquote>")
	for ; i < len(lines) && isBlockquoteLine(lines[i]); i++ {
		t := trimLeft(lines[i])
		var content string
		if strings.HasPrefix(t, "> ") {
			content = t[2:]
		} else {
			content = strings.TrimPrefix(t, ">")
		}
		b.WriteString("<p>")
		b.WriteString(renderInline(content))
		b.WriteString("</p>")
	}
	b.WriteString("</blockquote>")
	return i
}

func writeTaskItem(b *strings.Builder, line string) {
	t := trimLeft(line)
	checked := t[3] == 'x' || t[3] == 'X'
	if checked {
		b.WriteString(`<li class="task-item task-item--done"><span class="task-marker">&#9745;</span> `)
	} else {
		b.WriteString(`<li class="task-item"><span class="task-marker">&#9744;</span> `)
	}
	b.WriteString(renderInline(t[6:]))
	b.WriteString("</li>")
}

// writeParagraph greedily accumulates lines until a blank line or a line
// that would match any other block rule. Lines join with a single space,
// except that a line ending in a trailing backslash or two trailing spaces
// joins to the next with a hard break.
func writeParagraph(b *strings.Builder, lines []string, i int) int {
	var p strings.Builder
	first := true
	hardPrev := false

	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) || (!first && startsBlock(line)) {
			break
		}
		text, hard := splitHardBreak(line)
		if !first {
			if hardPrev {
				p.WriteString("<br>")
			} else {
				p.WriteByte(' ')
			}
		}
		p.WriteString(text)
		hardPrev = hard
		first = false
		i++
	}

	b.WriteString("<p>")
	b.WriteString(renderInline(p.String()))
	b.WriteString("</p>")
	return i
}

// splitHardBreak strips a trailing hard-break marker from line, reporting
// whether one was present.
func splitHardBreak(line string) (string, bool) {
	if strings.HasSuffix(line, "\\") {
		return line[:len(line)-1], true
	}
	if strings.HasSuffix(line, "  ") {
		return strings.TrimRight(line, " "), true
	}
	return line, false
}

// Line predicates, in block precedence order.

func trimLeft(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func isFenceLine(line string) bool {
	return strings.HasPrefix(trimLeft(line), "```")
}

func isDollarMathLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "$$")
}

func isBracketMathLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), `\[`)
}

func isTableLine(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 2 && strings.HasPrefix(t, "|") && strings.HasSuffix(t, "|") &&
		strings.Count(t, "|") >= 2
}

func isThematicBreak(line string) bool {
	t := strings.TrimSpace(line)
	return t == "---" || t == "***" || t == "___"
}

// headingLevel returns 1-6 for a heading line, 0 otherwise. More than six
// markers, no space after the run, or an empty remainder is not a heading.
func headingLevel(line string) int {
	t := trimLeft(line)
	level := 0
	for level < len(t) && t[level] == '#' {
		level++
	}
	if level < 1 || level > 6 || level+1 >= len(t) || t[level] != ' ' {
		return 0
	}
	return level
}

func isBlockquoteLine(line string) bool {
	t := trimLeft(line)
	return strings.HasPrefix(t, "> ") || t == ">"
}

func isTaskItem(line string) bool {
	t := trimLeft(line)
	return len(t) >= 6 &&
		(t[0] == '-' || t[0] == '*') && t[1] == ' ' &&
		t[2] == '[' && (t[3] == ' ' || t[3] == 'x' || t[3] == 'X') &&
		t[4] == ']' && t[5] == ' '
}

func isUnorderedItem(line string) bool {
	t := trimLeft(line)
	return strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") || strings.HasPrefix(t, "+ ")
}

func isOrderedItem(line string) bool {
	_, ok := orderedItemRest(line)
	return ok
}

// orderedItemRest matches "<1-3 ASCII digits>. <rest>" after left trim.
func orderedItemRest(line string) (string, bool) {
	t := trimLeft(line)
	n := 0
	for n < len(t) && t[n] >= '0' && t[n] <= '9' {
		n++
	}
	if n < 1 || n > 3 || !strings.HasPrefix(t[n:], ". ") {
		return "", false
	}
	return t[n+2:], true
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isRawHTMLLine(line string) bool {
	if !strings.HasPrefix(trimLeft(line), "<") {
		return false
	}
	for _, tag := range rawHTMLTags {
		if strings.Contains(line, tag) {
			return true
		}
	}
	return false
}

// startsBlock reports whether line would match any block rule other than
// the paragraph fallback. Paragraph accumulation stops at such lines.
func startsBlock(line string) bool {
	return isFenceLine(line) ||
		isDollarMathLine(line) ||
		isBracketMathLine(line) ||
		isTableLine(line) ||
		isThematicBreak(line) ||
		headingLevel(line) > 0 ||
		isBlockquoteLine(line) ||
		isTaskItem(line) ||
		isUnorderedItem(line) ||
		isOrderedItem(line) ||
		isRawHTMLLine(line)
}
