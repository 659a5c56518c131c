package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBlocksHeadings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "h1",
			input: "# Title",
			want:  "<h1>Title</h1>",
		},
		{
			name:  "h6",
			input: "###### Deep",
			want:  "<h6>Deep</h6>",
		},
		{
			name:  "heading with inline markup",
			input: "## A **bold** move",
			want:  "<h2>A <strong>bold</strong> move</h2>",
		},
		{
			name:  "seven markers is a paragraph",
			input: "####### nope",
			want:  "<p>####### nope</p>",
		},
		{
			name:  "no space after run is a paragraph",
			input: "##nope",
			want:  "<p>##nope</p>",
		},
		{
			name:  "empty remainder is a paragraph",
			input: "# ",
			want:  "<p># </p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(tt.input, false))
		})
	}
}

func TestRenderBlocksLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unordered list",
			input: "- a\n- b",
			want:  "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:  "star and plus bullets",
			input: "* a\n+ b",
			want:  "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:  "ordered list",
			input: "1. a\n2. b",
			want:  "<ol><li>a</li><li>b</li></ol>",
		},
		{
			name:  "three digit ordinal",
			input: "100. centennial",
			want:  "<ol><li>centennial</li></ol>",
		},
		{
			name:  "four digit ordinal is a paragraph",
			input: "1000. nope",
			want:  "<p>1000. nope</p>",
		},
		{
			name:  "kind switch closes and reopens",
			input: "- a\n1. b",
			want:  "<ul><li>a</li></ul><ol><li>b</li></ol>",
		},
		{
			name:  "blank line splits into two lists",
			input: "- a\n\n- b",
			want:  "<ul><li>a</li></ul><ul><li>b</li></ul>",
		},
		{
			name:  "list left open at end of input is closed",
			input: "text\n- a",
			want:  "<p>text</p><ul><li>a</li></ul>",
		},
		{
			name:  "task item continues an unordered run",
			input: "- plain\n- [x] done",
			want: "<ul><li>plain</li>" +
				`<li class="task-item task-item--done"><span class="task-marker">&#9745;</span> done</li></ul>`,
		},
		{
			name:  "star bullet task item",
			input: "* [ ] todo",
			want: `<ul class="task-list">` +
				`<li class="task-item"><span class="task-marker">&#9744;</span> todo</li></ul>`,
		},
		{
			name:  "uppercase X counts as checked",
			input: "- [X] done",
			want: `<ul class="task-list">` +
				`<li class="task-item task-item--done"><span class="task-marker">&#9745;</span> done</li></ul>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(tt.input, false))
		})
	}
}

func TestRenderBlocksCodeFence(t *testing.T) {
	t.Parallel()

	t.Run("unterminated fence consumes to end of input", func(t *testing.T) {
		t.Parallel()
		out := Render("```go\nx := 1\nstill code", false)
		assert.Contains(t, out, `<code class="language-go">x := 1`+"\nstill code</code>")
		assert.Contains(t, out, "</pre></div>")
	})

	t.Run("body is escaped and newline preserved", func(t *testing.T) {
		t.Parallel()
		out := Render("```\na < b\nc & d\n```", false)
		assert.Contains(t, out, "<code>a &lt; b\nc &amp; d</code>")
	})

	t.Run("fence interrupts an open list", func(t *testing.T) {
		t.Parallel()
		out := Render("- item\n```\ncode\n```", false)
		assert.Contains(t, out, "<ul><li>item</li></ul>")
	})

	t.Run("indented fence opens", func(t *testing.T) {
		t.Parallel()
		out := Render("  ```py\nx\n  ```", false)
		assert.Contains(t, out, "language-py")
		assert.Contains(t, out, "<code class=\"language-py\">x</code>")
	})
}

func TestRenderBlocksDisplayMath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "multi line dollar block",
			input: "$$\nE = mc^2\n$$",
			want:  `<div class="katex-block" data-latex="E = mc^2">E = mc^2</div>`,
		},
		{
			name:  "single line dollar block",
			input: "$$a+b$$",
			want:  `<div class="katex-block" data-latex="a+b">a+b</div>`,
		},
		{
			name:  "multi line bracket block",
			input: "\\[\n\\frac{1}{2}\n\\]",
			want:  `<div class="katex-block" data-latex="\frac{1}{2}">\frac{1}{2}</div>`,
		},
		{
			name:  "single line bracket block",
			input: "\\[ x+y \\]",
			want:  `<div class="katex-block" data-latex="x+y">x+y</div>`,
		},
		{
			name:  "unterminated block consumes to end",
			input: "$$\na\nb",
			want:  `<div class="katex-block" data-latex="a` + "\n" + `b">a` + "\n" + `b</div>`,
		},
		{
			name:  "math source is escaped in both positions",
			input: "$$\na < b\n$$",
			want:  `<div class="katex-block" data-latex="a &lt; b">a &lt; b</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(tt.input, false))
		})
	}
}

func TestRenderBlocksTable(t *testing.T) {
	t.Parallel()

	t.Run("header only renders empty tbody", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			"<table><thead><tr><th>a</th></tr></thead><tbody></tbody></table>",
			Render("| a |\n|---|", false))
	})

	t.Run("garbage separator row is still skipped", func(t *testing.T) {
		t.Parallel()
		out := Render("| a |\nnot a separator at all\n| 1 |", false)
		assert.Contains(t, out, "<th>a</th>")
		assert.Contains(t, out, "<td>1</td>")
		assert.NotContains(t, out, "not a separator")
	})

	t.Run("ragged column counts are rendered as-is", func(t *testing.T) {
		t.Parallel()
		out := Render("| a | b |\n|---|---|\n| 1 |\n| 2 | 3 | 4 |", false)
		assert.Contains(t, out, "<tr><td>1</td></tr>")
		assert.Contains(t, out, "<tr><td>2</td><td>3</td><td>4</td></tr>")
	})

	t.Run("cells are inline processed", func(t *testing.T) {
		t.Parallel()
		out := Render("| **b** |\n|---|\n| `c` |", false)
		assert.Contains(t, out, "<th><strong>b</strong></th>")
		assert.Contains(t, out, "<td><code>c</code></td>")
	})

	t.Run("cell content is escaped", func(t *testing.T) {
		t.Parallel()
		out := Render("| <x> |\n|---|", false)
		assert.Contains(t, out, "<th>&lt;x&gt;</th>")
	})
}

func TestRenderBlocksBlockquote(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"<blockquote><p>first</p><p>second</p></blockquote>",
		Render("> first\n> second", false))

	// A bare > contributes an empty paragraph.
	assert.Equal(t,
		"<blockquote><p>a</p><p></p><p>b</p></blockquote>",
		Render("> a\n>\n> b", false))

	// The quote closes at the first non-matching line.
	assert.Equal(t,
		"<blockquote><p>quoted</p></blockquote><p>prose</p>",
		Render("> quoted\nprose", false))
}

func TestRenderBlocksThematicBreak(t *testing.T) {
	t.Parallel()

	for _, marker := range []string{"---", "***", "___"} {
		assert.Equal(t, "<hr>", Render(marker, false), "marker %q", marker)
	}

	// Partial matches fall through.
	assert.Equal(t, "<p>--</p>", Render("--", false))
	assert.Equal(t, "<p>----x</p>", Render("----x", false))
}

func TestRenderBlocksRawHTMLPassthrough(t *testing.T) {
	t.Parallel()

	// Allowlisted block tags pass through verbatim.
	line := `<div class="note">hi</div>`
	assert.Equal(t, line, Render(line, false))

	assert.Equal(t, "<hr/>", Render("<hr/>", false))
	assert.Equal(t, `<img src="x.png">`, Render(`<img src="x.png">`, false))

	// Non-allowlisted tags are escaped as a paragraph.
	out := Render("<span>hi</span>", false)
	assert.Equal(t, "<p>&lt;span&gt;hi&lt;/span&gt;</p>", out)
}

func TestRenderBlocksParagraphAccumulation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "soft join with a single space",
			input: "line one\nline two",
			want:  "<p>line one line two</p>",
		},
		{
			name:  "two trailing spaces force a hard break",
			input: "line one  \nline two",
			want:  "<p>line one<br>line two</p>",
		},
		{
			name:  "trailing backslash forces a hard break",
			input: "line one\\\nline two",
			want:  "<p>line one<br>line two</p>",
		},
		{
			name:  "blank line splits paragraphs",
			input: "one\n\ntwo",
			want:  "<p>one</p><p>two</p>",
		},
		{
			name:  "accumulation stops at a block rule",
			input: "prose\n# heading",
			want:  "<p>prose</p><h1>heading</h1>",
		},
		{
			name:  "accumulation stops at a list item",
			input: "prose\n- item",
			want:  "<p>prose</p><ul><li>item</li></ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(tt.input, false))
		})
	}
}

func TestStartsBlockAgreesWithDispatch(t *testing.T) {
	t.Parallel()

	// Every line the walk would treat as a non-paragraph block must also
	// stop paragraph accumulation, otherwise prose would swallow it.
	blockLines := []string{
		"```",
		"$$",
		`\[`,
		"| a | b |",
		"---",
		"# h",
		"> q",
		"- [ ] t",
		"- u",
		"7. o",
		"<div>x</div>",
	}
	for _, line := range blockLines {
		assert.True(t, startsBlock(line), "line %q", line)
	}

	proseLines := []string{"plain", "a - b", "1.x", "#tag", "<span>", "$ 5"}
	for _, line := range proseLines {
		assert.False(t, startsBlock(line), "line %q", line)
	}
}
