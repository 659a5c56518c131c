package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// renderPara strips the paragraph wrapper so inline cases read cleanly.
func renderPara(t *testing.T, input string) string {
	t.Helper()
	out := Render(input, false)
	assert.True(t, len(out) >= 7 && out[:3] == "<p>" && out[len(out)-4:] == "</p>",
		"expected a single paragraph, got %q", out)
	return out[3 : len(out)-4]
}

func TestInlineSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inline code",
			input: "run `go test` now",
			want:  "run <code>go test</code> now",
		},
		{
			name:  "inline code content is literal",
			input: "`**not bold**`",
			want:  "<code>**not bold**</code>",
		},
		{
			name:  "inline code escapes html",
			input: "`<b>`",
			want:  "<code>&lt;b&gt;</code>",
		},
		{
			name:  "backslash paren math",
			input: `where \(x_i\) is`,
			want:  `where <span class="katex-inline" data-latex="x_i">x_i</span> is`,
		},
		{
			name:  "dollar math",
			input: "$a+b$",
			want:  `<span class="katex-inline" data-latex="a+b">a+b</span>`,
		},
		{
			name:  "double dollar is not inline math",
			input: "$$",
			want:  "", // handled at block level; see display math tests
		},
		{
			name:  "bold italic triple star",
			input: "***x***",
			want:  "<strong><em>x</em></strong>",
		},
		{
			name:  "bold with underscores",
			input: "__x__",
			want:  "<strong>x</strong>",
		},
		{
			name:  "italic with star",
			input: "*x*",
			want:  "<em>x</em>",
		},
		{
			name:  "italic with underscore",
			input: "_x_",
			want:  "<em>x</em>",
		},
		{
			name:  "italic opener rejects following space",
			input: "* not italic*",
			want:  "", // becomes a list item at block level
		},
		{
			name:  "strikethrough",
			input: "~~gone~~",
			want:  "<del>gone</del>",
		},
		{
			name:  "superscript",
			input: "x^2^",
			want:  "x<sup>2</sup>",
		},
		{
			name:  "superscript content is literal",
			input: "^*a*^",
			want:  "<sup>*a*</sup>",
		},
		{
			name:  "superscript opener rejects following space",
			input: "a^ b^",
			want:  "a^ b^",
		},
		{
			name:  "link",
			input: "[docs](https://example.com)",
			want:  `<a href="https://example.com" target="_blank" rel="noopener">docs</a>`,
		},
		{
			name:  "link label is inline processed",
			input: "[**bold** label](u)",
			want:  `<a href="u" target="_blank" rel="noopener"><strong>bold</strong> label</a>`,
		},
		{
			name:  "image",
			input: "![a cat](cat.png)",
			want:  `<img src="cat.png" alt="a cat" class="chat-image" loading="lazy">`,
		},
		{
			name:  "br passthrough",
			input: "a<br>b",
			want:  "a<br>b",
		},
		{
			name:  "nested bold inside link inside emphasis",
			input: "_[**x**](u)_",
			want:  `<em><a href="u" target="_blank" rel="noopener"><strong>x</strong></a></em>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.want == "" {
				t.Skip("covered by block-level tests")
			}
			assert.Equal(t, tt.want, renderPara(t, tt.input))
		})
	}
}

func TestInlineUnmatchedDelimitersDegradeToLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lone backtick",
			input: "a ` b",
			want:  "a ` b",
		},
		{
			name:  "unclosed bold",
			input: "**almost",
			want:  "**almost",
		},
		{
			name:  "unclosed italic",
			input: "*almost",
			want:  "*almost",
		},
		{
			name:  "unclosed dollar math",
			input: "$almost",
			want:  "$almost",
		},
		{
			name:  "unclosed backslash math",
			input: `\(almost`,
			want:  `\(almost`,
		},
		{
			name:  "unclosed strikethrough",
			input: "~~almost",
			want:  "~~almost",
		},
		{
			name:  "unclosed superscript",
			input: "^almost",
			want:  "^almost",
		},
		{
			name:  "link without closing paren",
			input: "[text](url",
			want:  "[text](url",
		},
		{
			name:  "link without paren",
			input: "[text] more",
			want:  "[text] more",
		},
		{
			name:  "image without bracket close",
			input: "![alt(url)",
			want:  "![alt(url)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, renderPara(t, tt.input))
		})
	}
}

func TestInlineGreedyNearestCloser(t *testing.T) {
	t.Parallel()

	// Adjacent emphasis markers pair greedily with the nearest closer.
	// The grouping below is pinned; changing it would be a regression
	// against the reference behavior even where it looks surprising.
	assert.Equal(t, "<em>a</em>b<em>c</em>", renderPara(t, "*a*b*c*"))
	assert.Equal(t, "<code>a</code>b`c", renderPara(t, "`a`b`c"))
}

func TestInlineEscapedBracketsInLinks(t *testing.T) {
	t.Parallel()

	// A backslash-escaped ] does not close the link text.
	assert.Equal(t,
		`<a href="u" target="_blank" rel="noopener">a\]b</a>`,
		renderPara(t, `[a\]b](u)`))
}

func TestInlineDollarRejectsDisplayOpener(t *testing.T) {
	t.Parallel()

	// The first $ of a $$ run never opens inline math. The second one
	// may, pairing with the nearest closer; that grouping is pinned
	// reference behavior, surprising as it reads.
	got := renderPara(t, "a $$b$$ c")
	assert.Equal(t, `a $<span class="katex-inline" data-latex="b">b</span>$ c`, got)
}

func TestInlineMathNotRecursed(t *testing.T) {
	t.Parallel()

	got := renderPara(t, "$**a**$")
	assert.Equal(t, `<span class="katex-inline" data-latex="**a**">**a**</span>`, got)
}
