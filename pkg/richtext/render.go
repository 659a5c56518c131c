// Package richtext converts assistant-authored text (Markdown with code
// fences, tables, lists, and LaTeX) into a safe HTML fragment.
//
// The engine is built for streaming consumers: callers re-render the
// complete-so-far text after every received token, so rendering any prefix
// of an eventually-complete document must be as safe as rendering the whole
// document. Every construct either fully matches a self-terminating pattern
// or degrades to escaped literal text; no input can produce an error, a
// panic, or unescaped markup.
//
// The supported grammar is a fixed subset sufficient for assistant-style
// output, not CommonMark. Syntax highlighting and math typesetting are left
// to external decorators: code blocks carry a language-<tag> class and math
// carries its source in a data-latex attribute.
package richtext

// Options control optional rendering behavior. The zero value reproduces
// the default grammar exactly.
type Options struct {
	// DetectLanguage, when non-nil, is consulted for fenced code blocks
	// whose info string is empty. It receives the raw fence body and
	// returns a lowercase fence tag ("go", "python", ...) or "" / "text"
	// when unsure. Detection never changes how the fence is parsed, only
	// the class and caption on the emitted block.
	DetectLanguage func(code string) string
}

// Render converts input into an HTML fragment safe to inject as the inner
// content of a container element. Empty input renders to the empty string.
//
// The streaming flag is a hint for callers decorating output while tokens
// are still arriving; it never changes how input is parsed. Render(p, true)
// and Render(p, false) produce identical fragments for every input p.
func Render(input string, streaming bool) string {
	return RenderWithOptions(input, streaming, Options{})
}

// RenderWithOptions is Render with explicit Options.
func RenderWithOptions(input string, streaming bool, opts Options) string {
	_ = streaming // parsing is streaming-agnostic by contract
	if input == "" {
		return ""
	}
	return renderBlocks(input, opts)
}

// Container wraps an already-rendered fragment in the outer rich-content
// element. While streaming, the fragment gets an in-progress modifier class
// so the surrounding UI can show a typing affordance.
func Container(html string, streaming bool) string {
	if streaming {
		return `<div class="rich-content rich-content--streaming">` + html + `</div>`
	}
	return `<div class="rich-content">` + html + `</div>`
}
