// Package page wraps a rendered richtext fragment into a standalone HTML
// page. Syntax highlighting and math typesetting stay with external
// decorators (highlight.js and KaTeX, loaded from a CDN); the page only
// ships the bootstrap that locates the engine's stable markup and hands
// it to them.
package page

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/yaklabco/richtext/pkg/richtext"
)

// Options control page assembly.
type Options struct {
	// Title is the document title; empty means "Rendered transcript".
	Title string

	// Streaming marks the content container as still in progress.
	Streaming bool
}

// Build assembles a complete HTML document around fragment. The fragment
// must be output of richtext.Render; it is embedded without further
// escaping, which is exactly the engine's injection contract.
func Build(fragment string, opts Options) (string, error) {
	title := opts.Title
	if title == "" {
		title = "Rendered transcript"
	}

	data := struct {
		Title   string
		Content template.HTML //nolint:gosec // Engine output is escaped by construction
	}{
		Title:   title,
		Content: template.HTML(richtext.Container(fragment, opts.Streaming)), //nolint:gosec // See above
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("execute page template: %w", err)
	}
	return b.String(), nil
}

//nolint:gochecknoglobals // Parsed once at init
var pageTemplate = template.Must(template.New("page").Parse(pageSource))

// pageSource references the external decorators and runs the bootstrap
// below once the DOM is ready. The data-typeset marker keeps the math
// pass idempotent: re-running the bootstrap never re-typesets an element.
const pageSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.css">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/gh/highlightjs/cdn-release@11.10.0/build/styles/github-dark.min.css">
<script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.js"></script>
<script defer src="https://cdn.jsdelivr.net/gh/highlightjs/cdn-release@11.10.0/build/highlight.min.js"></script>
<style>
body { max-width: 52rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.6; }
.rich-content--streaming::after { content: "▋"; animation: blink 1s step-end infinite; }
@keyframes blink { 50% { opacity: 0; } }
.code-block { border: 1px solid #ddd; border-radius: 6px; overflow: hidden; margin: 1rem 0; }
.code-block-header { display: flex; justify-content: space-between; padding: .3rem .8rem; background: #f0f0f0; font-size: .85rem; }
.code-block pre { margin: 0; padding: .8rem; overflow-x: auto; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; color: #555; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: .3rem .6rem; }
.task-list { list-style: none; padding-left: 1rem; }
.task-item--done { text-decoration: line-through; color: #777; }
img.chat-image { max-width: 100%; }
</style>
</head>
<body>
{{.Content}}
<script>
document.addEventListener("DOMContentLoaded", function () {
  if (typeof hljs !== "undefined") {
    document.querySelectorAll('pre code[class*="language-"]').forEach(function (el) {
      hljs.highlightElement(el);
    });
  }
  if (typeof katex !== "undefined") {
    document.querySelectorAll("[data-latex]:not([data-typeset])").forEach(function (el) {
      try {
        katex.render(el.getAttribute("data-latex"), el, {
          displayMode: el.classList.contains("katex-block"),
          throwOnError: false
        });
      } catch (e) { /* leave the escaped source visible */ }
      el.setAttribute("data-typeset", "");
    });
  }
});
</script>
</body>
</html>
`
