package richtext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
)

// benchDoc approximates a long assistant reply: prose, code, math, a
// table, and lists.
//
//nolint:gochecknoglobals // Shared benchmark fixture
var benchDoc = strings.Repeat(
	"## Section\n\n"+
		"Some prose with **bold**, _italic_, `code`, $x^2$ and a [link](https://example.com).\n\n"+
		"```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```\n\n"+
		"| a | b |\n|---|---|\n| 1 | 2 |\n\n"+
		"- [x] first\n- [ ] second\n\n"+
		"$$\n\\sum_{i=0}^{n} i\n$$\n\n",
	16)

func BenchmarkRender(b *testing.B) {
	b.SetBytes(int64(len(benchDoc)))
	b.ReportAllocs()
	for range b.N {
		Render(benchDoc, false)
	}
}

// BenchmarkRenderStreamingReplay models the interactive cost profile:
// the caller re-renders the complete-so-far text after every chunk.
func BenchmarkRenderStreamingReplay(b *testing.B) {
	const chunk = 64
	b.ReportAllocs()
	for range b.N {
		for end := chunk; end <= len(benchDoc); end += chunk {
			Render(benchDoc[:end], true)
		}
	}
}

// BenchmarkGoldmarkBaseline renders the same document through goldmark,
// as a reference point for what a full CommonMark implementation costs on
// this workload. The outputs are not comparable structurally; only the
// cost is of interest.
func BenchmarkGoldmarkBaseline(b *testing.B) {
	md := goldmark.New()
	src := []byte(benchDoc)
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	for range b.N {
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			b.Fatal(err)
		}
	}
}
