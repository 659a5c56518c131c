package pretty

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// defaultWidth is used when the writer is not a terminal.
const defaultWidth = 80

// Summary describes one completed render run.
type Summary struct {
	Input    string // source path, or "stdin"
	Output   string // destination path, or "stdout"
	BytesIn  int
	BytesOut int
	FullPage bool
	Duration time.Duration
}

// WriteSummary prints a short styled run summary, one fact per line,
// clamped to the terminal width.
func WriteSummary(w io.Writer, styles *Styles, s Summary) {
	width := terminalWidth(w)

	mode := "fragment"
	if s.FullPage {
		mode = "full page"
	}

	lines := []struct{ label, value string }{
		{"input", fmt.Sprintf("%s (%s)", s.Input, formatBytes(s.BytesIn))},
		{"output", fmt.Sprintf("%s (%s, %s)", s.Output, formatBytes(s.BytesOut), mode)},
		{"elapsed", s.Duration.Round(time.Microsecond).String()},
	}

	fmt.Fprintln(w, styles.Success.Render("✓")+" "+styles.Title.Render("rendered"))
	for _, line := range lines {
		text := fmt.Sprintf("  %s %s", styles.Label.Render(line.label+":"), styles.Value.Render(line.value))
		fmt.Fprintln(w, clamp(text, width))
	}
}

// terminalWidth returns the writer's terminal width, or defaultWidth.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// clamp truncates s to width runes with an ellipsis. Styled sequences are
// short here, so rune-truncation is close enough for a status line.
func clamp(s string, width int) string {
	if width <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
