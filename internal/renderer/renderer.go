// Package renderer prints accumulated diagnostics.Error values as a
// human-readable report: a colored "error:" header, a two-line source
// context window, a caret underline sized to the error's range, an inline
// "Did you mean" hint, and a green "+++"-prefixed suggestion block.
// Grounded on original_source/onyoc/error.py's Error.print/Pager, restated
// with the teacher's own ANSI-escape convention
// (internal/evaluator/builtins_term.go's ansiFg/ansiStyle helpers) in place
// of the original's term module. The renderer never negotiates TTY support
// itself — codes are always emitted; that decision belongs to the CLI edge.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/onyolang/onyoc/internal/diagnostics"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	brRed  = "\033[91m"
	cyan   = "\033[96m"
	yellow = "\033[93m"
	green  = "\033[92m"
)

// Render writes every error in errs against source (the file's original
// text, used to recover context lines) and path (shown in the header), then
// a final "generated N errors" summary line.
func Render(w io.Writer, path, source string, errs []*diagnostics.Error) {
	lines := strings.Split(source, "\n")
	for _, e := range errs {
		renderOne(w, path, lines, e)
	}
	fmt.Fprintf(w, "\n%s%sgenerated %d errors%s\n", bold, brRed, len(errs), reset)
}

func renderOne(w io.Writer, path string, lines []string, e *diagnostics.Error) {
	fmt.Fprintf(w, "%s%serror: %s%s%s%s\n", bold, brRed, reset, bold, e.Message, reset)
	fmt.Fprintf(w, "%s->%s %s", cyan, reset, path)
	if e.Range != nil {
		fmt.Fprintf(w, ":%d:%d", e.Range.Line+1, e.Range.Column+1)
	}
	fmt.Fprintln(w)

	if r := e.Range; r != nil {
		printContext(w, lines, r.Line-2, r.Line+1)

		fmt.Fprintf(w, "     | %s%s%s%s%s", strings.Repeat(" ", r.Column), bold, cyan, strings.Repeat("^", r.Length), reset)
		if e.Typo != "" {
			fmt.Fprintf(w, "%s Did you mean `%s`?%s", yellow, e.Typo, reset)
		}
		fmt.Fprintln(w)

		printContext(w, lines, r.Line+1, r.Line+3)
	}

	if s := e.Suggestion; s != nil {
		fmt.Fprintf(w, "%s%s%s\n", green, s.Message, reset)
		printContext(w, lines, s.Range.Line-2, s.Range.Line-1)
		for _, line := range strings.Split(s.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(w, "%s %s +++ | %s%s\n", bold, green, line, reset)
		}
	}
}

// printContext prints lines[from:to] (clamped, 0-based, end-exclusive) with
// 1-based line-number gutters, mirroring error.py's Pager.advance.
func printContext(w io.Writer, lines []string, from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	for i := from; i < to; i++ {
		fmt.Fprintf(w, " %3d | %s\n", i+1, lines[i])
	}
}
