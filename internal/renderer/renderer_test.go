package renderer_test

import (
	"strings"
	"testing"

	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/renderer"
	"github.com/onyolang/onyoc/internal/token"
)

func TestRenderIncludesHeaderPathAndCaret(t *testing.T) {
	source := "main() {\n\treturn undefined\n}\n"
	tok := token.Token{Type: token.IDENT, Lexeme: "undefined", Line: 2, Column: 9}
	err := diagnostics.New(diagnostics.ErrR001UndefinedVariable, tok, "undefined variable %q", "undefined").WithTypo("defined")

	var buf strings.Builder
	renderer.Render(&buf, "main.onyo", source, []*diagnostics.Error{err})
	out := buf.String()

	if !strings.Contains(out, "error: \033[0m\033[1mundefined variable \"undefined\"") {
		t.Fatalf("expected error header in output, got:\n%s", out)
	}
	if !strings.Contains(out, "main.onyo:2:9") {
		t.Fatalf("expected path:line:col in output, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret underline in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Did you mean `defined`?") {
		t.Fatalf("expected a typo hint in output, got:\n%s", out)
	}
	if !strings.Contains(out, "generated 1 errors") {
		t.Fatalf("expected a summary line in output, got:\n%s", out)
	}
}

func TestRenderWithNoErrors(t *testing.T) {
	var buf strings.Builder
	renderer.Render(&buf, "main.onyo", "main() {}\n", nil)
	if !strings.Contains(buf.String(), "generated 0 errors") {
		t.Fatalf("expected a zero-error summary, got:\n%s", buf.String())
	}
}
