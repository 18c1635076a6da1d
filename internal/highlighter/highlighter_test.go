package highlighter_test

import (
	"strings"
	"testing"

	"github.com/onyolang/onyoc/internal/highlighter"
)

func TestHighlightTagsFunctionAndParameter(t *testing.T) {
	out, err := highlighter.Highlight("add(x, y) { return x + y }")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<span class="function">add</span>`) {
		t.Fatalf("expected function name tagged, got: %s", out)
	}
	if !strings.Contains(out, `<span class="parameter">x</span>`) {
		t.Fatalf("expected parameter x tagged, got: %s", out)
	}
	if !strings.Contains(out, `<span class="parameter">y</span>`) {
		t.Fatalf("expected parameter y tagged, got: %s", out)
	}
	if !strings.Contains(out, `<span class="keyword">return</span>`) {
		t.Fatalf("expected return keyword tagged, got: %s", out)
	}
}

func TestHighlightTagsLiteralsByKind(t *testing.T) {
	out, err := highlighter.Highlight(`main() { x = "hi" y = 1 z = 2.5 w = true v = nil }`)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<span class="str">"hi"</span>`,
		`<span class="int">1</span>`,
		`<span class="float">2.5</span>`,
		`<span class="bool">true</span>`,
		`<span class="nil">nil</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output, got: %s", want, out)
		}
	}
}

func TestHighlightPreservesSourceVerbatim(t *testing.T) {
	src := "main() { return 1 }"
	out, err := highlighter.Highlight(src)
	if err != nil {
		t.Fatal(err)
	}
	stripped := stripTags(out)
	if stripped != src {
		t.Fatalf("expected verbatim text once tags are stripped, got %q", stripped)
	}
}

func TestHighlightTagsStructAndFieldNames(t *testing.T) {
	out, err := highlighter.Highlight(`
struct Point {
	x,
	y,
}
main() { return Point{x: 1, y: 2} }
`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<span class="struct">Point</span>`) {
		t.Fatalf("expected struct name tagged, got: %s", out)
	}
	if !strings.Contains(out, `<span class="field">x</span>`) {
		t.Fatalf("expected field x tagged, got: %s", out)
	}
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
