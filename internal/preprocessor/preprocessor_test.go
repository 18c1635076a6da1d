package preprocessor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/pipeline"
	"github.com/onyolang/onyoc/internal/preprocessor"
)

func TestSubstitutesReferencedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.onyo"), []byte("helper() { return 1 }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := pipeline.NewPipelineContext("#use \"lib.onyo\"\nmain() { return helper() }\n")
	out := preprocessor.Processor{BaseDir: dir}.Process(ctx)

	if len(out.Errors) != 0 {
		t.Fatalf("expected no errors, got: %v", out.Errors)
	}
	want := "helper() { return 1 }\nmain() { return helper() }\n"
	if out.SourceCode != want {
		t.Fatalf("substitution mismatch:\ngot:  %q\nwant: %q", out.SourceCode, want)
	}
}

func TestMissingFileLeavesDirectiveAndReportsError(t *testing.T) {
	dir := t.TempDir()
	ctx := pipeline.NewPipelineContext("#use \"missing.onyo\"\nmain() {}\n")
	out := preprocessor.Processor{BaseDir: dir}.Process(ctx)

	if len(out.Errors) != 1 || out.Errors[0].Code != diagnostics.ErrI001ReadFile {
		t.Fatalf("expected a single I001 error, got: %v", out.Errors)
	}
	if out.SourceCode != "#use \"missing.onyo\"\nmain() {}\n" {
		t.Fatalf("expected the unexpanded directive line to survive, got: %q", out.SourceCode)
	}
}

func TestSubstitutionIsNotReScannedForFurtherDirectives(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.onyo"), []byte("#use \"b.onyo\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.onyo"), []byte("never_expanded() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := pipeline.NewPipelineContext("#use \"a.onyo\"\nmain() {}\n")
	out := preprocessor.Processor{BaseDir: dir}.Process(ctx)

	if len(out.Errors) != 0 {
		t.Fatalf("expected no errors, got: %v", out.Errors)
	}
	want := "#use \"b.onyo\"\nmain() {}\n"
	if out.SourceCode != want {
		t.Fatalf("expected one-pass substitution only, got: %q", out.SourceCode)
	}
}
