package projectconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/onyolang/onyoc/internal/projectconfig"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".onyoc.yaml")
	content := "interpreter_path: /usr/local/bin/onyo-rs\noutput_dir: build\nno_history: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := projectconfig.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InterpreterPath != "/usr/local/bin/onyo-rs" {
		t.Fatalf("unexpected interpreter path: %q", cfg.InterpreterPath)
	}
	if cfg.OutputDir != "build" {
		t.Fatalf("unexpected output dir: %q", cfg.OutputDir)
	}
	if !cfg.NoHistory {
		t.Fatalf("expected no_history true")
	}
}

func TestDiscoverWalksUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".onyoc.yaml"), []byte("output_dir: out\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := projectconfig.Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "out" {
		t.Fatalf("expected to discover the root-level config, got output_dir=%q", cfg.OutputDir)
	}
}

func TestDiscoverReturnsZeroValueWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := projectconfig.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InterpreterPath != "" || cfg.OutputDir != "" || cfg.NoHistory {
		t.Fatalf("expected a zero-value config, got %#v", cfg)
	}
}
