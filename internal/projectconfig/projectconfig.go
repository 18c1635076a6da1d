// Package projectconfig loads the optional `.onyoc.yaml` project file: CLI
// convenience defaults (interpreter path, output directory) so repeated
// invocations in one project don't need to repeat them on the command
// line. Grounded on the teacher's internal/ext/config.go YAML-config
// pattern (os.ReadFile + yaml.Unmarshal, a LoadConfig entry point); this is
// purely a CLI-edge convenience and never participates in compilation
// semantics or the IR.
package projectconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is `.onyoc.yaml`'s shape. Every field is an optional default; an
// explicit CLI flag always overrides it.
type Config struct {
	// InterpreterPath defaults --interpreter-path/-p.
	InterpreterPath string `yaml:"interpreter_path,omitempty"`

	// OutputDir defaults the directory portion of --output/-o.
	OutputDir string `yaml:"output_dir,omitempty"`

	// NoHistory suppresses the compile history log (see internal/historylog).
	NoHistory bool `yaml:"no_history,omitempty"`
}

const fileName = ".onyoc.yaml"

// Discover walks upward from dir looking for .onyoc.yaml, returning the
// first one found (or a zero Config and nil error if none exists anywhere
// up to the filesystem root).
func Discover(dir string) (*Config, error) {
	for {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return &Config{}, nil
		}
		dir = parent
	}
}

// Load reads and parses a .onyoc.yaml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing project config %s: %w", path, err)
	}
	return &cfg, nil
}
