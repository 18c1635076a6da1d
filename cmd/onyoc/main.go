// Command onyoc is the onyo compiler front end: it expands #use directives,
// parses, runs the two-pass definition-collector/lowerer, and either emits
// the assembled IR as JSON, hands it to an interpreter subprocess
// (run-directly mode), or renders a syntax-highlighted HTML view of the
// source. Wiring style follows the teacher's cmd/funxy/main.go: a single
// main that resolves flags, builds one pipeline.Pipeline, and reports
// diagnostics through internal/renderer.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/onyolang/onyoc/internal/assembler"
	"github.com/onyolang/onyoc/internal/collector"
	"github.com/onyolang/onyoc/internal/config"
	"github.com/onyolang/onyoc/internal/highlighter"
	"github.com/onyolang/onyoc/internal/historylog"
	"github.com/onyolang/onyoc/internal/interp"
	"github.com/onyolang/onyoc/internal/lexer"
	"github.com/onyolang/onyoc/internal/lower"
	"github.com/onyolang/onyoc/internal/onyolog"
	"github.com/onyolang/onyoc/internal/parser"
	"github.com/onyolang/onyoc/internal/pipeline"
	"github.com/onyolang/onyoc/internal/preprocessor"
	"github.com/onyolang/onyoc/internal/projectconfig"
	"github.com/onyolang/onyoc/internal/renderer"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		inputPath       = flag.String("i", "", "input .onyo file (also accepted as a bare trailing argument)")
		outputPath      = flag.String("o", "", "write assembled IR JSON to this path instead of running it")
		interpreterPath = flag.String("p", "", "interpreter executable (default: "+config.DefaultInterpreterName+")")
		syntaxHighlight = flag.Bool("syntax-highlight", false, "emit a syntax-highlighted HTML rendering of the input instead of compiling")
		noHistory       = flag.Bool("no-history", false, "do not record this invocation in the compile history log")
		verbose         = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.StringVar(inputPath, "input", "", "alias for -i")
	flag.StringVar(outputPath, "output", "", "alias for -o")
	flag.StringVar(interpreterPath, "interpreter-path", "", "alias for -p")
	flag.Parse()
	onyolog.SetVerbose(*verbose)

	path := *inputPath
	extraArgs := flag.Args()
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
		extraArgs = extraArgs[1:]
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: onyoc [-i] <file.onyo> [flags]")
		flag.PrintDefaults()
		return 2
	}

	projCfg, err := projectconfig.Discover(filepath.Dir(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "onyoc: %v\n", err)
		return 1
	}
	if *interpreterPath == "" {
		*interpreterPath = projCfg.InterpreterPath
	}
	if !*noHistory {
		*noHistory = projCfg.NoHistory
	}
	if *outputPath != "" && projCfg.OutputDir != "" && filepath.Dir(*outputPath) == "." {
		*outputPath = filepath.Join(projCfg.OutputDir, *outputPath)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "onyoc: cannot read %s: %v\n", path, err)
		return 1
	}

	if *syntaxHighlight {
		html, err := highlighter.Highlight(string(source))
		if err != nil {
			fmt.Fprintf(os.Stderr, "onyoc: %v\n", err)
			return 1
		}
		fmt.Println(html)
		return 0
	}

	invocationID := historylog.NewInvocationID()
	startedAt := time.Now()

	p := pipeline.New(
		preprocessor.Processor{BaseDir: filepath.Dir(path)},
		lexer.Processor{},
		parser.Processor{},
		collector.Processor{},
		lower.Processor{},
		assembler.Processor{},
	)
	ctx := p.Run(pipeline.NewPipelineContext(string(source)))
	ctx.FilePath = path

	if !*noHistory {
		entry := historylog.Entry{
			InvocationID: invocationID,
			Timestamp:    startedAt,
			InputPath:    path,
			ErrorCount:   len(ctx.Errors),
		}
		if len(ctx.Errors) > 0 {
			entry.FirstErrorCode = string(ctx.Errors[0].Code)
		}
		historylog.Append(historylog.DefaultPath(), entry)
	}

	if ctx.HasErrors() {
		renderer.Render(os.Stderr, path, string(source), ctx.Errors)
		return 1
	}

	if *outputPath != "" {
		out, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "onyoc: cannot write %s: %v\n", *outputPath, err)
			return 1
		}
		defer out.Close()
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ctx.Data); err != nil {
			fmt.Fprintf(os.Stderr, "onyoc: cannot encode IR: %v\n", err)
			return 1
		}
		return 0
	}

	exitCode, err := interp.Run(ctx.Data, *interpreterPath, extraArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "onyoc: %v\n", err)
		return 1
	}
	return exitCode
}
