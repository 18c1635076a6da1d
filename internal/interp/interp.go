// Package interp implements run-directly mode: the compiled IR is written
// to a scoped temporary file and handed to a separate interpreter
// subprocess (this module owns no evaluator of its own — it is a
// front-end only). Grounded on the teacher's exec.Command subprocess
// style (cmd/funxy/main.go, internal/evaluator/build_test.go). The
// temp file is always removed on every exit path — normal return, error,
// or an interrupting signal — via defer plus a signal.Notify-driven
// cleanup, matching the teacher's preference for explicit scoped resource
// cleanup over relying on process exit or a finalizer.
package interp

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/onyolang/onyoc/internal/config"
	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/ir"
	"github.com/onyolang/onyoc/internal/onyolog"
)

// Run serializes data to a scoped temp file and execs interpreterPath
// against it, forwarding extraArgs and connecting stdio directly. The temp
// file is deleted before Run returns, whether the interpreter succeeds,
// fails, or the process is interrupted mid-run.
//
// The returned exit code is the interpreted program's own exit status,
// propagated transparently as a front end should: it is only meaningful
// when err is nil. A non-nil err means onyoc itself failed to stage or
// spawn the interpreter (the caller should report err and exit 1), not
// that the interpreted program ran and failed.
func Run(data *ir.Data, interpreterPath string, extraArgs []string) (int, error) {
	if interpreterPath == "" {
		interpreterPath = config.DefaultInterpreterName
	}

	tmp, err := os.CreateTemp("", "onyoc-*.ir.json")
	if err != nil {
		return 0, diagnostics.NewNoRange(diagnostics.ErrI002WriteFile, "cannot create temp IR file: %v", err)
	}
	path := tmp.Name()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	cleanupDone := make(chan struct{})
	go func() {
		select {
		case <-sig:
			os.Remove(path)
		case <-cleanupDone:
		}
	}()
	defer func() {
		close(cleanupDone)
		signal.Stop(sig)
		os.Remove(path)
	}()

	enc := json.NewEncoder(tmp)
	encErr := enc.Encode(data)
	closeErr := tmp.Close()
	if encErr != nil {
		return 0, diagnostics.NewNoRange(diagnostics.ErrI002WriteFile, "cannot write IR to %s: %v", path, encErr)
	}
	if closeErr != nil {
		return 0, diagnostics.NewNoRange(diagnostics.ErrI002WriteFile, "cannot close IR file %s: %v", path, closeErr)
	}

	tty := isatty.IsTerminal(os.Stdout.Fd())
	start := time.Now()
	if tty {
		fmt.Fprintf(os.Stderr, "compiling %s...\n", path)
	}

	args := append([]string{path}, extraArgs...)
	cmd := exec.Command(interpreterPath, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	onyolog.Info("spawning interpreter", "path", interpreterPath, "ir_file", path)
	runErr := cmd.Run()

	if tty {
		fmt.Fprintf(os.Stderr, "compiled %s\n", humanize.RelTime(start, time.Now(), "ago", "from now"))
	}

	if exitErr, ok := runErr.(*exec.ExitError); ok {
		return exitErr.ProcessState.ExitCode(), nil
	}
	if runErr != nil {
		return 0, diagnostics.NewNoRange(diagnostics.ErrI003InterpreterSpawn, "interpreter %q failed: %v", interpreterPath, runErr)
	}
	return cmd.ProcessState.ExitCode(), nil
}
