// Package preprocessor implements the compiler's single-pass `#use "path"`
// textual substitution, grounded on original_source/onyoc/preprocessor.py's
// regex-based rewrite: each line matching `#use "<path>"` (anchored at line
// start, terminated by a newline or EOF) is replaced by the referenced
// file's full contents. There is no transitive expansion: substituted text
// is never itself re-scanned for further #use directives.
package preprocessor

import (
	"os"
	"regexp"

	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/onyolog"
	"github.com/onyolang/onyoc/internal/pipeline"
	"github.com/onyolang/onyoc/internal/utils"
)

var usePattern = regexp.MustCompile(`(?m)^#use\s+"([^"]+)"\s*$\n?`)

// Processor is the pipeline's first stage: it expands ctx.SourceCode in
// place. A missing referenced file is a fatal I/O diagnostic; the pipeline
// still runs its remaining stages (per the ambient "continue on errors"
// convention), but with the directive line left unexpanded.
type Processor struct {
	// BaseDir anchors relative #use paths (the input file's directory).
	BaseDir string
}

func (p Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.SourceCode = usePattern.ReplaceAllStringFunc(ctx.SourceCode, func(match string) string {
		sub := usePattern.FindStringSubmatch(match)
		path := utils.ResolveImportPath(p.BaseDir, sub[1])
		data, err := os.ReadFile(path)
		if err != nil {
			ctx.Errors = append(ctx.Errors, diagnostics.NewNoRange(
				diagnostics.ErrI001ReadFile, "cannot read #use file %q: %v", path, err,
			))
			return match
		}
		onyolog.Debug("preprocessor substituted file", "path", path, "bytes", len(data))
		return string(data)
	})
	return ctx
}
