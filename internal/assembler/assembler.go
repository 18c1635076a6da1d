// Package assembler is the pipeline's final stage: it gathers the functions
// and prototypes Pass 1 declared and Pass 2 lowered, the frozen identifier
// table, and the reserved-identifier set the language runtime hooks into,
// and assembles them into the ir.Data document the interpreter consumes.
package assembler

import (
	"github.com/onyolang/onyoc/internal/config"
	"github.com/onyolang/onyoc/internal/ir"
	"github.com/onyolang/onyoc/internal/pipeline"
)

// Processor populates ctx.Data. It runs after lower.Processor and is a
// no-op if any earlier stage has already recorded an error, since a
// partially lowered function would otherwise produce a misleadingly
// complete-looking IR document.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() || ctx.Idents == nil {
		return ctx
	}

	next := ctx.Idents.Intern(config.ReservedIterNext)

	ctx.Data = &ir.Data{
		Functions:  ctx.Functions,
		Prototypes: ctx.Prototypes,
		IdentMap:   ctx.Idents.StringMap(),
		ReservedIdents: ir.ReservedIdents{
			Next: next,
		},
	}
	return ctx
}
