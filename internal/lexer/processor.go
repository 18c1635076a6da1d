package lexer

import "github.com/onyolang/onyoc/internal/pipeline"

// Processor is the lexer's pipeline stage: it tokenizes ctx.SourceCode into
// ctx.TokenStream and appends any unexpected-character diagnostics.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)
	ctx.TokenStream = l.Tokenize()
	ctx.Errors = append(ctx.Errors, l.Errors()...)
	return ctx
}
