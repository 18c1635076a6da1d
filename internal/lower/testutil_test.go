package lower_test

import (
	"testing"

	"github.com/onyolang/onyoc/internal/collector"
	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/lexer"
	"github.com/onyolang/onyoc/internal/lower"
	"github.com/onyolang/onyoc/internal/parser"
	"github.com/onyolang/onyoc/internal/pipeline"
)

// compile lexes, parses, collects and lowers input, returning the final
// pipeline context for assertion.
func compile(input string) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(input)
	p := pipeline.New(lexer.Processor{}, parser.Processor{}, collector.Processor{}, lower.Processor{})
	return p.Run(ctx)
}

func expectError(t *testing.T, input string, code diagnostics.Code) *diagnostics.Error {
	t.Helper()
	ctx := compile(input)
	for _, e := range ctx.Errors {
		if e.Code == code {
			return e
		}
	}
	t.Fatalf("expected error %s, got %d errors: %v\ninput: %s", code, len(ctx.Errors), ctx.Errors, input)
	return nil
}

func expectNoErrors(t *testing.T, input string) *pipeline.PipelineContext {
	t.Helper()
	ctx := compile(input)
	if len(ctx.Errors) > 0 {
		t.Fatalf("expected no errors, got: %v\ninput: %s", ctx.Errors, input)
	}
	return ctx
}
