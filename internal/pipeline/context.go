package pipeline

import (
	"github.com/onyolang/onyoc/internal/cst"
	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/ident"
	"github.com/onyolang/onyoc/internal/ir"
	"github.com/onyolang/onyoc/internal/token"
)

// PipelineContext threads state through the compiler's processing stages.
// Each Processor reads what earlier stages populated and writes what later
// stages need; it is not an error for a stage to find its inputs empty (the
// pipeline keeps running after errors so independent stages can still
// report diagnostics from the same run).
type PipelineContext struct {
	// FilePath is the input file's path, used only for diagnostic rendering.
	FilePath string

	// SourceCode is the expanded (post-preprocessor) source text.
	SourceCode string

	// TokenStream is the full token sequence produced by the lexer.
	TokenStream []token.Token

	// CstRoot is the parser's output: a *cst.Node (program root) or nil on
	// parse failure.
	CstRoot any

	// Idents is the identifier table. Pass 1 interns declared field and
	// method names; Pass 2 and the IR assembler may intern further names.
	Idents *ident.Table

	// Functions and Prototypes are populated by Pass 1 and mutated in place
	// (Function.Body, Function.Variables) by Pass 2.
	Functions  []*ir.Function
	Prototypes []*ir.Prototype

	// FunctionIndex and PrototypeIndex map a declared name to its index in
	// Functions/Prototypes, built by Pass 1 and only read (never mutated) by
	// Pass 2's call and struct-literal lowering.
	FunctionIndex  map[string]int
	PrototypeIndex map[string]int

	// FunctionBodies holds each function's unlowered block CST node,
	// parallel to Functions by function_id, so Pass 2 can lower a body
	// without re-walking the top-level declarations Pass 1 already visited.
	FunctionBodies []*cst.Node

	// Data is the assembled IR, populated by the IR assembler stage.
	Data *ir.Data

	// Errors accumulates diagnostics from every stage, in first-occurrence
	// order.
	Errors []*diagnostics.Error
}

// NewPipelineContext builds a context for compiling the given source text.
func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// HasErrors reports whether any stage has recorded a diagnostic so far.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
