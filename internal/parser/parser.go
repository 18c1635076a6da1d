// Package parser wires the onyo grammar and the Earley chart engine into a
// pipeline.Processor, producing ctx.CstRoot. The tables are built once at
// package init from the embedded grammar resource, matching the single-
// process-lifetime parser-table contract (the parser never reconstructs
// its tables per compilation).
package parser

import (
	"fmt"

	"github.com/onyolang/onyoc/internal/cst"
	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/earley"
	"github.com/onyolang/onyoc/internal/grammar"
	"github.com/onyolang/onyoc/internal/pipeline"
	"github.com/onyolang/onyoc/internal/token"
)

var baseGrammar *grammar.Grammar

func init() {
	g, err := grammar.Load()
	if err != nil {
		panic(err)
	}
	baseGrammar = g
}

// Processor parses ctx.TokenStream with the grammar rule named Start
// (defaulting to "start" — the full program — when left empty). The
// compiler's own pipeline always uses the default (filtered) tree shape;
// KeepAllTokens retains every punctuation and keyword token. The
// highlighter does not use Processor: it calls ParseWith for its three
// parser variants.
type Processor struct {
	Start         string
	KeepAllTokens bool
}

func (p Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	start := p.Start
	if start == "" {
		start = "start"
	}
	root, perr := earley.Parse(baseGrammar, ctx.TokenStream, start, p.KeepAllTokens)
	if perr != nil {
		ctx.Errors = append(ctx.Errors, parseError(ctx.TokenStream, perr))
		return ctx
	}
	ctx.CstRoot = root
	return ctx
}

func parseError(toks []token.Token, perr *earley.Error) *diagnostics.Error {
	if perr.Position >= len(toks) || len(toks) == 0 {
		return diagnostics.NewNoRange(diagnostics.ErrP002UnexpectedToken, "unexpected end of input")
	}
	tok := toks[perr.Position]
	if tok.Type == token.EOF {
		return diagnostics.New(diagnostics.ErrP002UnexpectedToken, tok, "unexpected end of input")
	}
	return diagnostics.New(diagnostics.ErrP002UnexpectedToken, tok, "unexpected token %q", fmt.Sprint(tok.Lexeme))
}

// ParseWith parses toks with the grammar rule named start, keeping every
// token (including punctuation and keywords) as a leaf — used by the
// highlighter's three-tier fallback, which retries a failed full-program
// parse as "raw_block" then "expr".
func ParseWith(toks []token.Token, start string) (*cst.Node, *earley.Error) {
	return earley.Parse(baseGrammar, toks, start, true)
}
