// Package lower implements Pass 2: the design's central transform from CST
// to IR. It visits each function body bottom-up, resolving identifiers to
// variable slots or function references, desugaring comparison and
// control-flow sugar, and reporting undefined references with close-match
// suggestions. Grounded on original_source/onyoc/V.py — the dispatch order
// for calls, the comparison desugaring identities, and the right-nested
// elif/else shape are all carried over from that pass, extended with the
// struct-literal and field-access lowering the original pass's later
// revision adds.
package lower

import (
	"strconv"
	"strings"

	"github.com/onyolang/onyoc/internal/cst"
	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/ir"
	"github.com/onyolang/onyoc/internal/pipeline"
	"github.com/onyolang/onyoc/internal/token"
)

// Processor is Pass 2's pipeline stage. It runs after collector.Processor
// has populated ctx.Functions, ctx.Prototypes and ctx.FunctionBodies.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	for i, fn := range ctx.Functions {
		if i >= len(ctx.FunctionBodies) || ctx.FunctionBodies[i] == nil {
			continue
		}
		lc := newLoweringCtx(ctx, fn)
		fn.Body = lc.lowerBlock(ctx.FunctionBodies[i])
		ctx.Errors = append(ctx.Errors, lc.errors...)
	}
	return ctx
}

type loweringCtx struct {
	ctx      *pipeline.PipelineContext
	fn       *ir.Function
	varIndex map[string]int
	errors   []*diagnostics.Error
}

func newLoweringCtx(ctx *pipeline.PipelineContext, fn *ir.Function) *loweringCtx {
	lc := &loweringCtx{ctx: ctx, fn: fn, varIndex: make(map[string]int)}
	for i, p := range fn.Parameters {
		lc.varIndex[p] = i
	}
	return lc
}

func (lc *loweringCtx) resolveOrAllocVar(name string) int {
	if slot, ok := lc.varIndex[name]; ok {
		return slot
	}
	slot := len(lc.fn.Variables)
	lc.fn.Variables = append(lc.fn.Variables, name)
	lc.varIndex[name] = slot
	return slot
}

// localNames returns the function's local variable names in first-declared
// order (lc.fn.Variables is append-only, indexed by slot), so that
// closeMatch's tie-breaking is deterministic across runs instead of
// following varIndex's unordered map iteration.
func (lc *loweringCtx) localNames() []string {
	names := make([]string, len(lc.fn.Variables))
	copy(names, lc.fn.Variables)
	return names
}

func childNode(n *cst.Node, i int) *cst.Node {
	node, _ := cst.Tree(n.Children[i])
	return node
}

func childTok(n *cst.Node, i int) token.Token {
	tok, _ := cst.Token(n.Children[i])
	return tok
}

// lowerBlock lowers a `block` node's `stmt*` children in order.
func (lc *loweringCtx) lowerBlock(block *cst.Node) []ir.Stmt {
	if block == nil {
		return nil
	}
	stmts := make([]ir.Stmt, 0, len(block.Children))
	for _, child := range block.Children {
		stmtWrapper, ok := cst.Tree(child)
		if !ok {
			continue
		}
		// Only the `stmt` passthrough itself is stripped: `ret` and
		// `execexpr` have a single child too, and must reach lowerStmt intact.
		stmt := childNode(stmtWrapper, 0)
		if stmt.Rule == "callstmt" {
			stmt = cst.Unwrap(stmt)
		}
		stmts = append(stmts, lc.lowerStmt(stmt))
	}
	return stmts
}

func (lc *loweringCtx) lowerStmt(node *cst.Node) ir.Stmt {
	switch node.Rule {
	case "assign":
		name := childTok(node, 0).Lexeme
		expr := lc.lowerExpr(childNode(node, 1))
		slot := lc.resolveOrAllocVar(name)
		return ir.ExprStmt{Expr: ir.SetVarExpr{Variable: ir.VariableReference{Slot: slot}, Expr: expr}}
	case "whilestmt":
		return ir.WhileStmt{
			Condition: lc.lowerExpr(childNode(node, 0)),
			Block:     lc.lowerBlock(childNode(node, 1)),
		}
	case "dowhile":
		return ir.DoWhileStmt{
			Block:     lc.lowerBlock(childNode(node, 0)),
			Condition: lc.lowerExpr(childNode(node, 1)),
		}
	case "forstmt":
		slot := lc.resolveOrAllocVar(childTok(node, 0).Lexeme)
		return ir.ForLoopStmt{
			Variable: ir.VariableReference{Slot: slot},
			Iterator: lc.lowerExpr(childNode(node, 1)),
			Block:    lc.lowerBlock(childNode(node, 2)),
		}
	case "ifchain":
		return lc.lowerIfChain(node)
	case "execexpr":
		return ir.ExprStmt{Expr: lc.lowerExpr(childNode(node, 0))}
	case "ret":
		return ir.ReturnStmt{Expr: lc.lowerExpr(childNode(node, 0))}
	default:
		// A bare call (or any other expression used at statement position)
		// is wrapped as a statement-expression.
		return ir.ExprStmt{Expr: lc.lowerExprConcrete(node)}
	}
}

// lowerIfChain rewrites `if C1 B1 elif C2 B2 ... else Be` into right-nested
// Branch statements, depth equal to the number of elif arms.
func (lc *loweringCtx) lowerIfChain(node *cst.Node) ir.Stmt {
	cond := lc.lowerExpr(childNode(node, 0))
	then := lc.lowerBlock(childNode(node, 1))

	var elifs []*cst.Node
	var elseClause *cst.Node
	for _, c := range node.Children[2:] {
		n, ok := cst.Tree(c)
		if !ok {
			continue
		}
		switch n.Rule {
		case "elifclause":
			elifs = append(elifs, n)
		case "elseclause":
			elseClause = n
		}
	}
	return ir.BranchStmt{Condition: cond, Then: then, Otherwise: lc.lowerElseChain(elifs, elseClause)}
}

func (lc *loweringCtx) lowerElseChain(elifs []*cst.Node, elseClause *cst.Node) []ir.Stmt {
	if len(elifs) == 0 {
		if elseClause != nil {
			return lc.lowerBlock(childNode(elseClause, 0))
		}
		return []ir.Stmt{}
	}
	head := elifs[0]
	cond := lc.lowerExpr(childNode(head, 0))
	then := lc.lowerBlock(childNode(head, 1))
	otherwise := lc.lowerElseChain(elifs[1:], elseClause)
	return []ir.Stmt{ir.BranchStmt{Condition: cond, Then: then, Otherwise: otherwise}}
}

// lowerExpr unwraps raw (still possibly a passthrough `expr` node or a
// parenthesised expression) and lowers the concrete node underneath.
func (lc *loweringCtx) lowerExpr(raw *cst.Node) ir.Expr {
	return lc.lowerExprConcrete(cst.Unwrap(raw))
}

var binaryRules = map[string]ir.BinaryOperator{
	"eq": ir.BinaryEq, "identity": ir.BinaryIs, "lt": ir.BinaryLt, "leq": ir.BinaryLeq,
	"leftshift": ir.BinaryLeftShift, "rightshift": ir.BinaryRightShift,
	"bitor": ir.BinaryBitOr, "bitxor": ir.BinaryBitXor, "bitand": ir.BinaryBitAnd,
	"add": ir.BinaryAdd, "sub": ir.BinarySub, "mul": ir.BinaryMul, "div": ir.BinaryDiv, "modulo": ir.BinaryModulo,
	"orexpr": ir.BinaryOr, "andexpr": ir.BinaryAnd,
}

var unaryRules = map[string]ir.UnaryOperator{
	"bitnot": ir.UnaryBitNot, "knot": ir.UnaryNot, "minus": ir.UnaryMinus,
}

func (lc *loweringCtx) lowerExprConcrete(node *cst.Node) ir.Expr {
	if op, ok := binaryRules[node.Rule]; ok {
		return ir.BinaryOperationExpr{Operator: op, Left: lc.lowerExpr(childNode(node, 0)), Right: lc.lowerExpr(childNode(node, 1))}
	}
	if op, ok := unaryRules[node.Rule]; ok {
		return ir.UnaryOperationExpr{Operator: op, Expr: lc.lowerExpr(childNode(node, 0))}
	}

	switch node.Rule {
	case "expr":
		tok, _ := cst.Token(node.Children[0])
		return lc.lowerLeaf(tok)

	case "ternary":
		return ir.TernaryOperationExpr{
			Operator: ir.TernaryBranch,
			First:    lc.lowerExpr(childNode(node, 0)),
			Second:   lc.lowerExpr(childNode(node, 1)),
			Third:    lc.lowerExpr(childNode(node, 2)),
		}

	case "neq":
		return notOf(ir.BinaryOperationExpr{Operator: ir.BinaryEq, Left: lc.lowerExpr(childNode(node, 0)), Right: lc.lowerExpr(childNode(node, 1))})
	case "gt":
		return notOf(ir.BinaryOperationExpr{Operator: ir.BinaryLeq, Left: lc.lowerExpr(childNode(node, 0)), Right: lc.lowerExpr(childNode(node, 1))})
	case "geq":
		return notOf(ir.BinaryOperationExpr{Operator: ir.BinaryLt, Left: lc.lowerExpr(childNode(node, 0)), Right: lc.lowerExpr(childNode(node, 1))})

	case "getitem":
		return ir.BinaryOperationExpr{Operator: ir.BinaryGetItem, Left: lc.lowerExpr(childNode(node, 0)), Right: lc.lowerExpr(childNode(node, 1))}

	case "getfield":
		base := lc.lowerExpr(childNode(node, 0))
		fieldID := lc.ctx.Idents.Intern(childTok(node, 1).Lexeme)
		return ir.GetFieldExpr{Instance: base, FieldID: fieldID}

	case "setfield":
		base := lc.lowerExpr(childNode(node, 0))
		fieldID := lc.ctx.Idents.Intern(childTok(node, 1).Lexeme)
		value := lc.lowerExpr(childNode(node, 2))
		return ir.SetFieldExpr{Instance: base, FieldID: fieldID, Value: value}

	case "call":
		return lc.lowerCall(node)

	case "listexpr":
		return ir.NaryOperationExpr{Operator: ir.NaryList, Parameters: lc.lowerExprList(childNode(node, 0))}

	case "structlit":
		return lc.lowerStructLit(node)
	}

	return ir.LiteralExpr{Literal: ir.NilLiteral{}}
}

func notOf(e ir.Expr) ir.Expr {
	return ir.UnaryOperationExpr{Operator: ir.UnaryNot, Expr: e}
}

func (lc *loweringCtx) lowerLeaf(tok token.Token) ir.Expr {
	switch tok.Type {
	case token.NIL:
		return ir.LiteralExpr{Literal: ir.NilLiteral{}}
	case token.TRUE:
		return ir.LiteralExpr{Literal: ir.BoolLiteral{Value: true}}
	case token.FALSE:
		return ir.LiteralExpr{Literal: ir.BoolLiteral{Value: false}}
	case token.INT:
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			lc.errors = append(lc.errors, diagnostics.New(diagnostics.ErrR004LiteralRange, tok, "integer literal %q out of range", tok.Lexeme))
			v = 0
		}
		return ir.LiteralExpr{Literal: ir.IntLiteral{Value: v}}
	case token.FLOAT:
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			lc.errors = append(lc.errors, diagnostics.New(diagnostics.ErrR004LiteralRange, tok, "float literal %q out of range", tok.Lexeme))
			v = 0
		}
		return ir.LiteralExpr{Literal: ir.FloatLiteral{Value: v}}
	case token.STRING:
		return ir.LiteralExpr{Literal: ir.StrLiteral{Value: unescapeString(tok.Lexeme)}}
	case token.IDENT:
		return lc.lowerIdent(tok)
	}
	return ir.LiteralExpr{Literal: ir.NilLiteral{}}
}

// lowerIdent resolves a bare identifier expression: a local variable takes
// precedence over a declared function; neither yields an undefined-variable
// diagnostic with a close-match suggestion over the function's locals.
func (lc *loweringCtx) lowerIdent(tok token.Token) ir.Expr {
	if slot, ok := lc.varIndex[tok.Lexeme]; ok {
		return ir.ReferenceExpr{Reference: ir.VariableReference{Slot: slot}}
	}
	if id, ok := lc.ctx.FunctionIndex[tok.Lexeme]; ok {
		return ir.ReferenceExpr{Reference: ir.FunctionReference{FunctionID: id}}
	}
	e := diagnostics.New(diagnostics.ErrR001UndefinedVariable, tok, "undefined variable %q", tok.Lexeme)
	if m := closeMatch(tok.Lexeme, lc.localNames()); m != "" {
		e = e.WithTypo(m)
	}
	lc.errors = append(lc.errors, e)
	return ir.LiteralExpr{Literal: ir.NilLiteral{}}
}

func unescapeString(lexeme string) string {
	s := lexeme
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// lowerExprList lowers an `exprlist` node's flattened `expr`/`exprcont`
// children into an ordered Expr slice.
func (lc *loweringCtx) lowerExprList(n *cst.Node) []ir.Expr {
	if n == nil {
		return nil
	}
	var out []ir.Expr
	for _, item := range flattenListNode(n, "exprcont") {
		node, ok := cst.Tree(item)
		if !ok {
			continue
		}
		out = append(out, lc.lowerExpr(node))
	}
	return out
}

// flattenListNode flattens a `item contRule*` production's children into a
// bare item-per-entry list, unwrapping each contRule occurrence's single
// nested item.
func flattenListNode(n *cst.Node, contRule string) []cst.Child {
	var out []cst.Child
	for _, child := range n.Children {
		if node, ok := cst.Tree(child); ok && node.Rule == contRule {
			if len(node.Children) > 0 {
				out = append(out, node.Children[0])
			}
			continue
		}
		out = append(out, child)
	}
	return out
}
