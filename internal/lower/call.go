package lower

import (
	"github.com/onyolang/onyoc/internal/config"
	"github.com/onyolang/onyoc/internal/cst"
	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/ir"
	"github.com/onyolang/onyoc/internal/token"
)

var builtinUnaryCalls = map[string]ir.UnaryOperator{
	config.BuiltinType:  ir.UnaryType,
	config.BuiltinErr:   ir.UnaryErr,
	config.BuiltinBool:  ir.UnaryBool,
	config.BuiltinInt:   ir.UnaryInt,
	config.BuiltinFloat: ir.UnaryFloat,
	config.BuiltinStr:   ir.UnaryStr,
	config.BuiltinLen:   ir.UnaryLen,
	config.BuiltinPrint: ir.UnaryPrint,
	config.BuiltinRead:  ir.UnaryRead,
}

var builtinBinaryCalls = map[string]ir.BinaryOperator{
	config.BuiltinWrite:  ir.BinaryWrite,
	config.BuiltinJoin:   ir.BinaryJoin,
	config.BuiltinPush:   ir.BinaryPush,
	config.BuiltinRemove: ir.BinaryRemove,
	config.BuiltinIndex:  ir.BinaryIndex,
}

// lowerCall lowers a `call` node: `callee "(" exprlist ")"`. A bare-name
// callee is dispatched, in order, against the built-in table, then the
// function's locals, then the module's declared functions, before being
// reported as undefined. Any other callee expression (a field access, an
// indexed value, a nested call, ...) lowers to a direct Call with no name
// lookup at all.
func (lc *loweringCtx) lowerCall(node *cst.Node) ir.Expr {
	args := lc.lowerExprList(childNode(node, 1))

	calleeRaw := childNode(node, 0)
	callee := cst.Unwrap(calleeRaw)

	if callee.Rule == "expr" && len(callee.Children) == 1 {
		if tok, ok := cst.Token(callee.Children[0]); ok && tok.Type == token.IDENT {
			return lc.lowerNamedCall(tok, args)
		}
	}

	return ir.CallExpr{Callable: lc.lowerExprConcrete(callee), Parameters: args}
}

func (lc *loweringCtx) lowerNamedCall(tok token.Token, args []ir.Expr) ir.Expr {
	name := tok.Lexeme

	if op, ok := builtinUnaryCalls[name]; ok && len(args) == 1 {
		return ir.UnaryOperationExpr{Operator: op, Expr: args[0]}
	}
	if op, ok := builtinBinaryCalls[name]; ok && len(args) == 2 {
		return ir.BinaryOperationExpr{Operator: op, Left: args[0], Right: args[1]}
	}

	if slot, ok := lc.varIndex[name]; ok {
		return ir.CallExpr{Callable: ir.ReferenceExpr{Reference: ir.VariableReference{Slot: slot}}, Parameters: args}
	}
	if id, ok := lc.ctx.FunctionIndex[name]; ok {
		return ir.CallExpr{Callable: ir.ReferenceExpr{Reference: ir.FunctionReference{FunctionID: id}}, Parameters: args}
	}

	e := diagnostics.New(diagnostics.ErrR002UndefinedFunction, tok, "undefined function %q", name)
	if m := closeMatch(name, lc.functionNames()); m != "" {
		e = e.WithTypo(m)
	}
	lc.errors = append(lc.errors, e)
	return ir.LiteralExpr{Literal: ir.NilLiteral{}}
}

// functionNames returns every declared function's qualified name in
// declaration order (ctx.Functions is indexed by the same id FunctionIndex
// maps to), so closeMatch's tie-breaking is deterministic across runs
// instead of following FunctionIndex's unordered map iteration.
func (lc *loweringCtx) functionNames() []string {
	names := make([]string, len(lc.ctx.Functions))
	for i, fn := range lc.ctx.Functions {
		names[i] = fn.Name
	}
	return names
}
