package lower_test

import (
	"testing"

	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/ir"
)

func TestLocalVariableTakesPrecedenceOverFunction(t *testing.T) {
	ctx := expectNoErrors(t, `
helper() { return 1 }
main() { helper = 2 return helper }
`)
	fn := ctx.Functions[ctx.FunctionIndex["main"]]
	ret, ok := fn.Body[1].(ir.ReturnStmt)
	if !ok {
		t.Fatalf("expected second statement to be a return, got %#v", fn.Body[1])
	}
	ref, ok := ret.Expr.(ir.ReferenceExpr)
	if !ok {
		t.Fatalf("expected a reference expr, got %#v", ret.Expr)
	}
	if _, ok := ref.Reference.(ir.VariableReference); !ok {
		t.Fatalf("expected local variable to shadow the function, got %#v", ref.Reference)
	}
}

func TestUndefinedVariableSuggestsCloseMatch(t *testing.T) {
	e := expectError(t, `
main() { count = 1 return coutn }
`, diagnostics.ErrR001UndefinedVariable)
	if e.Typo != "count" {
		t.Fatalf("expected typo suggestion %q, got %q", "count", e.Typo)
	}
}

func TestUndefinedFunctionCall(t *testing.T) {
	e := expectError(t, `
main() { return compute(1) }
`, diagnostics.ErrR002UndefinedFunction)
	if e.Typo != "" {
		t.Fatalf("expected no typo suggestion with no candidate, got %q", e.Typo)
	}
}

func TestUndefinedFunctionCallSuggestsCloseMatch(t *testing.T) {
	compute := `
compute(x) { return x }
main() { return computee(1) }
`
	e := expectError(t, compute, diagnostics.ErrR002UndefinedFunction)
	if e.Typo != "compute" {
		t.Fatalf("expected typo suggestion %q, got %q", "compute", e.Typo)
	}
}

func TestNotEqualDesugarsToNotEq(t *testing.T) {
	ctx := expectNoErrors(t, `main() { return 1 != 2 }`)
	fn := ctx.Functions[ctx.FunctionIndex["main"]]
	ret := fn.Body[0].(ir.ReturnStmt)
	not, ok := ret.Expr.(ir.UnaryOperationExpr)
	if !ok || not.Operator != ir.UnaryNot {
		t.Fatalf("expected Not(...), got %#v", ret.Expr)
	}
	eq, ok := not.Expr.(ir.BinaryOperationExpr)
	if !ok || eq.Operator != ir.BinaryEq {
		t.Fatalf("expected Not(Eq(...)), got %#v", not.Expr)
	}
}

func TestGreaterThanDesugarsToNotLeq(t *testing.T) {
	ctx := expectNoErrors(t, `main() { return 1 > 2 }`)
	fn := ctx.Functions[ctx.FunctionIndex["main"]]
	ret := fn.Body[0].(ir.ReturnStmt)
	not := ret.Expr.(ir.UnaryOperationExpr)
	leq, ok := not.Expr.(ir.BinaryOperationExpr)
	if !ok || leq.Operator != ir.BinaryLeq {
		t.Fatalf("expected Not(Leq(...)), got %#v", not.Expr)
	}
}

func TestGreaterEqualDesugarsToNotLt(t *testing.T) {
	ctx := expectNoErrors(t, `main() { return 1 >= 2 }`)
	fn := ctx.Functions[ctx.FunctionIndex["main"]]
	ret := fn.Body[0].(ir.ReturnStmt)
	not := ret.Expr.(ir.UnaryOperationExpr)
	lt, ok := not.Expr.(ir.BinaryOperationExpr)
	if !ok || lt.Operator != ir.BinaryLt {
		t.Fatalf("expected Not(Lt(...)), got %#v", not.Expr)
	}
}

func TestIfElifElseRightNests(t *testing.T) {
	ctx := expectNoErrors(t, `
main() {
	if 1 {
		return 1
	} elif 2 {
		return 2
	} elif 3 {
		return 3
	} else {
		return 4
	}
}
`)
	fn := ctx.Functions[ctx.FunctionIndex["main"]]
	outer, ok := fn.Body[0].(ir.BranchStmt)
	if !ok {
		t.Fatalf("expected a Branch statement, got %#v", fn.Body[0])
	}
	if len(outer.Otherwise) != 1 {
		t.Fatalf("expected exactly one nested elif branch, got %d statements", len(outer.Otherwise))
	}
	mid, ok := outer.Otherwise[0].(ir.BranchStmt)
	if !ok {
		t.Fatalf("expected nested elif to be a Branch statement, got %#v", outer.Otherwise[0])
	}
	if len(mid.Otherwise) != 1 {
		t.Fatalf("expected exactly one further nested branch, got %d", len(mid.Otherwise))
	}
	inner, ok := mid.Otherwise[0].(ir.BranchStmt)
	if !ok {
		t.Fatalf("expected innermost elif to be a Branch statement, got %#v", mid.Otherwise[0])
	}
	if len(inner.Otherwise) != 1 {
		t.Fatalf("expected else block to hold exactly the one return statement, got %d", len(inner.Otherwise))
	}
}

func TestIfOnlyProducesEmptyOtherwise(t *testing.T) {
	ctx := expectNoErrors(t, `main() { if 1 { return 1 } }`)
	fn := ctx.Functions[ctx.FunctionIndex["main"]]
	branch := fn.Body[0].(ir.BranchStmt)
	if len(branch.Otherwise) != 0 {
		t.Fatalf("expected no otherwise branch, got %#v", branch.Otherwise)
	}
}

func TestBuiltinCallLowersToUnaryOperator(t *testing.T) {
	ctx := expectNoErrors(t, `main() { return len("hi") }`)
	fn := ctx.Functions[ctx.FunctionIndex["main"]]
	ret := fn.Body[0].(ir.ReturnStmt)
	un, ok := ret.Expr.(ir.UnaryOperationExpr)
	if !ok || un.Operator != ir.UnaryLen {
		t.Fatalf("expected Unary(Len), got %#v", ret.Expr)
	}
}

func TestBuiltinNameTakesPrecedenceOverLocalVariable(t *testing.T) {
	ctx := expectNoErrors(t, `
main() {
	len = 1
	return len(1)
}
`)
	fn := ctx.Functions[ctx.FunctionIndex["main"]]
	ret := fn.Body[1].(ir.ReturnStmt)
	un, ok := ret.Expr.(ir.UnaryOperationExpr)
	if !ok || un.Operator != ir.UnaryLen {
		t.Fatalf("expected Unary(Len) even though len is also bound as a local, got %#v", ret.Expr)
	}
	arg, ok := un.Expr.(ir.LiteralExpr)
	if !ok {
		t.Fatalf("expected the call's argument as the operand, got %#v", un.Expr)
	}
	if lit, ok := arg.Literal.(ir.IntLiteral); !ok || lit.Value != 1 {
		t.Fatalf("expected operand Int 1, got %#v", arg.Literal)
	}
}

func TestStructLiteralReordersFieldsToDeclarationOrder(t *testing.T) {
	ctx := expectNoErrors(t, `
struct Point {
	x,
	y,
}
main() { return Point{y: 2, x: 1} }
`)
	fn := ctx.Functions[ctx.FunctionIndex["main"]]
	ret := fn.Body[0].(ir.ReturnStmt)
	lit, ok := ret.Expr.(ir.StructExpr)
	if !ok {
		t.Fatalf("expected a Struct expr, got %#v", ret.Expr)
	}
	xVal := lit.Values[0].(ir.LiteralExpr).Literal.(ir.IntLiteral).Value
	yVal := lit.Values[1].(ir.LiteralExpr).Literal.(ir.IntLiteral).Value
	if xVal != 1 || yVal != 2 {
		t.Fatalf("expected values reordered to [x=1, y=2], got [%d, %d]", xVal, yVal)
	}
}

func TestStructLiteralMissingFieldIsError(t *testing.T) {
	expectError(t, `
struct Point { x, y, }
main() { return Point{x: 1} }
`, diagnostics.ErrR003StructLiteral)
}

func TestStructLiteralUnknownFieldIsError(t *testing.T) {
	expectError(t, `
struct Point { x, y, }
main() { return Point{x: 1, y: 2, z: 3} }
`, diagnostics.ErrR003StructLiteral)
}

func TestStructLiteralDuplicateFieldIsError(t *testing.T) {
	expectError(t, `
struct Point { x, y, }
main() { return Point{x: 1, x: 2, y: 3} }
`, diagnostics.ErrR003StructLiteral)
}
