package lower

import (
	"github.com/onyolang/onyoc/internal/cst"
	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/ir"
)

// lowerStructLit lowers `Name { field: expr, ... }`. Every field the
// prototype declares must appear exactly once; an unknown, missing or
// duplicate field is reported and the literal lowers to Nil so lowering can
// continue over the rest of the function.
func (lc *loweringCtx) lowerStructLit(node *cst.Node) ir.Expr {
	nameTok := childTok(node, 0)
	protoID, ok := lc.ctx.PrototypeIndex[nameTok.Lexeme]
	if !ok {
		lc.errors = append(lc.errors, diagnostics.New(
			diagnostics.ErrR003StructLiteral, nameTok, "undefined struct %q", nameTok.Lexeme,
		))
		return ir.LiteralExpr{Literal: ir.NilLiteral{}}
	}
	proto := lc.ctx.Prototypes[protoID]

	values := make([]ir.Expr, len(proto.FieldMap))
	seen := make(map[int]bool, len(proto.FieldMap))
	ok = true

	for _, item := range flattenListNode(childNode(node, 1), "fieldvaluecont") {
		fv, isNode := cst.Tree(item)
		if !isNode {
			continue
		}
		fieldTok := childTok(fv, 0)
		fieldID := lc.ctx.Idents.Intern(fieldTok.Lexeme)
		idx, declared := proto.FieldMap[fieldID]
		if !declared {
			lc.errors = append(lc.errors, diagnostics.New(
				diagnostics.ErrR003StructLiteral, fieldTok, "struct %q has no field %q", nameTok.Lexeme, fieldTok.Lexeme,
			))
			ok = false
			continue
		}
		if seen[fieldID] {
			lc.errors = append(lc.errors, diagnostics.New(
				diagnostics.ErrR003StructLiteral, fieldTok, "field %q is set more than once", fieldTok.Lexeme,
			))
			ok = false
			continue
		}
		seen[fieldID] = true
		values[idx] = lc.lowerExpr(childNode(fv, 1))
	}

	for fieldID := range proto.FieldMap {
		if !seen[fieldID] {
			lc.errors = append(lc.errors, diagnostics.New(
				diagnostics.ErrR003StructLiteral, nameTok, "struct %q literal is missing field %q", nameTok.Lexeme, lc.ctx.Idents.Name(fieldID),
			))
			ok = false
		}
	}

	if !ok {
		return ir.LiteralExpr{Literal: ir.NilLiteral{}}
	}
	return ir.StructExpr{Prototype: protoID, Values: values}
}
