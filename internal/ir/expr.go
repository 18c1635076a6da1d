package ir

import "encoding/json"

// Expr is an internally tagged IR expression node: every wire form carries
// a "type" field naming the variant, alongside that variant's own fields,
// mirroring the original implementation's InternallyTaggedEnum convention
// for Exec/Expr.
type Expr interface {
	isExpr()
}

type LiteralExpr struct {
	Literal Literal
}

type ReferenceExpr struct {
	Reference Reference
}

type UnaryOperationExpr struct {
	Operator UnaryOperator
	Expr     Expr
}

type BinaryOperationExpr struct {
	Operator BinaryOperator
	Left     Expr
	Right    Expr
}

type TernaryOperationExpr struct {
	Operator TernaryOperator
	First    Expr
	Second   Expr
	Third    Expr
}

type NaryOperationExpr struct {
	Operator   NaryOperator
	Parameters []Expr
}

type CallExpr struct {
	Callable   Expr
	Parameters []Expr
}

type StructExpr struct {
	Prototype int
	Values    []Expr
}

type SetVarExpr struct {
	Variable Reference
	Expr     Expr
}

type SetFieldExpr struct {
	Instance Expr
	FieldID  int
	Value    Expr
}

type GetFieldExpr struct {
	Instance Expr
	FieldID  int
}

func (LiteralExpr) isExpr()          {}
func (ReferenceExpr) isExpr()        {}
func (UnaryOperationExpr) isExpr()   {}
func (BinaryOperationExpr) isExpr()  {}
func (TernaryOperationExpr) isExpr() {}
func (NaryOperationExpr) isExpr()    {}
func (CallExpr) isExpr()             {}
func (StructExpr) isExpr()           {}
func (SetVarExpr) isExpr()           {}
func (SetFieldExpr) isExpr()         {}
func (GetFieldExpr) isExpr()         {}

func taggedExpr(typ string, fields map[string]any) ([]byte, error) {
	fields["type"] = typ
	return json.Marshal(fields)
}

func (e LiteralExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("Literal", map[string]any{"literal": e.Literal})
}

func (e ReferenceExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("Reference", map[string]any{"reference": e.Reference})
}

func (e UnaryOperationExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("UnaryOperation", map[string]any{"operator": e.Operator, "expr": e.Expr})
}

func (e BinaryOperationExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("BinaryOperation", map[string]any{
		"operator": e.Operator, "left": e.Left, "right": e.Right,
	})
}

func (e TernaryOperationExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("TernaryOperation", map[string]any{
		"operator": e.Operator, "first": e.First, "second": e.Second, "third": e.Third,
	})
}

func (e NaryOperationExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("NaryOperation", map[string]any{"operator": e.Operator, "parameters": e.Parameters})
}

func (e CallExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("Call", map[string]any{"callable": e.Callable, "parameters": e.Parameters})
}

func (e StructExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("Struct", map[string]any{"prototype": e.Prototype, "values": e.Values})
}

func (e SetVarExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("SetVar", map[string]any{"variable": e.Variable, "expr": e.Expr})
}

func (e SetFieldExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("SetField", map[string]any{"instance": e.Instance, "field_id": e.FieldID, "value": e.Value})
}

func (e GetFieldExpr) MarshalJSON() ([]byte, error) {
	return taggedExpr("GetField", map[string]any{"instance": e.Instance, "field_id": e.FieldID})
}
