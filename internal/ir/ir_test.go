package ir_test

import (
	"encoding/json"
	"testing"

	"github.com/onyolang/onyoc/internal/ir"
)

func TestLiteralExternallyTagged(t *testing.T) {
	b, err := json.Marshal(ir.IntLiteral{Value: 42})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"Int":42}` {
		t.Fatalf("expected externally tagged Int literal, got %s", b)
	}
}

func TestExprInternallyTagged(t *testing.T) {
	expr := ir.BinaryOperationExpr{
		Operator: ir.BinaryAdd,
		Left:     ir.LiteralExpr{Literal: ir.IntLiteral{Value: 1}},
		Right:    ir.LiteralExpr{Literal: ir.IntLiteral{Value: 2}},
	}
	b, err := json.Marshal(expr)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["type"] != "BinaryOperation" {
		t.Fatalf("expected type=BinaryOperation, got %v", decoded["type"])
	}
	if decoded["operator"] != "Add" {
		t.Fatalf("expected operator=Add as a bare string, got %v", decoded["operator"])
	}
}

func TestOperatorMarshalsAsBareString(t *testing.T) {
	b, err := json.Marshal(ir.UnaryNot)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"Not"` {
		t.Fatalf("expected a bare JSON string, got %s", b)
	}
}

func TestReferenceExternallyTagged(t *testing.T) {
	b, err := json.Marshal(ir.VariableReference{Slot: 3})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"Variable":3}` {
		t.Fatalf("expected externally tagged Variable reference, got %s", b)
	}
}

func TestDataRoundTripsIdentMapAsStringKeys(t *testing.T) {
	data := ir.Data{
		Functions: []*ir.Function{{Name: "main"}},
		IdentMap:  map[string]string{"0": "next"},
		ReservedIdents: ir.ReservedIdents{
			Next: 0,
		},
	}
	b, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	identMap, ok := decoded["ident_map"].(map[string]any)
	if !ok {
		t.Fatalf("expected an ident_map object, got %#v", decoded["ident_map"])
	}
	if identMap["0"] != "next" {
		t.Fatalf("expected ident_map[\"0\"]=next, got %v", identMap["0"])
	}
}
