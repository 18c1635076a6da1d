package ir

import "encoding/json"

// Reference is an externally tagged name resolution outcome: a variable
// slot within the enclosing function, or a function_id, produced once Pass
// 2 has resolved an identifier against its scope.
type Reference interface {
	isReference()
}

// VariableReference points at a slot in Function.Variables.
type VariableReference struct {
	Slot int
}

// FunctionReference points at a Data.Functions index.
type FunctionReference struct {
	FunctionID int
}

func (VariableReference) isReference() {}
func (FunctionReference) isReference() {}

func (r VariableReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"Variable": r.Slot})
}

func (r FunctionReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"Function": r.FunctionID})
}
