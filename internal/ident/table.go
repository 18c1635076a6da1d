// Package ident implements the compiler's identifier table: a bijective
// mapping between textual field/method names and small integer ids,
// assigned in first-seen order across the whole compilation unit.
package ident

import "fmt"

// Table is an append-only vector of interned names plus a name->id index.
// Pass 1 interns every declared field and method name; the lowerer also
// interns the field names used in field accesses and struct literals, and
// the assembler interns the reserved iterator name, so the table can still
// grow after Pass 1.
type Table struct {
	names []string
	index map[string]int
}

// New returns an empty identifier table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Intern returns name's id, assigning a new one in first-seen order if name
// has not been interned yet.
func (t *Table) Intern(name string) int {
	if id, ok := t.index[name]; ok {
		return id
	}
	id := len(t.names)
	t.names = append(t.names, name)
	t.index[name] = id
	return id
}

// Lookup returns name's id without interning it.
func (t *Table) Lookup(name string) (int, bool) {
	id, ok := t.index[name]
	return id, ok
}

// Name returns the interned name for id. Panics if id is out of range; the
// lowering pass never constructs an out-of-range ident_id by invariant.
func (t *Table) Name(id int) string {
	return t.names[id]
}

// Len returns the number of interned identifiers.
func (t *Table) Len() int {
	return len(t.names)
}

// Map returns the full id->name mapping.
func (t *Table) Map() map[int]string {
	m := make(map[int]string, len(t.names))
	for id, name := range t.names {
		m[id] = name
	}
	return m
}

// StringMap returns the id->name mapping with string-typed keys (the
// decimal id), matching the ir.Data.IdentMap field's map[string]string type.
func (t *Table) StringMap() map[string]string {
	m := make(map[string]string, len(t.names))
	for id, name := range t.names {
		m[fmt.Sprintf("%d", id)] = name
	}
	return m
}
