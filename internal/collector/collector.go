// Package collector implements Pass 1: the definition collector. It walks
// only the top-level children of the CST, assigning every function and
// struct a stable index and interning every field/method name, so Pass 2
// can resolve calls, struct literals and field access without re-walking
// top-level declarations. Grounded on original_source/onyoc/I.py, extended
// with struct handling the original pass lacks (onyo's surface grammar
// gained structs after I.py was written).
package collector

import (
	"github.com/onyolang/onyoc/internal/config"
	"github.com/onyolang/onyoc/internal/cst"
	"github.com/onyolang/onyoc/internal/diagnostics"
	"github.com/onyolang/onyoc/internal/ident"
	"github.com/onyolang/onyoc/internal/ir"
	"github.com/onyolang/onyoc/internal/pipeline"
	"github.com/onyolang/onyoc/internal/token"
)

// Processor is Pass 1's pipeline stage.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	root, ok := ctx.CstRoot.(*cst.Node)
	if !ok {
		return ctx
	}

	c := &collector{
		idents:         ident.New(),
		functionIndex:  make(map[string]int),
		prototypeIndex: make(map[string]int),
	}

	for _, child := range root.Children {
		def, ok := cst.Tree(child)
		if !ok {
			continue
		}
		inner := cst.Unwrap(def)
		switch inner.Rule {
		case "funcdef":
			c.collectFunc(inner, "")
		case "structdef":
			c.collectStruct(inner)
		}
	}

	if _, ok := c.functionIndex[config.MainFunctionName]; !ok {
		c.errors = append(c.errors, diagnostics.NewNoRange(
			diagnostics.ErrD002NoMainFunction, "No main function",
		).WithSuggestion("define a main function", diagnostics.Range{}, "main() {}\n"))
	}

	ctx.Idents = c.idents
	ctx.Functions = c.functions
	ctx.Prototypes = c.prototypes
	ctx.FunctionIndex = c.functionIndex
	ctx.PrototypeIndex = c.prototypeIndex
	ctx.FunctionBodies = c.bodies
	ctx.Errors = append(ctx.Errors, c.errors...)
	return ctx
}

type collector struct {
	idents         *ident.Table
	functions      []*ir.Function
	functionIndex  map[string]int
	bodies         []*cst.Node
	prototypes     []*ir.Prototype
	prototypeIndex map[string]int
	errors         []*diagnostics.Error
}

// collectFunc registers a funcdef node under name (optionally qualified by
// a "Struct." prefix for methods) and returns its assigned function_id.
func (c *collector) collectFunc(node *cst.Node, qualifier string) int {
	nameTok, params, block := splitFuncdef(node)
	name := qualifier + nameTok.Lexeme

	if _, dup := c.functionIndex[name]; dup {
		c.errors = append(c.errors, diagnostics.New(
			diagnostics.ErrD001DuplicateFunction, nameTok, "function %q is already declared", name,
		))
	}

	var paramNames []string
	for _, p := range params {
		paramNames = append(paramNames, p.Lexeme)
	}

	id := len(c.functions)
	c.functions = append(c.functions, &ir.Function{
		Name:       name,
		Parameters: paramNames,
		Variables:  append([]string(nil), paramNames...),
	})
	c.bodies = append(c.bodies, block)
	c.functionIndex[name] = id
	return id
}

func splitFuncdef(node *cst.Node) (nameTok token.Token, params []token.Token, block *cst.Node) {
	for _, child := range node.Children {
		if tok, ok := cst.Token(child); ok && tok.Type == token.IDENT {
			if nameTok.Lexeme == "" {
				nameTok = tok
			}
			continue
		}
		if n, ok := cst.Tree(child); ok {
			switch n.Rule {
			case "identlist":
				params = identlistNames(n)
			case "block":
				block = n
			}
		}
	}
	return nameTok, params, block
}

func identlistNames(n *cst.Node) []token.Token {
	var out []token.Token
	for _, child := range n.Children {
		switch v := child.(type) {
		case token.Token:
			out = append(out, v)
		case *cst.Node:
			if v.Rule == "identcont" {
				for _, c2 := range v.Children {
					if tok, ok := cst.Token(c2); ok {
						out = append(out, tok)
					}
				}
			}
		}
	}
	return out
}

func (c *collector) collectStruct(node *cst.Node) {
	var nameTok token.Token
	var members []*cst.Node
	for _, child := range node.Children {
		if tok, ok := cst.Token(child); ok {
			nameTok = tok
			continue
		}
		if n, ok := cst.Tree(child); ok && n.Rule == "structmember" {
			members = append(members, n)
		}
	}

	name := nameTok.Lexeme
	if _, dup := c.prototypeIndex[name]; dup {
		c.errors = append(c.errors, diagnostics.New(
			diagnostics.ErrD003DuplicateStruct, nameTok, "struct %q is already declared", name,
		))
	}

	proto := &ir.Prototype{Name: name, FieldMap: map[int]int{}, MethodMap: map[int]int{}}
	fieldIndex := 0
	for _, m := range members {
		inner := m.First()
		switch v := inner.(type) {
		case token.Token:
			identID := c.idents.Intern(v.Lexeme)
			if _, dup := proto.FieldMap[identID]; dup {
				c.errors = append(c.errors, diagnostics.New(
					diagnostics.ErrD004BadStructField, v, "field %q is already declared on %q", v.Lexeme, name,
				))
				continue
			}
			proto.FieldMap[identID] = fieldIndex
			fieldIndex++
		case *cst.Node:
			if v.Rule != "funcdef" {
				continue
			}
			methodNameTok, _, _ := splitFuncdef(v)
			fnID := c.collectFunc(v, name+".")
			identID := c.idents.Intern(methodNameTok.Lexeme)
			proto.MethodMap[identID] = fnID
		}
	}

	id := len(c.prototypes)
	c.prototypes = append(c.prototypes, proto)
	c.prototypeIndex[name] = id
}
