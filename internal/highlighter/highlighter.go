// Package highlighter renders onyo source as HTML: the original text
// verbatim, with <span class="..."> wrappers interleaved around tokens
// classified by semantic role (function name, parameter, keyword, operator,
// struct/field name, literal kind). Grounded on
// original_source/onyoc/highlighter.py's tree-walking Visitor, restated
// over this package's own cst.Node/token.Token shape and this grammar's own
// rule names (funcdef/structdef/whilestmt/forstmt/ifchain/... in place of
// the original's func/structdef/whilebranch/forloop/ifblock/...).
package highlighter

import (
	"sort"
	"strings"

	"github.com/onyolang/onyoc/internal/cst"
	"github.com/onyolang/onyoc/internal/lexer"
	"github.com/onyolang/onyoc/internal/parser"
	"github.com/onyolang/onyoc/internal/token"
)

type span struct {
	tok token.Token
	cls string
}

// Highlight parses source (falling back full-program -> raw_block -> expr,
// same three-tier tolerance the original uses for partial snippets) and
// returns it re-emitted with <span> wrappers around every classified token.
func Highlight(source string) (string, error) {
	toks := tokenize(source)

	var root *cst.Node
	for _, start := range []string{"start", "raw_block", "expr"} {
		r, perr := parser.ParseWith(toks, start)
		if perr == nil {
			root = r
			break
		}
	}
	if root == nil {
		return source, errNoParse
	}

	h := &highlighter{}
	h.visit(root)
	sort.SliceStable(h.spans, func(i, j int) bool {
		a, b := h.spans[i].tok, h.spans[j].tok
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return render(source, h.spans), nil
}

type highlighter struct {
	spans []span
}

func (h *highlighter) add(tok token.Token, cls string) {
	h.spans = append(h.spans, span{tok, cls})
}

// visit walks every node and leaf in production order: node-rule handlers
// tag specific children by role (function/parameter/keyword/operator/
// struct/field), while literal-valued tokens (nil/bool/str/int/float) are
// tagged generically wherever they occur, mirroring the original's
// per-token-type visitor methods.
func (h *highlighter) visit(n *cst.Node) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		switch v := c.(type) {
		case *cst.Node:
			h.visit(v)
		case token.Token:
			h.visitToken(v)
		}
	}
	h.visitRule(n)
}

func (h *highlighter) visitToken(tok token.Token) {
	switch tok.Type {
	case token.NIL:
		h.add(tok, "nil")
	case token.TRUE, token.FALSE:
		h.add(tok, "bool")
	case token.STRING:
		h.add(tok, "str")
	case token.INT:
		h.add(tok, "int")
	case token.FLOAT:
		h.add(tok, "float")
	}
}

func tok(c cst.Child) (token.Token, bool) { return cst.Token(c) }
func node(c cst.Child) (*cst.Node, bool)  { return cst.Tree(c) }

func (h *highlighter) visitRule(n *cst.Node) {
	switch n.Rule {
	case "funcdef":
		if name, ok := tok(n.Children[0]); ok {
			h.add(name, "function")
		}
		if params, ok := node(n.Children[2]); ok {
			h.tagIdents(params, "parameter")
		}

	case "structdef":
		if kw, ok := tok(n.Children[0]); ok {
			h.add(kw, "keyword")
		}
		if name, ok := tok(n.Children[1]); ok {
			h.add(name, "struct")
		}
		for _, c := range n.Children[2:] {
			m, ok := node(c)
			if !ok || m.Rule != "structmember" {
				continue
			}
			if v, ok := m.First().(token.Token); ok {
				h.add(v, "field")
			}
			// A funcdef member (a method) was already tagged by the
			// generic recursion in visit before visitRule ran for
			// structdef; nothing further to do here.
		}

	case "ret", "execexpr":
		if kw, ok := tok(n.Children[0]); ok {
			h.add(kw, "keyword")
		}

	case "whilestmt":
		if kw, ok := tok(n.Children[0]); ok {
			h.add(kw, "keyword")
		}

	case "dowhile":
		if kw, ok := tok(n.Children[0]); ok {
			h.add(kw, "keyword")
		}
		if kw, ok := tok(n.Children[2]); ok {
			h.add(kw, "keyword")
		}

	case "forstmt":
		if kw, ok := tok(n.Children[0]); ok {
			h.add(kw, "keyword")
		}
		if kw, ok := tok(n.Children[2]); ok {
			h.add(kw, "keyword")
		}

	case "ifchain":
		if kw, ok := tok(n.Children[0]); ok {
			h.add(kw, "keyword")
		}
	case "elifclause", "elseclause":
		if kw, ok := tok(n.Children[0]); ok {
			h.add(kw, "keyword")
		}

	case "ternary":
		if kw, ok := tok(n.Children[0]); ok {
			h.add(kw, "keyword")
		}
		if kw, ok := tok(n.Children[2]); ok {
			h.add(kw, "keyword")
		}
		if kw, ok := tok(n.Children[4]); ok {
			h.add(kw, "keyword")
		}

	case "orexpr", "andexpr", "identity":
		if op, ok := tok(n.Children[1]); ok {
			h.add(op, "operator")
		}
	case "knot", "bitnot", "minus":
		if op, ok := tok(n.Children[0]); ok {
			h.add(op, "operator")
		}

	case "call":
		callee := cst.Unwrap(mustNode(n.Children[0]))
		if callee.Rule == "expr" && len(callee.Children) == 1 {
			if name, ok := tok(callee.Children[0]); ok && name.Type == token.IDENT {
				h.add(name, "function")
			}
		}

	case "getfield":
		if name, ok := tok(n.Children[2]); ok {
			h.add(name, "field")
		}
	case "setfield":
		if name, ok := tok(n.Children[2]); ok {
			h.add(name, "field")
		}

	case "structlit":
		if name, ok := tok(n.Children[0]); ok {
			h.add(name, "struct")
		}
		if fields, ok := node(n.Children[2]); ok {
			for _, item := range fields.Children {
				fv, ok := node(item)
				if !ok {
					continue
				}
				if fv.Rule == "fieldvaluecont" {
					fv, ok = firstChildNode(fv)
					if !ok {
						continue
					}
				}
				if fv.Rule == "fieldvalue" {
					if name, ok := tok(fv.Children[0]); ok {
						h.add(name, "field")
					}
				}
			}
		}
	}
}

func mustNode(c cst.Child) *cst.Node {
	n, _ := cst.Tree(c)
	return n
}

// firstChildNode returns the first *cst.Node among n's direct children,
// skipping any leading punctuation tokens (keepAllTokens retains the "," in
// a *cont production ahead of the nested item it carries).
func firstChildNode(n *cst.Node) (*cst.Node, bool) {
	for _, c := range n.Children {
		if v, ok := node(c); ok {
			return v, true
		}
	}
	return nil, false
}

// tagIdents tags every IDENT leaf directly or transitively reachable from
// an identlist node with cls (function parameters).
func (h *highlighter) tagIdents(n *cst.Node, cls string) {
	for _, c := range n.Children {
		switch v := c.(type) {
		case token.Token:
			if v.Type == token.IDENT {
				h.add(v, cls)
			}
		case *cst.Node:
			h.tagIdents(v, cls)
		}
	}
}

var errNoParse = highlightError("could not parse source for highlighting")

type highlightError string

func (e highlightError) Error() string { return string(e) }

func tokenize(source string) []token.Token {
	return lexer.New(source).Tokenize()
}

func render(source string, spans []span) string {
	lines := strings.Split(source, "\n")
	var out strings.Builder
	cur := position{line: 1, col: 1}
	for _, s := range spans {
		advanceTo(&out, lines, &cur, s.tok.Line, s.tok.Column)
		text := sliceRunes(lines[s.tok.Line-1], cur.col-1, cur.col-1+s.tok.Length())
		out.WriteString(`<span class="`)
		out.WriteString(s.cls)
		out.WriteString(`">`)
		out.WriteString(text)
		out.WriteString(`</span>`)
		cur.col += s.tok.Length()
	}
	advanceTo(&out, lines, &cur, len(lines)+1, 1)
	return out.String()
}

type position struct{ line, col int }

func advanceTo(out *strings.Builder, lines []string, cur *position, line, col int) {
	for cur.line < line {
		lineRunes := []rune(lines[cur.line-1])
		if cur.col-1 < len(lineRunes) {
			out.WriteString(string(lineRunes[cur.col-1:]))
		}
		if cur.line < len(lines) {
			out.WriteByte('\n')
		}
		cur.line++
		cur.col = 1
	}
	if cur.line-1 >= len(lines) {
		return
	}
	lineRunes := []rune(lines[cur.line-1])
	if col > cur.col && cur.col-1 < len(lineRunes) {
		end := col - 1
		if end > len(lineRunes) {
			end = len(lineRunes)
		}
		out.WriteString(string(lineRunes[cur.col-1 : end]))
		cur.col = col
	}
}

func sliceRunes(line string, from, to int) string {
	r := []rune(line)
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}
