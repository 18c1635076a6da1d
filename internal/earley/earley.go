// Package earley implements a chart parser (predictor/scanner/completer
// over dotted rules) for the onyo grammar. No library in the example pack
// implements Earley parsing or even general context-free chart parsing, so
// this package is hand-written directly from the classical
// predict/scan/complete algorithm description rather than grounded on a
// corpus dependency; everything around it (how it plugs into the pipeline
// as a Processor, how it reports diagnostics) follows the teacher's idiom.
package earley

import (
	"strings"

	"github.com/onyolang/onyoc/internal/cst"
	"github.com/onyolang/onyoc/internal/grammar"
	"github.com/onyolang/onyoc/internal/token"
)

// itemKey identifies a dotted item: which rule/alternative, how far the dot
// has advanced, and the column where this alternative started matching.
type itemKey struct {
	rule  string
	alt   int
	dot   int
	start int
}

// state records how one item in one column was first derived, so a
// completed parse can be reconstructed by walking these backlinks. Only
// the first derivation of a given key is ever recorded — later ones are
// redundant (ambiguity the grammar permits but the parser does not need to
// disambiguate beyond "first wins").
type state struct {
	fromCol int
	fromKey itemKey
	hasFrom bool
	child   cst.Child
}

type column struct {
	order []itemKey
	items map[itemKey]*state
}

func newColumn() *column {
	return &column{items: make(map[itemKey]*state)}
}

func (c *column) add(key itemKey, st *state) bool {
	if _, exists := c.items[key]; exists {
		return false
	}
	c.items[key] = st
	c.order = append(c.order, key)
	return true
}

// Error reports a parse failure at a token position.
type Error struct {
	Position int // index into the token stream
	Token    token.Token
}

// Parse runs the chart algorithm over toks using g's rule named start as
// the goal symbol, returning the first successful derivation's CST root.
// keepAllTokens controls whether anonymous literal terminals (keywords,
// punctuation) survive into the tree as leaves: false for the compiler's
// own parse (the default Lark tree shape), true for the highlighter, which
// needs every token's position to re-emit the source verbatim.
func Parse(g *grammar.Grammar, toks []token.Token, start string, keepAllTokens bool) (*cst.Node, *Error) {
	startRule, ok := g.Rules[start]
	if !ok || len(startRule.Alternatives) == 0 {
		return nil, &Error{Position: 0}
	}

	n := len(toks)
	if n > 0 && toks[n-1].Type == token.EOF {
		n--
	}
	cols := make([]*column, n+1)
	for i := range cols {
		cols[i] = newColumn()
	}

	for alt := range startRule.Alternatives {
		cols[0].add(itemKey{rule: start, alt: alt, dot: 0, start: 0}, &state{})
	}

	for i := 0; i <= n; i++ {
		col := cols[i]
		for qi := 0; qi < len(col.order); qi++ {
			key := col.order[qi]
			rule := g.Rules[key.rule]
			prod := rule.Alternatives[key.alt]

			if key.dot == len(prod.Symbols) {
				completeItem(g, cols, i, key, keepAllTokens)
				continue
			}

			sym := prod.Symbols[key.dot]
			switch sym.Kind {
			case grammar.KindNonterm:
				target := g.Rules[sym.Rule]
				for alt := range target.Alternatives {
					col.add(itemKey{rule: sym.Rule, alt: alt, dot: 0, start: i}, &state{})
				}
			case grammar.KindTermType, grammar.KindLiteral:
				// scanned below once the column has reached a fixpoint.
			}
		}

		if i == n {
			break
		}
		tok := toks[i]
		next := cols[i+1]
		for _, key := range col.order {
			rule := g.Rules[key.rule]
			prod := rule.Alternatives[key.alt]
			if key.dot == len(prod.Symbols) {
				continue
			}
			sym := prod.Symbols[key.dot]
			if !matches(sym, tok) {
				continue
			}
			newKey := itemKey{rule: key.rule, alt: key.alt, dot: key.dot + 1, start: key.start}
			next.add(newKey, &state{fromCol: i, fromKey: key, hasFrom: true, child: tok})
		}
	}

	for alt, prod := range startRule.Alternatives {
		want := itemKey{rule: start, alt: alt, dot: len(prod.Symbols), start: 0}
		if _, ok := cols[n].items[want]; ok {
			node := buildNode(g, cols, n, want, keepAllTokens)
			return node, nil
		}
	}

	return nil, furthestFailure(cols, toks)
}

// completeItem advances every item in the origin column that was waiting
// on the rule that just completed.
func completeItem(g *grammar.Grammar, cols []*column, col int, key itemKey, keepAllTokens bool) {
	origin := cols[key.start]
	target := cols[col]
	node := buildNode(g, cols, col, key, keepAllTokens)
	for _, waiting := range origin.order {
		wr := g.Rules[waiting.rule]
		wp := wr.Alternatives[waiting.alt]
		if waiting.dot >= len(wp.Symbols) {
			continue
		}
		sym := wp.Symbols[waiting.dot]
		if sym.Kind != grammar.KindNonterm || sym.Rule != key.rule {
			continue
		}
		newKey := itemKey{rule: waiting.rule, alt: waiting.alt, dot: waiting.dot + 1, start: waiting.start}
		target.add(newKey, &state{fromCol: key.start, fromKey: waiting, hasFrom: true, child: node})
	}
}

func matches(sym grammar.Symbol, tok token.Token) bool {
	switch sym.Kind {
	case grammar.KindTermType:
		return tok.Type == sym.TermType
	case grammar.KindLiteral:
		return tok.Lexeme == sym.Literal
	default:
		return false
	}
}

// buildNode reconstructs the completed item's subtree by walking its
// backlink chain, then inlines any synthetic repetition-helper children and
// drops anonymous literal tokens (unless keepAllTokens) so the resulting
// tree only names rules and named terminals that appear in the grammar
// source.
func buildNode(g *grammar.Grammar, cols []*column, col int, key itemKey, keepAllTokens bool) *cst.Node {
	rule := g.Rules[key.rule]
	prod := rule.Alternatives[key.alt]

	raw := make([]cst.Child, key.dot)
	kinds := make([]grammar.SymKind, key.dot)
	for i, sym := range prod.Symbols {
		kinds[i] = sym.Kind
	}
	curCol, curKey := col, key
	for curKey.dot > 0 {
		st := cols[curCol].items[curKey]
		raw[curKey.dot-1] = st.child
		if !st.hasFrom {
			break
		}
		curCol, curKey = st.fromCol, st.fromKey
	}

	var children []cst.Child
	for i, c := range raw {
		if kinds[i] == grammar.KindLiteral && !keepAllTokens {
			continue
		}
		children = append(children, flattenSynthetic(c)...)
	}
	return &cst.Node{Rule: key.rule, Children: children}
}

func isSyntheticName(name string) bool {
	return strings.HasPrefix(name, "$star:") || strings.HasPrefix(name, "$plus:") || strings.HasPrefix(name, "$opt:")
}

func flattenSynthetic(c cst.Child) []cst.Child {
	n, ok := c.(*cst.Node)
	if !ok || !isSyntheticName(n.Rule) {
		return []cst.Child{c}
	}
	if len(n.Children) == 0 {
		return nil
	}
	if strings.HasPrefix(n.Rule, "$opt:") {
		return flattenSynthetic(n.Children[0])
	}
	var out []cst.Child
	for _, child := range n.Children {
		out = append(out, flattenSynthetic(child)...)
	}
	return out
}

// furthestFailure reports the furthest token position the chart reached
// with any live item, used as the parse error's anchor.
func furthestFailure(cols []*column, toks []token.Token) *Error {
	furthest := 0
	for i, c := range cols {
		if len(c.order) > 0 {
			furthest = i
		}
	}
	if furthest >= len(toks) {
		furthest = len(toks) - 1
	}
	if furthest < 0 {
		return &Error{Position: 0}
	}
	return &Error{Position: furthest, Token: toks[furthest]}
}
