// Package grammar loads the onyo surface grammar from its packaged
// resource file and desugars it into the plain (repetition-free) BNF that
// the Earley parser operates over. The resource format is a small,
// hand-rolled EBNF dialect grounded directly on the grammar string
// described in spec §4.2 and carried over from the original Python
// implementation's grammar.lark, not on any parser-generator input format
// from the example pack (no Go library in the corpus speaks Lark grammar
// syntax or implements Earley parsing, so this package and internal/earley
// are hand-written rather than grounded on a corpus dependency).
package grammar

import (
	"embed"
	"fmt"
	"strings"

	"github.com/onyolang/onyoc/internal/token"
)

//go:embed onyo.grammar
var resourceFS embed.FS

// SymKind distinguishes the three symbol shapes a production can hold.
type SymKind int

const (
	KindLiteral SymKind = iota // a quoted token spelling, e.g. "while"
	KindTermType                // a bare terminal class: IDENT, INT, FLOAT, STRING, NIL, TRUE, FALSE
	KindNonterm                  // a reference to another rule
)

// Symbol is one element of a production, already stripped of any EBNF
// repetition suffix (Load desugars * + ? into synthetic helper rules before
// returning the Grammar, so every Production here is plain BNF).
type Symbol struct {
	Kind     SymKind
	Literal  string
	TermType token.Type
	Rule     string
}

// Production is a single right-hand-side alternative. A nil/empty Symbols
// slice is a valid epsilon production (produced by desugaring `?` and `*`).
type Production struct {
	Symbols []Symbol
}

// Rule is a named nonterminal and its alternative productions.
type Rule struct {
	Name         string
	Alternatives []Production
	// Synthetic is true for helper rules generated while desugaring a `*`,
	// `+` or `?` suffix; the CST builder inlines their matched children
	// into the enclosing production instead of emitting a node for them.
	Synthetic bool
}

// Grammar is the fully desugared rule set plus a configurable start symbol.
// The parser runs over one shared Grammar and takes the start rule name per
// call; the highlighter's three-tier fallback passes "start", "raw_block"
// and "expr" in turn.
type Grammar struct {
	Rules map[string]*Rule
	Start string
}

// Load parses and desugars the packaged grammar resource.
func Load() (*Grammar, error) {
	data, err := resourceFS.ReadFile("onyo.grammar")
	if err != nil {
		return nil, fmt.Errorf("grammar: read resource: %w", err)
	}
	return Parse(string(data))
}

// WithStart returns a shallow copy of g with a different start symbol. The
// parser and highlighter do not call it; they pass the start rule name to
// earley.Parse directly.
func (g *Grammar) WithStart(start string) *Grammar {
	return &Grammar{Rules: g.Rules, Start: start}
}

// termTypeNames lists the grammar's *named* terminals: bare uppercase
// words matched by token type rather than exact spelling. Named terminals
// are always kept as CST leaves. Every other terminal in the grammar is a
// quoted literal (keywords like "while", punctuation like "(") and is
// anonymous: the default parser filters these out of the tree entirely
// (their presence is implied by which rule matched), while the
// keep-all-tokens variant the highlighter uses retains them — mirroring
// the original Lark grammar's distinction between named terminals
// (NIL, BOOL, IDENT, INT, FLOAT, STRING) and anonymous inline literals.
var termTypeNames = map[string]token.Type{
	"IDENT":  token.IDENT,
	"INT":    token.INT,
	"FLOAT":  token.FLOAT,
	"STRING": token.STRING,
	"NIL":    token.NIL,
	"TRUE":   token.TRUE,
	"FALSE":  token.FALSE,
}

// Parse reads the textual grammar format:
//
//	rule: sym sym | sym
//	    | sym
//	other_rule: sym*
//
// Lines starting with # are comments; blank lines are ignored. A line that
// starts with | adds further alternatives to the rule above it. A bare |
// separates alternatives; a quoted "|" is a literal symbol. A symbol is
// either a "quoted literal", one of the bare terminal class names listed in
// termTypeNames, or
// a bare rule-name reference, optionally suffixed with *//+/? for
// repetition. Every repetition suffix is desugared here into a synthetic
// helper rule so internal/earley never has to special-case them.
func Parse(src string) (*Grammar, error) {
	g := &Grammar{Rules: make(map[string]*Rule), Start: "start"}
	var order []string
	var current *Rule
	for lineNo, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rest, ok := strings.Cut(line, ":")
		if cont, isCont := strings.CutPrefix(line, "|"); isCont && current != nil {
			name, rest, ok = current.Name, cont, true
		}
		if !ok {
			return nil, fmt.Errorf("grammar: line %d: missing ':' in %q", lineNo+1, raw)
		}
		name = strings.TrimSpace(name)
		rule := g.Rules[name]
		if rule == nil {
			rule = &Rule{Name: name}
			g.Rules[name] = rule
			order = append(order, name)
		}
		current = rule
		alts := [][]string{nil}
		for _, sym := range splitSymbols(rest) {
			if sym == "|" {
				alts = append(alts, nil)
			} else {
				alts[len(alts)-1] = append(alts[len(alts)-1], sym)
			}
		}
		for _, alt := range alts {
			prod, err := g.parseAlt(strings.Join(alt, " "))
			if err != nil {
				return nil, fmt.Errorf("grammar: line %d: %w", lineNo+1, err)
			}
			rule.Alternatives = append(rule.Alternatives, prod)
		}
	}
	return g, nil
}

func (g *Grammar) parseAlt(alt string) (Production, error) {
	if alt == "" || alt == "EPSILON" {
		return Production{}, nil
	}
	var syms []Symbol
	for _, tok := range splitSymbols(alt) {
		sym, rep, err := parseSymbolToken(tok)
		if err != nil {
			return Production{}, err
		}
		switch rep {
		case repNone:
			syms = append(syms, sym)
		default:
			helper := g.synthesize(sym, rep)
			syms = append(syms, Symbol{Kind: KindNonterm, Rule: helper})
		}
	}
	return Production{Symbols: syms}, nil
}

// splitSymbols tokenizes on whitespace while keeping quoted literals (and
// their trailing repetition suffix) intact as one token.
func splitSymbols(alt string) []string {
	var out []string
	var b strings.Builder
	inQuote := false
	flush := func() {
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	for _, r := range alt {
		switch {
		case r == '"':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == ' ' && !inQuote:
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return out
}

type repKind int

const (
	repNone repKind = iota
	repStar
	repPlus
	repOpt
)

func parseSymbolToken(tok string) (Symbol, repKind, error) {
	rep := repNone
	quoted := len(tok) >= 2 && strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`)
	switch {
	case !quoted && strings.HasSuffix(tok, "*"):
		rep = repStar
		tok = tok[:len(tok)-1]
	case !quoted && strings.HasSuffix(tok, "+"):
		rep = repPlus
		tok = tok[:len(tok)-1]
	case !quoted && strings.HasSuffix(tok, "?"):
		rep = repOpt
		tok = tok[:len(tok)-1]
	}
	if strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2 {
		return Symbol{Kind: KindLiteral, Literal: tok[1 : len(tok)-1]}, rep, nil
	}
	if tt, ok := termTypeNames[tok]; ok {
		return Symbol{Kind: KindTermType, TermType: tt}, rep, nil
	}
	if tok == "" {
		return Symbol{}, rep, fmt.Errorf("empty symbol")
	}
	return Symbol{Kind: KindNonterm, Rule: tok}, rep, nil
}

// synthesize builds (or reuses) a helper rule implementing sym's
// repetition and returns its rule name. Helper rules are named after the
// repeated symbol's key and are right-recursive:
//
//	$star:<key>: EPSILON | sym $star:<key>
//	$plus:<key>: sym $star:<key>
//	$opt:<key>:  EPSILON | sym
func (g *Grammar) synthesize(sym Symbol, rep repKind) string {
	key := symbolKey(sym)
	var prefix string
	switch rep {
	case repStar:
		prefix = "$star:"
	case repPlus:
		prefix = "$plus:"
	case repOpt:
		prefix = "$opt:"
	}
	name := prefix + key
	if _, exists := g.Rules[name]; exists {
		return name
	}
	switch rep {
	case repStar:
		starName := name
		g.Rules[starName] = &Rule{Name: starName, Synthetic: true, Alternatives: []Production{
			{Symbols: nil},
			{Symbols: []Symbol{sym, {Kind: KindNonterm, Rule: starName}}},
		}}
	case repPlus:
		starName := g.synthesize(sym, repStar)
		g.Rules[name] = &Rule{Name: name, Synthetic: true, Alternatives: []Production{
			{Symbols: []Symbol{sym, {Kind: KindNonterm, Rule: starName}}},
		}}
	case repOpt:
		g.Rules[name] = &Rule{Name: name, Synthetic: true, Alternatives: []Production{
			{Symbols: nil},
			{Symbols: []Symbol{sym}},
		}}
	}
	return name
}

func symbolKey(sym Symbol) string {
	switch sym.Kind {
	case KindLiteral:
		return "lit:" + sym.Literal
	case KindTermType:
		return "type:" + sym.TermType.String()
	default:
		return "rule:" + sym.Rule
	}
}
