package lr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"

	slr1 "github.com/Yuk1no000/slr1-project"
)

// === Symbols ===============================================================

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Symbols are unique within a grammar and may be compared by pointer.
type Symbol struct {
	Name     string
	Value    int // serial number, dense, in order of first appearance
	terminal bool
}

// IsTerminal is a predicate.
func (sym *Symbol) IsTerminal() bool {
	return sym.terminal
}

// IsEOF is a predicate: is sym the end-of-input terminal?
func (sym *Symbol) IsEOF() bool {
	return sym.terminal && sym.Name == slr1.EOF
}

func (sym *Symbol) String() string {
	return sym.Name
}

// === Rules =================================================================

// Rule is a production of a grammar: LHS ➞ RHS.
type Rule struct {
	Serial int     // ordinal number of this rule, dense and 0-based
	LHS    *Symbol // left hand side, always a non-terminal
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule. Clients must not modify it.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len returns the length of the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(r.LHS.Name)
	b.WriteString(" ->")
	for _, sym := range r.rhs {
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	return b.String()
}

// === Grammar ===============================================================

// Grammar is a type for a context-free grammar. It is immutable once
// constructed, either by a GrammarBuilder, by NewGrammar or by ReadGrammar.
type Grammar struct {
	Name         string
	rules        []*Rule
	symbols      map[string]*Symbol
	terminals    []*Symbol
	nonterminals []*Symbol
	eof          *Symbol
}

// LoadError is returned if a grammar cannot be constructed from its source,
// e.g. because it is empty or a line is malformed.
type LoadError struct {
	Grammar string
	Line    int // line number in the grammar source, if known
	Msg     string
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("grammar %s, line %d: %s", e.Grammar, e.Line, e.Msg)
	}
	return fmt.Sprintf("grammar %s: %s", e.Grammar, e.Msg)
}

// NewGrammar creates a grammar from a list of productions. Each production is
// a slice of symbol names, where the first entry is the left hand side.
// The first production is expected to be the augmenting rule S' ➞ S.
func NewGrammar(name string, productions [][]string) (*Grammar, error) {
	if len(productions) == 0 {
		return nil, &LoadError{Grammar: name, Msg: "no productions"}
	}
	nonterms := make(map[string]bool)
	for i, p := range productions {
		if len(p) == 0 || p[0] == "" {
			return nil, &LoadError{Grammar: name, Msg: fmt.Sprintf("production #%d has no left hand side", i)}
		}
		if len(p) == 1 {
			return nil, &LoadError{Grammar: name,
				Msg: fmt.Sprintf("production #%d (%s) has an empty right hand side", i, p[0])}
		}
		if p[0] == slr1.EOF {
			return nil, &LoadError{Grammar: name, Msg: fmt.Sprintf("%q is reserved for end-of-input", slr1.EOF)}
		}
		nonterms[p[0]] = true
	}
	g := &Grammar{
		Name:    name,
		symbols: make(map[string]*Symbol),
	}
	for _, p := range productions { // non-terminals first, in order of appearance
		g.symbol(p[0], false)
	}
	for i, p := range productions {
		r := &Rule{Serial: i, LHS: g.symbols[p[0]]}
		for _, name := range p[1:] {
			r.rhs = append(r.rhs, g.symbol(name, !nonterms[name]))
		}
		g.rules = append(g.rules, r)
	}
	g.eof = g.symbol(slr1.EOF, true)
	tracer().Debugf("grammar %s has %d rules, %d terminals, %d non-terminals",
		name, len(g.rules), len(g.terminals), len(g.nonterminals))
	return g, nil
}

// symbol finds or creates a symbol.
func (g *Grammar) symbol(name string, terminal bool) *Symbol {
	if sym, ok := g.symbols[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name, Value: len(g.symbols), terminal: terminal}
	g.symbols[name] = sym
	if terminal {
		g.terminals = append(g.terminals, sym)
	} else {
		g.nonterminals = append(g.nonterminals, sym)
	}
	return sym
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule gets a grammar rule by its serial number.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// StartSymbol returns the left hand side of rule 0.
func (g *Grammar) StartSymbol() *Symbol {
	return g.rules[0].LHS
}

// EOF returns the end-of-input terminal.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// SymbolByName returns the symbol for a name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// IsTerminal is the classification predicate for symbol names. Unknown names
// are reported as non-terminals.
func (g *Grammar) IsTerminal(name string) bool {
	sym := g.symbols[name]
	return sym != nil && sym.terminal
}

// Terminals returns the terminals in order of appearance, '#' last.
func (g *Grammar) Terminals() []*Symbol {
	return g.terminals
}

// NonTerminals returns the non-terminals in order of appearance.
func (g *Grammar) NonTerminals() []*Symbol {
	return g.nonterminals
}

// EachSymbol iterates over all terminals and non-terminals, non-terminals first.
func (g *Grammar) EachSymbol(mapper func(sym *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.nonterminals {
		r = append(r, mapper(A))
	}
	for _, a := range g.terminals {
		r = append(r, mapper(a))
	}
	return r
}

// FindNonTermRules returns all rules with LHS A, ordered by serial number.
func (g *Grammar) FindNonTermRules(A *Symbol) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.LHS == A {
			rules = append(rules, r)
		}
	}
	return rules
}

// sortedSymbolNames returns a set of names of a slice of symbols.
func sortedSymbolNames(syms []*Symbol) *treeset.Set {
	S := treeset.NewWithStringComparator()
	for _, sym := range syms {
		S.Add(sym.Name)
	}
	return S
}

type fingerprintRule struct {
	LHS string
	RHS []string
}

// Fingerprint returns a structural hash of the rules of a grammar. Grammars
// with identical rules (in identical order) have identical fingerprints,
// regardless of their names.
func (g *Grammar) Fingerprint() string {
	rules := make([]fingerprintRule, len(g.rules))
	for i, r := range g.rules {
		rules[i].LHS = r.LHS.Name
		for _, sym := range r.rhs {
			rules[i].RHS = append(rules[i].RHS, sym.Name)
		}
	}
	h, err := structhash.Hash(rules, 1)
	if err != nil { // cannot happen for plain strings
		panic(fmt.Sprintf("cannot hash grammar %s: %v", g.Name, err))
	}
	return h
}

// Dump is a debugging helper, tracing all rules at debug level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// String renders all rules, one per line.
func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		fmt.Fprintf(&b, "%d: %s\n", r.Serial, r)
	}
	return b.String()
}

// === Grammar Builder =======================================================

// GrammarBuilder is a builder type to construct grammars. Use as
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S'").N("S").End()
//    b.LHS("S").T("id").T("=").N("E").End()
//    g, err := b.Grammar()
//
// Whether a symbol is a terminal is decided by the grammar itself (it is a
// non-terminal iff it occurs as a LHS); N and T document intent and are
// checked when the grammar is completed.
type GrammarBuilder struct {
	name        string
	productions [][]string
	declared    map[string]bool // symbol name -> declared as terminal
	err         error
}

// RuleBuilder collects the right hand side of a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	sym []string
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		name:     gname,
		declared: make(map[string]bool),
	}
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	return &RuleBuilder{gb: gb, sym: []string{s}}
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.gb.declare(s, false)
	rb.sym = append(rb.sym, s)
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.gb.declare(s, true)
	rb.sym = append(rb.sym, s)
	return rb
}

// End closes the rule and adds it to the grammar under construction.
func (rb *RuleBuilder) End() *GrammarBuilder {
	rb.gb.productions = append(rb.gb.productions, rb.sym)
	return rb.gb
}

func (gb *GrammarBuilder) declare(s string, terminal bool) {
	if t, ok := gb.declared[s]; ok && t != terminal && gb.err == nil {
		gb.err = &LoadError{Grammar: gb.name,
			Msg: fmt.Sprintf("symbol %s used both as terminal and non-terminal", s)}
	}
	gb.declared[s] = terminal
}

// Grammar returns the grammar under construction.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	g, err := NewGrammar(gb.name, gb.productions)
	if err != nil {
		return nil, err
	}
	for name, terminal := range gb.declared {
		if g.IsTerminal(name) != terminal {
			return nil, &LoadError{Grammar: gb.name,
				Msg: fmt.Sprintf("symbol %s declared as %s", name, kindName(terminal))}
		}
	}
	return g, nil
}

func kindName(terminal bool) string {
	if terminal {
		return "terminal, but is a left hand side"
	}
	return "non-terminal, but has no rule"
}
