/*
Package slr provides an SLR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The SLR parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface, and runs semantic actions of
package tac for every reduction.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients read or construct a grammar, build tables and bind semantic actions:

	g, err := lr.ReadGrammarFile("while.grammar")
	tables, err := lr.Build(g)     // fails if g is not SLR(1)
	sem, err := tac.Bind(g)        // fails for rules without a semantic action

Finally parse some input:

	p := slr.NewParser(tables, sem)
	code, err := p.Parse(scanner.NewSliceTokenizer(tokens))

Parsers hold a parse stack and counters for temporaries and labels. They may
be used for any number of parses, but not concurrently. Tables and semantic
actions are never modified and may be shared between parsers.
*/
package slr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"

	slr1 "github.com/Yuk1no000/slr1-project"
	"github.com/Yuk1no000/slr1-project/lr"
	"github.com/Yuk1no000/slr1-project/lr/scanner"
	"github.com/Yuk1no000/slr1-project/tac"
)

// tracer traces with key 'slr1.lr'.
func tracer() tracing.Trace {
	return tracing.Select("slr1.lr")
}

// Parser is an SLR(1)-parser type. Create and initialize one with slr.NewParser(...)
type Parser struct {
	tables *lr.Tables
	sem    *tac.Semantics
	namer  tac.Namer
	stack  []stackitem // parser stack
	trace  func(Step)
}

// We store state-IDs, symbols and attributes on the parse stack.
type stackitem struct {
	stateID int           // ID of a CFSM state
	sym     string        // grammar symbol (terminal or non-terminal)
	attr    tac.Attribute // semantic value of sym
	span    slr1.Span     // input span over which this symbol reaches
}

// Option configures a parser.
type Option func(p *Parser)

// Step describes a single step of the parser, reported before the action
// is executed.
type Step struct {
	States  []int      // state stack, bottom first
	Symbols []string   // symbol stack, bottom first
	Token   slr1.Token // current lookahead
	Action  lr.Action
}

func (s Step) String() string {
	states := make([]string, len(s.States))
	for i, id := range s.States {
		states[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("[%s] [%s] %s %s", strings.Join(states, " "),
		strings.Join(s.Symbols, " "), s.Token.Lexeme(), s.Action)
}

// WithTrace sets a function which is called for every step of the parser.
func WithTrace(f func(Step)) Option {
	return func(p *Parser) {
		p.trace = f
	}
}

// NewParser creates an SLR(1) parser. If sem is nil, the parser will recognize
// input without synthesizing code. sem has to be bound to the grammar of the
// tables, otherwise Parse will fail.
func NewParser(tables *lr.Tables, sem *tac.Semantics, opts ...Option) *Parser {
	parser := &Parser{
		tables: tables,
		sem:    sem,
		stack:  make([]stackitem, 0, 512),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// ParseError is returned if the parser finds no action for the current state
// and lookahead token.
type ParseError struct {
	Token    slr1.Token
	Position int      // index of Token in the token stream
	State    int      // parser state
	Expected []string // terminals with an action in State
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at token #%d %q (%s), state %d expects one of %v",
		e.Position, e.Token.Lexeme(), e.Token.TokType(), e.State, e.Expected)
}

// ParseTokens parses a list of tokens. See Parse.
func (p *Parser) ParseTokens(tokens []slr1.Token) (tac.Code, error) {
	return p.Parse(scanner.NewSliceTokenizer(tokens))
}

// Parse starts a new parse, given a scanner tokenizing the input. The token
// stream has to end with the end-of-input token '#'.
//
// The parser returns the code of the start symbol if the input has been accepted.
// Otherwise a *ParseError is returned, and no code.
func (p *Parser) Parse(scan scanner.Tokenizer) (tac.Code, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.tables == nil {
		tracer().Errorf("SLR(1)-parser not initialized")
		return nil, fmt.Errorf("SLR(1)-parser not initialized")
	}
	if p.sem != nil && p.sem.Grammar() != p.tables.Grammar() &&
		p.sem.Grammar().Fingerprint() != p.tables.Grammar().Fingerprint() {
		tracer().Errorf("semantic actions do not match parse tables")
		return nil, fmt.Errorf("semantic actions for grammar %s do not match tables for grammar %s",
			p.sem.Grammar().Name, p.tables.Grammar().Name)
	}
	p.stack = append(p.stack[:0], stackitem{stateID: 0}) // push S0
	// http://www.cse.unt.edu/~sweany/CSCE3650/HANDOUTS/LRParseAlg.pdf
	token, pos := p.next(scan), 0
	for {
		tracer().Debugf("got token %q/%s from scanner", token.Lexeme(), token.TokType())
		state := p.stack[len(p.stack)-1] // TOS
		action := p.tables.Action(state.stateID, token.TokType())
		tracer().Debugf("action(%d,%s)=%s", state.stateID, token.TokType(), action)
		if p.trace != nil {
			p.trace(p.step(token, action))
		}
		switch action.Kind {
		case lr.ErrorAction:
			err := &ParseError{
				Token:    token,
				Position: pos,
				State:    state.stateID,
				Expected: p.tables.Expected(state.stateID),
			}
			tracer().Errorf(err.Error())
			if panicOnSyntaxError() {
				panic(err)
			}
			return nil, err
		case lr.AcceptAction:
			tracer().Infof("input accepted")
			return state.attr.Code, nil
		case lr.ShiftAction:
			tracer().Debugf("shifting, next state = %d", action.Target)
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{
					stateID: action.Target,
					sym:     token.TokType(),
					attr:    tac.Attribute{Place: token.Lexeme()},
					span:    token.Span(),
				})
			token, pos = p.next(scan), pos+1
		case lr.ReduceAction:
			rule := p.tables.Rule(action.Target)
			item, err := p.reduce(rule)
			if err != nil {
				return nil, err
			}
			tracer().Debugf("reduced to next state = %d", item.stateID)
			p.stack = append(p.stack, item) // push a non-terminal state onto stack
		}
	}
}

// next reads a token from the scanner. A scanner returning nil is treated as
// being at the end of input.
func (p *Parser) next(scan scanner.Tokenizer) slr1.Token {
	if token := scan.NextToken(); token != nil {
		return token
	}
	return scanner.MakeDefaultToken(slr1.EOF, slr1.EOF, slr1.Span{})
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
// The handle is popped, the semantic action for the rule is run on the
// handle's attributes and a stack item for LHS is returned.
func (p *Parser) reduce(rule *lr.Rule) (stackitem, error) {
	tracer().Infof("reduce %v", rule)
	n := rule.Len()
	handle := p.stack[len(p.stack)-n:]
	attrs := make([]tac.Attribute, n)
	var handlespan slr1.Span
	for i, item := range handle {
		if item.sym != rule.RHS()[i].Name {
			tracer().Errorf("Expected %v on stack, got %s", rule.RHS()[i], item.sym)
		}
		attrs[i] = item.attr
		handlespan = handlespan.Extend(item.span)
	}
	p.stack = p.stack[:len(p.stack)-n] // pop handle
	state := p.stack[len(p.stack)-1]   // TOS
	nextstate, ok := p.tables.Goto(state.stateID, rule.LHS.Name)
	if !ok {
		return stackitem{}, fmt.Errorf("no GOTO entry for state %d and %s", state.stateID, rule.LHS)
	}
	var attr tac.Attribute
	if p.sem != nil {
		attr = p.sem.Reduce(rule.Serial, &p.namer, attrs)
	}
	return stackitem{
		stateID: nextstate,
		sym:     rule.LHS.Name,
		attr:    attr,
		span:    handlespan,
	}, nil
}

func (p *Parser) step(token slr1.Token, action lr.Action) Step {
	s := Step{Token: token, Action: action}
	for _, item := range p.stack {
		s.States = append(s.States, item.stateID)
		if item.sym != "" {
			s.Symbols = append(s.Symbols, item.sym)
		}
	}
	return s
}

// panicOnSyntaxError reads configuration flag 'panic-on-syntax-error'.
// Without a configuration in place, the flag is off.
func panicOnSyntaxError() bool {
	return gconf.GetBool("panic-on-syntax-error")
}
