package tac

import (
	"fmt"

	"github.com/Yuk1no000/slr1-project/lr"
)

// Shape classifies grammar rules by the semantic action they are bound to.
type Shape int8

// Shapes of rules with a semantic action.
const (
	AcceptShape Shape = iota
	WhileShape
	AssignShape
	RelationalShape
	ArithmeticShape
	SequenceShape
	ParenShape
	UnitShape
)

func (s Shape) String() string {
	switch s {
	case AcceptShape:
		return "accept"
	case WhileShape:
		return "while"
	case AssignShape:
		return "assign"
	case RelationalShape:
		return "relational"
	case ArithmeticShape:
		return "arithmetic"
	case SequenceShape:
		return "sequence"
	case ParenShape:
		return "paren"
	case UnitShape:
		return "unit"
	}
	return "?"
}

// Relational operators of conditions.
var relationalOps = map[string]bool{">": true, "<": true, "==": true, ">=": true, "<=": true, "!=": true}

// Arithmetic operators of expressions.
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true}

// Action is a semantic action. It receives the attributes of the right hand
// side of a rule, in left-to-right order, and synthesizes the attribute of the
// left hand side.
type Action func(n *Namer, rhs []Attribute) Attribute

// Semantics holds a semantic action for every rule of a grammar, indexed by
// rule serial number. It is immutable and may be shared between parsers.
type Semantics struct {
	g       *lr.Grammar
	shapes  []Shape
	actions []Action
}

// UnsupportedRuleError is returned by Bind for rules no semantic action can
// be bound to.
type UnsupportedRuleError struct {
	Grammar string
	Rule    *lr.Rule
}

func (e *UnsupportedRuleError) Error() string {
	return fmt.Sprintf("grammar %s: no semantic action for rule %d: %s", e.Grammar, e.Rule.Serial, e.Rule)
}

// Bind classifies every rule of g and binds a semantic action to it. Rule 0 is
// the augmenting rule and never reduced. If any other rule does not match a
// supported shape, an *UnsupportedRuleError is returned.
func Bind(g *lr.Grammar) (*Semantics, error) {
	sem := &Semantics{
		g:       g,
		shapes:  make([]Shape, g.Size()),
		actions: make([]Action, g.Size()),
	}
	for no := 0; no < g.Size(); no++ {
		r := g.Rule(no)
		shape, action, ok := classify(r)
		if !ok {
			tracer().Errorf("rule %d has unsupported shape: %s", no, r)
			return nil, &UnsupportedRuleError{Grammar: g.Name, Rule: r}
		}
		tracer().Debugf("rule %2d %-10s %s", no, shape, r)
		sem.shapes[no], sem.actions[no] = shape, action
	}
	return sem, nil
}

// Grammar returns the grammar the actions are bound to.
func (sem *Semantics) Grammar() *lr.Grammar {
	return sem.g
}

// Shape returns the shape of rule no.
func (sem *Semantics) Shape(no int) Shape {
	return sem.shapes[no]
}

// Reduce runs the semantic action for rule no.
func (sem *Semantics) Reduce(no int, n *Namer, rhs []Attribute) Attribute {
	return sem.actions[no](n, rhs)
}

func classify(r *lr.Rule) (Shape, Action, bool) {
	rhs := r.RHS()
	is := func(i int, name string) bool {
		return rhs[i].IsTerminal() && rhs[i].Name == name
	}
	nonterm := func(i int) bool {
		return !rhs[i].IsTerminal()
	}
	switch {
	case r.Serial == 0:
		return AcceptShape, propagate(0), true
	case len(rhs) == 1:
		return UnitShape, propagate(0), true
	case len(rhs) == 7 && is(0, "while") && is(1, "(") && nonterm(2) && is(3, ")") &&
		is(4, "{") && nonterm(5) && is(6, "}"):
		return WhileShape, whileLoop(2, 5), true
	case len(rhs) != 3:
		return 0, nil, false
	case is(1, "=") && rhs[0].IsTerminal() && nonterm(2):
		return AssignShape, assign, true
	case is(0, "(") && is(2, ")"):
		return ParenShape, propagate(1), true
	case is(1, ";") && nonterm(0) && nonterm(2):
		return SequenceShape, sequence, true
	case rhs[1].IsTerminal() && relationalOps[rhs[1].Name]:
		return RelationalShape, binary(rhs[1].Name), true
	case rhs[1].IsTerminal() && arithmeticOps[rhs[1].Name]:
		return ArithmeticShape, binary(rhs[1].Name), true
	}
	return 0, nil, false
}

// --- Actions ---------------------------------------------------------------

// propagate passes on the attribute of symbol i.
func propagate(i int) Action {
	return func(n *Namer, rhs []Attribute) Attribute {
		return rhs[i]
	}
}

// whileLoop creates
//
//    label start; C.code; jfalse C.place exit; S.code; jump start; label exit
//
func whileLoop(cond, body int) Action {
	return func(n *Namer, rhs []Attribute) Attribute {
		start, exit := n.NewLabel(), n.NewLabel()
		C, S := rhs[cond], rhs[body]
		return Attribute{Code: concat(
			Code{NewQuad("label", "", "", start)},
			C.Code,
			Code{NewQuad("jfalse", C.Place, "", exit)},
			S.Code,
			Code{NewQuad("jump", "", "", start), NewQuad("label", "", "", exit)},
		)}
	}
}

// assign creates E.code; (=, E.place, -, id)
func assign(n *Namer, rhs []Attribute) Attribute {
	id, E := rhs[0], rhs[2]
	return Attribute{Code: concat(E.Code, Code{NewQuad("=", E.Place, "", id.Place)})}
}

func sequence(n *Namer, rhs []Attribute) Attribute {
	return Attribute{Code: concat(rhs[0].Code, rhs[2].Code)}
}

// binary creates X.code; Y.code; (op, X.place, Y.place, t) for a new temporary t.
func binary(op string) Action {
	return func(n *Namer, rhs []Attribute) Attribute {
		X, Y := rhs[0], rhs[2]
		t := n.NewTemp()
		return Attribute{
			Place: t,
			Code:  concat(X.Code, Y.Code, Code{NewQuad(op, X.Place, Y.Place, t)}),
		}
	}
}
