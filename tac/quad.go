package tac

import (
	"fmt"
	"strings"
)

// Placeholder marks unused slots of a quadruple.
const Placeholder = "-"

// Quad is a single instruction of three-address code:
//
//    (op, arg1, arg2, result)
//
type Quad struct {
	Op     string
	Arg1   string
	Arg2   string
	Result string
}

// NewQuad creates a quadruple. Empty slots are set to the placeholder.
func NewQuad(op, arg1, arg2, result string) Quad {
	return Quad{Op: op, Arg1: slot(arg1), Arg2: slot(arg2), Result: slot(result)}
}

func slot(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func (q Quad) String() string {
	return fmt.Sprintf("(%s,%s,%s,%s)", q.Op, q.Arg1, q.Arg2, q.Result)
}

// Code is a sequence of quadruples.
type Code []Quad

// String renders code one quadruple per line, numbered from 1.
func (c Code) String() string {
	var b strings.Builder
	for i, q := range c {
		fmt.Fprintf(&b, "%d: %s\n", i+1, q)
	}
	return b.String()
}

// Attribute is the semantic value of a grammar symbol on the parse stack.
// Place is the variable, temporary or literal the symbol evaluates to,
// Code the quadruples synthesized for the symbol's subtree.
type Attribute struct {
	Place string
	Code  Code
}

// concat appends code sequences, always creating a new slice.
func concat(parts ...Code) Code {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	c := make(Code, 0, n)
	for _, p := range parts {
		c = append(c, p...)
	}
	return c
}

// Namer creates names for temporaries and labels. Names are never reused.
// The zero value is ready to use.
type Namer struct {
	temps  int
	labels int
}

// NewTemp returns the next temporary, T1, T2, …
func (n *Namer) NewTemp() string {
	n.temps++
	return fmt.Sprintf("T%d", n.temps)
}

// NewLabel returns the next label, L1, L2, …
func (n *Namer) NewLabel() string {
	n.labels++
	return fmt.Sprintf("L%d", n.labels)
}
