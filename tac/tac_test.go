package tac

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/Yuk1no000/slr1-project/lr"
)

func TestQuad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.tac")
	defer teardown()
	//
	q := NewQuad("jump", "", "", "L1")
	if q.String() != "(jump,-,-,L1)" {
		t.Errorf("expected placeholders for empty slots, got %s", q)
	}
	code := Code{NewQuad("=", "y", "", "x"), q}
	if s := code.String(); s != "1: (=,y,-,x)\n2: (jump,-,-,L1)\n" {
		t.Errorf("unexpected code listing:\n%s", s)
	}
}

func TestNamer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.tac")
	defer teardown()
	//
	var n Namer
	assert := assert.New(t)
	assert.Equal("T1", n.NewTemp())
	assert.Equal("L1", n.NewLabel())
	assert.Equal("T2", n.NewTemp())
	assert.Equal("L2", n.NewLabel())
	assert.Equal("L3", n.NewLabel())
}

func TestBindShapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.tac")
	defer teardown()
	//
	g, err := lr.ReadGrammarFile("../grammar/while.grammar")
	if err != nil {
		t.Fatal(err)
	}
	sem, err := Bind(g)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Shape{
		AcceptShape,                   // S' -> P
		SequenceShape, UnitShape,      // P
		WhileShape, AssignShape,       // S
		RelationalShape, RelationalShape, RelationalShape,
		RelationalShape, RelationalShape, RelationalShape, // C
		ArithmeticShape, ArithmeticShape, UnitShape, // E
		ArithmeticShape, ArithmeticShape, UnitShape, // T
		ParenShape, UnitShape, UnitShape, // F
	}
	if assert.Equal(t, len(expected), g.Size()) {
		for no, shape := range expected {
			assert.Equal(t, shape, sem.Shape(no), "rule %d: %s", no, g.Rule(no))
		}
	}
}

func TestUnsupportedRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.tac")
	defer teardown()
	//
	g, err := lr.ReadGrammar("G", strings.NewReader(`
S' -> S
S -> id = E
E -> id id
`))
	if err != nil {
		t.Fatal(err)
	}
	sem, err := Bind(g)
	var unsupported *UnsupportedRuleError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedRuleError, got %v", err)
	}
	if sem != nil || unsupported.Rule.Serial != 2 {
		t.Errorf("expected rule 2 to be reported, got %v", unsupported)
	}
}

func TestActions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.tac")
	defer teardown()
	//
	g, err := lr.ReadGrammar("G", strings.NewReader(`
S' -> S
S -> while ( C ) { S }
S -> id = E
C -> E > E
E -> id + E
E -> id
`))
	if err != nil {
		t.Fatal(err)
	}
	sem, err := Bind(g)
	if err != nil {
		t.Fatal(err)
	}
	var n Namer
	leaf := func(s string) Attribute { return Attribute{Place: s} }
	E := sem.Reduce(4, &n, []Attribute{leaf("a"), leaf("+"), leaf("b")})
	assert := assert.New(t)
	assert.Equal("T1", E.Place)
	assert.Equal("1: (+,a,b,T1)\n", E.Code.String())
	C := sem.Reduce(3, &n, []Attribute{E, leaf(">"), leaf("c")})
	assert.Equal("T2", C.Place)
	assert.Len(C.Code, 2)
	S := sem.Reduce(2, &n, []Attribute{leaf("x"), leaf("="), sem.Reduce(5, &n, []Attribute{leaf("y")})})
	assert.Equal("1: (=,y,-,x)\n", S.Code.String())
	W := sem.Reduce(1, &n, []Attribute{leaf("while"), leaf("("), C, leaf(")"), leaf("{"), S, leaf("}")})
	assert.Equal("", W.Place)
	assert.Len(W.Code, 7)
	assert.Equal("(label,-,-,L1)", W.Code[0].String())
	assert.Equal("(jfalse,T2,-,L2)", W.Code[3].String())
	assert.Len(E.Code, 1, "child attributes must not be modified")
}
