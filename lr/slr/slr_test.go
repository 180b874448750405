package slr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	slr1 "github.com/Yuk1no000/slr1-project"
	"github.com/Yuk1no000/slr1-project/lr"
	"github.com/Yuk1no000/slr1-project/lr/scanner"
	"github.com/Yuk1no000/slr1-project/lr/scanner/lexmach"
	"github.com/Yuk1no000/slr1-project/tac"
)

// makeParser creates a parser for the minimal while-language:
//
//    S' ➞ S
//    S  ➞ while ( C ) { S }
//    S  ➞ id = E
//    C  ➞ E > E
//    E  ➞ id
//
func makeParser(t *testing.T, opts ...Option) *Parser {
	level := tracing.Select("slr1.lr").GetTraceLevel()
	tracing.Select("slr1.lr").SetTraceLevel(tracing.LevelInfo)
	defer tracing.Select("slr1.lr").SetTraceLevel(level)
	b := lr.NewGrammarBuilder("While")
	b.LHS("S'").N("S").End()
	b.LHS("S").T("while").T("(").N("C").T(")").T("{").N("S").T("}").End()
	b.LHS("S").T("id").T("=").N("E").End()
	b.LHS("C").N("E").T(">").N("E").End()
	b.LHS("E").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	tables, err := lr.Build(g)
	if err != nil {
		t.Fatal(err)
	}
	sem, err := tac.Bind(g)
	if err != nil {
		t.Fatal(err)
	}
	return NewParser(tables, sem, opts...)
}

var terminals = map[string]bool{"while": true, "(": true, ")": true, "{": true, "}": true, "=": true, ">": true}

// tokenize splits input at white space. Words which are not terminals of
// the language are identifiers.
func tokenize(input string) []slr1.Token {
	var tokens []slr1.Token
	for _, w := range strings.Fields(input) {
		typ := w
		if !terminals[w] {
			typ = scanner.Ident
		}
		tokens = append(tokens, scanner.MakeDefaultToken(typ, w, slr1.Span{}))
	}
	return tokens
}

func quads(code tac.Code) []string {
	var s []string
	for _, q := range code {
		s = append(s, q.String())
	}
	return s
}

func TestParseWhile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	p := makeParser(t)
	code, err := p.ParseTokens(tokenize("while ( a > b ) { x = y }"))
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"(label,-,-,L1)",
		"(>,a,b,T1)",
		"(jfalse,T1,-,L2)",
		"(=,y,-,x)",
		"(jump,-,-,L1)",
		"(label,-,-,L2)",
	}
	assert.Equal(t, expected, quads(code))
	assert.True(t, strings.HasPrefix(code.String(), "1: (label,-,-,L1)\n2: (>,a,b,T1)\n"))
}

func TestParseError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	p := makeParser(t)
	code, err := p.ParseTokens(tokenize("while a > b ) { x = y }"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a ParseError, got %v", err)
	}
	assert := assert.New(t)
	assert.Nil(code)
	assert.Equal("a", perr.Token.Lexeme())
	assert.Equal("id", perr.Token.TokType())
	assert.Equal(1, perr.Position)
	assert.Equal([]string{"("}, perr.Expected)
	assert.Equal(3, perr.State)
	// parser is usable after an error
	code, err = p.ParseTokens(tokenize("x = y"))
	assert.NoError(err)
	assert.Equal([]string{"(=,y,-,x)"}, quads(code))
	// premature end of input
	_, err = p.ParseTokens(tokenize("x ="))
	if assert.True(errors.As(err, &perr)) {
		assert.True(slr1.IsEOF(perr.Token))
	}
}

func TestCountersNeverReset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	p := makeParser(t)
	input := tokenize("while ( a > b ) { x = y }")
	if _, err := p.ParseTokens(input); err != nil {
		t.Fatal(err)
	}
	code, err := p.ParseTokens(input)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "(label,-,-,L3)", code[0].String())
	assert.Equal(t, "(>,a,b,T2)", code[1].String())
	// a second parser has counters of its own
	code, _ = makeParser(t).ParseTokens(input)
	assert.Equal(t, "(label,-,-,L1)", code[0].String())
}

func TestNestedLoops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	p := makeParser(t)
	code, err := p.ParseTokens(tokenize("while ( a > b ) { while ( c > d ) { x = y } }"))
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"(label,-,-,L3)",
		"(>,a,b,T1)",
		"(jfalse,T1,-,L4)",
		"(label,-,-,L1)",
		"(>,c,d,T2)",
		"(jfalse,T2,-,L2)",
		"(=,y,-,x)",
		"(jump,-,-,L1)",
		"(label,-,-,L2)",
		"(jump,-,-,L3)",
		"(label,-,-,L4)",
	}
	assert.Equal(t, expected, quads(code))
}

func TestTrace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	var steps []Step
	p := makeParser(t, WithTrace(func(s Step) {
		steps = append(steps, s)
	}))
	if _, err := p.ParseTokens(tokenize("x = y")); err != nil {
		t.Fatal(err)
	}
	// s2 s4 s7 r4 r2 acc
	if len(steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(steps))
	}
	assert.Equal(t, "[0] [] x s2", steps[0].String())
	assert.Equal(t, lr.ReduceAction, steps[3].Action.Kind)
	assert.Equal(t, "[0 1] [S] # acc", steps[5].String())
}

func TestWhileLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	tracing.Select("slr1.lr").SetTraceLevel(tracing.LevelInfo)
	g, err := lr.ReadGrammarFile("../../grammar/while.grammar")
	if err != nil {
		t.Fatal(err)
	}
	tables, err := lr.Build(g)
	if err != nil {
		t.Fatal(err)
	}
	sem, err := tac.Bind(g)
	if err != nil {
		t.Fatal(err)
	}
	LM, err := lexmach.NewWhileLanguage()
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(tables, sem)
	program := `
		x = 0; i = 0;
		while (i < 10) {
			x = x + i;
			i = i + 1
		};
		y = (x - 5) * 2 / -4
	`
	sc, err := LM.SignedScanner(program)
	if err != nil {
		t.Fatal(err)
	}
	code, err := p.Parse(sc)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", code)
	ip := tac.NewInterpreter()
	if err := ip.Run(code); err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	x, ok := ip.Var("x")
	assert.True(ok)
	assert.Equal("45", x.String())
	y, _ := ip.Var("y")
	assert.Equal("-20", y.String())
	_, ok = ip.Var("T1")
	assert.False(ok, "temporaries must not leak into globals")
}

func TestPanicOnSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	p := makeParser(t)
	input := tokenize("while a > b ) { x = y }")
	gconf.Initialize(testconfig.Conf{"panic-on-syntax-error": true})
	assert.Panics(t, func() {
		p.ParseTokens(input)
	})
	gconf.Initialize(testconfig.Conf{"panic-on-syntax-error": false})
	assert.NotPanics(t, func() {
		_, err := p.ParseTokens(input)
		assert.Error(t, err)
	})
}

func TestSemanticsOfOtherGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, err := lr.ReadGrammarFile("../../grammar/while.grammar")
	if err != nil {
		t.Fatal(err)
	}
	tables, err := lr.Build(g)
	if err != nil {
		t.Fatal(err)
	}
	other := makeParser(t).sem
	p := NewParser(tables, other)
	code, err := p.ParseTokens(tokenize("x = y"))
	assert.Error(t, err)
	assert.Nil(t, code)
	// grammars with identical rules may share semantic actions
	g2, err := lr.ReadGrammarFile("../../grammar/while.grammar")
	if err != nil {
		t.Fatal(err)
	}
	sem, err := tac.Bind(g2)
	if err != nil {
		t.Fatal(err)
	}
	code, err = NewParser(tables, sem).ParseTokens(tokenize("x = y"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"(=,y,-,x)"}, quads(code))
}

func TestEOFMarkerInProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	LM, err := lexmach.NewWhileLanguage()
	if err != nil {
		t.Fatal(err)
	}
	scan, err := LM.SignedScanner("x = y # ) ) while")
	if err != nil {
		t.Fatal(err)
	}
	scan.SetErrorHandler(func(error) {})
	code, err := makeParser(t).Parse(scan)
	var perr *ParseError
	if assert.True(t, errors.As(err, &perr)) {
		assert.Equal(t, scanner.Illegal, perr.Token.TokType())
	}
	assert.Nil(t, code)
}
