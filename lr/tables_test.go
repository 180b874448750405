package lr

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g := makeWhileGrammar(t)
	ga := Analysis(g)
	C := ga.closure(StartItem(g.Rule(0)))
	// S' ➞ • S, S ➞ • while ( C ) { S }, S ➞ • id = E
	if C.Size() != 3 {
		t.Errorf("expected closure of start item to have 3 items, has %d: %s", C.Size(), C)
	}
	// S ➞ while ( • C ) { S } pulls in C ➞ • E > E and E ➞ • id
	i := StartItem(g.Rule(1)).Advance().Advance()
	C = ga.closure(i)
	if C.Size() != 3 {
		t.Errorf("expected closure of %s to have 3 items, has %d: %s", i, C.Size(), C)
	}
}

func TestClosureIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, err := ReadGrammarFile("../grammar/while.grammar")
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	for _, r := range g.rules {
		for i := StartItem(r); ; i = i.Advance() {
			C := ga.closure(i)
			if CC := ga.closureSet(C); !CC.Equals(C) {
				t.Errorf("closure not idempotent for %s", i)
			}
			if i.Completed() {
				break
			}
		}
	}
}

func TestGotoSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g := makeWhileGrammar(t)
	ga := Analysis(g)
	S0 := ga.closure(StartItem(g.Rule(0)))
	G := ga.gotoSetClosure(S0, g.SymbolByName("id"))
	if G.Size() != 1 || G.Items()[0].String() != "S -> id • = E" {
		t.Errorf("unexpected goto(S0, id) = %s", G)
	}
	if E := ga.gotoSetClosure(S0, g.SymbolByName(">")); !E.Empty() {
		t.Errorf("expected goto(S0, >) to be empty, is %s", E)
	}
}

func TestCFSM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g := makeWhileGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	cfsm := lrgen.CFSM()
	if cfsm.Size() != 16 {
		t.Errorf("expected CFSM to have 16 states, has %d", cfsm.Size())
	}
	if cfsm.S0 != cfsm.State(0) {
		t.Errorf("expected start state to have ID 0")
	}
	for n, s := range cfsm.States() {
		if s.ID != n {
			t.Errorf("state #%d has ID %d", n, s.ID)
		}
	}
	if next := cfsm.S0.Next(g.SymbolByName("S")); next == nil || !next.Accept {
		t.Errorf("expected goto(S0, S) to be the accepting state, is %v", next)
	}
	var buf bytes.Buffer
	if err := cfsm.CFSM2GraphViz(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `s000 -> s003 [label="while"]`) {
		t.Errorf("expected Graphviz output to contain edge 0 -while-> 3:\n%s", buf.String())
	}
}

func TestStateDedup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	tracing.Select("slr1.lr").SetTraceLevel(tracing.LevelInfo)
	g, err := ReadGrammarFile("../grammar/while.grammar")
	if err != nil {
		t.Fatal(err)
	}
	states := NewTableGenerator(Analysis(g)).CFSM().States()
	for i, s1 := range states {
		for _, s2 := range states[i+1:] {
			if s1.items.Equals(s2.items) {
				t.Errorf("states %d and %d have equal item sets", s1.ID, s2.ID)
			}
		}
	}
}

func TestE2ETables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	tables, err := Build(makeWhileGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.Equal(16, tables.StateCount())
	assert.Equal(Action{Kind: ShiftAction, Target: 3}, tables.Action(0, "while"))
	assert.Equal(Action{Kind: ShiftAction, Target: 2}, tables.Action(0, "id"))
	assert.Equal(Action{Kind: AcceptAction}, tables.Action(1, "#"))
	assert.Equal(Action{Kind: ReduceAction, Target: 4}, tables.Action(7, ">"))
	assert.Equal(Action{Kind: ErrorAction}, tables.Action(3, "id"))
	assert.Equal(Action{Kind: ErrorAction}, tables.Action(3, "no-such-terminal"))
	assert.Equal(Action{Kind: ErrorAction}, tables.Action(99, "id"))
	assert.Equal("s3", tables.Action(0, "while").String())
	assert.Equal("r4", tables.Action(7, ">").String())
	assert.Equal("acc", tables.Action(1, "#").String())
	assert.Equal([]string{"("}, tables.Expected(3))
	to, ok := tables.Goto(5, "C")
	assert.True(ok)
	assert.Equal(8, to)
	_, ok = tables.Goto(5, "S")
	assert.False(ok)
	_, ok = tables.Goto(0, "while")
	assert.False(ok, "GOTO must not answer for terminals")
	assert.Contains(tables.String(), "acc")
	var buf bytes.Buffer
	assert.NoError(tables.ActionTableAsHTML(&buf))
	assert.Contains(buf.String(), "<td>s3</td>")
}

func TestAtMostOneAction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	tracing.Select("slr1.lr").SetTraceLevel(tracing.LevelInfo)
	g, err := ReadGrammarFile("../grammar/while.grammar")
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	// every ACTION entry has been entered exactly once: count the completed
	// items' lookaheads plus terminal edges and compare with the table size
	expected := 0
	for _, s := range lrgen.CFSM().States() {
		seen := make(map[string]bool)
		for _, e := range lrgen.CFSM().allEdges(s) {
			if e.label.IsTerminal() {
				seen[e.label.Name] = true
			}
		}
		for _, i := range s.Items() {
			if !i.Completed() {
				continue
			}
			if i.Rule().Serial == 0 {
				seen["#"] = true
				continue
			}
			for _, la := range lrgen.ga.Follow(i.Rule().LHS) {
				if seen[la] {
					t.Errorf("state %d: lookahead %s entered twice", s.ID, la)
				}
				seen[la] = true
			}
		}
		expected += len(seen)
	}
	if n := lrgen.actiontable.ValueCount(); n != expected {
		t.Errorf("expected %d ACTION entries, have %d", expected, n)
	}
}

func TestConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, err := ReadGrammarFile("testdata/ambiguous.grammar")
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(Analysis(g))
	err = lrgen.CreateTables()
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected a ConflictError, got %v", err)
	}
	assert := assert.New(t)
	assert.True(lrgen.HasConflicts)
	assert.Nil(lrgen.Tables(), "no tables may be published for a conflicting grammar")
	assert.Equal("shift/reduce", conflict.Kind())
	assert.Equal(4, conflict.State)
	assert.Equal("+", conflict.Symbol)
	assert.Equal(Action{Kind: ShiftAction, Target: 3}, conflict.Existing)
	assert.Equal(Action{Kind: ReduceAction, Target: 1}, conflict.Incoming)
	tables, err := Build(g)
	assert.Error(err)
	assert.Nil(tables)
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, err := ReadGrammar("RR", strings.NewReader(`
S' -> S
S -> A
S -> B
A -> id
B -> id
`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Build(g)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected a ConflictError, got %v", err)
	}
	if conflict.Kind() != "reduce/reduce" || conflict.Symbol != "#" {
		t.Errorf("expected reduce/reduce conflict on '#', got %v", conflict)
	}
}

func TestTableCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	tracing.Select("slr1.lr").SetTraceLevel(tracing.LevelInfo)
	cache := NewTableCache()
	g1 := makeWhileGrammar(t)
	g2, err := ReadGrammarFile("testdata/e2e.grammar")
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	results := make([]*Tables, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g := g1
			if i%2 == 1 {
				g = g2
			}
			results[i], _ = cache.Tables(g)
		}(i)
	}
	wg.Wait()
	for i, tables := range results {
		if tables == nil || tables != results[0] {
			t.Errorf("expected identical tables for equal grammars, #%d differs", i)
		}
	}
	if cache.Len() != 1 {
		t.Errorf("expected 1 cache entry, have %d", cache.Len())
	}
	amb, _ := ReadGrammarFile("testdata/ambiguous.grammar")
	if _, err := cache.Tables(amb); err == nil {
		t.Errorf("expected cache to report conflict")
	}
	if cache.Len() != 1 {
		t.Errorf("conflicting grammar must not be cached")
	}
}
