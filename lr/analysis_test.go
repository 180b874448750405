package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestFirstFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g := makeWhileGrammar(t)
	ga := Analysis(g)
	assert := assert.New(t)
	testCases := []struct {
		sym    string
		first  []string
		follow []string
	}{
		{sym: "S'", first: []string{"id", "while"}, follow: []string{"#"}},
		{sym: "S", first: []string{"id", "while"}, follow: []string{"#", "}"}},
		{sym: "C", first: []string{"id"}, follow: []string{")"}},
		{sym: "E", first: []string{"id"}, follow: []string{"#", ")", ">", "}"}},
	}
	for _, tc := range testCases {
		A := g.SymbolByName(tc.sym)
		assert.Equal(tc.first, ga.First(A), "FIRST(%s)", tc.sym)
		assert.Equal(tc.follow, ga.Follow(A), "FOLLOW(%s)", tc.sym)
	}
	assert.Equal([]string{"id"}, ga.First(g.SymbolByName("id")))
	assert.Nil(ga.Follow(g.SymbolByName("id")))
}

func TestFixedPointStability(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	for _, path := range []string{"testdata/e2e.grammar", "../grammar/while.grammar"} {
		g, err := ReadGrammarFile(path)
		if err != nil {
			t.Fatal(err)
		}
		ga := Analysis(g)
		if ga.computeFirst() {
			t.Errorf("%s: FIRST sets changed after convergence", g.Name)
		}
		if ga.computeFollow() {
			t.Errorf("%s: FOLLOW sets changed after convergence", g.Name)
		}
	}
}

func TestLeftRecursiveFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	g, err := ReadGrammarFile("../grammar/while.grammar")
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	assert.Equal(t, []string{"(", "id", "num"}, ga.First(g.SymbolByName("E")))
	assert.Equal(t, []string{"#", ";", "}"}, ga.Follow(g.SymbolByName("S")))
}
