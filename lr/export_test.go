package lr

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestTableExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.lr")
	defer teardown()
	//
	tables, err := Build(makeWhileGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	var action, gotoT strings.Builder
	if err = tables.ActionTableAsHTML(&action); err != nil {
		t.Fatal(err)
	}
	if err = tables.GotoTableAsHTML(&gotoT); err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.Contains(action.String(), "<td>&gt;</td>", "terminal > must be escaped")
	assert.Contains(action.String(), "<td>acc</td>")
	assert.Contains(gotoT.String(), "<td>state 15</td>")
	text := tables.String()
	assert.Contains(text, "acc")
	assert.Contains(text, "s3")
	assert.NotContains(text, "S'", "augmenting symbol has no GOTO column")
}
