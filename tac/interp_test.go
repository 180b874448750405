package tac

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestInterpretAssignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.tac")
	defer teardown()
	//
	code := Code{
		NewQuad("+", "1", "2", "T1"),
		NewQuad("=", "T1", "", "x"),
	}
	ip := NewInterpreter()
	if err := ip.Run(code); err != nil {
		t.Fatal(err)
	}
	x, ok := ip.Var("x")
	assert.True(t, ok)
	assert.Equal(t, "3", x.String())
	assert.Equal(t, 2, ip.Steps())
}

func TestInterpretLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.tac")
	defer teardown()
	//
	// i = 5; while (i > 0) { i = i - 1; n = n + 1.5 }
	code := Code{
		NewQuad("=", "5", "", "i"),
		NewQuad("=", "0", "", "n"),
		NewQuad("label", "", "", "L1"),
		NewQuad(">", "i", "0", "T1"),
		NewQuad("jfalse", "T1", "", "L2"),
		NewQuad("-", "i", "1", "T2"),
		NewQuad("=", "T2", "", "i"),
		NewQuad("+", "n", "1.5", "T3"),
		NewQuad("=", "T3", "", "n"),
		NewQuad("jump", "", "", "L1"),
		NewQuad("label", "", "", "L2"),
	}
	ip := NewInterpreter()
	if err := ip.Run(code); err != nil {
		t.Fatal(err)
	}
	i, _ := ip.Var("i")
	n, _ := ip.Var("n")
	assert.Equal(t, "0", i.String())
	assert.Equal(t, "7.5", n.String())
}

func TestStepLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.tac")
	defer teardown()
	//
	code := Code{
		NewQuad("label", "", "", "L1"),
		NewQuad(">", "1", "0", "T1"),
		NewQuad("jfalse", "T1", "", "L2"),
		NewQuad("jump", "", "", "L1"),
		NewQuad("label", "", "", "L2"),
	}
	ip := NewInterpreter()
	ip.MaxSteps = 100
	err := ip.Run(code)
	if !errors.Is(err, ErrStepLimit) {
		t.Errorf("expected step limit to be exceeded, got %v", err)
	}
	if ip.Runtime.MemFrameStack.Current() != ip.Runtime.MemFrameStack.Globals() {
		t.Errorf("expected frame of temporaries to be popped")
	}
}

func TestRuntimeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slr1.tac")
	defer teardown()
	//
	testCases := []Code{
		{NewQuad("=", "y", "", "x")},
		{NewQuad("/", "1", "0", "T1")},
		{NewQuad("jump", "", "", "L9")},
		{NewQuad("%", "1", "2", "T1")},
	}
	for i, code := range testCases {
		if err := NewInterpreter().Run(code); err == nil {
			t.Errorf("expected error for program #%d: %s", i, code)
		}
	}
}
