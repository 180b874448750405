/*
Package tac implements three-address code (quadruples) for the while-language.

Semantic Actions

A parser reduces rules of a grammar; for every reduction a semantic action
synthesizes an Attribute from the attributes of the rule's right hand side.
Actions are bound to rules once, when a grammar is loaded:

    sem, err := tac.Bind(g)   // fails for rules of unknown shape

Supported shapes of rules are

    S ➞ while ( C ) { S }      loop with two new labels
    S ➞ id = E                 assignment
    C ➞ E op E                 relational operators > < == >= <= !=, new temporary
    E ➞ E op E                 arithmetic operators + - * /, new temporary
    P ➞ P ; S                  statement sequence
    F ➞ ( E )                  parenthesis
    E ➞ X                      unit rule, propagating X

Temporaries are named T1, T2, …, labels L1, L2, …, in the order the actions
fire. Counters are held by a Namer, which belongs to a parser.

Interpreter

Generated code may be executed by an Interpreter, which stores variables in
the global memory frame of a runtime environment.
*/
package tac

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slr1.tac'.
func tracer() tracing.Trace {
	return tracing.Select("slr1.tac")
}
