/*
Package lr implements prerequisites for SLR(1) parsing.

Building a Grammar

Grammars are either read from a line-oriented text format or specified using a
grammar builder object. Clients add rules, consisting of non-terminal symbols
and terminals. Rule 0 has to be the augmenting rule S' ➞ S.
Epsilon-productions are not supported.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S'").N("S").End()                    // S' ➞ S
    b.LHS("S").T("id").T("=").N("E").End()      // S  ➞ id = E
    b.LHS("E").T("id").End()                    // E  ➞ id
    g, err := b.Grammar()

The same grammar in text format, as accepted by ReadGrammar:

    S' -> S
    S -> id = E
    E -> id

Every symbol occuring on the left side of a rule is a non-terminal, every other
symbol is a terminal. The end-of-input terminal '#' is added implicitly.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar.

    ga := lr.Analysis(g)
    ga.First(g.SymbolByName("S"))    // => [id]
    ga.Follow(g.SymbolByName("E"))   // => [#]

FIRST-sets are computed from the leading symbol of each right hand side only.
This is sufficient for epsilon-free grammars, which is all we accept.

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a GOTO table
and an ACTION table for an SLR(1) parser. The CFSM will not be thrown away,
but is made available to the client. It can be exported to Graphviz's Dot-format.

    lrgen := lr.NewTableGenerator(ga)
    if err := lrgen.CreateTables(); err != nil {
        // grammar is not SLR(1), err is a *ConflictError
    }
    tables := lrgen.Tables()

Tables are immutable and may be shared between any number of parsers.
*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slr1.lr'.
func tracer() tracing.Trace {
	return tracing.Select("slr1.lr")
}
