/*
Package slr1 is a small SLR(1) translation toolkit.

It analyses a context-free grammar, builds the canonical LR(0) automaton and
SLR(1) parsing tables for it, and drives a table-based shift-reduce parser which
performs syntax-directed translation into three-address code (quadruples) for a
tiny imperative language of while-loops, assignments, relational conditions and
additive expressions. Package structure is as follows:

■ lr: Package lr implements grammars, FIRST/FOLLOW analysis, the characteristic
finite state machine and SLR(1) table construction. Sub-packages contain the
shift-reduce driver (lr/slr), scanners (lr/scanner) and the sparse table storage
(lr/sparse).

■ tac: Package tac implements quadruples, the semantic actions synthesizing them,
and a small interpreter for quadruple sequences.

■ runtime: Package runtime provides symbol tables and memory frames for the
quadruple interpreter.

The base package contains data types which are used throughout all the other packages.
*/
package slr1
