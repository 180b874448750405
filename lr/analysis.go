package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// LRAnalysis is an object for grammar analysis (computing FIRST- and FOLLOW-sets).
// Sets contain terminal names and are ordered by name.
type LRAnalysis struct {
	g      *Grammar
	first  map[*Symbol]*treeset.Set
	follow map[*Symbol]*treeset.Set
}

// Analysis creates an analyser for a grammar and computes FIRST- and FOLLOW-sets.
// The analyser will hold references to the sets, so clients may query it
// repeatedly.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:      g,
		first:  make(map[*Symbol]*treeset.Set),
		follow: make(map[*Symbol]*treeset.Set),
	}
	for _, A := range g.nonterminals {
		ga.first[A] = treeset.NewWithStringComparator()
		ga.follow[A] = treeset.NewWithStringComparator()
	}
	ga.computeFirst()
	ga.computeFollow()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(A) for a symbol A. For a terminal a, FIRST(a) = { a }.
func (ga *LRAnalysis) First(A *Symbol) []string {
	if A == nil {
		return nil
	}
	if A.IsTerminal() {
		return []string{A.Name}
	}
	return names(ga.first[A])
}

// Follow returns FOLLOW(A) for a non-terminal A.
func (ga *LRAnalysis) Follow(A *Symbol) []string {
	if A == nil || A.IsTerminal() {
		return nil
	}
	return names(ga.follow[A])
}

// computeFirst iterates until no FIRST-set grows any more. For a rule
// A ➞ Y1 … Yk only Y1 is considered: if it is a terminal, it is added to
// FIRST(A), otherwise FIRST(Y1) is. This is sufficient for epsilon-free grammars.
//
// Returns true if any set changed.
func (ga *LRAnalysis) computeFirst() bool {
	changed, anyChange := true, false
	for changed {
		changed = false
		for _, r := range ga.g.rules {
			F := ga.first[r.LHS]
			size := F.Size()
			Y := r.rhs[0]
			if Y.IsTerminal() {
				F.Add(Y.Name)
			} else if Y != r.LHS {
				F.Add(ga.first[Y].Values()...)
			}
			if F.Size() > size {
				tracer().Debugf("FIRST(%s) = %v", r.LHS, F.Values())
				changed = true
			}
		}
		anyChange = anyChange || changed
	}
	return anyChange
}

// computeFollow seeds FOLLOW(S') with '#' and iterates until no FOLLOW-set grows
// any more. For every rule A ➞ … B X …, with B a non-terminal:
// if X is a terminal, X is added to FOLLOW(B); if X is a non-terminal, FIRST(X)
// is added to FOLLOW(B); if B is the rightmost symbol, FOLLOW(A) is added to FOLLOW(B).
//
// Returns true if any set changed.
func (ga *LRAnalysis) computeFollow() bool {
	S := ga.follow[ga.g.StartSymbol()]
	anyChange := !S.Contains(ga.g.eof.Name)
	S.Add(ga.g.eof.Name)
	changed := true
	for changed {
		changed = false
		for _, r := range ga.g.rules {
			for i, B := range r.rhs {
				if B.IsTerminal() {
					continue
				}
				F := ga.follow[B]
				size := F.Size()
				if i+1 < len(r.rhs) {
					X := r.rhs[i+1]
					if X.IsTerminal() {
						F.Add(X.Name)
					} else {
						F.Add(ga.first[X].Values()...)
					}
				} else if B != r.LHS {
					F.Add(ga.follow[r.LHS].Values()...)
				}
				if F.Size() > size {
					tracer().Debugf("FOLLOW(%s) = %v", B, F.Values())
					changed = true
				}
			}
		}
		anyChange = anyChange || changed
	}
	return anyChange
}

// names converts a set of terminal names to a slice.
func names(S *treeset.Set) []string {
	if S == nil {
		return nil
	}
	r := make([]string, 0, S.Size())
	for _, v := range S.Values() {
		r = append(r, v.(string))
	}
	return r
}
