package lr

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/Yuk1no000/slr1-project/lr/sparse"
)

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Codes for ACTION table entries. Reduce entries are encoded as the serial
// number of the rule to reduce.
const (
	shiftCode  = -1
	acceptCode = -2
)

// === Closure and Goto-Set Operations =======================================

// Compute the closure of an item.
func (ga *LRAnalysis) closure(i Item) *ItemSet {
	return ga.closureSet(newItemSet(i))
}

// Compute the closure of an item set: for every item with the dot in front of a
// non-terminal B, add B ➞ • γ for every rule of B, until nothing changes.
func (ga *LRAnalysis) closureSet(S *ItemSet) *ItemSet {
	C := S.Copy() // add start items to closure
	work := S.Items()
	for len(work) > 0 {
		item := work[0]
		work = work[1:]
		B := item.PeekSymbol()           // get symbol B after dot
		if B != nil && !B.IsTerminal() { // B is non-terminal
			for _, r := range ga.g.FindNonTermRules(B) {
				if i := StartItem(r); !C.Contains(i) {
					C.Add(i)
					work = append(work, i)
				}
			}
		}
	}
	return C
}

// gotoSet collects every item of S with the dot in front of A and advances it.
func (ga *LRAnalysis) gotoSet(S *ItemSet, A *Symbol) *ItemSet {
	gotoset := newItemSet()
	for _, i := range S.Items() {
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset
}

func (ga *LRAnalysis) gotoSetClosure(S *ItemSet, A *Symbol) *ItemSet {
	gotoset := ga.gotoSet(S, A)
	if gotoset.Empty() {
		return gotoset
	}
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", S, A, gclosure)
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int      // serial ID of this state, index into the CFSM's state list
	items  *ItemSet // configuration items within this state
	Accept bool     // is this an accepting state?
	next   map[*Symbol]*CFSMState
}

// CFSM edge between 2 states, directed and labeled with a symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.items.Dump()
	tracer().Debugf("-------------------------")
}

// Items returns the items of a state, ordered by rule and dot position.
func (s *CFSMState) Items() []Item {
	return s.items.Items()
}

// Next returns the successor state for a symbol, or nil.
func (s *CFSMState) Next(A *Symbol) *CFSMState {
	return s.next[A]
}

// Create a state from an item set
func state(id int, iset *ItemSet) *CFSMState {
	s := &CFSMState{ID: id, next: make(map[*Symbol]*CFSMState)}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	return s
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.Items() {
		if i.rule.Serial == 0 && i.Completed() {
			return true
		}
	}
	return false
}

// nextSymbols returns the symbols immediately after a dot, ordered by name.
func (s *CFSMState) nextSymbols(g *Grammar) []*Symbol {
	var syms []*Symbol
	for _, i := range s.items.Items() {
		if A := i.PeekSymbol(); A != nil {
			syms = append(syms, A)
		}
	}
	var r []*Symbol
	for _, name := range sortedSymbolNames(syms).Values() {
		r = append(r, g.symbols[name.(string)])
	}
	return r
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes.
type CFSM struct {
	g       *Grammar                // this CFSM is for Grammar g
	states  *arraylist.List         // all the states, in order of discovery
	edges   *arraylist.List         // all the edges between states
	buckets map[string][]*CFSMState // states by hash of their item sets
	S0      *CFSMState              // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = arraylist.New()
	c.edges = arraylist.New()
	c.buckets = make(map[string][]*CFSMState)
	return c
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	x, ok := c.states.Get(id)
	if !ok {
		return nil
	}
	return x.(*CFSMState)
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	r := make([]*CFSMState, 0, c.states.Size())
	for _, x := range c.states.Values() {
		r = append(r, x.(*CFSMState))
	}
	return r
}

// Add a state to the CFSM. Checks first if state is present.
func (c *CFSM) addState(iset *ItemSet) *CFSMState {
	s := c.findStateByItems(iset)
	if s == nil {
		s = state(c.states.Size(), iset)
		c.states.Add(s)
		h := iset.hash()
		c.buckets[h] = append(c.buckets[h], s)
	}
	return s
}

// Find a CFSM state by the contained item set. States are merged on exact
// item set equality only.
func (c *CFSM) findStateByItems(iset *ItemSet) *CFSMState {
	for _, s := range c.buckets[iset.hash()] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := &cfsmEdge{from: s0, to: s1, label: sym}
	s0.next[sym] = s1
	c.edges.Add(e)
	return e
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// Construct the characteristic finite state machine CFSM for a grammar.
// States are expanded in order of discovery; for each state the successor
// symbols are visited in order of their names, which makes state numbering
// deterministic.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	closure0 := lrgen.ga.closure(StartItem(G.rules[0]))
	cfsm.S0 = cfsm.addState(closure0)
	cfsm.S0.Dump()
	for processed := 0; processed < cfsm.Size(); processed++ {
		s := cfsm.State(processed)
		for _, A := range s.nextSymbols(G) {
			tracer().Debugf("checking goto-set for symbol = %v", A)
			gotoset := lrgen.ga.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew := cfsm.findStateByItems(gotoset)
			if snew == nil {
				snew = cfsm.addState(gotoset)
				if snew.containsCompletedStartRule() {
					snew.Accept = true
				}
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Infof("CFSM for grammar %s has %d states", G.Name, cfsm.Size())
	return cfsm
}

// === Table Generation ======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an SLR(1)-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *Table
	actiontable  *Table
	tables       *Tables
	HasConflicts bool
	Conflicts    []*ConflictError // all conflicts found by CreateTables
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// Tables returns the parser tables, or nil if CreateTables has not been called
// or the grammar is not SLR(1).
func (lrgen *TableGenerator) Tables() *Tables {
	return lrgen.tables
}

// CreateTables creates the necessary data structures for an SLR parser.
// If the grammar is not SLR(1), the first conflict found is returned and no
// tables are published. All conflicts are available in lrgen.Conflicts.
func (lrgen *TableGenerator) CreateTables() error {
	lrgen.tables = nil
	lrgen.CFSM()
	lrgen.gototable = lrgen.buildGotoTable()
	lrgen.actiontable, lrgen.Conflicts = lrgen.buildSLR1ActionTable()
	lrgen.HasConflicts = len(lrgen.Conflicts) > 0
	if lrgen.HasConflicts {
		for _, c := range lrgen.Conflicts {
			tracer().Errorf(c.Error())
		}
		return lrgen.Conflicts[0]
	}
	lrgen.tables = &Tables{
		g:      lrgen.g,
		ga:     lrgen.ga,
		dfa:    lrgen.dfa,
		action: lrgen.actiontable,
		gotoT:  lrgen.gototable,
	}
	return nil
}

// Build is a shortcut for analysing a grammar and creating SLR(1) tables for it.
// It fails with a *ConflictError if the grammar is not SLR(1).
func Build(g *Grammar) (*Tables, error) {
	lrgen := NewTableGenerator(Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		return nil, err
	}
	return lrgen.Tables(), nil
}

// buildGotoTable enters every edge of the CFSM into the GOTO table. Edges
// labeled with terminals hold the target states of shift actions.
func (lrgen *TableGenerator) buildGotoTable() *Table {
	statescnt := lrgen.dfa.Size()
	symcnt := len(lrgen.g.symbols)
	tracer().Infof("GOTO table of size %d x %d", statescnt, symcnt)
	gototable := newTable(statescnt, symcnt)
	for _, state := range lrgen.dfa.States() {
		for _, e := range lrgen.dfa.allEdges(state) {
			gototable.set(state.ID, e.label, int32(e.to.ID))
		}
	}
	return gototable
}

// buildSLR1ActionTable constructs the SLR(1) Action table, including
// lookahead (using the FOLLOW-set created by the grammar analyzer).
//
// For every state and every outgoing edge labeled with a terminal we produce a
// shift entry. For every item with the dot behind the RHS of a rule we produce
// a reduce entry for each terminal in FOLLOW(LHS), or an accept entry on '#'
// if LHS is the start symbol.
//
// Entries are never overwritten; an occupied entry is a conflict.
func (lrgen *TableGenerator) buildSLR1ActionTable() (*Table, []*ConflictError) {
	statescnt := lrgen.dfa.Size()
	symcnt := len(lrgen.g.symbols)
	tracer().Infof("ACTION table of size %d x %d", statescnt, symcnt)
	actions := newTable(statescnt, symcnt)
	var conflicts []*ConflictError
	enter := func(state *CFSMState, a *Symbol, act int32) {
		prev := actions.value(state.ID, a)
		if prev == actions.nullValue() {
			tracer().Debugf("    ACTION[%d,%s] = %s", state.ID, a, lrgen.decode(state.ID, a, act))
			actions.set(state.ID, a, act)
			return
		}
		if prev == act && act != shiftCode {
			return // same reduce or accept again
		}
		conflicts = append(conflicts, &ConflictError{
			Grammar:  lrgen.g.Name,
			State:    state.ID,
			Symbol:   a.Name,
			Existing: lrgen.decode(state.ID, a, prev),
			Incoming: lrgen.decode(state.ID, a, act),
		})
	}
	for _, state := range lrgen.dfa.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, e := range lrgen.dfa.allEdges(state) {
			if e.label.IsTerminal() {
				enter(state, e.label, shiftCode)
			}
		}
		for _, i := range state.Items() {
			if !i.Completed() {
				continue
			}
			if i.rule.LHS == lrgen.g.StartSymbol() {
				enter(state, lrgen.g.eof, acceptCode)
				continue
			}
			for _, la := range lrgen.ga.Follow(i.rule.LHS) {
				enter(state, lrgen.g.symbols[la], int32(i.rule.Serial))
			}
		}
	}
	return actions, conflicts
}

// decode converts an ACTION table code into an Action. Shift targets are
// taken from the GOTO table.
func (lrgen *TableGenerator) decode(stateID int, a *Symbol, code int32) Action {
	return decodeAction(code, func() int {
		return int(lrgen.gototable.value(stateID, a))
	})
}

// === Tables ================================================================

// Table is a parser table with a row per CFSM state and a column per grammar
// symbol.
type Table struct {
	matrix *sparse.IntMatrix
}

func newTable(rows, cols int) *Table {
	return &Table{matrix: sparse.NewIntMatrix(rows, cols, sparse.DefaultNullValue)}
}

func (t *Table) set(i int, A *Symbol, val int32) {
	t.matrix.Set(i, A.Value, val)
}

func (t *Table) value(i int, A *Symbol) int32 {
	return t.matrix.Value(i, A.Value)
}

func (t *Table) nullValue() int32 {
	return t.matrix.NullValue()
}

// ValueCount returns the number of entries in the table.
func (t *Table) ValueCount() int {
	return t.matrix.ValueCount()
}

// ActionKind is the type of a parser action.
type ActionKind int8

// Parser actions. An absent ACTION table entry is an ErrorAction.
const (
	ErrorAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

func (k ActionKind) String() string {
	switch k {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	}
	return "error"
}

// Action is an entry of the ACTION table. For shift actions, Target is the
// state to shift to; for reduce actions it is the serial number of the rule
// to reduce.
type Action struct {
	Kind   ActionKind
	Target int
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Target)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Target)
	case AcceptAction:
		return "acc"
	}
	return ""
}

func decodeAction(code int32, shiftTarget func() int) Action {
	switch {
	case code == sparse.DefaultNullValue:
		return Action{Kind: ErrorAction}
	case code == shiftCode:
		return Action{Kind: ShiftAction, Target: shiftTarget()}
	case code == acceptCode:
		return Action{Kind: AcceptAction}
	}
	return Action{Kind: ReduceAction, Target: int(code)}
}

// Tables is the immutable result of SLR(1) table construction. It may be shared
// between any number of parsers.
type Tables struct {
	g      *Grammar
	ga     *LRAnalysis
	dfa    *CFSM
	action *Table
	gotoT  *Table
}

// Grammar returns the grammar the tables have been constructed for.
func (t *Tables) Grammar() *Grammar {
	return t.g
}

// Analysis returns the grammar analysis (FIRST and FOLLOW sets).
func (t *Tables) Analysis() *LRAnalysis {
	return t.ga
}

// CFSM returns the characteristic finite state machine.
func (t *Tables) CFSM() *CFSM {
	return t.dfa
}

// Rule returns grammar rule no.
func (t *Tables) Rule(no int) *Rule {
	return t.g.Rule(no)
}

// StateCount returns the number of parser states.
func (t *Tables) StateCount() int {
	return t.dfa.Size()
}

// Action looks up ACTION[state, terminal]. Unknown states and symbols
// result in an ErrorAction.
func (t *Tables) Action(state int, terminal string) Action {
	a := t.g.symbols[terminal]
	if a == nil || !a.IsTerminal() || state < 0 || state >= t.dfa.Size() {
		return Action{Kind: ErrorAction}
	}
	return decodeAction(t.action.value(state, a), func() int {
		return int(t.gotoT.value(state, a))
	})
}

// Goto looks up GOTO[state, nonterminal].
func (t *Tables) Goto(state int, nonterminal string) (int, bool) {
	A := t.g.symbols[nonterminal]
	if A == nil || A.IsTerminal() || state < 0 || state >= t.dfa.Size() {
		return 0, false
	}
	v := t.gotoT.value(state, A)
	if v == t.gotoT.nullValue() {
		return 0, false
	}
	return int(v), true
}

// Expected returns the terminals with a non-error ACTION entry in a state,
// in order of the grammar's terminals.
func (t *Tables) Expected(state int) []string {
	var r []string
	for _, a := range t.g.terminals {
		if t.Action(state, a.Name).Kind != ErrorAction {
			r = append(r, a.Name)
		}
	}
	return r
}

// === Conflicts =============================================================

// ConflictError is reported if two different actions are required for the same
// state and lookahead symbol, i.e. the grammar is not SLR(1).
type ConflictError struct {
	Grammar  string
	State    int
	Symbol   string
	Existing Action // action already in the table
	Incoming Action // action which could not be entered
}

// Kind returns the kind of conflict, e.g. "shift/reduce".
func (c *ConflictError) Kind() string {
	a, b := c.Existing.Kind, c.Incoming.Kind
	if b < a {
		a, b = b, a
	}
	return a.String() + "/" + b.String()
}

func (c *ConflictError) Error() string {
	return fmt.Sprintf("grammar %s is not SLR(1): %s conflict in state %d on symbol %q (%s vs %s)",
		c.Grammar, c.Kind(), c.State, c.Symbol, c.Existing, c.Incoming)
}
