package lr

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === Items =================================================================

// Item is an LR(0) item: a rule together with a dot position marking parse
// progress,
//
//    A ➞ α • β
//
// Items are values and may be compared with ==.
type Item struct {
	rule *Rule
	dot  int // 0 … |RHS|
}

// StartItem returns the item for the start of a rule, i.e. A ➞ • α.
func StartItem(r *Rule) Item {
	return Item{rule: r}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position of an item.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil if the dot is at the end.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Completed is a predicate: is the dot at the end of the RHS?
func (i Item) Completed() bool {
	return i.dot == len(i.rule.rhs)
}

// Advance returns a new item with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	if i.Completed() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" ->")
	for n, sym := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	if i.Completed() {
		b.WriteString(" •")
	}
	return b.String()
}

// itemComparator orders items by rule serial, then by dot position.
func itemComparator(a, b interface{}) int {
	i1 := a.(Item)
	i2 := b.(Item)
	if c := utils.IntComparator(i1.rule.Serial, i2.rule.Serial); c != 0 {
		return c
	}
	return utils.IntComparator(i1.dot, i2.dot)
}

func asItem(x interface{}) Item {
	return x.(Item)
}

// === Item Sets =============================================================

// ItemSet is an ordered set of LR(0) items.
type ItemSet struct {
	*treeset.Set
}

func newItemSet(items ...Item) *ItemSet {
	S := &ItemSet{treeset.NewWith(itemComparator)}
	for _, i := range items {
		S.Add(i)
	}
	return S
}

// Items returns the items of the set in order.
func (S *ItemSet) Items() []Item {
	items := make([]Item, 0, S.Size())
	for _, x := range S.Values() {
		items = append(items, asItem(x))
	}
	return items
}

// Copy returns a shallow copy of the set.
func (S *ItemSet) Copy() *ItemSet {
	return newItemSet(S.Items()...)
}

// Equals is true if S and other contain exactly the same items.
func (S *ItemSet) Equals(other *ItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	it1, it2 := S.Iterator(), other.Iterator()
	for it1.Next() && it2.Next() {
		if asItem(it1.Value()) != asItem(it2.Value()) {
			return false
		}
	}
	return true
}

type itemKey struct {
	Rule int
	Dot  int
}

// hash returns a structural hash of the items in S. Equal sets have equal hashes.
func (S *ItemSet) hash() string {
	keys := make([]itemKey, 0, S.Size())
	for _, i := range S.Items() {
		keys = append(keys, itemKey{Rule: i.rule.Serial, Dot: i.dot})
	}
	h, err := structhash.Hash(keys, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return h
}

func (S *ItemSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for n, i := range S.Items() {
		if n > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper, tracing the items of S at debug level.
func (S *ItemSet) Dump() {
	for _, i := range S.Items() {
		tracer().Debugf("    %s", i)
	}
}
