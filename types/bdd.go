package types

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

type atomKind uint8

const (
	listAtomKind atomKind = iota
	mappingAtomKind
	functionAtomKind
)

func atomKindOf(code BasicTypeCode) (atomKind, bool) {
	switch code {
	case CodeList:
		return listAtomKind, true
	case CodeMapping:
		return mappingAtomKind, true
	case CodeFunction:
		return functionAtomKind, true
	}
	return 0, false
}

func (k atomKind) code() BasicTypeCode {
	switch k {
	case listAtomKind:
		return CodeList
	case mappingAtomKind:
		return CodeMapping
	}
	return CodeFunction
}

// atom names an atomic structural type held by an Env.
// A rec atom names a slot that a definition fills in later,
// which is how recursive types are tied
type atom struct {
	kind  atomKind
	rec   bool
	index int
}

func (a atom) hash() uint64 {
	var rec uint64
	if a.rec {
		rec = 1
	}
	return hashWords(uint64(a.kind), rec, uint64(a.index))
}

func (a atom) String() string {
	name := [...]string{"L", "M", "F"}[a.kind] + strconv.Itoa(a.index)
	if a.rec {
		return "r" + name
	}
	return name
}

// atomCmp orders rec atoms before type atoms, then by index
func atomCmp(a1, a2 atom) int {
	if a1.rec != a2.rec {
		if a1.rec {
			return -1
		}
		return 1
	}
	return cmp.Compare(a1.index, a2.index)
}

// bdd is a binary decision diagram over atoms of one kind.
// A node stands for (atom ∧ left) ∨ middle ∨ (¬atom ∧ right)
type bdd interface {
	bddHash() uint64
}

type bddAllOrNothing bool

const (
	bddAll     = bddAllOrNothing(true)
	bddNothing = bddAllOrNothing(false)
)

func (b bddAllOrNothing) bddHash() uint64 {
	if b {
		return 1
	}
	return 0
}

type bddNode struct {
	atom                atom
	left, middle, right bdd
	hash                uint64
}

var _ ProperSubtypeData = &bddNode{}

func (n *bddNode) bddHash() uint64    { return n.hash }
func (n *bddNode) Hash() uint64       { return n.hash }
func (*bddNode) isSubtypeData()       {}
func (*bddNode) isProperSubtypeData() {}
func (n *bddNode) String() string     { return n.atom.kind.code().String() + "(" + bddString(n) + ")" }

func bddSubtypeData(b bdd) SubtypeData {
	switch b := b.(type) {
	case bddAllOrNothing:
		return allOrNothing(b)
	case *bddNode:
		return b
	}
	panic(fmt.Sprintf("unexpected bdd %T", b))
}

func bddAtom(a atom) bdd {
	return bddCreate(a, bddAll, bddNothing, bddNothing)
}

func bddCreate(a atom, left, middle, right bdd) bdd {
	if middle == bddAll {
		return bddAll
	}
	if bddEqual(left, right) {
		return bddUnion(left, middle)
	}
	return &bddNode{
		atom:   a,
		left:   left,
		middle: middle,
		right:  right,
		hash:   hashWords(a.hash(), left.bddHash(), middle.bddHash(), right.bddHash()),
	}
}

func bddEqual(b1, b2 bdd) bool {
	if b1 == b2 {
		return true
	}
	n1, ok1 := b1.(*bddNode)
	n2, ok2 := b2.(*bddNode)
	if !ok1 || !ok2 {
		return false
	}
	return n1.hash == n2.hash &&
		n1.atom == n2.atom &&
		bddEqual(n1.left, n2.left) &&
		bddEqual(n1.middle, n2.middle) &&
		bddEqual(n1.right, n2.right)
}

func bddUnion(b1, b2 bdd) bdd {
	if b1 == b2 {
		return b1
	}
	if b, ok := b1.(bddAllOrNothing); ok {
		if b {
			return bddAll
		}
		return b2
	}
	if b, ok := b2.(bddAllOrNothing); ok {
		if b {
			return bddAll
		}
		return b1
	}
	n1, n2 := b1.(*bddNode), b2.(*bddNode)
	switch c := atomCmp(n1.atom, n2.atom); {
	case c < 0:
		return bddCreate(n1.atom, n1.left, bddUnion(n1.middle, b2), n1.right)
	case c > 0:
		return bddCreate(n2.atom, n2.left, bddUnion(b1, n2.middle), n2.right)
	}
	return bddCreate(n1.atom,
		bddUnion(n1.left, n2.left),
		bddUnion(n1.middle, n2.middle),
		bddUnion(n1.right, n2.right))
}

func bddIntersect(b1, b2 bdd) bdd {
	if b1 == b2 {
		return b1
	}
	if b, ok := b1.(bddAllOrNothing); ok {
		if b {
			return b2
		}
		return bddNothing
	}
	if b, ok := b2.(bddAllOrNothing); ok {
		if b {
			return b1
		}
		return bddNothing
	}
	n1, n2 := b1.(*bddNode), b2.(*bddNode)
	switch c := atomCmp(n1.atom, n2.atom); {
	case c < 0:
		return bddCreate(n1.atom,
			bddIntersect(n1.left, b2),
			bddIntersect(n1.middle, b2),
			bddIntersect(n1.right, b2))
	case c > 0:
		return bddCreate(n2.atom,
			bddIntersect(b1, n2.left),
			bddIntersect(b1, n2.middle),
			bddIntersect(b1, n2.right))
	}
	return bddCreate(n1.atom,
		bddIntersect(bddUnion(n1.left, n1.middle), bddUnion(n2.left, n2.middle)),
		bddNothing,
		bddIntersect(bddUnion(n1.right, n1.middle), bddUnion(n2.right, n2.middle)))
}

func bddDiff(b1, b2 bdd) bdd {
	if b1 == b2 {
		return bddNothing
	}
	if b, ok := b2.(bddAllOrNothing); ok {
		if b {
			return bddNothing
		}
		return b1
	}
	if b, ok := b1.(bddAllOrNothing); ok {
		if b {
			return bddComplement(b2)
		}
		return bddNothing
	}
	n1, n2 := b1.(*bddNode), b2.(*bddNode)
	switch c := atomCmp(n1.atom, n2.atom); {
	case c < 0:
		return bddCreate(n1.atom,
			bddDiff(n1.left, b2),
			bddDiff(n1.middle, b2),
			bddDiff(n1.right, b2))
	case c > 0:
		return bddCreate(n2.atom,
			bddDiff(b1, bddUnion(n2.left, n2.middle)),
			bddNothing,
			bddDiff(b1, bddUnion(n2.right, n2.middle)))
	}
	return bddCreate(n1.atom,
		bddDiff(bddUnion(n1.left, n1.middle), bddUnion(n2.left, n2.middle)),
		bddNothing,
		bddDiff(bddUnion(n1.right, n1.middle), bddUnion(n2.right, n2.middle)))
}

// bddComplement uses ¬((a∧l) ∨ m ∨ (¬a∧r)) = (a ∧ ¬(l∨m)) ∨ (¬a ∧ ¬(r∨m))
func bddComplement(b bdd) bdd {
	if b, ok := b.(bddAllOrNothing); ok {
		return !b
	}
	n := b.(*bddNode)
	if n.middle == bddNothing {
		return bddCreate(n.atom, bddComplement(n.left), bddNothing, bddComplement(n.right))
	}
	return bddCreate(n.atom,
		bddComplement(bddUnion(n.left, n.middle)),
		bddNothing,
		bddComplement(bddUnion(n.right, n.middle)))
}

// conjunction is a linked list of atoms along one path of a bdd
type conjunction struct {
	atom atom
	next *conjunction
}

func and(a atom, next *conjunction) *conjunction {
	return &conjunction{atom: a, next: next}
}

// bddPredicate decides whether the intersection of the atoms in pos minus the
// union of the atoms in neg is empty
type bddPredicate func(cx *Context, pos, neg *conjunction) bool

// bddEvery reports whether predicate holds on every path of b that ends in bddAll
func bddEvery(cx *Context, b bdd, pos, neg *conjunction, predicate bddPredicate) bool {
	switch b := b.(type) {
	case bddAllOrNothing:
		return !bool(b) || predicate(cx, pos, neg)
	case *bddNode:
		return bddEvery(cx, b.left, and(b.atom, pos), neg, predicate) &&
			bddEvery(cx, b.middle, pos, neg, predicate) &&
			bddEvery(cx, b.right, pos, and(b.atom, neg), predicate)
	}
	panic(fmt.Sprintf("unexpected bdd %T", b))
}

func bddString(b bdd) string {
	switch b := b.(type) {
	case bddAllOrNothing:
		if b {
			return "any"
		}
		return "never"
	case *bddNode:
		var parts []string
		if b.left != bddNothing {
			parts = append(parts, bddConjString(b.atom.String(), b.left))
		}
		if b.middle != bddNothing {
			parts = append(parts, bddString(b.middle))
		}
		if b.right != bddNothing {
			parts = append(parts, bddConjString("!"+b.atom.String(), b.right))
		}
		return strings.Join(parts, " | ")
	}
	panic(fmt.Sprintf("unexpected bdd %T", b))
}

func bddConjString(literal string, rest bdd) string {
	if rest == bddAll {
		return literal
	}
	s := bddString(rest)
	if strings.Contains(s, "|") {
		s = "(" + s + ")"
	}
	return literal + " & " + s
}
