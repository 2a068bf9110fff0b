package types

import (
	"slices"
	"strings"
)

// ListAtomicType is the set of lists whose i-th member is in members[i]
// and whose members past len(members) are in rest.
// A Never rest makes it a tuple of fixed length
type ListAtomicType struct {
	members []SemType
	rest    SemType
}

func (t *ListAtomicType) Members() []SemType { return slices.Clone(t.members) }
func (t *ListAtomicType) Rest() SemType      { return t.rest }

func (t *ListAtomicType) memberAt(i int) SemType {
	return listMemberAt(t.members, t.rest, i)
}

func listMemberAt(members []SemType, rest SemType, i int) SemType {
	if i < len(members) {
		return members[i]
	}
	return rest
}

func (t *ListAtomicType) hash() uint64 {
	words := make([]uint64, 0, len(t.members)+2)
	words = append(words, uint64(listAtomKind))
	for _, m := range t.members {
		words = append(words, m.Hash())
	}
	return hashWords(append(words, t.rest.Hash())...)
}

func (t *ListAtomicType) equal(other *ListAtomicType) bool {
	return Equal(t.rest, other.rest) && slices.EqualFunc(t.members, other.members, Equal)
}

func (t *ListAtomicType) String() string {
	parts := make([]string, 0, len(t.members)+1)
	for _, m := range t.members {
		parts = append(parts, m.String())
	}
	if t.rest != Never {
		parts = append(parts, t.rest.String()+"...")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TupleType is the type of lists whose leading members are in members and
// whose remaining members are in rest. A nil rest is Never.
// It panics with a semerr.MissingTypeError when a member is nil
func (env *Env) TupleType(members []SemType, rest SemType) SemType {
	if err := missingType("member", members...); err != nil {
		panic(err)
	}
	if rest == nil {
		rest = Never
	}
	if len(members) == 0 && rest == Any {
		return List
	}
	a := env.listAtom(&ListAtomicType{members: slices.Clone(members), rest: rest})
	return env.intern(basicSubtype(CodeList, bddSubtypeData(bddAtom(a))))
}

// ListType is the type of lists of any length with every member in elem
func (env *Env) ListType(elem SemType) SemType {
	return env.TupleType(nil, elem)
}

func listBddIsEmpty(cx *Context, b bdd) bool {
	return bddEvery(cx, b, nil, nil, listFormulaIsEmpty)
}

func listFormulaIsEmpty(cx *Context, pos, neg *conjunction) bool {
	members, rest := []SemType(nil), Any
	if pos != nil {
		lt := cx.listAtomType(pos.atom)
		members, rest = lt.members, lt.rest
		for p := pos.next; p != nil; p = p.next {
			lt = cx.listAtomType(p.atom)
			var ok bool
			members, rest, ok = listIntersectWith(cx, members, rest, lt.members, lt.rest)
			if !ok {
				return true
			}
		}
		for _, m := range members {
			if cx.IsEmpty(m) {
				return true
			}
		}
	}
	if rest != Never && cx.IsEmpty(rest) {
		rest = Never
	}
	return !listInhabited(cx, members, rest, neg)
}

// listIntersectWith intersects two list atoms member by member.
// ok is false when they share no length
func listIntersectWith(cx *Context, m1 []SemType, r1 SemType, m2 []SemType, r2 SemType) (members []SemType, rest SemType, ok bool) {
	n1, n2 := len(m1), len(m2)
	if n1 < n2 && cx.IsEmpty(r1) || n2 < n1 && cx.IsEmpty(r2) {
		return nil, nil, false
	}
	members = make([]SemType, max(n1, n2))
	for i := range members {
		members[i] = cx.env.Intersect(listMemberAt(m1, r1, i), listMemberAt(m2, r2, i))
	}
	return members, cx.env.Intersect(r1, r2), true
}

// listInhabited reports whether some list with the given non-empty members and
// rest lies outside every atom in neg. A Never rest means exactly len(members).
//
// Lengths up to the longest negated tuple plus the number of negated atoms are
// checked one by one. Any longer witness can be rearranged so that the members
// it uses to escape each negated atom sit at those positions, so a single
// open-ended shape covers every longer length
func listInhabited(cx *Context, members []SemType, rest SemType, neg *conjunction) bool {
	if neg == nil {
		return true
	}
	negCount, maxLen := 0, len(members)
	for n := neg; n != nil; n = n.next {
		negCount++
		maxLen = max(maxLen, len(cx.listAtomType(n.atom).members))
	}
	if rest == Never {
		return listShapeInhabited(cx, members, true, neg)
	}
	for length := len(members); length < maxLen+negCount; length++ {
		if listShapeInhabited(cx, listExtend(members, rest, length), true, neg) {
			return true
		}
	}
	return listShapeInhabited(cx, listExtend(members, rest, maxLen+negCount), false, neg)
}

func listExtend(members []SemType, rest SemType, length int) []SemType {
	extended := make([]SemType, length)
	for i := range extended {
		extended[i] = listMemberAt(members, rest, i)
	}
	return extended
}

// listShapeInhabited looks for a list of len(members) members, or at least
// that many when exact is false, that avoids every atom in neg
func listShapeInhabited(cx *Context, members []SemType, exact bool, neg *conjunction) bool {
	if neg == nil {
		return true
	}
	nt := cx.listAtomType(neg.atom)
	n, negLen := len(members), len(nt.members)
	if exact && negLen > n {
		// nt needs more members than we have
		return listShapeInhabited(cx, members, exact, neg.next)
	}
	if negLen < n && cx.IsEmpty(nt.rest) {
		// nt is shorter than every list of this shape
		return listShapeInhabited(cx, members, exact, neg.next)
	}
	if listShapeDisjoint(cx, members, nt) {
		return listShapeInhabited(cx, members, exact, neg.next)
	}
	for i := range members {
		d := cx.env.Diff(members[i], nt.memberAt(i))
		if cx.IsEmpty(d) {
			continue
		}
		narrowed := slices.Clone(members)
		narrowed[i] = d
		if listShapeInhabited(cx, narrowed, exact, neg.next) {
			return true
		}
	}
	return false
}

// listShapeDisjoint reports whether some member of the shape shares no value
// with nt at the same position, so that no list of the shape is in nt
func listShapeDisjoint(cx *Context, members []SemType, nt *ListAtomicType) bool {
	for i, m := range members {
		if cx.IsEmpty(cx.env.Intersect(m, nt.memberAt(i))) {
			return true
		}
	}
	return false
}
