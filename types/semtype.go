package types

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cottand/semtype/semerr"
)

// SemType is a set of values. It is either a UniformTypeBitSet, where each
// category is entirely in or out, or a *ComplexSemType which additionally
// refines some categories.
//
// SemTypes are immutable and may be shared between goroutines
type SemType interface {
	fmt.Stringer
	// Hash is structural: types that are Equal have equal hashes
	Hash() uint64
	isSemType()
}

// ComplexSemType is the Complex variant of SemType.
// The categories in all are fully included, the ones in some are included
// partially, as described by the refinement at the same position in
// subtypeDataList.
type ComplexSemType struct {
	all             UniformTypeBitSet
	some            UniformTypeBitSet
	subtypeDataList []ProperSubtypeData
	hash            uint64
}

var _ SemType = &ComplexSemType{}

func (*ComplexSemType) isSemType() {}

func (t *ComplexSemType) All() UniformTypeBitSet  { return t.all }
func (t *ComplexSemType) Some() UniformTypeBitSet { return t.some }
func (t *ComplexSemType) Hash() uint64            { return t.hash }

// SubtypeData returns the refinement of code, if code is refined by t
func (t *ComplexSemType) SubtypeData(code BasicTypeCode) (ProperSubtypeData, bool) {
	if !t.some.Contains(code) {
		return nil, false
	}
	return t.subtypeDataList[t.dataIndex(code)], true
}

// dataIndex is the rank of code among the set bits of some
func (t *ComplexSemType) dataIndex(code BasicTypeCode) int {
	return (t.some & (Singleton(code) - 1)).Len()
}

func (t *ComplexSemType) String() string {
	var parts []string
	if t.all != 0 {
		parts = append(parts, t.all.String())
	}
	for _, data := range t.subtypeDataList {
		parts = append(parts, data.String())
	}
	return strings.Join(parts, "|")
}

type codeSubtype struct {
	code BasicTypeCode
	data ProperSubtypeData
}

// newComplexSemType builds a node from refinements sorted by code.
// Callers must have checked that no refinement is all or nothing
func newComplexSemType(all UniformTypeBitSet, subtypes []codeSubtype) SemType {
	if len(subtypes) == 0 {
		return all
	}
	t := &ComplexSemType{all: all, subtypeDataList: make([]ProperSubtypeData, 0, len(subtypes))}
	words := make([]uint64, 0, len(subtypes)+2)
	for _, s := range subtypes {
		t.some |= Singleton(s.code)
		t.subtypeDataList = append(t.subtypeDataList, s.data)
		words = append(words, s.data.Hash())
	}
	words = append(words, uint64(t.all), uint64(t.some))
	t.hash = hashWords(words...)
	return t
}

// basicSubtype is the type with only code, refined by data
func basicSubtype(code BasicTypeCode, data SubtypeData) SemType {
	switch data := data.(type) {
	case allOrNothing:
		if data {
			return Singleton(code)
		}
		return Never
	case ProperSubtypeData:
		return newComplexSemType(0, []codeSubtype{{code, data}})
	}
	panic(fmt.Sprintf("unexpected subtype data %T", data))
}

// NewComplexSemType builds a complex type from its parts, checking that
// all and some are disjoint and that every category in some has exactly one
// refinement of the right kind
func NewComplexSemType(all, some UniformTypeBitSet, data map[BasicTypeCode]ProperSubtypeData) (SemType, error) {
	if all&^AllBits != 0 || some&^AllBits != 0 {
		return nil, semerr.New(semerr.InconsistentBitsError{All: uint32(all), Some: uint32(some), Reason: "unknown category bits"})
	}
	if all&some != 0 {
		return nil, semerr.New(semerr.InconsistentBitsError{All: uint32(all), Some: uint32(some), Reason: "all and some overlap"})
	}
	if len(data) != some.Len() {
		return nil, semerr.New(semerr.InconsistentBitsError{All: uint32(all), Some: uint32(some), Reason: fmt.Sprintf("%d refinements for %d refined categories", len(data), some.Len())})
	}
	subtypes := make([]codeSubtype, 0, len(data))
	for code := range some.Codes() {
		d, ok := data[code]
		if !ok {
			return nil, semerr.New(semerr.InconsistentBitsError{All: uint32(all), Some: uint32(some), Reason: "missing refinement for " + code.String()})
		}
		if !refinementFits(code, d) {
			return nil, semerr.New(semerr.MismatchedRefinementError{Category: code.String(), Got: fmt.Sprintf("%T", d)})
		}
		subtypes = append(subtypes, codeSubtype{code, d})
	}
	return newComplexSemType(all, subtypes), nil
}

func refinementFits(code BasicTypeCode, d ProperSubtypeData) bool {
	switch d := d.(type) {
	case BooleanSubtype:
		return code == CodeBoolean
	case IntSubtype:
		return code == CodeInt
	case FloatSubtype:
		return code == CodeFloat
	case DecimalSubtype:
		return code == CodeDecimal
	case StringSubtype:
		return code == CodeString
	case *bddNode:
		kind, ok := atomKindOf(code)
		return ok && d.atom.kind == kind
	}
	return false
}

// Equal reports structural equality: same bits and equal refinements.
// Scalar refinements are normalized, so equal scalar types are Equal. A
// structural refinement only collapses to its whole category when its atom
// plainly accepts everything, such as a record of optional Any fields with an
// Any rest. Structurally different types may still be semantically equal,
// see Env.IsSameType
func Equal(a, b SemType) bool {
	if a == b {
		return true
	}
	c1, ok1 := a.(*ComplexSemType)
	c2, ok2 := b.(*ComplexSemType)
	if !ok1 || !ok2 {
		return false
	}
	if c1.hash != c2.hash || c1.all != c2.all || c1.some != c2.some {
		return false
	}
	return slices.EqualFunc(c1.subtypeDataList, c2.subtypeDataList, properEqual)
}

// WidenToBasicTypes is the smallest uniform type containing t
func WidenToBasicTypes(t SemType) UniformTypeBitSet {
	switch t := t.(type) {
	case UniformTypeBitSet:
		return t
	case *ComplexSemType:
		return t.all | t.some
	}
	panic(fmt.Sprintf("unexpected semtype %T", t))
}

// SingleIntValue returns v when t is exactly the int singleton v
func SingleIntValue(t SemType) (int64, bool) {
	c, ok := t.(*ComplexSemType)
	if !ok || c.all != 0 || c.some != Singleton(CodeInt) {
		return 0, false
	}
	ranges := c.subtypeDataList[0].(IntSubtype).ranges
	if len(ranges) != 1 || ranges[0].Min != ranges[0].Max {
		return 0, false
	}
	return ranges[0].Min, true
}

// splitSemType returns the bits of t
func splitSemType(t SemType) (all, some UniformTypeBitSet) {
	switch t := t.(type) {
	case UniformTypeBitSet:
		return t, 0
	case *ComplexSemType:
		return t.all, t.some
	}
	panic(fmt.Sprintf("unexpected semtype %T", t))
}

// subtypeDataOf returns the part of t that is in code
func subtypeDataOf(t SemType, code BasicTypeCode) SubtypeData {
	all, some := splitSemType(t)
	switch {
	case all.Contains(code):
		return allOrNothing(true)
	case some.Contains(code):
		c := t.(*ComplexSemType)
		return c.subtypeDataList[c.dataIndex(code)]
	}
	return allOrNothing(false)
}

// missingType reports the first nil in ts as the index-th of what
func missingType(what string, ts ...SemType) error {
	for i, t := range ts {
		if t == nil {
			return semerr.New(semerr.MissingTypeError{What: fmt.Sprintf("%s %d", what, i)})
		}
	}
	return nil
}
