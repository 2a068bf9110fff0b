package types

import (
	"fmt"
)

// SubtypeData is the part of a type that lies in one category:
// all of it, none of it, or a ProperSubtypeData
type SubtypeData interface {
	isSubtypeData()
}

// allOrNothing is true for the whole category and false for none of it
type allOrNothing bool

func (allOrNothing) isSubtypeData() {}

// ProperSubtypeData is a refinement strictly between nothing and the whole
// category. The variants are BooleanSubtype, IntSubtype, FloatSubtype,
// DecimalSubtype, StringSubtype and the BDD of structural categories
type ProperSubtypeData interface {
	SubtypeData
	fmt.Stringer
	Hash() uint64
	isProperSubtypeData()
}

func mismatched(op string, d1, d2 ProperSubtypeData) string {
	return fmt.Sprintf("%s of mismatched refinements %T and %T", op, d1, d2)
}

func subtypeUnion(d1, d2 ProperSubtypeData) SubtypeData {
	switch d1 := d1.(type) {
	case BooleanSubtype:
		return booleanSubtypeUnion(d1, d2.(BooleanSubtype))
	case IntSubtype:
		return intSubtypeFrom(rangeListUnion(d1.ranges, d2.(IntSubtype).ranges))
	case FloatSubtype:
		return floatSubtypeFrom(enumerableUnion(d1.enumerable, d2.(FloatSubtype).enumerable, compareFloat))
	case DecimalSubtype:
		return decimalSubtypeFrom(enumerableUnion(d1.enumerable, d2.(DecimalSubtype).enumerable, compareDecimal))
	case StringSubtype:
		return stringSubtypeUnion(d1, d2.(StringSubtype))
	case *bddNode:
		return bddSubtypeData(bddUnion(d1, d2.(*bddNode)))
	}
	panic(mismatched("union", d1, d2))
}

func subtypeIntersect(d1, d2 ProperSubtypeData) SubtypeData {
	switch d1 := d1.(type) {
	case BooleanSubtype:
		return booleanSubtypeIntersect(d1, d2.(BooleanSubtype))
	case IntSubtype:
		return intSubtypeFrom(rangeListIntersect(d1.ranges, d2.(IntSubtype).ranges))
	case FloatSubtype:
		return floatSubtypeFrom(enumerableIntersect(d1.enumerable, d2.(FloatSubtype).enumerable, compareFloat))
	case DecimalSubtype:
		return decimalSubtypeFrom(enumerableIntersect(d1.enumerable, d2.(DecimalSubtype).enumerable, compareDecimal))
	case StringSubtype:
		return stringSubtypeIntersect(d1, d2.(StringSubtype))
	case *bddNode:
		return bddSubtypeData(bddIntersect(d1, d2.(*bddNode)))
	}
	panic(mismatched("intersection", d1, d2))
}

func subtypeDiff(d1, d2 ProperSubtypeData) SubtypeData {
	switch d1 := d1.(type) {
	case BooleanSubtype:
		return booleanSubtypeDiff(d1, d2.(BooleanSubtype))
	case IntSubtype:
		return intSubtypeFrom(rangeListIntersect(d1.ranges, rangeListComplement(d2.(IntSubtype).ranges)))
	case FloatSubtype:
		return floatSubtypeFrom(enumerableDiff(d1.enumerable, d2.(FloatSubtype).enumerable, compareFloat))
	case DecimalSubtype:
		return decimalSubtypeFrom(enumerableDiff(d1.enumerable, d2.(DecimalSubtype).enumerable, compareDecimal))
	case StringSubtype:
		return stringSubtypeDiff(d1, d2.(StringSubtype))
	case *bddNode:
		return bddSubtypeData(bddDiff(d1, d2.(*bddNode)))
	}
	panic(mismatched("difference", d1, d2))
}

func subtypeComplement(d ProperSubtypeData) SubtypeData {
	switch d := d.(type) {
	case BooleanSubtype:
		return BooleanSubtype{value: !d.value}
	case IntSubtype:
		return intSubtypeFrom(rangeListComplement(d.ranges))
	case FloatSubtype:
		return floatSubtypeFrom(d.complement())
	case DecimalSubtype:
		return decimalSubtypeFrom(d.complement())
	case StringSubtype:
		return stringSubtypeFrom(d.char.complement(), d.nonChar.complement())
	case *bddNode:
		return bddSubtypeData(bddComplement(d))
	}
	panic(fmt.Sprintf("complement of unexpected refinement %T", d))
}

// subtypeIsEmpty decides emptiness of a proper refinement of code.
// Only the structural categories can have empty proper refinements
func subtypeIsEmpty(cx *Context, code BasicTypeCode, d ProperSubtypeData) bool {
	b, ok := d.(*bddNode)
	if !ok {
		return false
	}
	switch code {
	case CodeList:
		return cx.memoSubtypeIsEmpty(cx.listMemo, listBddIsEmpty, b)
	case CodeMapping:
		return cx.memoSubtypeIsEmpty(cx.mappingMemo, mappingBddIsEmpty, b)
	case CodeFunction:
		return cx.memoSubtypeIsEmpty(cx.functionMemo, functionBddIsEmpty, b)
	}
	panic(fmt.Sprintf("bdd refinement for non structural category %s", code))
}

func properEqual(d1, d2 ProperSubtypeData) bool {
	if d1.Hash() != d2.Hash() {
		return false
	}
	switch d1 := d1.(type) {
	case BooleanSubtype:
		d2, ok := d2.(BooleanSubtype)
		return ok && d1 == d2
	case IntSubtype:
		d2, ok := d2.(IntSubtype)
		return ok && d1.equal(d2)
	case FloatSubtype:
		d2, ok := d2.(FloatSubtype)
		return ok && enumerableEqual(d1.enumerable, d2.enumerable, compareFloat)
	case DecimalSubtype:
		d2, ok := d2.(DecimalSubtype)
		return ok && enumerableEqual(d1.enumerable, d2.enumerable, compareDecimal)
	case StringSubtype:
		d2, ok := d2.(StringSubtype)
		return ok && enumerableEqual(d1.char, d2.char, compareString) && enumerableEqual(d1.nonChar, d2.nonChar, compareString)
	case *bddNode:
		d2, ok := d2.(*bddNode)
		return ok && bddEqual(d1, d2)
	}
	return false
}
