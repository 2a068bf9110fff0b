package types

import "strconv"

// BooleanSubtype is a single boolean value
type BooleanSubtype struct {
	value bool
}

var _ ProperSubtypeData = BooleanSubtype{}

func (BooleanSubtype) isSubtypeData()       {}
func (BooleanSubtype) isProperSubtypeData() {}
func (b BooleanSubtype) Value() bool        { return b.value }
func (b BooleanSubtype) String() string     { return "boolean(" + strconv.FormatBool(b.value) + ")" }
func (b BooleanSubtype) Hash() uint64 {
	if b.value {
		return hashWords(uint64(CodeBoolean), 1)
	}
	return hashWords(uint64(CodeBoolean), 0)
}

// BooleanConst is the singleton type of b
func BooleanConst(b bool) SemType {
	return basicSubtype(CodeBoolean, BooleanSubtype{value: b})
}

func booleanSubtypeUnion(b1, b2 BooleanSubtype) SubtypeData {
	if b1 == b2 {
		return b1
	}
	return allOrNothing(true)
}

func booleanSubtypeIntersect(b1, b2 BooleanSubtype) SubtypeData {
	if b1 == b2 {
		return b1
	}
	return allOrNothing(false)
}

func booleanSubtypeDiff(b1, b2 BooleanSubtype) SubtypeData {
	if b1 == b2 {
		return allOrNothing(false)
	}
	return b1
}
