package types

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cottand/semtype/semerr"
)

// Range is an inclusive range of ints. math.MinInt64 and math.MaxInt64 stand
// for unbounded ends
type Range struct {
	Min, Max int64
}

func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatInt(r.Min, 10)
	}
	lo, hi := "", ""
	if r.Min != math.MinInt64 {
		lo = strconv.FormatInt(r.Min, 10)
	}
	if r.Max != math.MaxInt64 {
		hi = strconv.FormatInt(r.Max, 10)
	}
	return lo + ".." + hi
}

// IntSubtype is a sorted list of ranges that neither overlap nor touch
type IntSubtype struct {
	ranges []Range
}

var _ ProperSubtypeData = IntSubtype{}

func (IntSubtype) isSubtypeData()       {}
func (IntSubtype) isProperSubtypeData() {}

// Ranges returns a copy of the ranges of s
func (s IntSubtype) Ranges() []Range {
	return slices.Clone(s.ranges)
}

func (s IntSubtype) Hash() uint64 {
	words := make([]uint64, 0, 2*len(s.ranges)+1)
	words = append(words, uint64(CodeInt))
	for _, r := range s.ranges {
		words = append(words, uint64(r.Min), uint64(r.Max))
	}
	return hashWords(words...)
}

func (s IntSubtype) equal(other IntSubtype) bool {
	return slices.Equal(s.ranges, other.ranges)
}

func (s IntSubtype) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return "int[" + strings.Join(parts, ",") + "]"
}

// intSubtypeFrom normalizes a range list into SubtypeData
func intSubtypeFrom(ranges []Range) SubtypeData {
	switch {
	case len(ranges) == 0:
		return allOrNothing(false)
	case len(ranges) == 1 && ranges[0] == Range{math.MinInt64, math.MaxInt64}:
		return allOrNothing(true)
	}
	return IntSubtype{ranges: ranges}
}

// IntConst is the singleton type of v
func IntConst(v int64) SemType {
	return basicSubtype(CodeInt, IntSubtype{ranges: []Range{{v, v}}})
}

// IntRange is the type of the ints in [min, max]
func IntRange(min, max int64) (SemType, error) {
	if min > max {
		return nil, semerr.New(semerr.InvalidRangeError{Min: min, Max: max})
	}
	return basicSubtype(CodeInt, intSubtypeFrom([]Range{{min, max}})), nil
}

func mustIntRange(min, max int64) SemType {
	t, err := IntRange(min, max)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	IntSigned8    = mustIntRange(math.MinInt8, math.MaxInt8)
	IntSigned16   = mustIntRange(math.MinInt16, math.MaxInt16)
	IntSigned32   = mustIntRange(math.MinInt32, math.MaxInt32)
	IntUnsigned8  = mustIntRange(0, math.MaxUint8)
	IntUnsigned16 = mustIntRange(0, math.MaxUint16)
	IntUnsigned32 = mustIntRange(0, math.MaxUint32)
	Byte          = IntUnsigned8
)

// adjacent reports whether r2 starts right where r1 ends
func adjacent(r1, r2 Range) bool {
	return r1.Max != math.MaxInt64 && r1.Max+1 == r2.Min
}

func rangeListUnion(v1, v2 []Range) []Range {
	merged := make([]Range, 0, len(v1)+len(v2))
	merged = append(merged, v1...)
	merged = append(merged, v2...)
	slices.SortFunc(merged, func(a, b Range) int {
		if a.Min < b.Min {
			return -1
		} else if a.Min > b.Min {
			return 1
		}
		return 0
	})
	result := make([]Range, 0, len(merged))
	for _, r := range merged {
		if n := len(result); n > 0 && (r.Min <= result[n-1].Max || adjacent(result[n-1], r)) {
			result[n-1].Max = max(result[n-1].Max, r.Max)
			continue
		}
		result = append(result, r)
	}
	return result
}

func rangeListIntersect(v1, v2 []Range) []Range {
	var result []Range
	i, j := 0, 0
	for i < len(v1) && j < len(v2) {
		lo := max(v1[i].Min, v2[j].Min)
		hi := min(v1[i].Max, v2[j].Max)
		if lo <= hi {
			result = append(result, Range{lo, hi})
		}
		if v1[i].Max < v2[j].Max {
			i++
		} else {
			j++
		}
	}
	return result
}

func rangeListComplement(v []Range) []Range {
	var result []Range
	next := int64(math.MinInt64)
	for _, r := range v {
		if r.Min > next {
			result = append(result, Range{next, r.Min - 1})
		}
		if r.Max == math.MaxInt64 {
			return result
		}
		next = r.Max + 1
	}
	return append(result, Range{next, math.MaxInt64})
}
