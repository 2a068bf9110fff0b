package types

import (
	"cmp"
	"strconv"
	"strings"
)

// FloatSubtype is a finite set of floats, or all floats but a finite set.
// Values are compared with cmp.Compare, so -0.0 equals 0.0 and NaN equals NaN
type FloatSubtype struct {
	enumerable[float64]
}

var _ ProperSubtypeData = FloatSubtype{}

func (FloatSubtype) isSubtypeData()       {}
func (FloatSubtype) isProperSubtypeData() {}

func (f FloatSubtype) Hash() uint64 {
	return f.hash(uint64(CodeFloat), hashFloat)
}

// Values returns the listed values and whether they are the allowed ones
func (f FloatSubtype) Values() (values []float64, allowed bool) {
	return append([]float64(nil), f.values...), f.allowed
}

func (f FloatSubtype) String() string {
	parts := make([]string, len(f.values))
	for i, v := range f.values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return enumerableString("float", f.allowed, parts)
}

func compareFloat(a, b float64) int {
	return cmp.Compare(a, b)
}

// FloatConst is the singleton type of v
func FloatConst(v float64) SemType {
	return basicSubtype(CodeFloat, FloatSubtype{enumerable[float64]{allowed: true, values: []float64{v}}})
}

func floatSubtypeFrom(e enumerable[float64]) SubtypeData {
	switch {
	case e.isAll():
		return allOrNothing(true)
	case e.isNothing():
		return allOrNothing(false)
	}
	return FloatSubtype{e}
}

func enumerableString(category string, allowed bool, parts []string) string {
	if allowed {
		return category + "{" + strings.Join(parts, ",") + "}"
	}
	return category + "!{" + strings.Join(parts, ",") + "}"
}
