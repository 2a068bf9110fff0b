package types

import (
	"math/big"
	"strings"

	"github.com/cottand/semtype/semerr"
)

// decimalValue is an exact decimal number. text is its canonical rendering,
// so two values are equal iff their texts are
type decimalValue struct {
	rat  *big.Rat
	text string
}

func compareDecimal(a, b decimalValue) int {
	return a.rat.Cmp(b.rat)
}

func hashDecimal(d decimalValue) uint64 {
	return hashString(d.text)
}

// parseDecimal accepts decimal literals such as 1, -2.50 or 1.5e3
func parseDecimal(text string) (decimalValue, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.ContainsAny(trimmed, "/_") {
		return decimalValue{}, semerr.New(semerr.InvalidLiteralError{Category: "decimal", Text: text, Reason: "not a decimal literal"})
	}
	r, ok := new(big.Rat).SetString(trimmed)
	if !ok {
		return decimalValue{}, semerr.New(semerr.InvalidLiteralError{Category: "decimal", Text: text, Reason: "not a decimal literal"})
	}
	return decimalValue{rat: r, text: canonicalDecimal(r)}, nil
}

// canonicalDecimal renders r with the fewest fractional digits that are exact.
// r must have a finite decimal expansion
func canonicalDecimal(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	scaled := new(big.Rat).Set(r)
	ten := big.NewRat(10, 1)
	digits := 0
	for !scaled.IsInt() {
		scaled.Mul(scaled, ten)
		digits++
	}
	return r.FloatString(digits)
}

// DecimalSubtype is a finite set of decimals, or all decimals but a finite set
type DecimalSubtype struct {
	enumerable[decimalValue]
}

var _ ProperSubtypeData = DecimalSubtype{}

func (DecimalSubtype) isSubtypeData()       {}
func (DecimalSubtype) isProperSubtypeData() {}

func (d DecimalSubtype) Hash() uint64 {
	return d.hash(uint64(CodeDecimal), hashDecimal)
}

// Values returns the canonical text of the listed values and whether they are the allowed ones
func (d DecimalSubtype) Values() (values []string, allowed bool) {
	values = make([]string, len(d.values))
	for i, v := range d.values {
		values[i] = v.text
	}
	return values, d.allowed
}

func (d DecimalSubtype) String() string {
	values, allowed := d.Values()
	return enumerableString("decimal", allowed, values)
}

// DecimalConst is the singleton type of the decimal literal text
func DecimalConst(text string) (SemType, error) {
	v, err := parseDecimal(text)
	if err != nil {
		return nil, err
	}
	return basicSubtype(CodeDecimal, DecimalSubtype{enumerable[decimalValue]{allowed: true, values: []decimalValue{v}}}), nil
}

func decimalSubtypeFrom(e enumerable[decimalValue]) SubtypeData {
	switch {
	case e.isAll():
		return allOrNothing(true)
	case e.isNothing():
		return allOrNothing(false)
	}
	return DecimalSubtype{e}
}
