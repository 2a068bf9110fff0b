package types

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// StringSubtype splits strings into single character strings and the rest,
// with an enumerable set for each half
type StringSubtype struct {
	char    enumerable[string]
	nonChar enumerable[string]
}

var _ ProperSubtypeData = StringSubtype{}

func (StringSubtype) isSubtypeData()       {}
func (StringSubtype) isProperSubtypeData() {}

func (s StringSubtype) Hash() uint64 {
	return hashWords(s.char.hash(uint64(CodeString), hashString), s.nonChar.hash(uint64(CodeString), hashString))
}

func (s StringSubtype) String() string {
	var parts []string
	switch {
	case s.char.isAll():
		parts = append(parts, "string:Char")
	case !s.char.isNothing():
		parts = append(parts, enumerableString("char", s.char.allowed, quoteAll(s.char.values)))
	}
	switch {
	case s.nonChar.isAll():
		parts = append(parts, "string:NonChar")
	case !s.nonChar.isNothing():
		parts = append(parts, enumerableString("string", s.nonChar.allowed, quoteAll(s.nonChar.values)))
	}
	return strings.Join(parts, "|")
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return quoted
}

func compareString(a, b string) int {
	return strings.Compare(a, b)
}

var (
	allStrings  = enumerable[string]{allowed: false}
	noneStrings = enumerable[string]{allowed: true}
)

// StringConst is the singleton type of s
func StringConst(s string) SemType {
	value := enumerable[string]{allowed: true, values: []string{s}}
	if utf8.RuneCountInString(s) == 1 {
		return basicSubtype(CodeString, StringSubtype{char: value, nonChar: noneStrings})
	}
	return basicSubtype(CodeString, StringSubtype{char: noneStrings, nonChar: value})
}

// StringChar is the type of all single character strings
var StringChar = basicSubtype(CodeString, StringSubtype{char: allStrings, nonChar: noneStrings})

func stringSubtypeFrom(char, nonChar enumerable[string]) SubtypeData {
	switch {
	case char.isAll() && nonChar.isAll():
		return allOrNothing(true)
	case char.isNothing() && nonChar.isNothing():
		return allOrNothing(false)
	}
	return StringSubtype{char: char, nonChar: nonChar}
}

func stringSubtypeUnion(s1, s2 StringSubtype) SubtypeData {
	return stringSubtypeFrom(
		enumerableUnion(s1.char, s2.char, compareString),
		enumerableUnion(s1.nonChar, s2.nonChar, compareString),
	)
}

func stringSubtypeIntersect(s1, s2 StringSubtype) SubtypeData {
	return stringSubtypeFrom(
		enumerableIntersect(s1.char, s2.char, compareString),
		enumerableIntersect(s1.nonChar, s2.nonChar, compareString),
	)
}

func stringSubtypeDiff(s1, s2 StringSubtype) SubtypeData {
	return stringSubtypeFrom(
		enumerableDiff(s1.char, s2.char, compareString),
		enumerableDiff(s1.nonChar, s2.nonChar, compareString),
	)
}
