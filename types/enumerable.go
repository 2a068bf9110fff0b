package types

import (
	"slices"

	"github.com/xtgo/set"
)

// enumerable is a set of values of one category: when allowed it is exactly
// values, otherwise every value except values. values is sorted and unique
type enumerable[T any] struct {
	allowed bool
	values  []T
}

func (e enumerable[T]) complement() enumerable[T] {
	return enumerable[T]{allowed: !e.allowed, values: e.values}
}

func (e enumerable[T]) isAll() bool     { return !e.allowed && len(e.values) == 0 }
func (e enumerable[T]) isNothing() bool { return e.allowed && len(e.values) == 0 }

func (e enumerable[T]) hash(tag uint64, hashValue func(T) uint64) uint64 {
	words := make([]uint64, 0, len(e.values)+2)
	words = append(words, tag, 0)
	if e.allowed {
		words[1] = 1
	}
	for _, v := range e.values {
		words = append(words, hashValue(v))
	}
	return hashWords(words...)
}

func enumerableEqual[T any](e1, e2 enumerable[T], cmp func(T, T) int) bool {
	return e1.allowed == e2.allowed && slices.EqualFunc(e1.values, e2.values, func(a, b T) bool {
		return cmp(a, b) == 0
	})
}

// sortedValues adapts a slice to the sort.Interface the set primitives work on
type sortedValues[T any] struct {
	values []T
	cmp    func(T, T) int
}

func (s sortedValues[T]) Len() int           { return len(s.values) }
func (s sortedValues[T]) Less(i, j int) bool { return s.cmp(s.values[i], s.values[j]) < 0 }
func (s sortedValues[T]) Swap(i, j int)      { s.values[i], s.values[j] = s.values[j], s.values[i] }

// applySetOp runs op over v1 and v2 without touching either
func applySetOp[T any](op set.Op, v1, v2 []T, cmp func(T, T) int) []T {
	data := make([]T, 0, len(v1)+len(v2))
	data = append(data, v1...)
	data = append(data, v2...)
	size := op(sortedValues[T]{values: data, cmp: cmp}, len(v1))
	return slices.Clip(data[:size])
}

func enumerableUnion[T any](e1, e2 enumerable[T], cmp func(T, T) int) enumerable[T] {
	switch {
	case e1.allowed && e2.allowed:
		return enumerable[T]{allowed: true, values: applySetOp(set.Union, e1.values, e2.values, cmp)}
	case !e1.allowed && !e2.allowed:
		return enumerable[T]{allowed: false, values: applySetOp(set.Inter, e1.values, e2.values, cmp)}
	case e1.allowed:
		return enumerable[T]{allowed: false, values: applySetOp(set.Diff, e2.values, e1.values, cmp)}
	default:
		return enumerable[T]{allowed: false, values: applySetOp(set.Diff, e1.values, e2.values, cmp)}
	}
}

func enumerableIntersect[T any](e1, e2 enumerable[T], cmp func(T, T) int) enumerable[T] {
	switch {
	case e1.allowed && e2.allowed:
		return enumerable[T]{allowed: true, values: applySetOp(set.Inter, e1.values, e2.values, cmp)}
	case !e1.allowed && !e2.allowed:
		return enumerable[T]{allowed: false, values: applySetOp(set.Union, e1.values, e2.values, cmp)}
	case e1.allowed:
		return enumerable[T]{allowed: true, values: applySetOp(set.Diff, e1.values, e2.values, cmp)}
	default:
		return enumerable[T]{allowed: true, values: applySetOp(set.Diff, e2.values, e1.values, cmp)}
	}
}

func enumerableDiff[T any](e1, e2 enumerable[T], cmp func(T, T) int) enumerable[T] {
	return enumerableIntersect(e1, e2.complement(), cmp)
}
