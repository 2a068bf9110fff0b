package types

import (
	"cmp"
	"fmt"

	"github.com/hashicorp/go-set/v3"
)

// IsEmpty reports whether t has no values
func (cx *Context) IsEmpty(t SemType) bool {
	switch t := t.(type) {
	case UniformTypeBitSet:
		return t == 0
	case *ComplexSemType:
		if t.all != 0 {
			return false
		}
		i := 0
		for code := range t.some.Codes() {
			if !subtypeIsEmpty(cx, code, t.subtypeDataList[i]) {
				return false
			}
			i++
		}
		return true
	}
	panic(fmt.Sprintf("unexpected semtype %T", t))
}

// IsSubtype reports whether every value of t1 is a value of t2
func (cx *Context) IsSubtype(t1, t2 SemType) bool {
	b1, ok1 := t1.(UniformTypeBitSet)
	b2, ok2 := t2.(UniformTypeBitSet)
	if ok1 && ok2 {
		return b1.IsSubset(b2)
	}
	all1, some1 := splitSemType(t1)
	all2, some2 := splitSemType(t2)
	if all1&^(all2|some2) != 0 {
		return false
	}
	if (all1|some1)&^all2 == 0 {
		return true
	}
	// verdicts reached while an emptiness check is in progress may rest on
	// its assumptions, so only top level ones are shared through the env
	topLevel := len(cx.memoStack) == 0
	if topLevel {
		if isSubtype, ok := cx.env.cachedVerdict(t1, t2); ok {
			return isSubtype
		}
	}
	isSubtype := cx.IsEmpty(cx.env.Diff(t1, t2))
	if topLevel {
		cx.env.storeVerdict(t1, t2, isSubtype)
	}
	return isSubtype
}

// IsSameType reports whether t1 and t2 have the same values
func (cx *Context) IsSameType(t1, t2 SemType) bool {
	return cx.IsSubtype(t1, t2) && cx.IsSubtype(t2, t1)
}

// BasicCategoriesOf returns the categories t has values in
func (cx *Context) BasicCategoriesOf(t SemType) *set.TreeSet[BasicTypeCode] {
	categories := set.NewTreeSet[BasicTypeCode](cmp.Compare[BasicTypeCode])
	all, some := splitSemType(t)
	for code := range all.Codes() {
		categories.Insert(code)
	}
	for code := range some.Codes() {
		if !subtypeIsEmpty(cx, code, subtypeDataOf(t, code).(ProperSubtypeData)) {
			categories.Insert(code)
		}
	}
	return categories
}

func (env *Env) IsEmpty(t SemType) bool {
	if b, ok := t.(UniformTypeBitSet); ok {
		return b == 0
	}
	return NewContext(env).IsEmpty(t)
}

func (env *Env) IsSubtype(t1, t2 SemType) bool {
	return NewContext(env).IsSubtype(t1, t2)
}

func (env *Env) IsSameType(t1, t2 SemType) bool {
	return NewContext(env).IsSameType(t1, t2)
}

func (env *Env) BasicCategoriesOf(t SemType) *set.TreeSet[BasicTypeCode] {
	return NewContext(env).BasicCategoriesOf(t)
}
