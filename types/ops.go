package types

import "fmt"

// Union is the type of the values in t1 or t2
func (env *Env) Union(t1, t2 SemType) SemType {
	b1, ok1 := t1.(UniformTypeBitSet)
	b2, ok2 := t2.(UniformTypeBitSet)
	if ok1 && ok2 {
		return b1 | b2
	}
	all1, some1 := splitSemType(t1)
	all2, some2 := splitSemType(t2)
	all := all1 | all2
	some := (some1 | some2) &^ all
	var subtypes []codeSubtype
	for code := range some.Codes() {
		d1, d2 := subtypeDataOf(t1, code), subtypeDataOf(t2, code)
		var d SubtypeData
		switch {
		case d1 == allOrNothing(false):
			d = d2
		case d2 == allOrNothing(false):
			d = d1
		default:
			d = subtypeUnion(d1.(ProperSubtypeData), d2.(ProperSubtypeData))
		}
		subtypes, all = addSubtype(subtypes, all, code, d)
	}
	return env.intern(newComplexSemType(all, subtypes))
}

// Intersect is the type of the values in both t1 and t2
func (env *Env) Intersect(t1, t2 SemType) SemType {
	b1, ok1 := t1.(UniformTypeBitSet)
	b2, ok2 := t2.(UniformTypeBitSet)
	if ok1 && ok2 {
		return b1 & b2
	}
	all1, some1 := splitSemType(t1)
	all2, some2 := splitSemType(t2)
	all := all1 & all2
	some := (some1 | all1) & (some2 | all2) &^ all
	var subtypes []codeSubtype
	for code := range some.Codes() {
		d1, d2 := subtypeDataOf(t1, code), subtypeDataOf(t2, code)
		var d SubtypeData
		switch {
		case d1 == allOrNothing(true):
			d = d2
		case d2 == allOrNothing(true):
			d = d1
		default:
			d = subtypeIntersect(d1.(ProperSubtypeData), d2.(ProperSubtypeData))
		}
		subtypes, all = addSubtype(subtypes, all, code, d)
	}
	return env.intern(newComplexSemType(all, subtypes))
}

// Diff is the type of the values in t1 but not in t2
func (env *Env) Diff(t1, t2 SemType) SemType {
	b1, ok1 := t1.(UniformTypeBitSet)
	b2, ok2 := t2.(UniformTypeBitSet)
	if ok1 && ok2 {
		return b1 &^ b2
	}
	all1, some1 := splitSemType(t1)
	all2, some2 := splitSemType(t2)
	all := all1 &^ (all2 | some2)
	some := (all1 | some1) &^ all2 &^ all
	var subtypes []codeSubtype
	for code := range some.Codes() {
		d1, d2 := subtypeDataOf(t1, code), subtypeDataOf(t2, code)
		var d SubtypeData
		switch {
		case d2 == allOrNothing(false):
			d = d1
		case d1 == allOrNothing(true):
			d = subtypeComplement(d2.(ProperSubtypeData))
		default:
			d = subtypeDiff(d1.(ProperSubtypeData), d2.(ProperSubtypeData))
		}
		subtypes, all = addSubtype(subtypes, all, code, d)
	}
	return env.intern(newComplexSemType(all, subtypes))
}

// Complement is the type of the values not in t
func (env *Env) Complement(t SemType) SemType {
	return env.Diff(Any, t)
}

// UnionOf folds Union over ts, the union of nothing is Never
func (env *Env) UnionOf(ts ...SemType) SemType {
	result := Never
	for _, t := range ts {
		result = env.Union(result, t)
	}
	return result
}

// IntersectOf folds Intersect over ts, the intersection of nothing is Any
func (env *Env) IntersectOf(ts ...SemType) SemType {
	result := Any
	for _, t := range ts {
		result = env.Intersect(result, t)
	}
	return result
}

// addSubtype records d as the part of a result in code, moving it to all when it is the whole category
func addSubtype(subtypes []codeSubtype, all UniformTypeBitSet, code BasicTypeCode, d SubtypeData) ([]codeSubtype, UniformTypeBitSet) {
	switch d := d.(type) {
	case allOrNothing:
		if d {
			all |= Singleton(code)
		}
	case ProperSubtypeData:
		subtypes = append(subtypes, codeSubtype{code, d})
	default:
		panic(fmt.Sprintf("unexpected subtype data %T", d))
	}
	return subtypes, all
}
