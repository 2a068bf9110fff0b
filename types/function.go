package types

import "github.com/cottand/semtype/semerr"

// FunctionAtomicType is the set of functions that, given arguments in params,
// return a value in ret. params is a list type
type FunctionAtomicType struct {
	params SemType
	ret    SemType
}

func (t *FunctionAtomicType) Params() SemType { return t.params }
func (t *FunctionAtomicType) Return() SemType { return t.ret }

func (t *FunctionAtomicType) hash() uint64 {
	return hashWords(uint64(functionAtomKind), t.params.Hash(), t.ret.Hash())
}

func (t *FunctionAtomicType) equal(other *FunctionAtomicType) bool {
	return Equal(t.params, other.params) && Equal(t.ret, other.ret)
}

func (t *FunctionAtomicType) String() string {
	return "function(" + t.params.String() + ") returns " + t.ret.String()
}

// FunctionType is the type of functions taking params followed by any number
// of restParam arguments and returning ret. A nil restParam means no rest
// parameter. Like TupleType, it panics when a type is nil
func (env *Env) FunctionType(params []SemType, restParam SemType, ret SemType) SemType {
	if err := functionMissingType(params, ret); err != nil {
		panic(err)
	}
	a := env.functionAtom(&FunctionAtomicType{params: env.TupleType(params, restParam), ret: ret})
	return env.intern(basicSubtype(CodeFunction, bddSubtypeData(bddAtom(a))))
}

func functionBddIsEmpty(cx *Context, b bdd) bool {
	return bddEvery(cx, b, nil, nil, functionFormulaIsEmpty)
}

func functionFormulaIsEmpty(cx *Context, pos, neg *conjunction) bool {
	return functionPathIsEmpty(cx, functionUnionParams(cx, pos), pos, neg)
}

func functionUnionParams(cx *Context, pos *conjunction) SemType {
	params := Never
	for p := pos; p != nil; p = p.next {
		params = cx.env.Union(params, cx.functionAtomType(p.atom).params)
	}
	return params
}

// functionPathIsEmpty reports whether some negated arrow in neg is implied by
// the arrows in pos
func functionPathIsEmpty(cx *Context, params SemType, pos, neg *conjunction) bool {
	for n := neg; n != nil; n = n.next {
		t := cx.functionAtomType(n.atom)
		if cx.IsSubtype(t.params, params) && functionTheta(cx, t.params, cx.env.Complement(t.ret), pos) {
			return true
		}
	}
	return false
}

// functionTheta holds when every function in the arrows of pos, applied to an
// argument in t0, cannot return a value in t1
func functionTheta(cx *Context, t0, t1 SemType, pos *conjunction) bool {
	if pos == nil {
		return cx.IsEmpty(t0) || cx.IsEmpty(t1)
	}
	s := cx.functionAtomType(pos.atom)
	return (cx.IsSubtype(t0, s.params) || functionTheta(cx, cx.env.Diff(t0, s.params), t1, pos.next)) &&
		(cx.IsSubtype(t1, cx.env.Complement(s.ret)) || functionTheta(cx, t0, cx.env.Intersect(t1, s.ret), pos.next))
}

func functionMissingType(params []SemType, ret SemType) error {
	if ret == nil {
		return semerr.New(semerr.MissingTypeError{What: "return"})
	}
	return missingType("parameter", params...)
}
