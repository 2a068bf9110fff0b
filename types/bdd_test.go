package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBddAlgebra(t *testing.T) {
	a := bddAtom(atom{kind: listAtomKind, index: 0})
	b := bddAtom(atom{kind: listAtomKind, index: 1})
	r := bddAtom(atom{kind: listAtomKind, rec: true, index: 0})

	assert.Equal(t, bddAll, bddUnion(a, bddComplement(a)))
	assert.Equal(t, bddNothing, bddIntersect(a, bddComplement(a)))
	assert.Equal(t, bddNothing, bddDiff(a, a))
	assert.True(t, bddEqual(a, bddComplement(bddComplement(a))))
	assert.True(t, bddEqual(bddUnion(a, b), bddUnion(b, a)))
	assert.True(t, bddEqual(bddIntersect(a, b), bddIntersect(b, a)))
	assert.True(t, bddEqual(a, bddUnion(a, bddIntersect(a, b))))
	assert.True(t, bddEqual(bddDiff(a, b), bddIntersect(a, bddComplement(b))))

	// rec atoms sort first
	assert.Equal(t, r.(*bddNode).atom, bddUnion(a, r).(*bddNode).atom)
	assert.Equal(t, "rL0 | L0", bddString(bddUnion(a, r)))
	assert.Equal(t, "L0 & !L1", bddString(bddDiff(a, b)))
}

func TestBddEvery(t *testing.T) {
	a := atom{kind: mappingAtomKind, index: 0}
	b := atom{kind: mappingAtomKind, index: 1}
	diff := bddDiff(bddAtom(a), bddAtom(b))

	type path struct{ pos, neg []atom }
	var paths []path
	collect := func(cx *Context, pos, neg *conjunction) bool {
		var p path
		for c := pos; c != nil; c = c.next {
			p.pos = append(p.pos, c.atom)
		}
		for c := neg; c != nil; c = c.next {
			p.neg = append(p.neg, c.atom)
		}
		paths = append(paths, p)
		return true
	}
	assert.True(t, bddEvery(nil, diff, nil, nil, collect))
	assert.Equal(t, []path{{pos: []atom{a}, neg: []atom{b}}}, paths)

	assert.True(t, bddEvery(nil, bddNothing, nil, nil, func(*Context, *conjunction, *conjunction) bool {
		return false
	}))
}

func TestAtomsRefineTheirCategory(t *testing.T) {
	env := NewEnv(EnvSettings{})
	record, err := env.RecordType([]Field{{Name: "a", Type: Int}}, nil)
	assert.NoError(t, err)
	testCases := []struct {
		code BasicTypeCode
		ty   SemType
	}{
		{CodeList, env.TupleType([]SemType{Int}, nil)},
		{CodeMapping, record},
		{CodeFunction, env.FunctionType([]SemType{Int}, nil, Int)},
		{CodeList, NewListDefinition(env).SemType()},
		{CodeFunction, NewFunctionDefinition(env).SemType()},
	}
	for _, tc := range testCases {
		c, ok := tc.ty.(*ComplexSemType)
		if assert.True(t, ok, "%s", tc.ty) {
			d, ok := c.SubtypeData(tc.code)
			assert.True(t, ok)
			assert.IsType(t, &bddNode{}, d)
		}
	}
}
