package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/semtype/semerr"
)

func TestRangeListUnion(t *testing.T) {
	testCases := []struct {
		name     string
		v1, v2   []Range
		expected []Range
	}{{
		name:     "overlapping",
		v1:       []Range{{1, 10}},
		v2:       []Range{{5, 15}},
		expected: []Range{{1, 15}},
	}, {
		name:     "adjacent",
		v1:       []Range{{1, 4}},
		v2:       []Range{{5, 8}},
		expected: []Range{{1, 8}},
	}, {
		name:     "disjoint",
		v1:       []Range{{1, 2}, {10, 12}},
		v2:       []Range{{5, 6}},
		expected: []Range{{1, 2}, {5, 6}, {10, 12}},
	}, {
		name:     "unbounded",
		v1:       []Range{{math.MinInt64, 0}},
		v2:       []Range{{1, math.MaxInt64}},
		expected: []Range{{math.MinInt64, math.MaxInt64}},
	}, {
		name:     "contained",
		v1:       []Range{{1, 100}},
		v2:       []Range{{3, 4}, {50, 60}},
		expected: []Range{{1, 100}},
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rangeListUnion(tc.v1, tc.v2))
			assert.Equal(t, tc.expected, rangeListUnion(tc.v2, tc.v1))
		})
	}
}

func TestRangeListIntersect(t *testing.T) {
	assert.Equal(t, []Range{{5, 10}}, rangeListIntersect([]Range{{1, 10}}, []Range{{5, 15}}))
	assert.Equal(t, []Range{{2, 3}, {7, 8}}, rangeListIntersect([]Range{{0, 3}, {7, 20}}, []Range{{2, 8}}))
	assert.Empty(t, rangeListIntersect([]Range{{0, 3}}, []Range{{4, 8}}))
}

func TestRangeListComplement(t *testing.T) {
	assert.Equal(t,
		[]Range{{math.MinInt64, 0}, {11, math.MaxInt64}},
		rangeListComplement([]Range{{1, 10}}))
	assert.Equal(t,
		[]Range{{1, math.MaxInt64}},
		rangeListComplement([]Range{{math.MinInt64, 0}}))
	assert.Equal(t,
		[]Range{{math.MinInt64, -1}},
		rangeListComplement([]Range{{0, math.MaxInt64}}))
	assert.Empty(t, rangeListComplement([]Range{{math.MinInt64, math.MaxInt64}}))
	assert.Equal(t, []Range{{math.MinInt64, math.MaxInt64}}, rangeListComplement(nil))
}

func TestIntRangeAlgebra(t *testing.T) {
	env := NewEnv(EnvSettings{})
	oneToTen := mustIntRange(1, 10)
	fiveToFifteen := mustIntRange(5, 15)

	assert.True(t, Equal(mustIntRange(1, 15), env.Union(oneToTen, fiveToFifteen)))
	assert.True(t, Equal(mustIntRange(5, 10), env.Intersect(oneToTen, fiveToFifteen)))
	assert.True(t, env.IsSubtype(mustIntRange(5, 10), oneToTen))
	assert.True(t, env.IsSubtype(mustIntRange(5, 10), fiveToFifteen))
	assert.False(t, env.IsSubtype(oneToTen, fiveToFifteen))
	assert.True(t, env.IsSubtype(IntConst(3), oneToTen))
	assert.True(t, env.IsSubtype(Byte, IntSigned16))
	assert.False(t, env.IsSubtype(IntSigned8, Byte))
	assert.True(t, env.IsSubtype(IntUnsigned32, Int))

	all := env.Union(mustIntRange(math.MinInt64, 0), mustIntRange(1, math.MaxInt64))
	assert.Equal(t, Int, all)
	assert.Equal(t, Never, env.Diff(oneToTen, oneToTen))
}

func TestIntRangeErrors(t *testing.T) {
	_, err := IntRange(3, 1)
	require.Error(t, err)
	assert.Equal(t, semerr.InvalidRange, semerr.CodeOf(err))

	full, err := IntRange(math.MinInt64, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, Int, full)
}

func TestSingleIntValue(t *testing.T) {
	env := NewEnv(EnvSettings{})

	v, ok := SingleIntValue(IntConst(42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)

	_, ok = SingleIntValue(mustIntRange(1, 2))
	assert.False(t, ok)
	_, ok = SingleIntValue(env.Union(IntConst(1), StringConst("a")))
	assert.False(t, ok)
	_, ok = SingleIntValue(Int)
	assert.False(t, ok)
}

func TestIntSubtypeString(t *testing.T) {
	env := NewEnv(EnvSettings{})
	ty := env.Union(env.Union(IntConst(-3), mustIntRange(10, 20)), mustIntRange(100, math.MaxInt64))
	assert.Equal(t, "int[-3,10..20,100..]", ty.String())
}
