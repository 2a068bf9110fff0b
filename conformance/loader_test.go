package conformance

import (
	"testing"

	"github.com/cottand/semtype/semerr"
	"github.com/cottand/semtype/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*types.Env, *Suite) {
	t.Helper()
	env := types.NewEnv(types.EnvSettings{})
	suite, err := Parse(env, "test.yaml", []byte(src))
	require.NoError(t, err)
	return env, suite
}

func TestDeclarationsKeepFileOrder(t *testing.T) {
	_, suite := parse(t, `
types:
  B: int
  A: {list: B}
  C: {union: [A, B]}
`)
	names := make([]string, 0, len(suite.Declarations))
	for _, d := range suite.Declarations {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"B", "A", "C"}, names)
	assert.Equal(t, 3, suite.Declarations[0].Line)
	assert.Equal(t, types.Int, suite.Declarations[0].Type)
}

func TestEmptySuite(t *testing.T) {
	_, suite := parse(t, "")
	assert.Empty(t, suite.Declarations)
	assert.Empty(t, suite.Queries)
}

func TestBuiltinNames(t *testing.T) {
	_, suite := parse(t, `
types:
  A: any
  N: never
  Num: number
  B: byte
  C: char
  S8: int:Signed8
  M: mapping
`)
	expected := map[string]types.SemType{
		"A":   types.Any,
		"N":   types.Never,
		"Num": types.Number,
		"B":   types.Byte,
		"C":   types.StringChar,
		"S8":  types.IntSigned8,
		"M":   types.Mapping,
	}
	for name, want := range expected {
		got, ok := suite.Lookup(name)
		require.True(t, ok, name)
		assert.True(t, types.Equal(want, got), "%s: expected %s, got %s", name, want, got)
	}
}

func TestConstants(t *testing.T) {
	env, suite := parse(t, `
types:
  I: {const: 42}
  F: {const: 2.5}
  Inf: {const: .inf}
  T: {const: true}
  S: {const: hello}
  Quoted: {const: "42"}
  N: {const: null}
  D: {decimal: "0.10"}
`)
	lookup := func(name string) types.SemType {
		ty, ok := suite.Lookup(name)
		require.True(t, ok, name)
		return ty
	}
	assert.True(t, env.IsSameType(types.IntConst(42), lookup("I")))
	assert.True(t, env.IsSameType(types.FloatConst(2.5), lookup("F")))
	assert.True(t, env.IsSubtype(lookup("Inf"), types.Float))
	assert.True(t, env.IsSameType(types.BooleanConst(true), lookup("T")))
	assert.True(t, env.IsSameType(types.StringConst("hello"), lookup("S")))
	assert.True(t, env.IsSameType(types.StringConst("42"), lookup("Quoted")))
	assert.True(t, env.IsSameType(types.Nil, lookup("N")))
	d, err := types.DecimalConst("0.1")
	require.NoError(t, err)
	assert.True(t, env.IsSameType(d, lookup("D")))
}

func TestQueriesParse(t *testing.T) {
	env, suite := parse(t, `
types:
  Small: {range: [0, 9]}
queries:
  - subtype: [Small, int]
    expect: true
  - empty: {intersect: [Small, string]}
    expect: true
  - disjoint: [Small, {const: 3}]
    expect: false
  - same: [Small, Small]
    expect: true
`)
	require.Len(t, suite.Queries, 4)

	q := suite.Queries[0]
	assert.Equal(t, QuerySubtype, q.Kind)
	assert.Equal(t, []string{"Small", "int"}, q.Labels)
	assert.Equal(t, "subtype Small, int", q.String())
	assert.Equal(t, 5, q.Line)
	assert.True(t, q.Expect)

	assert.Equal(t, QueryEmpty, suite.Queries[1].Kind)
	assert.Len(t, suite.Queries[1].Operands, 1)
	assert.Equal(t, types.IntConst(3).String(), suite.Queries[2].Labels[1])

	for _, q := range suite.Queries {
		assert.Equal(t, q.Expect, q.Eval(env), q.String())
	}
}

func TestRecursiveDeclarations(t *testing.T) {
	env, suite := parse(t, `
types:
  Json: {union: [nil, boolean, int, float, decimal, string, JsonList, JsonMap]}
  JsonList: {list: Json}
  JsonMap: {map: Json}
  SelfList: {list: SelfList}
`)
	json, ok := suite.Lookup("Json")
	require.True(t, ok)
	jsonList, ok := suite.Lookup("JsonList")
	require.True(t, ok)

	assert.True(t, env.IsSubtype(jsonList, json))
	assert.True(t, env.IsSubtype(env.ListType(env.ListType(types.Int)), jsonList))
	assert.False(t, env.IsSubtype(env.ListType(types.Function), json))

	selfList, ok := suite.Lookup("SelfList")
	require.True(t, ok)
	assert.False(t, env.IsEmpty(selfList))
	assert.True(t, env.IsSubtype(env.ListType(env.ListType(types.Never)), selfList))
	assert.False(t, env.IsSubtype(env.ListType(types.Int), selfList))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains string
		code     semerr.ErrCode
	}{
		{
			name:     "unknown type",
			src:      "types:\n  A: {list: Foo}\n",
			contains: "test.yaml:2:13: unknown type 'Foo'",
		},
		{
			name:     "cycle through union",
			src:      "types:\n  A: {union: [int, B]}\n  B: {not: A}\n",
			contains: "type 'A' refers to itself",
		},
		{
			name:     "cycle through anonymous list",
			src:      "types:\n  A: {union: [int, {list: A}]}\n",
			contains: "type 'A' refers to itself",
		},
		{
			name:     "builtin redeclared",
			src:      "types:\n  int: string\n",
			contains: "'int' is a builtin type",
		},
		{
			name:     "literal as type",
			src:      "types:\n  A: 5\n",
			contains: "use {const: 5}",
		},
		{
			name:     "unknown constructor",
			src:      "types:\n  A: {set: int}\n",
			contains: "unknown type constructor 'set'",
		},
		{
			name:     "two keys",
			src:      "types:\n  A: {list: int, map: int}\n",
			contains: "exactly one key",
		},
		{
			name:     "empty range",
			src:      "types:\n  A: {range: [10, 1]}\n",
			contains: "test.yaml:2:14",
			code:     semerr.InvalidRange,
		},
		{
			name:     "bad decimal",
			src:      "types:\n  A: {decimal: \"1/2\"}\n",
			contains: "test.yaml:2:",
			code:     semerr.InvalidLiteral,
		},
		{
			name:     "duplicate field",
			src:      "types:\n  A: {record: {fields: {x: int, \"x?\": string}}}\n",
			contains: "field 'x'",
			code:     semerr.DuplicateField,
		},
		{
			name:     "unknown record key",
			src:      "types:\n  A: {record: {field: {x: int}}}\n",
			contains: "unexpected key 'field'",
		},
		{
			name:     "diff arity",
			src:      "types:\n  A: {diff: [int]}\n",
			contains: "expected exactly two types, got 1",
		},
		{
			name:     "unknown section",
			src:      "typez:\n  A: int\n",
			contains: "unknown section 'typez'",
		},
		{
			name:     "query without expect",
			src:      "queries:\n  - subtype: [int, any]\n",
			contains: "boolean 'expect'",
		},
		{
			name:     "query with two questions",
			src:      "queries:\n  - subtype: [int, any]\n    empty: int\n    expect: true\n",
			contains: "exactly one question",
		},
		{
			name:     "query arity",
			src:      "queries:\n  - same: [int]\n    expect: true\n",
			contains: "same takes a list of 2 types",
		},
		{
			name:     "unknown query",
			src:      "queries:\n  - assignable: [int, any]\n    expect: true\n",
			contains: "unknown query 'assignable'",
		},
		{
			name:     "invalid yaml",
			src:      "types: [\n",
			contains: "could not parse test.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := types.NewEnv(types.EnvSettings{})
			_, err := Parse(env, "test.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Equal(t, tt.code, semerr.CodeOf(err))
		})
	}
}
