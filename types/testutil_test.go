package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, env *Env, rest SemType, fields ...Field) SemType {
	t.Helper()
	record, err := env.RecordType(fields, rest)
	require.NoError(t, err)
	return record
}

func mustDecimal(t *testing.T, text string) SemType {
	t.Helper()
	d, err := DecimalConst(text)
	require.NoError(t, err)
	return d
}

type namedType struct {
	name string
	ty   SemType
}

// sampleTypes covers every kind of refinement
func sampleTypes(t *testing.T, env *Env) []namedType {
	return []namedType{
		{"never", Never},
		{"any", Any},
		{"int", Int},
		{"1", IntConst(1)},
		{"1..10", mustIntRange(1, 10)},
		{"int|string", env.Union(Int, String)},
		{"\"a\"", StringConst("a")},
		{"char", StringChar},
		{"1.5f", FloatConst(1.5)},
		{"2.5d", mustDecimal(t, "2.5")},
		{"true", BooleanConst(true)},
		{"nil", Nil},
		{"int[]", env.ListType(Int)},
		{"[int, string]", env.TupleType([]SemType{Int, String}, nil)},
		{"{a: int}", mustRecord(t, env, nil, Field{Name: "a", Type: Int})},
		{"map<string>", env.MapType(String)},
		{"function(int) returns string", env.FunctionType([]SemType{Int}, nil, String)},
	}
}
