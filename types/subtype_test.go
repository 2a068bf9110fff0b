package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type subtypeCase struct {
	name     string
	sub      SemType
	super    SemType
	expected bool
}

func runSubtypeCases(t *testing.T, env *Env, testCases []subtypeCase) {
	t.Helper()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, env.IsSubtype(tc.sub, tc.super), "%s <: %s", tc.sub, tc.super)
		})
	}
}

func TestSubtypeReflexiveAndBounded(t *testing.T) {
	env := NewEnv(EnvSettings{})
	for _, s := range sampleTypes(t, env) {
		t.Run(s.name, func(t *testing.T) {
			assert.True(t, env.IsSubtype(s.ty, s.ty))
			assert.True(t, env.IsSubtype(Never, s.ty))
			assert.True(t, env.IsSubtype(s.ty, Any))
			assert.Equal(t, env.IsEmpty(s.ty), env.IsSubtype(s.ty, Never))
		})
	}
}

func TestSubtypeOfUnionAndIntersection(t *testing.T) {
	env := NewEnv(EnvSettings{})
	samples := sampleTypes(t, env)
	for _, a := range samples {
		for _, b := range samples {
			t.Run(a.name+","+b.name, func(t *testing.T) {
				assert.True(t, env.IsSubtype(a.ty, env.Union(a.ty, b.ty)))
				assert.True(t, env.IsSubtype(env.Intersect(a.ty, b.ty), a.ty))
				if env.IsSubtype(a.ty, b.ty) && env.IsSubtype(b.ty, a.ty) {
					assert.True(t, env.IsEmpty(env.Diff(a.ty, b.ty)))
					assert.True(t, env.IsEmpty(env.Diff(b.ty, a.ty)))
				}
			})
		}
	}
}

func TestSemanticButNotStructuralEquality(t *testing.T) {
	env := NewEnv(EnvSettings{})
	emptyTuple := env.TupleType([]SemType{Never}, nil)

	assert.True(t, env.IsEmpty(emptyTuple))
	assert.True(t, env.IsSameType(emptyTuple, Never))
	assert.False(t, Equal(emptyTuple, Never))
	assert.True(t, env.IsSubtype(emptyTuple, Int))
}

func TestRecordAcceptingEveryMappingIsMapping(t *testing.T) {
	env := NewEnv(EnvSettings{})
	full := mustRecord(t, env, Any, Field{Name: "a", Type: Any, Optional: true}, Field{Name: "b", Type: Any, Optional: true})
	assert.Equal(t, Mapping, full)
	assert.True(t, Equal(Mapping, full))

	required := mustRecord(t, env, Any, Field{Name: "a", Type: Any})
	assert.False(t, Equal(Mapping, required))
	assert.False(t, env.IsSameType(Mapping, required))

	def := NewMappingDefinition(env)
	defined, err := def.Define([]Field{{Name: "a", Type: Any, Optional: true}}, Any)
	assert.NoError(t, err)
	assert.Equal(t, Mapping, defined)
}

func TestBasicSubtypes(t *testing.T) {
	env := NewEnv(EnvSettings{})
	runSubtypeCases(t, env, []subtypeCase{
		{"int <: number", Int, Number, true},
		{"number <: int", Number, Int, false},
		{"1 <: int|string", IntConst(1), env.Union(Int, String), true},
		{"int|\"a\" <: int|string", env.Union(Int, StringConst("a")), env.Union(Int, String), true},
		{"int|string <: int|\"a\"", env.Union(Int, String), env.Union(Int, StringConst("a")), false},
		{"2.5d <: decimal", mustDecimal(t, "2.5"), Decimal, true},
		{"2.5d <: float", mustDecimal(t, "2.5"), Float, false},
		{"true <: boolean", BooleanConst(true), Boolean, true},
		{"boolean <: true|false", Boolean, env.Union(BooleanConst(true), BooleanConst(false)), true},
		{"any <: never", Any, Never, false},
	})
}

func TestListSubtypes(t *testing.T) {
	env := NewEnv(EnvSettings{})
	intOrString := env.Union(Int, String)
	tuple := func(rest SemType, members ...SemType) SemType {
		return env.TupleType(members, rest)
	}

	runSubtypeCases(t, env, []subtypeCase{
		{"int[] <: (int|string)[]", env.ListType(Int), env.ListType(intOrString), true},
		{"(int|string)[] <: int[]", env.ListType(intOrString), env.ListType(Int), false},
		{"[int, string] <: (int|string)[]", tuple(nil, Int, String), env.ListType(intOrString), true},
		{"(int|string)[] <: [int, string]", env.ListType(intOrString), tuple(nil, Int, String), false},
		{"int[] <: [int, int...]", env.ListType(Int), tuple(Int, Int), false},
		{"[int, int...] <: int[]", tuple(Int, Int), env.ListType(Int), true},
		{"[] <: int[]", tuple(nil), env.ListType(Int), true},
		{"[int] <: [int, string]", tuple(nil, Int), tuple(nil, Int, String), false},
		{"[int, string] <: [int|string, int|string]", tuple(nil, Int, String), tuple(nil, intOrString, intOrString), true},
		{"[int|string] <: [int]|[string]", tuple(nil, intOrString), env.Union(tuple(nil, Int), tuple(nil, String)), true},
		{"[int|string, int|string] <: [int, int]|[string, string]",
			tuple(nil, intOrString, intOrString),
			env.Union(tuple(nil, Int, Int), tuple(nil, String, String)),
			false},
		{"int[] <: []|[int, int...]", env.ListType(Int), env.Union(tuple(nil), tuple(Int, Int)), true},
		{"int[] <: []|[int]|[int, int, int, int...]", env.ListType(Int), env.UnionOf(tuple(nil), tuple(nil, Int), tuple(Int, Int, Int, Int)), false},
		{"int[] <: []|[int]|[int, int, int...]", env.ListType(Int), env.UnionOf(tuple(nil), tuple(nil, Int), tuple(Int, Int, Int)), true},
		{"list <: int[]", List, env.ListType(Int), false},
		{"int[] <: list", env.ListType(Int), List, true},
		{"[1, 2] <: [int, int]", tuple(nil, IntConst(1), IntConst(2)), tuple(nil, Int, Int), true},
		{"[never...] <: []", env.ListType(Never), tuple(nil), true},
		{"[] <: [never...]", tuple(nil), env.ListType(Never), true},
	})

	assert.True(t, env.IsSameType(env.Intersect(env.ListType(Int), env.ListType(String)), tuple(nil)))
	assert.True(t, env.IsEmpty(env.Intersect(tuple(nil, Int), tuple(nil, Int, Int))))
	assert.False(t, env.IsEmpty(env.Intersect(env.ListType(intOrString), tuple(String, Int))))
	assert.True(t, env.IsEmpty(env.Diff(tuple(nil, Int, String), env.ListType(intOrString))))
}

func TestMappingSubtypes(t *testing.T) {
	env := NewEnv(EnvSettings{})
	intOrString := env.Union(Int, String)
	closedA := mustRecord(t, env, nil, Field{Name: "a", Type: Int})
	openA := mustRecord(t, env, Any, Field{Name: "a", Type: Int})
	optionalA := mustRecord(t, env, nil, Field{Name: "a", Type: Int, Optional: true})

	runSubtypeCases(t, env, []subtypeCase{
		{"{a: int} <: {a: int, ...}", closedA, openA, true},
		{"{a: int, ...} <: {a: int}", openA, closedA, false},
		{"{a: int, b: string} <: {a: int, ...}", mustRecord(t, env, nil, Field{Name: "a", Type: Int}, Field{Name: "b", Type: String}), openA, true},
		{"{a: int} <: {a: int|string}", closedA, mustRecord(t, env, nil, Field{Name: "a", Type: intOrString}), true},
		{"{a: int|string} <: {a: int}", mustRecord(t, env, nil, Field{Name: "a", Type: intOrString}), closedA, false},
		{"{a?: int} <: {a: int}", optionalA, closedA, false},
		{"{a: int} <: {a?: int}", closedA, optionalA, true},
		{"{} <: {a?: int}", mustRecord(t, env, nil), optionalA, true},
		{"map<int> <: map<int|string>", env.MapType(Int), env.MapType(intOrString), true},
		{"{a: int} <: map<int>", closedA, env.MapType(Int), true},
		{"{a: int, ...string} <: map<int>", mustRecord(t, env, String, Field{Name: "a", Type: Int}), env.MapType(Int), false},
		{"{a: int, ...} <: mapping", openA, Mapping, true},
		{"mapping <: {a: int, ...}", Mapping, openA, false},
		{"{a: int|string} <: {a: int}|{a: string}",
			mustRecord(t, env, nil, Field{Name: "a", Type: intOrString}),
			env.Union(closedA, mustRecord(t, env, nil, Field{Name: "a", Type: String})),
			true},
		{"{a?: int} <: {}|{a: int}", optionalA, env.Union(mustRecord(t, env, nil), closedA), true},
		{"map<int> <: {a?: int, ...int}", env.MapType(Int), mustRecord(t, env, Int, Field{Name: "a", Type: Int, Optional: true}), true},
		{"map<int> <: {a: int, ...int}", env.MapType(Int), mustRecord(t, env, Int, Field{Name: "a", Type: Int}), false},
		{"map<int> <: {a?: int}|{b?: int}", env.MapType(Int),
			env.Union(
				mustRecord(t, env, nil, Field{Name: "a", Type: Int, Optional: true}),
				mustRecord(t, env, nil, Field{Name: "b", Type: Int, Optional: true})),
			false},
	})

	assert.True(t, env.IsEmpty(mustRecord(t, env, nil, Field{Name: "a", Type: Never})))
	assert.False(t, env.IsEmpty(mustRecord(t, env, nil, Field{Name: "a", Type: Never, Optional: true})))
	assert.True(t, env.IsEmpty(env.Intersect(closedA, mustRecord(t, env, nil, Field{Name: "a", Type: String}))))
	assert.True(t, env.IsEmpty(env.Intersect(closedA, mustRecord(t, env, nil, Field{Name: "b", Type: Int}))))
	assert.False(t, env.IsEmpty(env.Intersect(openA, mustRecord(t, env, Any, Field{Name: "b", Type: Int}))))
}

func TestFunctionSubtypes(t *testing.T) {
	env := NewEnv(EnvSettings{})
	intOrString := env.Union(Int, String)
	fn := func(ret SemType, params ...SemType) SemType {
		return env.FunctionType(params, nil, ret)
	}
	intToInt := fn(Int, Int)
	stringToString := fn(String, String)

	runSubtypeCases(t, env, []subtypeCase{
		{"covariant return", intToInt, fn(intOrString, Int), true},
		{"contravariant parameter", fn(Int, intOrString), intToInt, true},
		{"wider parameter is not a subtype", intToInt, fn(Int, intOrString), false},
		{"wider return is not a subtype", fn(intOrString, Int), intToInt, false},
		{"function(int) <: function", intToInt, Function, true},
		{"function <: function(int)", Function, intToInt, false},
		{"intersection of arrows", env.Intersect(intToInt, stringToString), fn(intOrString, intOrString), true},
		{"intersection of arrows to one arrow", env.Intersect(intToInt, stringToString), intToInt, true},
		{"one arrow to intersection of arrows", intToInt, env.Intersect(intToInt, stringToString), false},
		{"rest parameter", env.FunctionType([]SemType{Int}, String, Nil), fn(Nil, Int), true},
		{"rest parameter reversed", fn(Nil, Int), env.FunctionType([]SemType{Int}, String, Nil), false},
		{"arity", fn(Nil, Int), fn(Nil, Int, Int), false},
		{"never parameter", fn(Any, Never), fn(Nil, Never), true},
	})
}

func TestBasicCategoriesOf(t *testing.T) {
	env := NewEnv(EnvSettings{})
	ty := env.UnionOf(Int, StringConst("a"), env.TupleType([]SemType{Never}, nil), env.MapType(Int))

	categories := env.BasicCategoriesOf(ty)
	assert.Equal(t, []BasicTypeCode{CodeInt, CodeString, CodeMapping}, categories.Slice())
	assert.Equal(t, Singleton(CodeInt)|Singleton(CodeString)|Singleton(CodeList)|Singleton(CodeMapping), WidenToBasicTypes(ty))
	assert.True(t, env.BasicCategoriesOf(Never).Empty())
}

func TestVerdictCache(t *testing.T) {
	for _, disabled := range []bool{false, true} {
		env := NewEnv(EnvSettings{DisableVerdictCache: disabled})
		sub, super := env.ListType(Int), env.ListType(Number)
		assert.True(t, env.IsSubtype(sub, super))
		assert.True(t, env.IsSubtype(sub, super))
		_, cached := env.cachedVerdict(sub, super)
		assert.Equal(t, !disabled, cached)
	}
}
