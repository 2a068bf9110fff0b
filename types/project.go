package types

import "fmt"

// ListMemberType is the type of the member at index of the lists in t.
// A negative index stands for any index.
// The result may be larger than the exact projection when t excludes some shapes
func (env *Env) ListMemberType(t SemType, index int) SemType {
	switch d := subtypeDataOf(t, CodeList).(type) {
	case allOrNothing:
		if d {
			return Any
		}
		return Never
	case *bddNode:
		return bddListMemberType(env, d, index, Any)
	}
	panic(fmt.Sprintf("unexpected list refinement in %s", t))
}

func bddListMemberType(env *Env, b bdd, index int, accum SemType) SemType {
	switch b := b.(type) {
	case bddAllOrNothing:
		if b {
			return accum
		}
		return Never
	case *bddNode:
		member := listAtomicMemberType(env, env.listAtomType(b.atom), index)
		return env.UnionOf(
			bddListMemberType(env, b.left, index, env.Intersect(member, accum)),
			bddListMemberType(env, b.middle, index, accum),
			bddListMemberType(env, b.right, index, accum),
		)
	}
	panic(fmt.Sprintf("unexpected bdd %T", b))
}

func listAtomicMemberType(env *Env, t *ListAtomicType, index int) SemType {
	if index >= 0 {
		return t.memberAt(index)
	}
	return env.UnionOf(append([]SemType{t.rest}, t.members...)...)
}

// MappingFieldType is the type of the value at key name of the mappings in t,
// for those that have that key.
// The result may be larger than the exact projection when t excludes some shapes
func (env *Env) MappingFieldType(t SemType, name string) SemType {
	switch d := subtypeDataOf(t, CodeMapping).(type) {
	case allOrNothing:
		if d {
			return Any
		}
		return Never
	case *bddNode:
		return bddMappingFieldType(env, d, name, Any)
	}
	panic(fmt.Sprintf("unexpected mapping refinement in %s", t))
}

func bddMappingFieldType(env *Env, b bdd, name string, accum SemType) SemType {
	switch b := b.(type) {
	case bddAllOrNothing:
		if b {
			return accum
		}
		return Never
	case *bddNode:
		field := env.mappingAtomType(b.atom).fieldAt(name).ty
		return env.UnionOf(
			bddMappingFieldType(env, b.left, name, env.Intersect(field, accum)),
			bddMappingFieldType(env, b.middle, name, accum),
			bddMappingFieldType(env, b.right, name, accum),
		)
	}
	panic(fmt.Sprintf("unexpected bdd %T", b))
}
