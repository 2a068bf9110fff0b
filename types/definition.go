package types

import (
	"slices"

	"github.com/cottand/semtype/semerr"
)

// ListDefinition builds a list type that may refer to itself.
// Call SemType to get the type for use in the members, then Define it exactly once.
// A definition must not be shared between goroutines until it is defined
type ListDefinition struct {
	env     *Env
	rec     atom
	semType SemType
	defined bool
}

func NewListDefinition(env *Env) *ListDefinition {
	return &ListDefinition{env: env}
}

func (d *ListDefinition) SemType() SemType {
	if d.semType == nil {
		d.rec = d.env.recAtom(listAtomKind)
		d.semType = d.env.intern(basicSubtype(CodeList, bddSubtypeData(bddAtom(d.rec))))
	}
	return d.semType
}

func (d *ListDefinition) Define(members []SemType, rest SemType) (SemType, error) {
	if err := missingType("member", members...); err != nil {
		return nil, err
	}
	if rest == nil {
		rest = Never
	}
	return d.define(&ListAtomicType{members: slices.Clone(members), rest: rest})
}

func (d *ListDefinition) define(t *ListAtomicType) (SemType, error) {
	if d.defined {
		return nil, semerr.New(semerr.DefinitionRedefinedError{Category: CodeList.String()})
	}
	d.defined = true
	if d.semType == nil {
		// never referred to, so not recursive
		d.semType = d.env.TupleType(t.members, t.rest)
		return d.semType, nil
	}
	d.env.setRecListAtomType(d.rec, t)
	d.env.defineLogger.Debug("defined recursive type", "atom", d.rec, "type", t)
	return d.semType, nil
}

// MappingDefinition is the mapping counterpart of ListDefinition
type MappingDefinition struct {
	env     *Env
	rec     atom
	semType SemType
	defined bool
}

func NewMappingDefinition(env *Env) *MappingDefinition {
	return &MappingDefinition{env: env}
}

func (d *MappingDefinition) SemType() SemType {
	if d.semType == nil {
		d.rec = d.env.recAtom(mappingAtomKind)
		d.semType = d.env.intern(basicSubtype(CodeMapping, bddSubtypeData(bddAtom(d.rec))))
	}
	return d.semType
}

func (d *MappingDefinition) Define(fields []Field, rest SemType) (SemType, error) {
	t, err := newMappingAtomicType(fields, rest)
	if err != nil {
		return nil, err
	}
	return d.define(t)
}

func (d *MappingDefinition) define(t *MappingAtomicType) (SemType, error) {
	if d.defined {
		return nil, semerr.New(semerr.DefinitionRedefinedError{Category: CodeMapping.String()})
	}
	d.defined = true
	if d.semType == nil {
		semType, err := d.env.RecordType(t.Fields(), t.rest)
		if err != nil {
			return nil, err
		}
		d.semType = semType
		return d.semType, nil
	}
	d.env.setRecMappingAtomType(d.rec, t)
	d.env.defineLogger.Debug("defined recursive type", "atom", d.rec, "type", t)
	return d.semType, nil
}

// FunctionDefinition is the function counterpart of ListDefinition
type FunctionDefinition struct {
	env     *Env
	rec     atom
	semType SemType
	defined bool
}

func NewFunctionDefinition(env *Env) *FunctionDefinition {
	return &FunctionDefinition{env: env}
}

func (d *FunctionDefinition) SemType() SemType {
	if d.semType == nil {
		d.rec = d.env.recAtom(functionAtomKind)
		d.semType = d.env.intern(basicSubtype(CodeFunction, bddSubtypeData(bddAtom(d.rec))))
	}
	return d.semType
}

func (d *FunctionDefinition) Define(params []SemType, restParam SemType, ret SemType) (SemType, error) {
	if err := functionMissingType(params, ret); err != nil {
		return nil, err
	}
	return d.define(&FunctionAtomicType{params: d.env.TupleType(params, restParam), ret: ret})
}

func (d *FunctionDefinition) define(t *FunctionAtomicType) (SemType, error) {
	if d.defined {
		return nil, semerr.New(semerr.DefinitionRedefinedError{Category: CodeFunction.String()})
	}
	d.defined = true
	if d.semType == nil {
		a := d.env.functionAtom(t)
		d.semType = d.env.intern(basicSubtype(CodeFunction, bddSubtypeData(bddAtom(a))))
		return d.semType, nil
	}
	d.env.setRecFunctionAtomType(d.rec, t)
	d.env.defineLogger.Debug("defined recursive type", "atom", d.rec, "type", t)
	return d.semType, nil
}
