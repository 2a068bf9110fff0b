package types

import (
	"github.com/cottand/semtype/semerr"
)

// placeholder is a named recursive type whose body is given later
type placeholder struct {
	id        string
	code      BasicTypeCode
	semType   SemType
	list      *ListDefinition
	mapping   *MappingDefinition
	function  *FunctionDefinition
	finalized bool
}

// DeclarePlaceholder returns a type standing for the not yet known type id,
// which must be a list, mapping or function type. The returned type may be
// used to build the body of id, but must not be queried until
// FinalizePlaceholder(id, body) is called
func (env *Env) DeclarePlaceholder(id string, code BasicTypeCode) (SemType, error) {
	env.placeholderMu.Lock()
	defer env.placeholderMu.Unlock()
	if _, ok := env.placeholders[id]; ok {
		return nil, semerr.New(semerr.DuplicatePlaceholderError{ID: id})
	}
	p := &placeholder{id: id, code: code}
	switch code {
	case CodeList:
		p.list = NewListDefinition(env)
		p.semType = p.list.SemType()
	case CodeMapping:
		p.mapping = NewMappingDefinition(env)
		p.semType = p.mapping.SemType()
	case CodeFunction:
		p.function = NewFunctionDefinition(env)
		p.semType = p.function.SemType()
	default:
		return nil, semerr.New(semerr.PlaceholderCategoryError{ID: id, Category: code.String()})
	}
	env.placeholders[id] = p
	env.defineLogger.Debug("declared placeholder", "id", id, "category", code)
	return p.semType, nil
}

// FinalizePlaceholder ties id to body. body must be a single shape of the
// category id was declared with, as built by TupleType, RecordType or
// FunctionType, or the whole category
func (env *Env) FinalizePlaceholder(id string, body SemType) error {
	env.placeholderMu.Lock()
	defer env.placeholderMu.Unlock()
	p, ok := env.placeholders[id]
	if !ok {
		return semerr.New(semerr.UnknownPlaceholderError{ID: id})
	}
	if p.finalized {
		return semerr.New(semerr.PlaceholderFinalizedError{ID: id})
	}
	if body == nil {
		return semerr.New(semerr.MissingTypeError{What: "body of '" + id + "'"})
	}
	a, isAtom, isTop := singleShape(body, p.code)
	if !isAtom && !isTop {
		return semerr.New(semerr.InvalidPlaceholderBodyError{ID: id, Category: p.code.String(), Body: body.String()})
	}
	var err error
	switch p.code {
	case CodeList:
		t := &ListAtomicType{rest: Any}
		if isAtom {
			t = env.listAtomType(a)
		}
		_, err = p.list.define(t)
	case CodeMapping:
		t, _ := newMappingAtomicType(nil, Any)
		if isAtom {
			t = env.mappingAtomType(a)
		}
		_, err = p.mapping.define(t)
	case CodeFunction:
		t := &FunctionAtomicType{params: Never, ret: Any}
		if isAtom {
			t = env.functionAtomType(a)
		}
		_, err = p.function.define(t)
	}
	if err != nil {
		return err
	}
	p.finalized = true
	env.defineLogger.Debug("finalized placeholder", "id", id, "type", body)
	return nil
}

// singleShape finds the one atom body consists of. isTop is set when body is
// the uniform type of code instead
func singleShape(body SemType, code BasicTypeCode) (a atom, isAtom, isTop bool) {
	if body == Uniform(code) {
		return atom{}, false, true
	}
	c, ok := body.(*ComplexSemType)
	if !ok || c.all != 0 || c.some != Singleton(code) {
		return atom{}, false, false
	}
	n, ok := c.subtypeDataList[0].(*bddNode)
	if !ok || n.atom.rec || n.left != bddAll || n.middle != bddNothing || n.right != bddNothing {
		return atom{}, false, false
	}
	return n.atom, true, false
}
