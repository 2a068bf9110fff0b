package types

import (
	"slices"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/hashicorp/go-set/v3"

	"github.com/cottand/semtype/semerr"
)

// Field is a named field of a record type. An optional field may be absent
type Field struct {
	Name     string
	Type     SemType
	Optional bool
}

type mappingField struct {
	ty       SemType
	optional bool
}

var fieldNameComparer = immutable.NewComparer("")

// MappingAtomicType is the set of mappings that have every required field,
// whose fields have values in their field types, and whose other keys have
// values in rest. A Never rest closes the record
type MappingAtomicType struct {
	fields *immutable.SortedMap[string, mappingField]
	rest   SemType
}

// Fields returns the fields sorted by name
func (t *MappingAtomicType) Fields() []Field {
	fields := make([]Field, 0, t.fields.Len())
	itr := t.fields.Iterator()
	for !itr.Done() {
		name, f, _ := itr.Next()
		fields = append(fields, Field{Name: name, Type: f.ty, Optional: f.optional})
	}
	return fields
}

func (t *MappingAtomicType) Rest() SemType { return t.rest }

// fieldAt describes the values at key name, absent keys fall back to rest
func (t *MappingAtomicType) fieldAt(name string) mappingField {
	if f, ok := t.fields.Get(name); ok {
		return f
	}
	return mappingField{ty: t.rest, optional: true}
}

// acceptsEveryMapping holds when no key is required and every key takes Any
func (t *MappingAtomicType) acceptsEveryMapping() bool {
	if t.rest != Any {
		return false
	}
	itr := t.fields.Iterator()
	for !itr.Done() {
		_, f, _ := itr.Next()
		if !f.optional || f.ty != Any {
			return false
		}
	}
	return true
}

func (t *MappingAtomicType) hash() uint64 {
	words := make([]uint64, 0, 3*t.fields.Len()+2)
	words = append(words, uint64(mappingAtomKind))
	for _, f := range t.Fields() {
		optional := uint64(0)
		if f.Optional {
			optional = 1
		}
		words = append(words, hashString(f.Name), f.Type.Hash(), optional)
	}
	return hashWords(append(words, t.rest.Hash())...)
}

func (t *MappingAtomicType) equal(other *MappingAtomicType) bool {
	return Equal(t.rest, other.rest) && slices.EqualFunc(t.Fields(), other.Fields(), func(f1, f2 Field) bool {
		return f1.Name == f2.Name && f1.Optional == f2.Optional && Equal(f1.Type, f2.Type)
	})
}

func (t *MappingAtomicType) String() string {
	var parts []string
	for _, f := range t.Fields() {
		name := f.Name
		if f.Optional {
			name += "?"
		}
		parts = append(parts, name+": "+f.Type.String())
	}
	if t.rest != Never {
		parts = append(parts, "..."+t.rest.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func newMappingAtomicType(fields []Field, rest SemType) (*MappingAtomicType, error) {
	if rest == nil {
		rest = Never
	}
	builder := immutable.NewSortedMapBuilder[string, mappingField](fieldNameComparer)
	for _, f := range fields {
		if f.Type == nil {
			return nil, semerr.New(semerr.MissingTypeError{What: "field '" + f.Name + "'"})
		}
		if _, ok := builder.Get(f.Name); ok {
			return nil, semerr.New(semerr.DuplicateFieldError{Name: f.Name})
		}
		builder.Set(f.Name, mappingField{ty: f.Type, optional: f.Optional})
	}
	return &MappingAtomicType{fields: builder.Map(), rest: rest}, nil
}

// RecordType is the type of mappings with the given fields whose other keys
// have values in rest. A nil rest is Never, which makes a closed record
func (env *Env) RecordType(fields []Field, rest SemType) (SemType, error) {
	t, err := newMappingAtomicType(fields, rest)
	if err != nil {
		return nil, err
	}
	if t.acceptsEveryMapping() {
		return Mapping, nil
	}
	a := env.mappingAtom(t)
	return env.intern(basicSubtype(CodeMapping, bddSubtypeData(bddAtom(a)))), nil
}

// MapType is the type of mappings whose values are all in value
func (env *Env) MapType(value SemType) SemType {
	t, err := env.RecordType(nil, value)
	if err != nil {
		panic(err)
	}
	return t
}

func mappingBddIsEmpty(cx *Context, b bdd) bool {
	return bddEvery(cx, b, nil, nil, mappingFormulaIsEmpty)
}

// mappingShape is the intersection of some mapping atoms
type mappingShape struct {
	fields map[string]mappingField
	rest   SemType
}

func newMappingShape(t *MappingAtomicType) mappingShape {
	s := mappingShape{fields: make(map[string]mappingField, t.fields.Len()), rest: t.rest}
	itr := t.fields.Iterator()
	for !itr.Done() {
		name, f, _ := itr.Next()
		s.fields[name] = f
	}
	return s
}

func (s mappingShape) fieldAt(name string) mappingField {
	if f, ok := s.fields[name]; ok {
		return f
	}
	return mappingField{ty: s.rest, optional: true}
}

// intersect returns false when some required field cannot have a value
func (s mappingShape) intersect(cx *Context, other mappingShape) (mappingShape, bool) {
	result := mappingShape{fields: make(map[string]mappingField, len(s.fields)+len(other.fields)), rest: cx.env.Intersect(s.rest, other.rest)}
	names := set.New[string](len(s.fields) + len(other.fields))
	for name := range s.fields {
		names.Insert(name)
	}
	for name := range other.fields {
		names.Insert(name)
	}
	for name := range names.Items() {
		f1, f2 := s.fieldAt(name), other.fieldAt(name)
		f := mappingField{ty: cx.env.Intersect(f1.ty, f2.ty), optional: f1.optional && f2.optional}
		if !f.optional && cx.IsEmpty(f.ty) {
			return mappingShape{}, false
		}
		result.fields[name] = f
	}
	return result, true
}

// mappingSlot is one key position of a candidate mapping: either a named key
// or a fresh key that no atom names
type mappingSlot struct {
	name  string
	fresh bool
	mappingField
}

func mappingFormulaIsEmpty(cx *Context, pos, neg *conjunction) bool {
	shape := mappingShape{rest: Any}
	if pos != nil {
		shape = newMappingShape(cx.mappingAtomType(pos.atom))
		for p := pos.next; p != nil; p = p.next {
			var ok bool
			shape, ok = shape.intersect(cx, newMappingShape(cx.mappingAtomType(p.atom)))
			if !ok {
				return true
			}
		}
		for _, f := range shape.fields {
			if !f.optional && cx.IsEmpty(f.ty) {
				return true
			}
		}
	}
	names := set.NewTreeSet[string](compareString)
	for name := range shape.fields {
		names.Insert(name)
	}
	negCount := 0
	for n := neg; n != nil; n = n.next {
		negCount++
		for _, f := range cx.mappingAtomType(n.atom).Fields() {
			names.Insert(f.Name)
		}
	}
	slots := make([]mappingSlot, 0, names.Size()+negCount)
	for name := range names.Items() {
		slots = append(slots, mappingSlot{name: name, mappingField: shape.fieldAt(name)})
	}
	// a mapping escapes each negated atom through at most one key, so
	// one fresh key per negated atom stands for every unnamed key
	if !cx.IsEmpty(shape.rest) {
		for range negCount {
			slots = append(slots, mappingSlot{fresh: true, mappingField: mappingField{ty: shape.rest, optional: true}})
		}
	}
	return !mappingSlotsInhabited(cx, slots, neg)
}

// mappingSlotsInhabited looks for a mapping fitting slots that is outside
// every atom in neg
func mappingSlotsInhabited(cx *Context, slots []mappingSlot, neg *conjunction) bool {
	if neg == nil {
		return true
	}
	nt := cx.mappingAtomType(neg.atom)
	if mappingSlotsDisjoint(cx, slots, nt) {
		return mappingSlotsInhabited(cx, slots, neg.next)
	}
	for i, s := range slots {
		nf := s.negatedBy(nt)
		// values here that nt rejects, or absence when nt requires the key
		escape := mappingField{ty: cx.env.Diff(s.ty, nf.ty), optional: s.optional && !nf.optional}
		if !escape.optional && cx.IsEmpty(escape.ty) {
			continue
		}
		narrowed := slices.Clone(slots)
		narrowed[i].mappingField = escape
		if mappingSlotsInhabited(cx, narrowed, neg.next) {
			return true
		}
	}
	return false
}

// negatedBy is what nt allows at the key of s
func (s mappingSlot) negatedBy(nt *MappingAtomicType) mappingField {
	if s.fresh {
		return mappingField{ty: nt.rest, optional: true}
	}
	return nt.fieldAt(s.name)
}

// mappingSlotsDisjoint reports whether no mapping fitting slots is in nt:
// some key is present on one side or the other with no value both accept
func mappingSlotsDisjoint(cx *Context, slots []mappingSlot, nt *MappingAtomicType) bool {
	for _, s := range slots {
		nf := s.negatedBy(nt)
		if (!s.optional || !nf.optional) && cx.IsEmpty(cx.env.Intersect(s.ty, nf.ty)) {
			return true
		}
	}
	return false
}
