// Package conformance loads YAML suites of type declarations and subtyping
// queries and checks them against a types.Env.
//
// A suite looks like
//
//	types:
//	  Tree: {list: {union: [int, Tree]}}
//	queries:
//	  - subtype: [{list: int}, Tree]
//	    expect: true
//
// Declarations may refer to each other in any order. A declaration may refer
// to itself, directly or through others, as long as the cycle goes through a
// declaration whose body is a tuple, list, record, map or function.
package conformance

import (
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/cottand/semtype/internal/log"
	"github.com/cottand/semtype/types"
	"github.com/cottand/semtype/util"
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var builtins = func() map[string]types.SemType {
	m := map[string]types.SemType{
		"any":            types.Any,
		"never":          types.Never,
		"number":         types.Number,
		"byte":           types.Byte,
		"char":           types.StringChar,
		"string:Char":    types.StringChar,
		"int:Signed8":    types.IntSigned8,
		"int:Signed16":   types.IntSigned16,
		"int:Signed32":   types.IntSigned32,
		"int:Unsigned8":  types.IntUnsigned8,
		"int:Unsigned16": types.IntUnsigned16,
		"int:Unsigned32": types.IntUnsigned32,
	}
	for _, code := range types.AllBasicCodes() {
		m[code.String()] = types.Uniform(code)
	}
	return m
}()

// loads numbers every load so that placeholder ids stay unique within an Env
var loads atomic.Uint64

// Load reads the suite at name in fsys and builds its types in env
func Load(env *types.Env, fsys fs.FS, name string) (*Suite, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read suite %s", name)
	}
	return Parse(env, name, data)
}

// Parse builds the suite in data, reporting positions as coming from file
func Parse(env *types.Env, file string, data []byte) (*Suite, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", file)
	}
	l := &loader{
		env:       env,
		file:      file,
		load:      loads.Add(1),
		bodies:    map[string]*yaml.Node{},
		done:      map[string]types.SemType{},
		resolving: set.New[string](0),
		logger:    log.DefaultLogger.With("section", "conformance.load", "file", file),
	}
	return l.suite(&doc)
}

type loader struct {
	env  *types.Env
	file string
	load uint64

	order  []*yaml.Node
	bodies map[string]*yaml.Node
	done   map[string]types.SemType

	// resolving holds the declarations currently being built, and frames
	// the order in which they (and unfoldings of them) were entered
	resolving *set.Set[string]
	frames    util.Stack[frame]

	logger *slog.Logger
}

type frame struct {
	name        string
	structural  bool
	placeholder types.SemType
}

func (l *loader) errorf(n *yaml.Node, format string, args ...any) error {
	return errors.Errorf("%s:%d:%d: %s", l.file, n.Line, n.Column, fmt.Sprintf(format, args...))
}

func (l *loader) wrap(err error, n *yaml.Node) error {
	return errors.Wrapf(err, "%s:%d:%d", l.file, n.Line, n.Column)
}

func (l *loader) suite(doc *yaml.Node) (*Suite, error) {
	s := &Suite{Name: l.file, env: l.env}
	if doc.Kind == 0 {
		return s, nil
	}
	root := doc
	if root.Kind == yaml.DocumentNode {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, l.errorf(root, "a suite must be a mapping with 'types' and 'queries'")
	}
	var typesNode, queriesNode *yaml.Node
	for i := 0; i < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "types":
			typesNode = value
		case "queries":
			queriesNode = value
		default:
			return nil, l.errorf(key, "unknown section '%s'", key.Value)
		}
	}

	if typesNode != nil {
		if err := l.collect(typesNode); err != nil {
			return nil, err
		}
	}
	for _, key := range l.order {
		t, err := l.resolve(key, key.Value)
		if err != nil {
			return nil, err
		}
		s.Declarations = append(s.Declarations, Declaration{Name: key.Value, Type: t, Line: key.Line})
	}
	l.logger.Debug("resolved declarations", "count", len(s.Declarations))

	if queriesNode != nil {
		if queriesNode.Kind != yaml.SequenceNode {
			return nil, l.errorf(queriesNode, "'queries' must be a list")
		}
		for _, qn := range queriesNode.Content {
			q, err := l.query(qn)
			if err != nil {
				return nil, err
			}
			s.Queries = append(s.Queries, q)
		}
	}
	return s, nil
}

func (l *loader) collect(typesNode *yaml.Node) error {
	if typesNode.Kind != yaml.MappingNode {
		return l.errorf(typesNode, "'types' must be a mapping of names to types")
	}
	for i := 0; i < len(typesNode.Content); i += 2 {
		key, body := typesNode.Content[i], typesNode.Content[i+1]
		name := key.Value
		if _, ok := builtins[name]; ok {
			return l.errorf(key, "'%s' is a builtin type and cannot be redeclared", name)
		}
		if _, ok := l.bodies[name]; ok {
			return l.errorf(key, "type '%s' is declared more than once", name)
		}
		l.bodies[name] = body
		l.order = append(l.order, key)
	}
	return nil
}

func (l *loader) placeholderID(name string) string {
	return fmt.Sprintf("%s#%d.%s", l.file, l.load, name)
}

// resolve returns the type named name, referenced at ref
func (l *loader) resolve(ref *yaml.Node, name string) (types.SemType, error) {
	if t, ok := builtins[name]; ok {
		return t, nil
	}
	if t, ok := l.done[name]; ok {
		return t, nil
	}
	body, ok := l.bodies[name]
	if !ok {
		return nil, l.errorf(ref, "unknown type '%s'", name)
	}
	if l.resolving.Contains(name) {
		return l.unfold(ref, name, body)
	}

	l.resolving.Insert(name)
	defer l.resolving.Remove(name)

	f := frame{name: name}
	code, structural := structuralCode(body)
	if structural {
		ph, err := l.env.DeclarePlaceholder(l.placeholderID(name), code)
		if err != nil {
			return nil, l.wrap(err, body)
		}
		f.structural, f.placeholder = true, ph
	}
	l.frames.Push(f)
	t, err := l.expr(body)
	l.frames.Pop()
	if err != nil {
		return nil, err
	}
	if structural {
		if err := l.env.FinalizePlaceholder(l.placeholderID(name), t); err != nil {
			return nil, l.wrap(err, body)
		}
		t = f.placeholder
	}
	l.done[name] = t
	return t, nil
}

// unfold handles a reference to a declaration that is still being built.
// Structural declarations stand for themselves through their placeholder.
// Any other declaration is built again in place, which is only allowed when
// a structural declaration was entered since, so that the unfolding is
// guarded and terminates
func (l *loader) unfold(ref *yaml.Node, name string, body *yaml.Node) (types.SemType, error) {
	guarded := false
	for _, f := range l.frames.FromTop() {
		if f.name == name {
			if f.structural {
				return f.placeholder, nil
			}
			break
		}
		guarded = guarded || f.structural
	}
	if !guarded {
		return nil, l.errorf(ref, "type '%s' refers to itself without going through a tuple, list, record, map or function declaration", name)
	}
	l.logger.Debug("unfolding recursive reference", "name", name, "line", ref.Line)
	l.frames.Push(frame{name: name})
	defer l.frames.Pop()
	return l.expr(body)
}

// structuralCode reports whether n is a constructor that a placeholder of
// category code can stand for
func structuralCode(n *yaml.Node) (types.BasicTypeCode, bool) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return 0, false
	}
	switch n.Content[0].Value {
	case "tuple", "list":
		return types.CodeList, true
	case "record", "map":
		return types.CodeMapping, true
	case "function":
		return types.CodeFunction, true
	}
	return 0, false
}

func (l *loader) expr(n *yaml.Node) (types.SemType, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return l.expr(n.Alias)
	case yaml.ScalarNode:
		if n.ShortTag() != "!!str" {
			return nil, l.errorf(n, "expected a type, got %s '%s' (use {const: %s} for a singleton type)", n.ShortTag(), n.Value, n.Value)
		}
		return l.resolve(n, n.Value)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, l.errorf(n, "a type constructor must have exactly one key")
		}
		return l.constructor(n.Content[0], n.Content[1])
	default:
		return nil, l.errorf(n, "expected a type name or a type constructor")
	}
}

func (l *loader) exprs(n *yaml.Node) ([]types.SemType, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, l.errorf(n, "expected a list of types")
	}
	ts := make([]types.SemType, 0, len(n.Content))
	for _, c := range n.Content {
		t, err := l.expr(c)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

func (l *loader) pair(n *yaml.Node) (types.SemType, types.SemType, error) {
	ts, err := l.exprs(n)
	if err != nil {
		return nil, nil, err
	}
	if len(ts) != 2 {
		return nil, nil, l.errorf(n, "expected exactly two types, got %d", len(ts))
	}
	return ts[0], ts[1], nil
}

// optionalExpr resolves n, or returns def when n is absent
func (l *loader) optionalExpr(n *yaml.Node, def types.SemType) (types.SemType, error) {
	if n == nil {
		return def, nil
	}
	return l.expr(n)
}

func (l *loader) constructor(key, arg *yaml.Node) (types.SemType, error) {
	switch key.Value {
	case "union":
		ts, err := l.exprs(arg)
		if err != nil {
			return nil, err
		}
		return l.env.UnionOf(ts...), nil
	case "intersect":
		ts, err := l.exprs(arg)
		if err != nil {
			return nil, err
		}
		return l.env.IntersectOf(ts...), nil
	case "not":
		t, err := l.expr(arg)
		if err != nil {
			return nil, err
		}
		return l.env.Complement(t), nil
	case "diff":
		t1, t2, err := l.pair(arg)
		if err != nil {
			return nil, err
		}
		return l.env.Diff(t1, t2), nil
	case "const":
		return l.constant(arg)
	case "decimal":
		if arg.Kind != yaml.ScalarNode {
			return nil, l.errorf(arg, "a decimal literal must be a scalar")
		}
		t, err := types.DecimalConst(arg.Value)
		if err != nil {
			return nil, l.wrap(err, arg)
		}
		return t, nil
	case "char":
		if arg.Kind != yaml.ScalarNode || len([]rune(arg.Value)) != 1 {
			return nil, l.errorf(arg, "a char literal must be a single character")
		}
		return types.StringConst(arg.Value), nil
	case "range":
		return l.intRange(arg)
	case "tuple":
		return l.tuple(arg)
	case "list":
		t, err := l.expr(arg)
		if err != nil {
			return nil, err
		}
		return l.env.ListType(t), nil
	case "record":
		return l.record(arg)
	case "map":
		t, err := l.expr(arg)
		if err != nil {
			return nil, err
		}
		return l.env.MapType(t), nil
	case "function":
		return l.function(arg)
	default:
		return nil, l.errorf(key, "unknown type constructor '%s'", key.Value)
	}
}

func (l *loader) constant(n *yaml.Node) (types.SemType, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, l.errorf(n, "a constant must be a scalar")
	}
	switch n.ShortTag() {
	case "!!null":
		return types.Nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, l.wrap(err, n)
		}
		return types.BooleanConst(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, l.wrap(err, n)
		}
		return types.IntConst(i), nil
	case "!!float":
		f, err := parseFloat(n.Value)
		if err != nil {
			return nil, l.wrap(err, n)
		}
		return types.FloatConst(f), nil
	case "!!str":
		return types.StringConst(n.Value), nil
	default:
		return nil, l.errorf(n, "unsupported constant of kind %s", n.ShortTag())
	}
}

// parseFloat accepts the YAML spellings of infinities and NaN on top of Go's
func parseFloat(text string) (float64, error) {
	switch text {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(text, 64)
}

func (l *loader) intRange(n *yaml.Node) (types.SemType, error) {
	var bounds []int64
	if err := n.Decode(&bounds); err != nil || len(bounds) != 2 {
		return nil, l.errorf(n, "a range must be a list of two integers [min, max]")
	}
	t, err := types.IntRange(bounds[0], bounds[1])
	if err != nil {
		return nil, l.wrap(err, n)
	}
	return t, nil
}

// fieldsOf returns the values of the known keys of the mapping n
func (l *loader) fieldsOf(n *yaml.Node, known ...string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, l.errorf(n, "expected a mapping with keys %v", known)
	}
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i]
		if !isKnown(key.Value, known) {
			return nil, l.errorf(key, "unexpected key '%s', expected one of %v", key.Value, known)
		}
		fields[key.Value] = n.Content[i+1]
	}
	return fields, nil
}

func isKnown(key string, known []string) bool {
	for _, k := range known {
		if k == key {
			return true
		}
	}
	return false
}

func (l *loader) tuple(n *yaml.Node) (types.SemType, error) {
	if n.Kind == yaml.SequenceNode {
		members, err := l.exprs(n)
		if err != nil {
			return nil, err
		}
		return l.env.TupleType(members, types.Never), nil
	}
	fields, err := l.fieldsOf(n, "members", "rest")
	if err != nil {
		return nil, err
	}
	var members []types.SemType
	if m, ok := fields["members"]; ok {
		if members, err = l.exprs(m); err != nil {
			return nil, err
		}
	}
	rest, err := l.optionalExpr(fields["rest"], types.Never)
	if err != nil {
		return nil, err
	}
	return l.env.TupleType(members, rest), nil
}

func (l *loader) record(n *yaml.Node) (types.SemType, error) {
	parts, err := l.fieldsOf(n, "fields", "rest")
	if err != nil {
		return nil, err
	}
	var fields []types.Field
	if fn, ok := parts["fields"]; ok {
		if fn.Kind != yaml.MappingNode {
			return nil, l.errorf(fn, "record fields must be a mapping of names to types")
		}
		for i := 0; i < len(fn.Content); i += 2 {
			key := fn.Content[i]
			t, err := l.expr(fn.Content[i+1])
			if err != nil {
				return nil, err
			}
			name, optional := fieldName(key.Value)
			fields = append(fields, types.Field{Name: name, Type: t, Optional: optional})
		}
	}
	rest, err := l.optionalExpr(parts["rest"], types.Never)
	if err != nil {
		return nil, err
	}
	t, err := l.env.RecordType(fields, rest)
	if err != nil {
		return nil, l.wrap(err, n)
	}
	return t, nil
}

// fieldName strips the trailing '?' that marks an optional field
func fieldName(key string) (string, bool) {
	if len(key) > 1 && key[len(key)-1] == '?' {
		return key[:len(key)-1], true
	}
	return key, false
}

func (l *loader) function(n *yaml.Node) (types.SemType, error) {
	parts, err := l.fieldsOf(n, "params", "rest", "return")
	if err != nil {
		return nil, err
	}
	var params []types.SemType
	if pn, ok := parts["params"]; ok {
		if params, err = l.exprs(pn); err != nil {
			return nil, err
		}
	}
	rest, err := l.optionalExpr(parts["rest"], types.Never)
	if err != nil {
		return nil, err
	}
	ret, err := l.optionalExpr(parts["return"], types.Nil)
	if err != nil {
		return nil, err
	}
	return l.env.FunctionType(params, rest, ret), nil
}
