package conformance

import (
	"context"
	"fmt"
	"strings"

	"github.com/cottand/semtype/types"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Suite is a loaded conformance file. Its types live in the Env it was
// loaded with
type Suite struct {
	Name         string
	Declarations []Declaration
	Queries      []Query

	env *types.Env
}

type Declaration struct {
	Name string
	Type types.SemType
	Line int
}

// Lookup returns the declared type called name
func (s *Suite) Lookup(name string) (types.SemType, bool) {
	for _, d := range s.Declarations {
		if d.Name == name {
			return d.Type, true
		}
	}
	return nil, false
}

type QueryKind string

const (
	QuerySubtype  QueryKind = "subtype"
	QuerySame     QueryKind = "same"
	QueryEmpty    QueryKind = "empty"
	QueryDisjoint QueryKind = "disjoint"
)

// arity is the number of operands each kind takes
var arity = map[QueryKind]int{
	QuerySubtype:  2,
	QuerySame:     2,
	QueryEmpty:    1,
	QueryDisjoint: 2,
}

type Query struct {
	Kind     QueryKind
	Operands []types.SemType
	// Labels are the operands as written in the suite when they were plain
	// names, and their rendering otherwise
	Labels []string
	Expect bool
	Line   int
}

func (q Query) String() string {
	return fmt.Sprintf("%s %s", q.Kind, strings.Join(q.Labels, ", "))
}

// Eval answers q in env
func (q Query) Eval(env *types.Env) bool {
	switch q.Kind {
	case QuerySubtype:
		return env.IsSubtype(q.Operands[0], q.Operands[1])
	case QuerySame:
		return env.IsSameType(q.Operands[0], q.Operands[1])
	case QueryEmpty:
		return env.IsEmpty(q.Operands[0])
	case QueryDisjoint:
		return env.IsEmpty(env.Intersect(q.Operands[0], q.Operands[1]))
	default:
		panic("unknown query kind " + string(q.Kind))
	}
}

type Result struct {
	Query Query
	Got   bool
}

func (r Result) OK() bool {
	return r.Got == r.Query.Expect
}

// Run evaluates every query of the suite with up to jobs queries in flight at
// once, or without limit when jobs is not positive. Results are in query order
func (s *Suite) Run(ctx context.Context, jobs int) ([]Result, error) {
	results := make([]Result, len(s.Queries))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, q := range s.Queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Query: q, Got: q.Eval(s.env)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *loader) query(n *yaml.Node) (Query, error) {
	if n.Kind != yaml.MappingNode {
		return Query{}, l.errorf(n, "a query must be a mapping")
	}
	q := Query{Line: n.Line}
	var operands, expect *yaml.Node
	for i := 0; i < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Value == "expect" {
			expect = value
			continue
		}
		kind := QueryKind(key.Value)
		if _, ok := arity[kind]; !ok {
			return Query{}, l.errorf(key, "unknown query '%s'", key.Value)
		}
		if operands != nil {
			return Query{}, l.errorf(key, "a query must ask exactly one question")
		}
		q.Kind, operands = kind, value
	}
	if operands == nil {
		return Query{}, l.errorf(n, "a query must be one of subtype, same, empty or disjoint")
	}
	if expect == nil || expect.ShortTag() != "!!bool" {
		return Query{}, l.errorf(n, "a query must have a boolean 'expect'")
	}
	if err := expect.Decode(&q.Expect); err != nil {
		return Query{}, l.wrap(err, expect)
	}

	nodes := []*yaml.Node{operands}
	if arity[q.Kind] > 1 {
		if operands.Kind != yaml.SequenceNode || len(operands.Content) != arity[q.Kind] {
			return Query{}, l.errorf(operands, "%s takes a list of %d types", q.Kind, arity[q.Kind])
		}
		nodes = operands.Content
	}
	for _, on := range nodes {
		t, err := l.expr(on)
		if err != nil {
			return Query{}, err
		}
		q.Operands = append(q.Operands, t)
		q.Labels = append(q.Labels, label(on, t))
	}
	return q, nil
}

func label(n *yaml.Node, t types.SemType) string {
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	return t.String()
}
