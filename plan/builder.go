package plan

import (
	"os"

	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/pkg/suggest"
	"github.com/brimdata/nitro/runtime/expr/agg"
	"github.com/brimdata/nitro/runtime/expr/function"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/runtime/op/aggregate"
	"github.com/brimdata/nitro/runtime/op/arrowscan"
	"github.com/brimdata/nitro/runtime/op/filter"
	"github.com/brimdata/nitro/runtime/op/generator"
	"github.com/brimdata/nitro/runtime/op/group"
	"github.com/brimdata/nitro/runtime/op/join"
	"github.com/brimdata/nitro/runtime/op/limit"
	"github.com/brimdata/nitro/runtime/op/project"
	"github.com/brimdata/nitro/runtime/op/top"
	"github.com/brimdata/nitro/runtime/op/values"
	"github.com/brimdata/nitro/vector"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const DefaultStreamCacheSize = 16

// Builder turns plans into operator trees.  Arrow inputs are decoded once
// and cached by path across builds.
type Builder struct {
	octx      *op.Context
	batchSize int
	streams   *lru.Cache[string, *arrowscan.Stream]
}

func NewBuilder(octx *op.Context, batchSize, cacheSize int) (*Builder, error) {
	if batchSize <= 0 {
		batchSize = op.DefaultBatchSize
	}
	if cacheSize <= 0 {
		cacheSize = DefaultStreamCacheSize
	}
	streams, err := lru.NewWithEvict[string, *arrowscan.Stream](cacheSize, func(_ string, s *arrowscan.Stream) {
		s.Release()
	})
	if err != nil {
		return nil, err
	}
	return &Builder{octx: octx, batchSize: batchSize, streams: streams}, nil
}

// Build returns the operator tree for n.  The kinds of its columns are
// returned along with it.
func (b *Builder) Build(n *Node) (o op.Operator, kinds []vector.Kind, err error) {
	defer errors.Recover(&err)
	return b.build(n)
}

// Close releases the cached Arrow inputs.  Operators built from them must
// be closed first.
func (b *Builder) Close() {
	b.streams.Purge()
}

func (b *Builder) build(n *Node) (op.Operator, []vector.Kind, error) {
	if n == nil {
		return nil, nil, errors.E(errors.Invalid, "missing input")
	}
	switch n.Op {
	case OpGenerate:
		return b.buildGenerate(n)
	case OpValues:
		return b.buildValues(n)
	case OpArrow:
		return b.buildArrow(n)
	case OpJoin:
		return b.buildJoin(n)
	}
	if !slices.Contains(ops, n.Op) {
		return nil, nil, errors.E(errors.Invalid, "unknown operator %q%s", n.Op, suggest.Hint(n.Op, ops))
	}
	parent, kinds, err := b.build(n.Input)
	if err != nil {
		return nil, nil, err
	}
	o, kinds, err := b.buildUnary(n, parent, kinds)
	if err != nil {
		parent.Close()
		return nil, nil, err
	}
	return o, kinds, nil
}

func (b *Builder) batch(n *Node) int {
	if n.BatchSize > 0 {
		return n.BatchSize
	}
	return b.batchSize
}

func (b *Builder) buildGenerate(n *Node) (op.Operator, []vector.Kind, error) {
	if n.Rows < 0 {
		return nil, nil, errors.E(errors.Invalid, "generate: negative row count %d", n.Rows)
	}
	var gens []generator.Generator
	for k, g := range n.Columns {
		switch {
		case g.Sequence != nil:
			gens = append(gens, generator.Sequence(*g.Sequence))
		case g.Range != nil:
			if len(g.Range) != 2 || g.Range[0] >= g.Range[1] {
				return nil, nil, errors.E(errors.Invalid, "generate: column %d: range must be [start, max) with start < max", k)
			}
			gens = append(gens, generator.SequenceRange(g.Range[0], g.Range[1]))
		case g.Constant != nil:
			gens = append(gens, generator.Constant(*g.Constant))
		default:
			gens = append(gens, generator.Null())
		}
	}
	return generator.New(b.octx, n.Rows, b.batch(n), gens...), kindsOf(vector.Int64, len(gens)), nil
}

func (b *Builder) buildValues(n *Node) (op.Operator, []vector.Kind, error) {
	width := n.Width
	if width == 0 && len(n.Values) > 0 {
		width = len(n.Values[0])
	}
	rows := make([]nitro.Row, len(n.Values))
	for k, v := range n.Values {
		rows[k] = nitro.Row(v)
	}
	o, err := values.New(b.octx, width, rows)
	if err != nil {
		return nil, nil, err
	}
	return o, kindsOf(vector.Int64, width), nil
}

func (b *Builder) buildArrow(n *Node) (op.Operator, []vector.Kind, error) {
	s, ok := b.streams.Get(n.Path)
	if !ok {
		f, err := os.Open(n.Path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		s, err = arrowscan.Read(f)
		if err != nil {
			return nil, nil, errors.E(errors.Invalid, "%s: %w", n.Path, err)
		}
		b.streams.Add(n.Path, s)
		b.octx.Logger.Debug("arrow stream loaded",
			zap.String("path", n.Path),
			zap.Int64("rows", s.Rows()))
	}
	return arrowscan.New(b.octx, s, b.batch(n)), s.Kinds(), nil
}

func (b *Builder) buildJoin(n *Node) (op.Operator, []vector.Kind, error) {
	outer, outerKinds, err := b.build(n.Input)
	if err != nil {
		return nil, nil, err
	}
	inner, innerKinds, err := b.build(n.Right)
	if err != nil {
		outer.Close()
		return nil, nil, err
	}
	kinds := append(append([]vector.Kind(nil), outerKinds...), innerKinds...)
	return join.New(b.octx, outer, inner, n.BatchSize), kinds, nil
}

func (b *Builder) buildUnary(n *Node, parent op.Operator, kinds []vector.Kind) (op.Operator, []vector.Kind, error) {
	switch n.Op {
	case OpFilter:
		if err := checkColumn(n, kinds); err != nil {
			return nil, nil, err
		}
		p, err := predicate(n.Cmp, n.Value, kinds[n.Column])
		if err != nil {
			return nil, nil, err
		}
		return filter.New(parent, n.Column, p), kinds, nil
	case OpLimit:
		if n.N < 0 {
			return nil, nil, errors.E(errors.Invalid, "limit: negative limit %d", n.N)
		}
		return limit.New(parent, n.N), kinds, nil
	case OpTop:
		if err := checkColumn(n, kinds); err != nil {
			return nil, nil, err
		}
		return top.New(b.octx, parent, n.Column, op.IntExact(n.N)), kinds, nil
	case OpProject:
		exec, outKinds, err := execution(n, kinds)
		if err != nil {
			return nil, nil, err
		}
		o, err := project.New(b.octx, parent, exec)
		if err != nil {
			return nil, nil, err
		}
		return o, outKinds, nil
	case OpGroup:
		if err := checkColumn(n, kinds); err != nil {
			return nil, nil, err
		}
		return group.New(b.octx, parent, n.Column), append([]vector.Kind{vector.Int64}, kinds...), nil
	case OpAggregate, OpGroupedAggregate:
		accs, outKinds, err := accumulators(n, kinds)
		if err != nil {
			return nil, nil, err
		}
		if n.Op == OpAggregate {
			return aggregate.New(b.octx, parent, accs...), outKinds, nil
		}
		if err := checkColumn(n, kinds); err != nil {
			return nil, nil, err
		}
		return aggregate.NewGrouped(b.octx, parent, n.Column, accs...), outKinds, nil
	}
	return nil, nil, errors.E(errors.Unimplemented, "operator %q", n.Op)
}

func checkColumn(n *Node, kinds []vector.Kind) error {
	if n.Column < 0 || n.Column >= len(kinds) {
		return errors.E(errors.Invalid, "%s: column %d out of range [0,%d)", n.Op, n.Column, len(kinds))
	}
	return nil
}

func kindsOf(kind vector.Kind, n int) []vector.Kind {
	kinds := make([]vector.Kind, n)
	for k := range kinds {
		kinds[k] = kind
	}
	return kinds
}

var cmps = []string{"lt", "le", "eq", "ne", "ge", "gt"}

func compare(cmp string, v float64) (func(float64) bool, error) {
	switch cmp {
	case "lt":
		return func(x float64) bool { return x < v }, nil
	case "le":
		return func(x float64) bool { return x <= v }, nil
	case "eq":
		return func(x float64) bool { return x == v }, nil
	case "ne":
		return func(x float64) bool { return x != v }, nil
	case "ge":
		return func(x float64) bool { return x >= v }, nil
	case "gt":
		return func(x float64) bool { return x > v }, nil
	}
	return nil, errors.E(errors.Invalid, "filter: unknown comparison %q%s", cmp, suggest.Hint(cmp, cmps))
}

func predicate(cmp string, v float64, kind vector.Kind) (filter.Predicate, error) {
	fn, err := compare(cmp, v)
	if err != nil {
		return nil, err
	}
	if kind == vector.Float64 {
		return filter.F64(fn), nil
	}
	return filter.I64(func(x int64) bool { return fn(float64(x)) }), nil
}

func accumulators(n *Node, kinds []vector.Kind) ([]agg.Accumulator, []vector.Kind, error) {
	var accs []agg.Accumulator
	var out []vector.Kind
	for _, a := range n.Aggs {
		if a.Column < 0 || a.Column >= len(kinds) {
			return nil, nil, errors.E(errors.Invalid, "%s: %s: column %d out of range [0,%d)", n.Op, a.Name, a.Column, len(kinds))
		}
		acc, err := agg.Lookup(a.Name, a.Column)
		if err != nil {
			return nil, nil, errors.E(errors.Invalid, err)
		}
		accs = append(accs, acc)
		out = append(out, agg.StateKind(acc))
	}
	return accs, out, nil
}

// execution resolves the expressions of a project node into an Execution
// and the kinds of its output columns.
func execution(n *Node, kinds []vector.Kind) (project.Execution, []vector.Kind, error) {
	var exec project.Execution
	for k, e := range n.Exprs {
		inv := project.Invocation{}
		for _, ref := range e.Inputs {
			r, err := ref.Resolve()
			if err != nil {
				return exec, nil, errors.E(errors.Invalid, "project: expression %d: %w", k, err)
			}
			inv.Inputs = append(inv.Inputs, r)
		}
		exec.Invocations = append(exec.Invocations, inv)
	}
	for _, ref := range n.Outputs {
		r, err := ref.Resolve()
		if err != nil {
			return exec, nil, errors.E(errors.Invalid, "project: output: %w", err)
		}
		exec.Outputs = append(exec.Outputs, r)
	}
	r := &resolver{exprs: n.Exprs, exec: &exec, kinds: kinds, state: make([]int, len(n.Exprs))}
	var out []vector.Kind
	for _, ref := range exec.Outputs {
		kind, err := r.kind(ref)
		if err != nil {
			return exec, nil, err
		}
		out = append(out, kind)
	}
	for k := range n.Exprs {
		if _, err := r.kind(k); err != nil {
			return exec, nil, err
		}
	}
	return exec, out, nil
}

// resolver binds functions to invocations in dependency order since the
// kind of a function's output depends on the kinds of its inputs.
type resolver struct {
	exprs []Expr
	exec  *project.Execution
	kinds []vector.Kind
	// state is 0 before, 1 during, and 2 after an invocation is resolved.
	state []int
}

func (r *resolver) kind(ref int) (vector.Kind, error) {
	if ref < 0 {
		col := -ref - 1
		if col >= len(r.kinds) {
			return 0, errors.E(errors.Invalid, "project: column %d out of range [0,%d)", col, len(r.kinds))
		}
		return r.kinds[col], nil
	}
	if ref >= len(r.exprs) {
		return 0, errors.E(errors.Invalid, "project: expression %d out of range [0,%d)", ref, len(r.exprs))
	}
	inv := &r.exec.Invocations[ref]
	switch r.state[ref] {
	case 1:
		return 0, errors.E(errors.Invalid, "project: expression %d depends on itself", ref)
	case 2:
		return inv.Kind, nil
	}
	r.state[ref] = 1
	var in []vector.Kind
	for _, input := range inv.Inputs {
		kind, err := r.kind(input)
		if err != nil {
			return 0, err
		}
		in = append(in, kind)
	}
	e := r.exprs[ref]
	fn, kind, err := function.New(e.Fn, in, e.Arg)
	if err != nil {
		return 0, errors.E(errors.Invalid, "project: expression %d: %w", ref, err)
	}
	inv.Function = fn
	inv.Kind = kind
	r.state[ref] = 2
	return kind, nil
}
