package aggregate

import (
	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime/expr/agg"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"go.uber.org/zap"
)

// Grouped computes one row per group id found in a column of its parent,
// typically the id column of a group.Op.  The output holds the accumulator
// results, row g being the result for group id g.  Rows whose group id is
// null are skipped.
type Grouped struct {
	octx     *op.Context
	actx     alloc.Context
	parent   op.Operator
	column   int
	accs     []agg.Accumulator
	results  []vector.Any
	done     bool
	nonNull  []int
	maxGroup int
}

var _ op.Operator = (*Grouped)(nil)

func NewGrouped(octx *op.Context, parent op.Operator, column int, accs ...agg.Accumulator) *Grouped {
	op.CheckColumn("grouped aggregate", parent, column)
	return &Grouped{
		octx:     octx,
		actx:     octx.AllocContext("grouped_aggregate"),
		parent:   parent,
		column:   column,
		accs:     accs,
		results:  make([]vector.Any, len(accs)),
		maxGroup: -1,
	}
}

func (g *Grouped) ColumnCount() int {
	return len(g.accs)
}

func (g *Grouped) HasNext() bool {
	return !g.done
}

func (g *Grouped) Next() *vector.Mask {
	if g.done {
		op.Exhausted("grouped aggregate")
	}
	g.done = true
	states := make([]vector.Any, len(g.accs))
	for g.parent.HasNext() {
		mask := g.parent.Next()
		if mask.IsEmpty() {
			continue
		}
		groups := vector.AsInt(g.parent.Column(g.column))
		previous := g.maxGroup
		mask = g.scan(groups, mask)
		if g.maxGroup > previous {
			capacity := alloc.ComputeCapacity(op.IntExact(int64(g.maxGroup) + 1))
			for i, acc := range g.accs {
				states[i] = g.octx.Alloc.Grow(g.actx, states[i], agg.StateKind(acc), capacity)
				acc.Initialize(states[i], previous+1, g.maxGroup-previous)
			}
		}
		if mask.IsEmpty() {
			continue
		}
		for i, acc := range g.accs {
			acc.AccumulateGroups(states[i], groups, mask, g.parent.Column)
		}
	}
	capacity := alloc.ComputeCapacity(g.maxGroup + 1)
	for i, acc := range g.accs {
		kind := agg.StateKind(acc)
		if states[i] == nil {
			states[i] = g.octx.Alloc.Allocate(g.actx, kind, 0)
		}
		g.results[i] = g.octx.Alloc.Grow(g.actx, g.results[i], kind, capacity)
		g.results[i] = acc.Result(g.maxGroup, states[i], g.results[i])
	}
	g.octx.Logger.Debug("grouped aggregate",
		zap.Int("groups", g.maxGroup+1),
		zap.Int("capacity", capacity))
	return vector.All(g.maxGroup + 1)
}

// scan advances maxGroup past the group ids of mask and returns mask without
// the positions whose id is null.
func (g *Grouped) scan(groups *vector.Int, mask *vector.Mask) *vector.Mask {
	positions := mask.Positions()
	out := g.nonNull[:0]
	var nulls bool
	for k, pos := range positions {
		if groups.Nulls[pos] {
			if !nulls {
				nulls = true
				out = append(out, positions[:k]...)
			}
			continue
		}
		id := groups.Values[pos]
		if id < 0 {
			errors.Panic(errors.Invalid, "grouped aggregate: negative group id %d", id)
		}
		if int64(g.maxGroup) < id {
			g.maxGroup = op.IntExact(id)
		}
		if nulls {
			out = append(out, pos)
		}
	}
	g.nonNull = out
	if nulls {
		return vector.Sparse(out)
	}
	return mask
}

func (*Grouped) Constrain(*vector.Mask) {}

func (g *Grouped) Column(i int) vector.Any {
	op.CheckColumn("grouped aggregate", g, i)
	return g.results[i]
}

func (g *Grouped) Close() error {
	err := g.parent.Close()
	g.octx.Alloc.Release(g.actx)
	return err
}
