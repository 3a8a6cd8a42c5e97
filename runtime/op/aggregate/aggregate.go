// Package aggregate implements the global and grouped aggregation
// operators.  Both drain their parent completely before producing their
// single output batch.
package aggregate

import (
	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/runtime/expr/agg"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"go.uber.org/zap"
)

// Op computes one row from all of its parent's rows.  When the parent
// produces no rows at all, Op produces an empty batch.
type Op struct {
	octx    *op.Context
	actx    alloc.Context
	parent  op.Operator
	accs    []agg.Accumulator
	results []vector.Any
	done    bool
}

var _ op.Operator = (*Op)(nil)

func New(octx *op.Context, parent op.Operator, accs ...agg.Accumulator) *Op {
	return &Op{
		octx:    octx,
		actx:    octx.AllocContext("aggregate"),
		parent:  parent,
		accs:    accs,
		results: make([]vector.Any, len(accs)),
	}
}

func (o *Op) ColumnCount() int {
	return len(o.accs)
}

func (o *Op) HasNext() bool {
	return !o.done
}

func (o *Op) Next() *vector.Mask {
	if o.done {
		op.Exhausted("aggregate")
	}
	o.done = true
	states := make([]vector.Any, len(o.accs))
	for i, acc := range o.accs {
		states[i] = o.octx.Alloc.Allocate(o.actx, agg.StateKind(acc), 1)
		acc.Initialize(states[i], 0, 1)
	}
	var rows int64
	for o.parent.HasNext() {
		mask := o.parent.Next()
		if mask.IsEmpty() {
			continue
		}
		rows += int64(mask.Count())
		for i, acc := range o.accs {
			acc.Accumulate(states[i], 0, mask, o.parent.Column)
		}
	}
	for i, acc := range o.accs {
		o.results[i] = acc.Result(0, states[i], o.results[i])
	}
	o.octx.Logger.Debug("aggregate", zap.Int64("rows", rows))
	if rows == 0 {
		return vector.None()
	}
	return vector.All(1)
}

// Constrain is a no-op since the output is computed by Next.
func (*Op) Constrain(*vector.Mask) {}

func (o *Op) Column(i int) vector.Any {
	op.CheckColumn("aggregate", o, i)
	return o.results[i]
}

func (o *Op) Close() error {
	err := o.parent.Close()
	o.octx.Alloc.Release(o.actx)
	return err
}
