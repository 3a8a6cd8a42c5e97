// Package top implements an operator that keeps the rows with the n largest
// values of a key column, ordered by that key descending.
package top

import (
	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"go.uber.org/zap"
)

// Op drains its parent before producing a single batch of at most n rows.
// Rows with a null key are never selected.
type Op struct {
	octx   *op.Context
	actx   alloc.Context
	parent op.Operator
	column int
	n      int
	sel    selector
	bufs   []vector.Any
	count  int
	done   bool

	// per batch scratch: positions to copy and their destination slots
	positions []int
	slots     []int
}

var _ op.Operator = (*Op)(nil)

func New(octx *op.Context, parent op.Operator, column, n int) *Op {
	return &Op{
		octx:   octx,
		actx:   octx.AllocContext("top"),
		parent: parent,
		column: column,
		n:      max(n, 0),
		bufs:   make([]vector.Any, parent.ColumnCount()),
	}
}

func (o *Op) ColumnCount() int {
	return len(o.bufs)
}

func (o *Op) HasNext() bool {
	return !o.done
}

func (o *Op) Next() *vector.Mask {
	if o.done {
		op.Exhausted("top")
	}
	o.done = true
	op.CheckColumn("top", o.parent, o.column)
	var seq int64
	for o.parent.HasNext() {
		mask := o.parent.Next()
		if mask.IsEmpty() {
			continue
		}
		seq = o.consume(mask, seq)
	}
	if o.sel == nil {
		return vector.None()
	}
	o.count = o.sel.len()
	o.reorder(o.sel.drain())
	o.octx.Logger.Debug("top", zap.Int("n", o.n), zap.Int("rows", o.count))
	return vector.All(o.count)
}

// consume offers every row of the batch to the selector, then copies the
// accepted rows into their slots.  A slot may be written more than once
// within a batch; the copies are applied in row order so the last one wins.
func (o *Op) consume(mask *vector.Mask, seq int64) int64 {
	keys := o.parent.Column(o.column)
	if o.sel == nil {
		o.sel = newSelector(keys.Kind(), o.n)
	}
	o.positions = o.positions[:0]
	o.slots = o.slots[:0]
	for k := 0; k < mask.Count(); k++ {
		pos := mask.Position(k)
		if slot, ok := o.sel.offer(keys, pos, seq); ok {
			o.positions = append(o.positions, pos)
			o.slots = append(o.slots, slot)
		}
		seq++
	}
	if len(o.positions) == 0 {
		return seq
	}
	o.parent.Constrain(vector.Sparse(o.positions))
	for i := range o.bufs {
		src := o.parent.Column(i)
		if o.bufs[i] == nil {
			o.bufs[i] = o.octx.Alloc.Allocate(o.actx, src.Kind(), o.n)
		}
		for k, pos := range o.positions {
			vector.CopyRow(o.bufs[i], o.slots[k], src, pos)
		}
	}
	return seq
}

// reorder permutes the buffers in place so that the row in slots[p] ends up
// at position p.
func (o *Op) reorder(slots []int) {
	// at[p] is the slot whose row is at position p and where is its inverse.
	at := make([]int, len(slots))
	where := make([]int, len(slots))
	for i := range at {
		at[i] = i
		where[i] = i
	}
	for p, s := range slots {
		q := where[s]
		if q == p {
			continue
		}
		for _, buf := range o.bufs {
			vector.SwapRows(buf, p, q)
		}
		t := at[p]
		at[p], at[q] = s, t
		where[s], where[t] = p, q
	}
}

// Constrain is a no-op since the output is computed by Next.
func (*Op) Constrain(*vector.Mask) {}

func (o *Op) Column(i int) vector.Any {
	op.CheckColumn("top", o, i)
	if o.bufs[i] == nil {
		o.bufs[i] = o.octx.Alloc.Reallocate(o.actx, nil, vector.Int64, 0)
	}
	return o.bufs[i]
}

func (o *Op) Close() error {
	err := o.parent.Close()
	o.octx.Alloc.Release(o.actx)
	return err
}
