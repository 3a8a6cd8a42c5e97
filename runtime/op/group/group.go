// Package group implements an operator that assigns a dense group id to each
// distinct value of one column.  Ids are handed out in the order values are
// first seen, starting at 0, and are stable for the lifetime of the
// operator.  The id is prepended to the parent's columns, and a null key
// yields a null id.
package group

import (
	"math"

	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"go.uber.org/zap"
)

type Op struct {
	octx   *op.Context
	actx   alloc.Context
	parent op.Operator
	column int
	// ids maps the bits of a key to its group id.
	ids    map[uint64]int64
	result *vector.Int
	filled bool
	mask   *vector.Mask
}

var _ op.Operator = (*Op)(nil)

func New(octx *op.Context, parent op.Operator, column int) *Op {
	op.CheckColumn("group", parent, column)
	return &Op{
		octx:   octx,
		actx:   octx.AllocContext("group"),
		parent: parent,
		column: column,
		ids:    make(map[uint64]int64),
	}
}

// Groups returns the number of distinct keys seen so far.
func (o *Op) Groups() int {
	return len(o.ids)
}

func (o *Op) ColumnCount() int {
	return o.parent.ColumnCount() + 1
}

func (o *Op) HasNext() bool {
	return o.parent.HasNext()
}

func (o *Op) Next() *vector.Mask {
	if !o.parent.HasNext() {
		op.Exhausted("group")
	}
	o.filled = false
	o.mask = o.parent.Next()
	return o.mask
}

// Constrain narrows the positions that receive ids in the current batch so
// keys of discarded rows are never assigned one.
func (o *Op) Constrain(mask *vector.Mask) {
	o.mask = mask
	o.parent.Constrain(mask)
}

func (o *Op) Column(i int) vector.Any {
	op.CheckColumn("group", o, i)
	if i > 0 {
		return o.parent.Column(i - 1)
	}
	if !o.filled {
		o.assign()
		o.filled = true
	}
	return o.result
}

func (o *Op) assign() {
	size := o.mask.MaxPosition() + 1
	var prev vector.Any
	if o.result != nil {
		prev = o.result
	}
	o.result = vector.AsInt(o.octx.Alloc.Reallocate(o.actx, prev, vector.Int64, size))
	if size == 0 {
		return
	}
	switch keys := o.parent.Column(o.column).(type) {
	case *vector.Float:
		for _, pos := range o.mask.Positions() {
			if keys.Nulls[pos] {
				o.result.SetNull(pos)
				continue
			}
			v := keys.Values[pos]
			if v == 0 {
				// Fold -0 into +0.
				v = 0
			}
			o.result.Set(pos, o.lookup(math.Float64bits(v)))
		}
	default:
		ints := vector.AsInt(keys)
		for _, pos := range o.mask.Positions() {
			if ints.Nulls[pos] {
				o.result.SetNull(pos)
				continue
			}
			o.result.Set(pos, o.lookup(uint64(ints.Values[pos])))
		}
	}
}

func (o *Op) lookup(key uint64) int64 {
	id, ok := o.ids[key]
	if !ok {
		id = int64(len(o.ids))
		op.ToInt32(id)
		o.ids[key] = id
	}
	return id
}

func (o *Op) Close() error {
	err := o.parent.Close()
	o.octx.Logger.Debug("group", zap.Int("groups", len(o.ids)))
	o.octx.Alloc.Release(o.actx)
	return err
}
