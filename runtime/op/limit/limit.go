// Package limit implements an operator that passes through at most a fixed
// number of rows.
package limit

import (
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
)

type Op struct {
	parent op.Operator
	limit  int64
	count  int64
}

var _ op.Operator = (*Op)(nil)

func New(parent op.Operator, limit int64) *Op {
	return &Op{
		parent: parent,
		limit:  limit,
	}
}

func (o *Op) ColumnCount() int {
	return o.parent.ColumnCount()
}

// HasNext is false once the limit is reached even if the parent has more
// batches.
func (o *Op) HasNext() bool {
	return o.count < o.limit && o.parent.HasNext()
}

func (o *Op) Next() *vector.Mask {
	if !o.HasNext() {
		op.Exhausted("limit")
	}
	mask := o.parent.Next()
	remaining := op.IntExact(min(o.limit-o.count, int64(mask.Count())))
	mask = mask.First(remaining)
	o.parent.Constrain(mask)
	o.count = op.AddExact(o.count, int64(remaining))
	return mask
}

func (o *Op) Constrain(mask *vector.Mask) {
	o.parent.Constrain(mask)
}

func (o *Op) Column(i int) vector.Any {
	return o.parent.Column(i)
}

func (o *Op) Close() error {
	return o.parent.Close()
}
