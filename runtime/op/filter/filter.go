// Package filter implements an operator that keeps the rows whose value in
// one column satisfies a predicate.
package filter

import (
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
)

type Op struct {
	parent    op.Operator
	column    int
	predicate Predicate
	mask      *vector.Mask
	// positions is reused across batches and only ever grows.
	positions []int
}

var _ op.Operator = (*Op)(nil)

func New(parent op.Operator, column int, predicate Predicate) *Op {
	op.CheckColumn("filter", parent, column)
	return &Op{
		parent:    parent,
		column:    column,
		predicate: predicate,
	}
}

func (o *Op) ColumnCount() int {
	return o.parent.ColumnCount()
}

func (o *Op) HasNext() bool {
	return o.parent.HasNext()
}

// Next evaluates the predicate over the active positions of the parent's
// next batch and constrains the parent to the survivors.
func (o *Op) Next() *vector.Mask {
	if !o.parent.HasNext() {
		op.Exhausted("filter")
	}
	mask := o.parent.Next()
	if cap(o.positions) < mask.Count() {
		o.positions = make([]int, mask.Count())
	}
	out := o.positions[:0]
	if !mask.IsEmpty() {
		vec := o.parent.Column(o.column)
		for _, pos := range mask.Positions() {
			if o.predicate.Test(vec, pos) {
				out = append(out, pos)
			}
		}
	}
	o.mask = vector.Sparse(out)
	o.parent.Constrain(o.mask)
	return o.mask
}

func (o *Op) Constrain(mask *vector.Mask) {
	o.mask = mask
	o.parent.Constrain(mask)
}

func (o *Op) Column(i int) vector.Any {
	return o.parent.Column(i)
}

func (o *Op) Close() error {
	return o.parent.Close()
}
