// Package values implements a source that emits a constant table of rows
// as a single batch.
package values

import (
	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
)

type Op struct {
	octx    *op.Context
	actx    alloc.Context
	columns []*vector.Int
	count   int
	done    bool
}

var _ op.Operator = (*Op)(nil)

// New builds the table from rows, each of which must have width columns.
func New(octx *op.Context, width int, rows []nitro.Row) (*Op, error) {
	actx := octx.AllocContext("values")
	columns := make([]*vector.Int, width)
	for i := range columns {
		columns[i] = vector.AsInt(octx.Alloc.Allocate(actx, vector.Int64, len(rows)))
	}
	for pos, row := range rows {
		if len(row) != width {
			octx.Alloc.Release(actx)
			return nil, errors.E(errors.Invalid, "values: row %d has %d columns, expected %d", pos, len(row), width)
		}
		for i, v := range row {
			if v == nil {
				columns[i].SetNull(pos)
			} else {
				columns[i].Set(pos, *v)
			}
		}
	}
	return &Op{
		octx:    octx,
		actx:    actx,
		columns: columns,
		count:   len(rows),
	}, nil
}

func (o *Op) ColumnCount() int {
	return len(o.columns)
}

func (o *Op) HasNext() bool {
	return !o.done
}

func (o *Op) Next() *vector.Mask {
	if o.done {
		op.Exhausted("values")
	}
	o.done = true
	return vector.All(o.count)
}

func (*Op) Constrain(*vector.Mask) {}

func (o *Op) Column(i int) vector.Any {
	op.CheckColumn("values", o, i)
	return o.columns[i]
}

func (o *Op) Close() error {
	o.octx.Alloc.Release(o.actx)
	return nil
}
