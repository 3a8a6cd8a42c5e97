// Package table implements a source that replays pre-built pages.
package table

import (
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
)

// Page is one batch of a table.  Every column must be at least
// Mask.MaxPosition()+1 long.
type Page struct {
	Columns []vector.Any
	Mask    *vector.Mask
}

type Op struct {
	width   int
	pages   []Page
	current int
}

var _ op.Operator = (*Op)(nil)

func New(width int, pages []Page) (*Op, error) {
	for k, p := range pages {
		if len(p.Columns) != width {
			return nil, errors.E(errors.Invalid, "table: page %d has %d columns, expected %d", k, len(p.Columns), width)
		}
		for i, col := range p.Columns {
			if col.Len() <= p.Mask.MaxPosition() {
				return nil, errors.E(errors.Invalid, "table: page %d column %d is shorter than its mask", k, i)
			}
		}
	}
	return &Op{width: width, pages: pages, current: -1}, nil
}

func (o *Op) ColumnCount() int {
	return o.width
}

func (o *Op) HasNext() bool {
	return o.current < len(o.pages)-1
}

func (o *Op) Next() *vector.Mask {
	if !o.HasNext() {
		op.Exhausted("table")
	}
	o.current++
	return o.pages[o.current].Mask
}

func (*Op) Constrain(*vector.Mask) {}

func (o *Op) Column(i int) vector.Any {
	op.CheckColumn("table", o, i)
	return o.pages[o.current].Columns[i]
}

func (*Op) Close() error {
	return nil
}
