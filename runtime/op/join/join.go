// Package join implements a block nested-loop cross join.
//
// The inner (build) side is read once, compacted into dense batches of at
// most BatchSize rows.  The outer (probe) side is then streamed: each of its
// batches is paired with each inner batch, and every pairing is emitted as a
// sequence of steps.  A step either broadcasts one outer row against the
// remaining rows of the inner batch, or one inner row against the remaining
// rows of the outer batch, whichever side has fewer rows left.
package join

import (
	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const BatchSize = 1024

type batch struct {
	cols  []vector.Any
	count int
}

type step int

const (
	none step = iota
	outerRow
	innerRow
)

// Op emits the outer columns followed by the inner columns of every pair of
// outer and inner rows.
type Op struct {
	octx      *op.Context
	actx      alloc.Context
	outer     op.Operator
	inner     op.Operator
	batchSize int
	loaded    bool
	batches   []*batch

	// The current outer mask is paired with batches[bi].  Every pair
	// involving one of its first oi rows or one of the batch's first ii
	// rows has been emitted.
	outerMask *vector.Mask
	bi        int
	oi        int
	ii        int

	step   step
	row    int
	mask   *vector.Mask
	bufs   []vector.Any
	out    []vector.Any
	filled []bool
}

var _ op.Operator = (*Op)(nil)

func New(octx *op.Context, outer, inner op.Operator, batchSize int) *Op {
	if batchSize <= 0 {
		batchSize = BatchSize
	}
	n := outer.ColumnCount() + inner.ColumnCount()
	return &Op{
		octx:      octx,
		actx:      octx.AllocContext("join"),
		outer:     outer,
		inner:     inner,
		batchSize: batchSize,
		bufs:      make([]vector.Any, n),
		out:       make([]vector.Any, n),
		filled:    make([]bool, n),
	}
}

func (o *Op) ColumnCount() int {
	return len(o.out)
}

func (o *Op) load() {
	if o.loaded {
		return
	}
	o.loaded = true
	width := o.inner.ColumnCount()
	var cur *batch
	var rows int
	for o.inner.HasNext() {
		mask := o.inner.Next()
		for rest := mask; !rest.IsEmpty(); {
			if cur == nil || cur.count == o.batchSize {
				cur = &batch{cols: make([]vector.Any, width)}
				for j := range cur.cols {
					kind := o.inner.Column(j).Kind()
					cur.cols[j] = o.octx.Alloc.Allocate(o.actx, kind, o.batchSize)
				}
				o.batches = append(o.batches, cur)
			}
			n := min(o.batchSize-cur.count, rest.Count())
			piece := rest.First(n)
			for j, col := range cur.cols {
				vector.CopyCompact(col, cur.count, o.inner.Column(j), piece)
			}
			cur.count += n
			rows += n
			rest = rest.Last(rest.Count() - n)
		}
	}
	o.octx.Logger.Debug("join build",
		zap.Int("rows", rows),
		zap.Int("batches", len(o.batches)))
}

// ready reports whether the current outer mask and inner batch still have
// pairs to emit, moving on to the next inner batch when they don't.
func (o *Op) ready() bool {
	for o.outerMask != nil && o.bi < len(o.batches) {
		if o.oi < o.outerMask.Count() && o.ii < o.batches[o.bi].count {
			return true
		}
		o.bi++
		o.oi, o.ii = 0, 0
	}
	return false
}

func (o *Op) HasNext() bool {
	o.load()
	if len(o.batches) == 0 {
		return false
	}
	return o.ready() || o.outer.HasNext()
}

func (o *Op) Next() *vector.Mask {
	if !o.HasNext() {
		op.Exhausted("join")
	}
	for i := range o.filled {
		o.filled[i] = false
	}
	for !o.ready() {
		if !o.outer.HasNext() {
			o.step = none
			o.mask = vector.None()
			return o.mask
		}
		o.outerMask = o.outer.Next()
		o.bi, o.oi, o.ii = 0, 0, 0
	}
	b := o.batches[o.bi]
	outerLeft := o.outerMask.Count() - o.oi
	innerLeft := b.count - o.ii
	if outerLeft < innerLeft {
		o.step = outerRow
		o.row = o.outerMask.Position(o.oi)
		o.mask = vector.Range(o.ii, innerLeft)
		o.oi++
	} else {
		o.step = innerRow
		o.row = o.ii
		o.mask = o.outerMask.Last(outerLeft)
		o.ii++
	}
	return o.mask
}

// Constrain is ignored since the output of a step is produced in full.
func (*Op) Constrain(*vector.Mask) {}

func (o *Op) Column(i int) vector.Any {
	op.CheckColumn("join", o, i)
	if o.filled[i] {
		return o.out[i]
	}
	width := o.outer.ColumnCount()
	switch o.step {
	case outerRow:
		if i < width {
			o.out[i] = o.replicate(i, o.outer.Column(i), o.mask)
		} else {
			o.out[i] = o.batches[o.bi].cols[i-width]
		}
	case innerRow:
		if i < width {
			o.out[i] = o.outer.Column(i)
		} else {
			o.out[i] = o.replicate(i, o.batches[o.bi].cols[i-width], o.mask)
		}
	default:
		// The outer side produced at least one mask before running dry, so
		// its columns are still readable.
		var kind vector.Kind
		if i < width {
			kind = o.outer.Column(i).Kind()
		} else {
			kind = o.batches[0].cols[i-width].Kind()
		}
		o.bufs[i] = o.octx.Alloc.Reallocate(o.actx, o.bufs[i], kind, 0)
		o.out[i] = o.bufs[i]
	}
	o.filled[i] = true
	return o.out[i]
}

// replicate copies the value at o.row of src into every position of mask
// in the buffer for column i.
func (o *Op) replicate(i int, src vector.Any, mask *vector.Mask) vector.Any {
	end := mask.MaxPosition() + 1
	buf := o.octx.Alloc.Reallocate(o.actx, o.bufs[i], src.Kind(), end)
	vector.Replicate(buf, mask.Position(0), end, src, o.row)
	o.bufs[i] = buf
	return buf
}

func (o *Op) Close() error {
	err := multierr.Append(o.outer.Close(), o.inner.Close())
	o.octx.Alloc.Release(o.actx)
	return err
}
