// Package generator implements a source that synthesizes int64 columns from
// value generators, e.g., arithmetic sequences.
package generator

import (
	"math"

	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
)

// Generator produces an unbounded stream of int64 values.
type Generator interface {
	// Next advances to the next value and returns it.  A false ok means
	// the value is null.
	Next() (val int64, ok bool)
	// Skip advances past n values without producing them.
	Skip(n int)
}

type sequence struct {
	start, max int64
	current    int64
}

// Sequence returns a generator of start, start+1, start+2, ...
func Sequence(start int64) Generator {
	return SequenceRange(start, math.MaxInt64)
}

// SequenceRange returns a generator of start, start+1, ..., max-1 that
// wraps back to start after max-1.
func SequenceRange(start, max int64) Generator {
	return &sequence{start: start, max: max, current: start - 1}
}

func (s *sequence) Next() (int64, bool) {
	s.current++
	if s.current == s.max {
		s.current = s.start
	}
	return s.current, true
}

func (s *sequence) Skip(n int) {
	s.current += int64(n)
	if s.current >= s.max {
		s.current = s.start + (s.current-s.max)%(s.max-s.start)
	}
}

type constant int64

// Constant returns a generator that repeats v.
func Constant(v int64) Generator {
	return constant(v)
}

func (c constant) Next() (int64, bool) {
	return int64(c), true
}

func (constant) Skip(int) {}

type null struct{}

// Null returns a generator of nulls.
func Null() Generator {
	return null{}
}

func (null) Next() (int64, bool) {
	return 0, false
}

func (null) Skip(int) {}

// Op produces rows from a list of generators, one per column.  A column is
// only generated when it is first requested for a batch; generators of
// columns that were never requested skip ahead at the next batch.
type Op struct {
	octx       *op.Context
	actx       alloc.Context
	batchSize  int
	remaining  int64
	generators []Generator
	results    []*vector.Int
	filled     []bool
	current    int
	mask       *vector.Mask
}

var _ op.Operator = (*Op)(nil)

func New(octx *op.Context, rows int64, batchSize int, generators ...Generator) *Op {
	if batchSize <= 0 {
		batchSize = op.DefaultBatchSize
	}
	actx := octx.AllocContext("generator")
	results := make([]*vector.Int, 0, len(generators))
	for range generators {
		results = append(results, vector.AsInt(octx.Alloc.Allocate(actx, vector.Int64, batchSize)))
	}
	return &Op{
		octx:       octx,
		actx:       actx,
		batchSize:  batchSize,
		remaining:  rows,
		generators: generators,
		results:    results,
		filled:     make([]bool, len(generators)),
	}
}

func (o *Op) ColumnCount() int {
	return len(o.generators)
}

func (o *Op) HasNext() bool {
	return o.remaining > 0
}

func (o *Op) Next() *vector.Mask {
	if !o.HasNext() {
		op.Exhausted("generator")
	}
	for i, filled := range o.filled {
		if !filled {
			o.generators[i].Skip(o.current)
		}
		o.filled[i] = false
	}
	o.current = int(min(o.remaining, int64(o.batchSize)))
	o.remaining -= int64(o.current)
	if o.mask == nil || !o.mask.IsAll() || o.mask.Count() != o.current {
		o.mask = vector.All(o.current)
	}
	return o.mask
}

func (o *Op) Constrain(mask *vector.Mask) {
	o.mask = mask
}

func (o *Op) Column(i int) vector.Any {
	op.CheckColumn("generator", o, i)
	result := o.results[i]
	if o.filled[i] || o.mask.IsEmpty() {
		return result
	}
	o.filled[i] = true
	gen := o.generators[i]
	for pos := 0; pos < o.current; pos++ {
		if v, ok := gen.Next(); ok {
			result.Set(pos, v)
		} else {
			result.SetNull(pos)
		}
	}
	return result
}

func (o *Op) Close() error {
	o.octx.Alloc.Release(o.actx)
	return nil
}
