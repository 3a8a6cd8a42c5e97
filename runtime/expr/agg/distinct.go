package agg

import (
	"encoding/binary"
	"math"

	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/axiomhq/hyperloglog"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/vector"
)

// keyBits returns the value at pos of vec as 64 bits and whether it is
// non-null.  Float -0 is folded into +0.
func keyBits(vec vector.Any, pos int) (uint64, bool) {
	switch vec := vec.(type) {
	case *vector.Int:
		return uint64(vec.Values[pos]), !vec.Nulls[pos]
	case *vector.Float:
		v := vec.Values[pos]
		if v == 0 {
			v = 0
		}
		return math.Float64bits(v), !vec.Nulls[pos]
	}
	errors.Panic(errors.Unimplemented, "distinct values of %T", vec)
	return 0, false
}

// distinct is the skeleton shared by accumulators that keep a set-like
// structure per group outside the state vector.
type distinct[S any] struct {
	column int
	sets   []S
	create func() S
	insert func(S, uint64)
	size   func(S) int64
}

func (d *distinct[S]) Initialize(state vector.Any, offset, length int) {
	zero(vector.AsInt(state), offset, length)
	if n := offset + length; len(d.sets) < n {
		d.sets = append(d.sets, make([]S, n-len(d.sets))...)
	}
	for slot := offset; slot < offset+length; slot++ {
		d.sets[slot] = d.create()
	}
}

func (d *distinct[S]) Accumulate(_ vector.Any, group int, mask *vector.Mask, columns ColumnAccessor) {
	vec := columns(d.column)
	set := d.sets[group]
	for _, pos := range mask.Positions() {
		if key, ok := keyBits(vec, pos); ok {
			d.insert(set, key)
		}
	}
}

func (d *distinct[S]) AccumulateGroups(_ vector.Any, groups *vector.Int, mask *vector.Mask, columns ColumnAccessor) {
	vec := columns(d.column)
	for _, pos := range mask.Positions() {
		if key, ok := keyBits(vec, pos); ok {
			d.insert(d.sets[groups.Values[pos]], key)
		}
	}
}

func (d *distinct[S]) Result(maxGroup int, state vector.Any, _ vector.Any) vector.Any {
	s := vector.AsInt(state)
	for slot := 0; slot <= maxGroup; slot++ {
		s.Set(slot, d.size(d.sets[slot]))
	}
	return s
}

// DCount estimates the number of distinct non-null values of a column with
// a hyperloglog sketch per group.
func DCount(column int) Accumulator {
	var scratch [8]byte
	return &distinct[*hyperloglog.Sketch]{
		column: column,
		create: hyperloglog.New,
		insert: func(sketch *hyperloglog.Sketch, key uint64) {
			binary.BigEndian.PutUint64(scratch[:], key)
			sketch.Insert(scratch[:])
		},
		size: func(sketch *hyperloglog.Sketch) int64 {
			return int64(sketch.Estimate())
		},
	}
}

// CountDistinct counts the distinct non-null values of a column exactly
// with a roaring bitmap per group.
func CountDistinct(column int) Accumulator {
	return &distinct[*roaring64.Bitmap]{
		column: column,
		create: roaring64.NewBitmap,
		insert: func(b *roaring64.Bitmap, key uint64) {
			b.Add(key)
		},
		size: func(b *roaring64.Bitmap) int64 {
			return int64(b.GetCardinality())
		},
	}
}
