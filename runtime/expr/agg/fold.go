package agg

import (
	"github.com/brimdata/nitro/anymath"
	"github.com/brimdata/nitro/vector"
)

// fold is an accumulator whose state and input share a kind and whose
// update of a slot depends only on that slot and one input row.
type fold[T vector.Number] struct {
	column int
	init   func(state *vector.Flat[T], slot int)
	step   func(state *vector.Flat[T], slot int, in *vector.Flat[T], pos int)
}

func (f *fold[T]) StateKind() vector.Kind {
	var zero T
	if _, ok := any(zero).(float64); ok {
		return vector.Float64
	}
	return vector.Int64
}

func (f *fold[T]) Initialize(state vector.Any, offset, length int) {
	s := vector.AsFlat[T](state)
	for slot := offset; slot < offset+length; slot++ {
		f.init(s, slot)
	}
}

func (f *fold[T]) Accumulate(state vector.Any, group int, mask *vector.Mask, columns ColumnAccessor) {
	s := vector.AsFlat[T](state)
	in := vector.AsFlat[T](columns(f.column))
	for _, pos := range mask.Positions() {
		f.step(s, group, in, pos)
	}
}

func (f *fold[T]) AccumulateGroups(state vector.Any, groups *vector.Int, mask *vector.Mask, columns ColumnAccessor) {
	s := vector.AsFlat[T](state)
	in := vector.AsFlat[T](columns(f.column))
	for _, pos := range mask.Positions() {
		f.step(s, int(groups.Values[pos]), in, pos)
	}
}

func (*fold[T]) Result(_ int, state vector.Any, _ vector.Any) vector.Any {
	return state
}

func setNull[T vector.Number](state *vector.Flat[T], slot int) {
	state.SetNull(slot)
}

// reduce is a fold that skips null inputs, seeds an empty slot with the
// first non-null input, and otherwise merges with fn.  A slot with no
// non-null input stays null.
func reduce[T vector.Number](column int, fn *anymath.Function) *fold[T] {
	merge := anymath.Of[T](fn)
	return &fold[T]{
		column: column,
		init:   setNull[T],
		step: func(state *vector.Flat[T], slot int, in *vector.Flat[T], pos int) {
			if in.Nulls[pos] {
				return
			}
			v := in.Values[pos]
			if state.Nulls[slot] {
				state.Set(slot, v)
				return
			}
			state.Values[slot] = merge(state.Values[slot], v)
		},
	}
}

// Sum is the null-skipping sum of an int64 column.
func Sum(column int) Accumulator {
	return reduce[int64](column, anymath.Add)
}

// SumF64 is the null-skipping sum of a float64 column.
func SumF64(column int) Accumulator {
	return reduce[float64](column, anymath.Add)
}

func Min(column int) Accumulator {
	return reduce[int64](column, anymath.Min)
}

func Max(column int) Accumulator {
	return reduce[int64](column, anymath.Max)
}

func MinF64(column int) Accumulator {
	return reduce[float64](column, anymath.Min)
}

func MaxF64(column int) Accumulator {
	return reduce[float64](column, anymath.Max)
}

// First keeps the first non-null value of an int64 column.
func First(column int) Accumulator {
	return &fold[int64]{
		column: column,
		init:   setNull[int64],
		step: func(state *vector.Int, slot int, in *vector.Int, pos int) {
			if state.Nulls[slot] && !in.Nulls[pos] {
				state.Set(slot, in.Values[pos])
			}
		},
	}
}
