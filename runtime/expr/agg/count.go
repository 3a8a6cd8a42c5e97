package agg

import (
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/vector"
)

type countAll struct{}

// CountAll counts rows, null or not.
func CountAll() Accumulator {
	return countAll{}
}

func (countAll) Initialize(state vector.Any, offset, length int) {
	zero(vector.AsInt(state), offset, length)
}

func (countAll) Accumulate(state vector.Any, group int, mask *vector.Mask, _ ColumnAccessor) {
	vector.AsInt(state).Values[group] += int64(mask.Count())
}

func (countAll) AccumulateGroups(state vector.Any, groups *vector.Int, mask *vector.Mask, _ ColumnAccessor) {
	s := vector.AsInt(state)
	for _, pos := range mask.Positions() {
		s.Values[groups.Values[pos]]++
	}
}

func (countAll) Result(_ int, state vector.Any, _ vector.Any) vector.Any {
	return state
}

type count struct {
	column int
}

// Count counts the non-null values of a column of any kind.
func Count(column int) Accumulator {
	return &count{column}
}

func (*count) Initialize(state vector.Any, offset, length int) {
	zero(vector.AsInt(state), offset, length)
}

func (c *count) Accumulate(state vector.Any, group int, mask *vector.Mask, columns ColumnAccessor) {
	nulls := nullsOf(columns(c.column))
	var n int64
	for _, pos := range mask.Positions() {
		if !nulls[pos] {
			n++
		}
	}
	vector.AsInt(state).Values[group] += n
}

func (c *count) AccumulateGroups(state vector.Any, groups *vector.Int, mask *vector.Mask, columns ColumnAccessor) {
	s := vector.AsInt(state)
	nulls := nullsOf(columns(c.column))
	for _, pos := range mask.Positions() {
		if !nulls[pos] {
			s.Values[groups.Values[pos]]++
		}
	}
}

func (*count) Result(_ int, state vector.Any, _ vector.Any) vector.Any {
	return state
}

func zero(state *vector.Int, offset, length int) {
	for slot := offset; slot < offset+length; slot++ {
		state.Set(slot, 0)
	}
}

func nullsOf(vec vector.Any) []bool {
	switch vec := vec.(type) {
	case *vector.Int:
		return vec.Nulls
	case *vector.Float:
		return vec.Nulls
	}
	errors.Panic(errors.Unimplemented, "null flags of %T", vec)
	return nil
}
