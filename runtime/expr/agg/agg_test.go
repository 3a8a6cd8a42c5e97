package agg

import (
	"testing"

	"github.com/brimdata/nitro/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(vals ...int64) *vector.Int {
	v := vector.NewInt(len(vals))
	copy(v.Values, vals)
	return v
}

func accessor(cols ...vector.Any) ColumnAccessor {
	return func(i int) vector.Any { return cols[i] }
}

func run(t *testing.T, acc Accumulator, mask *vector.Mask, cols ...vector.Any) vector.Any {
	t.Helper()
	state := vector.New(StateKind(acc), 1)
	acc.Initialize(state, 0, 1)
	acc.Accumulate(state, 0, mask, accessor(cols...))
	return acc.Result(0, state, nil)
}

func TestGlobal(t *testing.T) {
	in := ints(5, 3, 9, 4)
	in.SetNull(2)
	mask := vector.All(4)
	cases := []struct {
		acc      Accumulator
		expected int64
	}{
		{Sum(0), 12},
		{Min(0), 3},
		{Max(0), 5},
		{First(0), 5},
		{CountAll(), 4},
		{Count(0), 3},
		{CountDistinct(0), 3},
		{DCount(0), 3},
	}
	for _, c := range cases {
		out := vector.AsInt(run(t, c.acc, mask, in))
		assert.False(t, out.Nulls[0])
		assert.Equal(t, c.expected, out.Values[0], "%T", c.acc)
	}
}

func TestNullUntilInput(t *testing.T) {
	in := ints(1, 2)
	in.SetNull(0)
	in.SetNull(1)
	for _, acc := range []Accumulator{Sum(0), Min(0), Max(0), First(0)} {
		assert.True(t, vector.AsInt(run(t, acc, vector.All(2), in)).Nulls[0])
		assert.True(t, vector.AsInt(run(t, acc, vector.None(), in)).Nulls[0])
	}
	out := vector.AsInt(run(t, CountAll(), vector.All(2), in))
	assert.Equal(t, int64(2), out.Values[0])
}

func TestFirstSkipsLeadingNull(t *testing.T) {
	in := ints(0, 8, 9)
	in.SetNull(0)
	assert.Equal(t, int64(8), vector.AsInt(run(t, First(0), vector.All(3), in)).Values[0])
}

func TestFloat(t *testing.T) {
	in := vector.NewFloat(3)
	in.Set(0, 1.5)
	in.Set(1, -2)
	in.Set(2, 4)
	assert.Equal(t, vector.Float64, StateKind(SumF64(0)))
	assert.Equal(t, 3.5, vector.AsFloat(run(t, SumF64(0), vector.All(3), in)).Values[0])
	assert.Equal(t, -2.0, vector.AsFloat(run(t, MinF64(0), vector.All(3), in)).Values[0])
	assert.Equal(t, 4.0, vector.AsFloat(run(t, MaxF64(0), vector.Sparse([]int{0, 2}), in)).Values[0])
	assert.Equal(t, int64(3), vector.AsInt(run(t, Count(0), vector.All(3), in)).Values[0])
}

func TestGroups(t *testing.T) {
	in := ints(10, 20, 30, 40, 10)
	groups := ints(0, 1, 0, 1, 1)
	mask := vector.All(5)
	for _, c := range []struct {
		acc      Accumulator
		expected []int64
	}{
		{Sum(0), []int64{40, 70}},
		{Min(0), []int64{10, 10}},
		{Max(0), []int64{30, 40}},
		{First(0), []int64{10, 20}},
		{CountAll(), []int64{2, 3}},
		{CountDistinct(0), []int64{2, 3}},
	} {
		state := vector.NewInt(4)
		c.acc.Initialize(state, 0, 2)
		c.acc.AccumulateGroups(state, groups, mask, accessor(in))
		out := vector.AsInt(c.acc.Result(1, state, nil))
		assert.Equal(t, c.expected, out.Values[:2], "%T", c.acc)
	}
}

func TestInitializeExtends(t *testing.T) {
	acc := CountDistinct(0)
	state := vector.NewInt(4)
	acc.Initialize(state, 0, 1)
	acc.Accumulate(state, 0, vector.All(2), accessor(ints(1, 2)))
	acc.Initialize(state, 1, 3)
	acc.Accumulate(state, 3, vector.All(1), accessor(ints(7)))
	out := vector.AsInt(acc.Result(3, state, nil))
	assert.Equal(t, []int64{2, 0, 0, 1}, out.Values)
}

func TestLookup(t *testing.T) {
	acc, err := Lookup("sum", 2)
	require.NoError(t, err)
	assert.Equal(t, vector.Int64, StateKind(acc))
	_, err = Lookup("summ", 0)
	assert.EqualError(t, err, `no such accumulator: "summ" (did you mean "sum"?)`)
	assert.Contains(t, Names(), "count_distinct")
}
