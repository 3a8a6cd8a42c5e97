package filter_test

import (
	"testing"

	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/runtime"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/runtime/op/filter"
	"github.com/brimdata/nitro/runtime/op/generator"
	"github.com/brimdata/nitro/runtime/op/limit"
	"github.com/brimdata/nitro/runtime/op/mock"
	"github.com/brimdata/nitro/vector"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequences(octx *op.Context, rows int64, starts ...int64) *generator.Op {
	var gens []generator.Generator
	for _, s := range starts {
		gens = append(gens, generator.Sequence(s))
	}
	return generator.New(octx, rows, 10, gens...)
}

func TestFilterOverLimit(t *testing.T) {
	octx := op.DefaultContext()
	f := filter.New(limit.New(sequences(octx, 50, 0, 100), 15), 0, filter.I64(func(v int64) bool {
		return v < 10 || v > 40
	}))
	rows, err := runtime.Rows(f)
	require.NoError(t, err)
	var expected []nitro.Row
	for i := int64(0); i < 10; i++ {
		expected = append(expected, nitro.Ints(i, 100+i))
	}
	assert.Equal(t, expected, rows)

	f = filter.New(limit.New(sequences(octx, 50, 0, 100), 15), 0, filter.I64(func(v int64) bool {
		return v%2 == 0
	}))
	rows, err = runtime.Rows(f)
	require.NoError(t, err)
	expected = nil
	for i := int64(0); i < 15; i += 2 {
		expected = append(expected, nitro.Ints(i, 100+i))
	}
	assert.Equal(t, expected, rows)
}

func TestFilterOverFilter(t *testing.T) {
	octx := op.DefaultContext()
	inner := filter.New(sequences(octx, 50, 0), 0, filter.I64(func(v int64) bool { return v%3 == 0 }))
	f := filter.New(inner, 0, filter.I64(func(v int64) bool { return v%2 == 0 }))
	rows, err := runtime.Rows(f)
	require.NoError(t, err)
	var expected []nitro.Row
	for i := int64(0); i < 50; i += 6 {
		expected = append(expected, nitro.Ints(i))
	}
	assert.Equal(t, expected, rows)
}

func TestFilterTrueIsIdentity(t *testing.T) {
	octx := op.DefaultContext()
	all, err := runtime.Rows(sequences(octx, 37, 5, 9))
	require.NoError(t, err)
	f := filter.New(sequences(octx, 37, 5, 9), 1, filter.I64(func(int64) bool { return true }))
	rows, err := runtime.Rows(f)
	require.NoError(t, err)
	assert.Equal(t, all, rows)
}

func TestNullsNeverMatch(t *testing.T) {
	vec := vector.NewFloat(3)
	vec.Set(0, 1.5)
	vec.SetNull(1)
	vec.Set(2, -2)
	p := filter.F64(func(float64) bool { return true })
	assert.True(t, p.Test(vec, 0))
	assert.False(t, p.Test(vec, 1))
	assert.False(t, filter.F64(func(v float64) bool { return v > 0 }).Test(vec, 2))
}

func TestConstrainPushDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	parent := mock.NewMockOperator(ctrl)
	col := vector.NewInt(4)
	copy(col.Values, []int64{5, 6, 7, 8})
	parent.EXPECT().ColumnCount().Return(1).AnyTimes()
	parent.EXPECT().HasNext().Return(true)
	parent.EXPECT().Next().Return(vector.All(4))
	parent.EXPECT().Column(0).Return(col)
	parent.EXPECT().Constrain(vector.Sparse([]int{1, 3}))

	f := filter.New(parent, 0, filter.I64(func(v int64) bool { return v%2 == 0 }))
	mask := f.Next()
	assert.Equal(t, []int{1, 3}, mask.Positions())

	parent.EXPECT().Constrain(vector.Sparse([]int{3}))
	f.Constrain(vector.Sparse([]int{3}))

	parent.EXPECT().Close().Return(nil)
	require.NoError(t, f.Close())
}
