package join_test

import (
	"testing"

	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/runtime"
	"github.com/brimdata/nitro/runtime/expr/function"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/runtime/op/filter"
	"github.com/brimdata/nitro/runtime/op/generator"
	"github.com/brimdata/nitro/runtime/op/join"
	"github.com/brimdata/nitro/runtime/op/project"
	"github.com/brimdata/nitro/runtime/op/values"
	"github.com/brimdata/nitro/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(t *testing.T, octx *op.Context, vals ...int64) *values.Op {
	rows := make([]nitro.Row, len(vals))
	for i, v := range vals {
		rows[i] = nitro.Ints(v)
	}
	o, err := values.New(octx, 1, rows)
	require.NoError(t, err)
	return o
}

func cross(outer, inner []nitro.Row) []nitro.Row {
	var rows []nitro.Row
	for _, o := range outer {
		for _, i := range inner {
			rows = append(rows, append(append(nitro.Row{}, o...), i...))
		}
	}
	return rows
}

func TestCrossJoin(t *testing.T) {
	octx := op.DefaultContext()
	j := join.New(octx, ints(t, octx, 1, 2, 3), ints(t, octx, 10, 20, 30), 0)
	require.Equal(t, 2, j.ColumnCount())
	rows, err := runtime.Rows(j)
	require.NoError(t, err)
	assert.ElementsMatch(t, []nitro.Row{
		nitro.Ints(1, 10), nitro.Ints(1, 20), nitro.Ints(1, 30),
		nitro.Ints(2, 10), nitro.Ints(2, 20), nitro.Ints(2, 30),
		nitro.Ints(3, 10), nitro.Ints(3, 20), nitro.Ints(3, 30),
	}, rows)
}

func TestSingleOuterRow(t *testing.T) {
	octx := op.DefaultContext()
	inner := generator.New(octx, 10, 5, generator.Sequence(0))
	rows, err := runtime.Rows(join.New(octx, ints(t, octx, 1), inner, 0))
	require.NoError(t, err)
	var expected []nitro.Row
	for i := int64(0); i < 10; i++ {
		expected = append(expected, nitro.Ints(1, i))
	}
	assert.ElementsMatch(t, expected, rows)
}

func TestShapes(t *testing.T) {
	cases := []struct {
		name       string
		outer      int64
		outerBatch int
		inner      int64
		innerBatch int
		joinBatch  int
	}{
		{"wide outer", 6, 2, 3, 1, 0},
		{"wide inner", 3, 3, 6, 4, 0},
		{"square", 4, 4, 4, 4, 0},
		{"split inner", 7, 3, 11, 5, 4},
		{"single inner batch row", 5, 5, 3, 3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			octx := op.DefaultContext()
			outer := generator.New(octx, c.outer, c.outerBatch, generator.Sequence(0), generator.Sequence(100))
			inner := generator.New(octx, c.inner, c.innerBatch, generator.Sequence(1000))
			rows, err := runtime.Rows(join.New(octx, outer, inner, c.joinBatch))
			require.NoError(t, err)
			var outerRows, innerRows []nitro.Row
			for i := int64(0); i < c.outer; i++ {
				outerRows = append(outerRows, nitro.Ints(i, 100+i))
			}
			for i := int64(0); i < c.inner; i++ {
				innerRows = append(innerRows, nitro.Ints(1000+i))
			}
			assert.ElementsMatch(t, cross(outerRows, innerRows), rows)
		})
	}
}

func TestSparseSides(t *testing.T) {
	octx := op.DefaultContext()
	odd := filter.I64(func(v int64) bool { return v%2 == 1 })
	outer := filter.New(generator.New(octx, 9, 4, generator.Sequence(0)), 0, odd)
	inner := filter.New(generator.New(octx, 6, 4, generator.Sequence(0), generator.Null()), 0, odd)
	rows, err := runtime.Rows(join.New(octx, outer, inner, 2))
	require.NoError(t, err)
	var expected []nitro.Row
	for _, o := range []int64{1, 3, 5, 7} {
		for _, i := range []int64{1, 3, 5} {
			expected = append(expected, nitro.NewRow(o, i, nil))
		}
	}
	assert.ElementsMatch(t, expected, rows)
}

func TestEmptySides(t *testing.T) {
	octx := op.DefaultContext()
	rows, err := runtime.Rows(join.New(octx, ints(t, octx, 1, 2, 3), ints(t, octx), 0))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = runtime.Rows(join.New(octx, ints(t, octx), ints(t, octx, 1, 2, 3), 0))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func floats(t *testing.T, octx *op.Context, rows int64) op.Operator {
	g := generator.New(octx, rows, 0, generator.Sequence(0))
	p, err := project.New(octx, g, project.Direct(vector.Float64, []int{0}, function.ToFloat))
	require.NoError(t, err)
	return p
}

func TestEmptyBatchKeepsKinds(t *testing.T) {
	octx := op.DefaultContext()
	never := filter.F64(func(float64) bool { return false })
	j := join.New(octx, filter.New(floats(t, octx, 4), 0, never), floats(t, octx, 2), 0)
	require.True(t, j.HasNext())
	assert.True(t, j.Next().IsEmpty())
	assert.Equal(t, vector.Float64, j.Column(0).Kind())
	assert.Equal(t, vector.Float64, j.Column(1).Kind())
	assert.False(t, j.HasNext())
	require.NoError(t, j.Close())
}

func TestExhausted(t *testing.T) {
	octx := op.DefaultContext()
	j := join.New(octx, ints(t, octx, 1), ints(t, octx), 0)
	assert.False(t, j.HasNext())
	assert.Panics(t, func() { j.Next() })
	assert.NoError(t, j.Close())
}
