package group_test

import (
	"testing"

	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/runtime"
	"github.com/brimdata/nitro/runtime/expr/function"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/runtime/op/generator"
	"github.com/brimdata/nitro/runtime/op/group"
	"github.com/brimdata/nitro/runtime/op/project"
	"github.com/brimdata/nitro/runtime/op/values"
	"github.com/brimdata/nitro/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup(t *testing.T) {
	octx := op.DefaultContext()
	g := generator.New(octx, 10, 10, generator.Sequence(100))
	p, err := project.New(octx, g, project.Direct(vector.Int64, []int{0}, function.DivConst(int64(3))))
	require.NoError(t, err)
	rows, err := runtime.Rows(group.New(octx, p, 0))
	require.NoError(t, err)
	assert.Equal(t, []nitro.Row{
		nitro.Ints(0, 33),
		nitro.Ints(0, 33),
		nitro.Ints(1, 34),
		nitro.Ints(1, 34),
		nitro.Ints(1, 34),
		nitro.Ints(2, 35),
		nitro.Ints(2, 35),
		nitro.Ints(2, 35),
		nitro.Ints(3, 36),
		nitro.Ints(3, 36),
	}, rows)
}

func TestFirstBatchColumn(t *testing.T) {
	octx := op.DefaultContext()
	grp := group.New(octx, generator.New(octx, 3, 3, generator.Sequence(100)), 0)
	grp.Next()
	var ids *vector.Int
	require.NotPanics(t, func() { ids = vector.AsInt(grp.Column(0)) })
	assert.Equal(t, []int64{0, 1, 2}, ids.Values)
	assert.Equal(t, 3, grp.Groups())
	require.NoError(t, grp.Close())
}

func TestFirstSeenOrderAcrossBatches(t *testing.T) {
	octx := op.DefaultContext()
	g := generator.New(octx, 10, 3, generator.Sequence(100))
	p, err := project.New(octx, g, project.Execution{
		Invocations: []project.Invocation{
			{Function: function.ModConst(int64(10)), Inputs: []int{-1}},
			{Function: function.AddConst(int64(13)), Inputs: []int{0}},
		},
		Outputs: []int{1},
	})
	require.NoError(t, err)
	grp := group.New(octx, p, 0)
	rows, err := runtime.Rows(grp)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	for i, row := range rows {
		assert.Equal(t, nitro.Ints(int64(i), int64(i)+13), row)
	}
	assert.Equal(t, 10, grp.Groups())
}

func TestNullKeys(t *testing.T) {
	octx := op.DefaultContext()
	v, err := values.New(octx, 2, []nitro.Row{
		nitro.NewRow(7, 1),
		nitro.NewRow(nil, 2),
		nitro.NewRow(8, 3),
		nitro.NewRow(7, nil),
	})
	require.NoError(t, err)
	rows, err := runtime.Rows(group.New(octx, v, 0))
	require.NoError(t, err)
	assert.Equal(t, []nitro.Row{
		nitro.NewRow(0, 7, 1),
		nitro.NewRow(nil, nil, 2),
		nitro.NewRow(1, 8, 3),
		nitro.NewRow(0, 7, nil),
	}, rows)
}

func TestConstrainSkipsDiscardedKeys(t *testing.T) {
	octx := op.DefaultContext()
	g := generator.New(octx, 6, 6, generator.Sequence(0))
	grp := group.New(octx, g, 0)
	grp.Next()
	grp.Constrain(vector.Sparse([]int{2, 5}))
	ids := vector.AsInt(grp.Column(0))
	assert.Equal(t, int64(0), ids.Values[2])
	assert.Equal(t, int64(1), ids.Values[5])
	assert.Equal(t, 2, grp.Groups())
}

func TestFloatKeys(t *testing.T) {
	octx := op.DefaultContext()
	g := generator.New(octx, 4, 4, generator.Sequence(0))
	p, err := project.New(octx, g, project.Execution{
		Invocations: []project.Invocation{
			{Function: function.ToFloat, Inputs: []int{-1}, Kind: vector.Float64},
			{Function: function.ModConst(2.0), Inputs: []int{0}, Kind: vector.Float64},
		},
		Outputs: []int{1},
	})
	require.NoError(t, err)
	grp := group.New(octx, p, 0)
	grp.Next()
	assert.Equal(t, []int64{0, 1, 0, 1}, vector.AsInt(grp.Column(0)).Values)
}
