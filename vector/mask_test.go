package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskDense(t *testing.T) {
	m := Range(3, 4)
	assert.True(t, m.IsDense())
	assert.False(t, m.IsAll())
	assert.Equal(t, 4, m.Count())
	assert.Equal(t, 6, m.MaxPosition())
	assert.Equal(t, []int{3, 4, 5, 6}, m.Positions())
	assert.Equal(t, "[3:7)", m.String())
	assert.True(t, All(5).IsAll())
}

func TestMaskEmpty(t *testing.T) {
	for _, m := range []*Mask{None(), All(0), Sparse(nil), Range(9, 0)} {
		assert.True(t, m.IsEmpty())
		assert.Equal(t, -1, m.MaxPosition())
		assert.Len(t, m.Positions(), 0)
	}
}

func TestMaskSparse(t *testing.T) {
	m := Sparse([]int{1, 4, 9})
	assert.False(t, m.IsDense())
	assert.False(t, m.IsAll())
	assert.Equal(t, 9, m.MaxPosition())
	assert.Equal(t, 4, m.Position(1))
	assert.Equal(t, "{1,4,9}", m.String())
}

func TestMaskFirstLast(t *testing.T) {
	m := Sparse([]int{1, 4, 9, 12})
	assert.Equal(t, []int{1, 4}, m.First(2).Positions())
	assert.Equal(t, []int{9, 12}, m.Last(2).Positions())
	assert.Same(t, m, m.First(10))
	d := Range(10, 5)
	assert.Equal(t, "[10:12)", d.First(2).String())
	assert.Equal(t, "[13:15)", d.Last(2).String())
	assert.True(t, d.First(0).IsEmpty())
}

func TestMaskInvalidRange(t *testing.T) {
	require.Panics(t, func() { Range(-1, 2) })
}
